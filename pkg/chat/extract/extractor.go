package extract

import (
	"context"
	"fmt"
	"strings"

	"admissions-chatbot-be/internal/constant"
	"admissions-chatbot-be/internal/pkg/logger"
	"admissions-chatbot-be/pkg/llm"
)

// Slots is one turn's extraction result. A nil field means the
// utterance said nothing about that slot.
type Slots struct {
	Branch  *string
	Grade   *string
	Subject *string
}

// Any reports whether at least one slot was extracted.
func (s Slots) Any() bool {
	return s.Branch != nil || s.Grade != nil || s.Subject != nil
}

// Extractor maps a free-text utterance onto the catalog vocabulary via
// the language oracle. It never returns an error: any failure degrades
// to empty slots.
type Extractor struct {
	provider llm.LLMProvider
	log      logger.ILogger
}

func NewExtractor(provider llm.LLMProvider, log logger.ILogger) *Extractor {
	return &Extractor{provider: provider, log: log}
}

func (e *Extractor) Extract(ctx context.Context, utterance string, branches, grades, subjects []string) Slots {
	prompt := fmt.Sprintf(constant.ExtractionPromptTemplate,
		formatList(branches), formatList(grades), formatList(subjects), utterance)

	raw, err := e.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		e.log.Warn("extract", "extraction oracle failed", map[string]interface{}{"error": err.Error()})
		return Slots{}
	}
	return ParseTriple(raw)
}

// ParseTriple parses "Branch|Grade|Subject". A two-field legacy answer
// yields a nil subject. The literal "None" (case-sensitive) maps to nil.
// Anything unsplittable yields empty slots.
func ParseTriple(raw string) Slots {
	content := strings.TrimSpace(raw)
	if !strings.Contains(content, "|") {
		return Slots{}
	}

	parts := strings.SplitN(content, "|", 3)
	slots := Slots{
		Branch: normalizeField(parts[0]),
		Grade:  normalizeField(parts[1]),
	}
	if len(parts) == 3 {
		slots.Subject = normalizeField(parts[2])
	}
	return slots
}

func normalizeField(field string) *string {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" || trimmed == "None" {
		return nil
	}
	return &trimmed
}

func formatList(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}
