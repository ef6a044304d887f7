package synthesize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"admissions-chatbot-be/internal/constant"
	"admissions-chatbot-be/internal/pkg/logger"
	"admissions-chatbot-be/pkg/llm"
)

// Course is one structured result card attached to a data answer.
type Course struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Schedule string `json:"schedule"`
	Location string `json:"location"`
	Price    string `json:"price"`
	Status   string `json:"status"`
	EndDate  string `json:"end_date"`
}

// Result is a synthesized answer plus any course cards the oracle
// produced.
type Result struct {
	Answer  string   `json:"answer"`
	Courses []Course `json:"courses"`
}

// Synthesizer turns a filtered data bundle into a natural-language
// answer with structured records. Parse failures fall back to the raw
// oracle text with no records.
type Synthesizer struct {
	provider llm.LLMProvider
	log      logger.ILogger
}

func NewSynthesizer(provider llm.LLMProvider, log logger.ILogger) *Synthesizer {
	return &Synthesizer{provider: provider, log: log}
}

func (s *Synthesizer) Synthesize(ctx context.Context, question string, data interface{}) (*Result, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal data bundle: %w", err)
	}

	prompt := fmt.Sprintf(constant.SynthesisPromptTemplate, string(dataBytes), question)
	raw, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return nil, fmt.Errorf("synthesis oracle: %w", err)
	}

	result := ParseResult(raw)
	if len(result.Courses) == 0 && result.Answer == raw {
		s.log.Debug("synthesize", "structured parse failed, raw answer kept", nil)
	}
	return result, nil
}

// ParseResult parses the oracle's JSON object, tolerating markdown
// fences around it. Unparseable output becomes a plain-text answer.
func ParseResult(raw string) *Result {
	cleaned := StripFences(raw)

	var result Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil || result.Answer == "" {
		return &Result{Answer: strings.TrimSpace(raw), Courses: []Course{}}
	}
	if result.Courses == nil {
		result.Courses = []Course{}
	}
	return &result
}

// StripFences removes a leading/trailing markdown code fence if present.
func StripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}
