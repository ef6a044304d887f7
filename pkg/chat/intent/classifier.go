package intent

import (
	"context"
	"fmt"
	"strings"

	"admissions-chatbot-be/internal/constant"
	"admissions-chatbot-be/internal/pkg/logger"
	"admissions-chatbot-be/pkg/llm"
)

// Classifier labels a question DATABASE_QUERY or GENERAL_CHAT.
// Failure and verbose answers both resolve to GENERAL_CHAT, the safe
// default.
type Classifier struct {
	provider llm.LLMProvider
	log      logger.ILogger
}

func NewClassifier(provider llm.LLMProvider, log logger.ILogger) *Classifier {
	return &Classifier{provider: provider, log: log}
}

func (c *Classifier) Classify(ctx context.Context, question string) string {
	prompt := fmt.Sprintf(constant.IntentPromptTemplate, question)

	raw, err := c.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		c.log.Warn("intent", "intent oracle failed", map[string]interface{}{"error": err.Error()})
		return constant.IntentGeneralChat
	}

	if strings.Contains(strings.ToUpper(strings.TrimSpace(raw)), constant.IntentDatabaseQuery) {
		return constant.IntentDatabaseQuery
	}
	return constant.IntentGeneralChat
}
