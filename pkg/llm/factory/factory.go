package factory

import (
	"fmt"

	"admissions-chatbot-be/internal/config"
	"admissions-chatbot-be/pkg/llm"
	"admissions-chatbot-be/pkg/llm/gemini"
	"admissions-chatbot-be/pkg/llm/ollama"
)

// NewProvider builds the configured LLM backend.
func NewProvider(cfg *config.Config) (llm.LLMProvider, error) {
	switch cfg.Ai.LlmProvider {
	case "ollama":
		return ollama.NewOllamaProvider(cfg.Ai.OllamaBaseUrl, cfg.Ai.LlmModel), nil
	case "gemini":
		if cfg.Ai.GeminiApiKey == "" {
			return nil, fmt.Errorf("gemini provider requires GEMINI_API_KEY")
		}
		return gemini.NewGeminiProvider(cfg.Ai.GeminiApiKey, cfg.Ai.LlmModel), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Ai.LlmProvider)
	}
}
