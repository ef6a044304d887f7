package embedding

import (
	"fmt"
)

// NewProvider builds the configured embedding backend.
func NewProvider(provider, model, ollamaBaseURL, geminiKey string) (Provider, error) {
	switch provider {
	case "gemini":
		if geminiKey == "" {
			return nil, fmt.Errorf("gemini embedding requires GEMINI_API_KEY")
		}
		return NewGeminiProvider(geminiKey, model), nil
	case "ollama":
		return NewOllamaProvider(ollamaBaseURL, model, 768), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", provider)
	}
}
