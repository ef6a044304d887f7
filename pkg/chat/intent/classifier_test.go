package intent

import (
	"context"
	"errors"
	"testing"

	"admissions-chatbot-be/internal/constant"
	"admissions-chatbot-be/pkg/llm"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeProvider struct {
	response string
	err      error
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, _ ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeProvider) ChatStream(ctx context.Context, history []llm.Message, fn llm.StreamFunc, _ ...llm.Option) error {
	if f.err != nil {
		return f.err
	}
	return fn(f.response)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"clean database label", "DATABASE_QUERY", constant.IntentDatabaseQuery},
		{"clean general label", "GENERAL_CHAT", constant.IntentGeneralChat},
		{"lowercase label", "database_query", constant.IntentDatabaseQuery},
		{"label buried in prose", "Câu này là DATABASE_QUERY nhé.", constant.IntentDatabaseQuery},
		{"unrelated text", "không rõ", constant.IntentGeneralChat},
		{"empty response", "", constant.IntentGeneralChat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(&fakeProvider{response: tt.response}, nopLogger{})
			if got := c.Classify(context.Background(), "Lịch học thế nào?"); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyOracleFailureDefaultsToGeneral(t *testing.T) {
	c := NewClassifier(&fakeProvider{err: errors.New("oracle down")}, nopLogger{})
	if got := c.Classify(context.Background(), "Lịch học?"); got != constant.IntentGeneralChat {
		t.Errorf("Classify() = %q, want GENERAL_CHAT on failure", got)
	}
}
