package extract

import (
	"context"
	"errors"
	"testing"

	"admissions-chatbot-be/pkg/llm"
)

type fakeProvider struct {
	response string
	err      error
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeProvider) ChatStream(ctx context.Context, history []llm.Message, fn llm.StreamFunc, opts ...llm.Option) error {
	if f.err != nil {
		return f.err
	}
	return fn(f.response)
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func TestParseTriple(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		branch  *string
		grade   *string
		subject *string
	}{
		{"full triple", "Thăng Long Hà Nội|10|Toán", sp("Thăng Long Hà Nội"), sp("10"), sp("Toán")},
		{"none literals map to nil", "None|None|None", nil, nil, nil},
		{"mixed", "Thăng Long Đà Nẵng|None|Toán", sp("Thăng Long Đà Nẵng"), nil, sp("Toán")},
		{"legacy two fields", "Thăng Long Hà Nội|10", sp("Thăng Long Hà Nội"), sp("10"), nil},
		{"whitespace trimmed", "  Hà Nội | 10 | None ", sp("Hà Nội"), sp("10"), nil},
		{"lowercase none is a value", "none|10|None", sp("none"), sp("10"), nil},
		{"no pipe yields nothing", "Không rõ", nil, nil, nil},
		{"empty yields nothing", "", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTriple(tt.raw)
			assertField(t, "branch", got.Branch, tt.branch)
			assertField(t, "grade", got.Grade, tt.grade)
			assertField(t, "subject", got.Subject, tt.subject)
		})
	}
}

func TestExtractOracleFailureDegradesToEmpty(t *testing.T) {
	e := NewExtractor(&fakeProvider{err: errors.New("timeout")}, nopLogger{})

	got := e.Extract(context.Background(), "Em học lớp 10", []string{"Hà Nội"}, []string{"10"}, []string{"Toán"})

	if got.Any() {
		t.Errorf("expected empty slots on oracle failure, got %+v", got)
	}
}

func TestExtractParsesOracleAnswer(t *testing.T) {
	e := NewExtractor(&fakeProvider{response: "Thăng Long Hà Nội|10|None"}, nopLogger{})

	got := e.Extract(context.Background(), "Em học lớp 10 ở Hà Nội", []string{"Thăng Long Hà Nội"}, []string{"10"}, nil)

	if got.Branch == nil || *got.Branch != "Thăng Long Hà Nội" {
		t.Errorf("branch = %v", got.Branch)
	}
	if got.Grade == nil || *got.Grade != "10" {
		t.Errorf("grade = %v", got.Grade)
	}
	if got.Subject != nil {
		t.Errorf("subject = %v, want nil", got.Subject)
	}
}

func sp(s string) *string { return &s }

func assertField(t *testing.T, name string, got, want *string) {
	t.Helper()
	if (got == nil) != (want == nil) {
		t.Errorf("%s = %v, want %v", name, got, want)
		return
	}
	if got != nil && *got != *want {
		t.Errorf("%s = %q, want %q", name, *got, *want)
	}
}
