package synthesize

import "testing"

func TestParseResult(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantAnswer  string
		wantCourses int
	}{
		{
			"plain json",
			`{"answer": "Có 1 lớp phù hợp.", "courses": [{"id": "1", "name": "Toán 10"}]}`,
			"Có 1 lớp phù hợp.", 1,
		},
		{
			"fenced json",
			"```json\n{\"answer\": \"Có lớp.\", \"courses\": []}\n```",
			"Có lớp.", 0,
		},
		{
			"bare fence",
			"```\n{\"answer\": \"OK\", \"courses\": []}\n```",
			"OK", 0,
		},
		{
			"unparseable falls back to raw text",
			"Hiện chưa có lớp nào phù hợp nhé em.",
			"Hiện chưa có lớp nào phù hợp nhé em.", 0,
		},
		{
			"json without answer falls back to raw",
			`{"courses": []}`,
			`{"courses": []}`, 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseResult(tt.raw)
			if got.Answer != tt.wantAnswer {
				t.Errorf("answer = %q, want %q", got.Answer, tt.wantAnswer)
			}
			if len(got.Courses) != tt.wantCourses {
				t.Errorf("courses = %d, want %d", len(got.Courses), tt.wantCourses)
			}
			if got.Courses == nil {
				t.Error("courses must never be nil")
			}
		})
	}
}
