package utils

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
		want      int
	}{
		{"short text single chunk", "ngắn", 10, 2, 1},
		{"exact size single chunk", strings.Repeat("a", 10), 10, 2, 1},
		{"empty text no chunks", "", 10, 2, 0},
		{"zero chunk size no chunks", "abc", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitText(tt.text, tt.chunkSize, tt.overlap)
			if len(got) != tt.want {
				t.Errorf("chunks = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("x", 25)
	chunks := SplitText(text, 10, 4)

	for i, c := range chunks {
		if len([]rune(c)) > 10 {
			t.Errorf("chunk %d too long: %d", i, len([]rune(c)))
		}
	}
	// Consecutive chunks share the overlap region.
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		cur := []rune(chunks[i])
		n := 4
		if len(cur) < n {
			n = len(cur)
		}
		if string(prev[len(prev)-4:len(prev)-4+n]) != string(cur[:n]) {
			t.Errorf("chunks %d/%d do not overlap", i-1, i)
		}
	}
}

func TestSplitTextMultibyte(t *testing.T) {
	text := strings.Repeat("ư", 15)
	chunks := SplitText(text, 10, 2)

	var total string
	for _, c := range chunks {
		for _, r := range c {
			if r != 'ư' {
				t.Fatalf("rune corrupted: %q", r)
			}
		}
		total += c
	}
	if !strings.HasPrefix(total, text[:10]) {
		t.Error("first chunk does not match source prefix")
	}
}
