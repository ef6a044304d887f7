package stream

import (
	"context"
	"time"

	"admissions-chatbot-be/pkg/chat/synthesize"
)

// Frame kinds, one JSON object per frame. Exactly one field group is
// set per frame.
type TextChunkFrame struct {
	TextChunk string `json:"text_chunk"`
}

type FinalTextFrame struct {
	Text      string `json:"text"`
	SessionId string `json:"session_id"`
}

type OptionsFrame struct {
	Options []string `json:"options"`
}

type CoursesFrame struct {
	Courses []synthesize.Course `json:"courses"`
}

type ErrorFrame struct {
	Error string `json:"error"`
}

// Sink delivers one frame to the client. An error from the sink means
// the consumer is gone and emission must stop.
type Sink func(frame interface{}) error

const (
	defaultFragmentSize = 20 // runes
	defaultDelay        = 30 * time.Millisecond
)

// Emitter segments a fully-materialized answer into small text
// fragments with a short delay between them, emulating incremental
// delivery. Cancellation is checked between fragments only.
type Emitter struct {
	FragmentSize int
	Delay        time.Duration
}

func NewEmitter() *Emitter {
	return &Emitter{FragmentSize: defaultFragmentSize, Delay: defaultDelay}
}

// EmitText streams the answer as ordered fragments, then the terminal
// text frame carrying the session id.
func (e *Emitter) EmitText(ctx context.Context, sink Sink, answer, sessionId string) error {
	runes := []rune(answer)
	size := e.FragmentSize
	if size <= 0 {
		size = defaultFragmentSize
	}

	for start := 0; start < len(runes); start += size {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		if err := sink(TextChunkFrame{TextChunk: string(runes[start:end])}); err != nil {
			return err
		}
		if e.Delay > 0 && end < len(runes) {
			time.Sleep(e.Delay)
		}
	}

	return sink(FinalTextFrame{Text: answer, SessionId: sessionId})
}

// EmitOptions sends the terminal options frame. Skipped when empty.
func (e *Emitter) EmitOptions(sink Sink, options []string) error {
	if len(options) == 0 {
		return nil
	}
	return sink(OptionsFrame{Options: options})
}

// EmitCourses sends the terminal records frame. Skipped when empty.
func (e *Emitter) EmitCourses(sink Sink, courses []synthesize.Course) error {
	if len(courses) == 0 {
		return nil
	}
	return sink(CoursesFrame{Courses: courses})
}

// EmitError reports a failure to the client in-band.
func (e *Emitter) EmitError(sink Sink, message string) error {
	return sink(ErrorFrame{Error: message})
}
