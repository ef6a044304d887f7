package events

import "time"

// Subjects for chat lifecycle events.
const (
	SubjectTurnCompleted  = "events.chat.turn_completed"
	SubjectSessionDeleted = "events.chat.session_deleted"
)

// TurnCompleted is published after a turn has been persisted. Consumers
// use it for analytics; delivery is fire-and-forget.
type TurnCompleted struct {
	SessionId   string    `json:"session_id"`
	OwnerId     string    `json:"owner_id,omitempty"`
	Action      string    `json:"action"`
	Intent      string    `json:"intent,omitempty"`
	OptionCount int       `json:"option_count"`
	CourseCount int       `json:"course_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type SessionDeleted struct {
	SessionId  string    `json:"session_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
