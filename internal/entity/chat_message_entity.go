package entity

import (
	"time"

	"github.com/google/uuid"

	"admissions-chatbot-be/pkg/chat/synthesize"
)

// ChatMessage is one persisted turn half. Id is the per-session
// sequence: assigned by the store, strictly increasing.
type ChatMessage struct {
	Id            int64
	ChatSessionId uuid.UUID
	Role          string
	Content       string
	Options       []string
	Courses       []synthesize.Course
	CreatedAt     time.Time
}
