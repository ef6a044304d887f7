package dto

import (
	"time"

	"admissions-chatbot-be/pkg/chat/synthesize"
)

type ChatRequest struct {
	Question  string `json:"question" validate:"required"`
	SessionId string `json:"session_id"`
	OwnerId   string `json:"owner_id"`
}

// ChatResponse is the atomic 4-tuple turn result. At most one of
// Options / Records is non-empty.
type ChatResponse struct {
	Answer    string              `json:"answer"`
	SessionId string              `json:"session_id"`
	Options   []string            `json:"options"`
	Records   []synthesize.Course `json:"records"`
}

type CreateSessionRequest struct {
	OwnerId string `json:"owner_id"`
}

type SessionResponse struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageResponse struct {
	Id        int64               `json:"id"`
	Role      string              `json:"role"`
	Content   string              `json:"content"`
	Options   []string            `json:"options,omitempty"`
	Records   []synthesize.Course `json:"records,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

type RenameSessionRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}
