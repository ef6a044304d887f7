package contract

import (
	"context"

	"github.com/google/uuid"

	"admissions-chatbot-be/internal/entity"
	"admissions-chatbot-be/internal/repository/specification"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error
}
