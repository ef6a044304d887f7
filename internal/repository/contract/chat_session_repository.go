package contract

import (
	"context"

	"github.com/google/uuid"

	"admissions-chatbot-be/internal/entity"
	"admissions-chatbot-be/internal/repository/specification"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	// UpdateContext applies a partial slot-state update: nil fields are
	// untouched, a pointer to "" clears the column.
	UpdateContext(ctx context.Context, id uuid.UUID, patch entity.ContextPatch) error
	Rename(ctx context.Context, id uuid.UUID, title string) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
}
