package unitofwork

import (
	"context"

	"admissions-chatbot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	KnowledgeChunkRepository() contract.KnowledgeChunkRepository
}
