package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"admissions-chatbot-be/internal/dto"
	"admissions-chatbot-be/internal/pkg/logger"
	"admissions-chatbot-be/internal/repository/specification"
	"admissions-chatbot-be/internal/repository/unitofwork"
	"admissions-chatbot-be/pkg/events"
	natspub "admissions-chatbot-be/pkg/nats"
)

type IHistoryService interface {
	ListSessions(ctx context.Context, ownerId string, limit int) ([]*dto.SessionResponse, error)
	GetMessages(ctx context.Context, sessionId string) ([]*dto.MessageResponse, error)
	RenameSession(ctx context.Context, sessionId, title string) error
	DeleteSession(ctx context.Context, sessionId string) error
}

type HistoryService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  *natspub.Publisher
	log        logger.ILogger
}

func NewHistoryService(uowFactory unitofwork.RepositoryFactory, publisher *natspub.Publisher, log logger.ILogger) IHistoryService {
	return &HistoryService{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log,
	}
}

func (s *HistoryService) ListSessions(ctx context.Context, ownerId string, limit int) ([]*dto.SessionResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	specs := []specification.Specification{
		specification.NewestFirst{},
		specification.Limit{N: limit},
	}
	if ownerId != "" {
		specs = append(specs, specification.ByOwner{OwnerID: ownerId})
	}

	sessions, err := uow.ChatSessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	out := make([]*dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		title := ""
		if session.Title != nil {
			title = *session.Title
		}
		out[i] = &dto.SessionResponse{
			Id:        session.Id.String(),
			Title:     title,
			CreatedAt: session.CreatedAt,
		}
	}
	return out, nil
}

func (s *HistoryService) GetMessages(ctx context.Context, sessionId string) ([]*dto.MessageResponse, error) {
	id, err := uuid.Parse(sessionId)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: id},
		specification.BySequence{},
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	out := make([]*dto.MessageResponse, len(messages))
	for i, msg := range messages {
		out[i] = &dto.MessageResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Content:   msg.Content,
			Options:   msg.Options,
			Records:   msg.Courses,
			CreatedAt: msg.CreatedAt,
		}
	}
	return out, nil
}

func (s *HistoryService) RenameSession(ctx context.Context, sessionId, title string) error {
	id, err := uuid.Parse(sessionId)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().Rename(ctx, id, title)
}

func (s *HistoryService) DeleteSession(ctx context.Context, sessionId string) error {
	id, err := uuid.Parse(sessionId)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() {
		_ = uow.Rollback()
	}()

	if err := uow.ChatMessageRepository().DeleteAllBySessionId(ctx, id); err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	if err := uow.ChatSessionRepository().Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.publisher.Publish(events.SubjectSessionDeleted, events.SessionDeleted{
		SessionId:  sessionId,
		OccurredAt: time.Now(),
	})
	return nil
}
