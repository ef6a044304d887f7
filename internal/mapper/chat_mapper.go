package mapper

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"admissions-chatbot-be/internal/entity"
	"admissions-chatbot-be/internal/model"
	"admissions-chatbot-be/pkg/chat/synthesize"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) SessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:           s.Id,
		OwnerId:      s.OwnerId,
		Title:        s.Title,
		Branch:       s.Branch,
		Grade:        s.Grade,
		Subject:      s.Subject,
		PendingQuery: s.PendingQuery,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *ChatMapper) SessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:           s.Id,
		OwnerId:      s.OwnerId,
		Title:        s.Title,
		Branch:       s.Branch,
		Grade:        s.Grade,
		Subject:      s.Subject,
		PendingQuery: s.PendingQuery,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

// Message Mappers

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var options []string
	if len(msg.Options) > 0 {
		// Corrupt rows degrade to no options rather than failing a read.
		_ = json.Unmarshal(msg.Options, &options)
	}

	var courses []synthesize.Course
	if len(msg.Courses) > 0 {
		_ = json.Unmarshal(msg.Courses, &courses)
	}

	return &entity.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Content:       msg.Content,
		Options:       options,
		Courses:       courses,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	out := &model.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Content:       msg.Content,
		CreatedAt:     msg.CreatedAt,
	}
	if len(msg.Options) > 0 {
		if data, err := json.Marshal(msg.Options); err == nil {
			out.Options = datatypes.JSON(data)
		}
	}
	if len(msg.Courses) > 0 {
		if data, err := json.Marshal(msg.Courses); err == nil {
			out.Courses = datatypes.JSON(data)
		}
	}
	return out
}
