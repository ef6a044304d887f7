package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatMessage rows are immutable; the bigserial Id doubles as the
// per-session sequence.
type ChatMessage struct {
	Id            int64          `gorm:"primaryKey;autoIncrement"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Role          string         `gorm:"type:varchar(16);not null"`
	Content       string         `gorm:"type:text;not null"`
	Options       datatypes.JSON `gorm:"type:jsonb"`
	Courses       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
