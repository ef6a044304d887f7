package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSession struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId      *string   `gorm:"type:text;index"` // nullable, anonymous sessions allowed
	Title        *string   `gorm:"type:text"`
	Branch       *string   `gorm:"type:text"`
	Grade        *string   `gorm:"type:text"`
	Subject      *string   `gorm:"type:text"`
	PendingQuery *string   `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
