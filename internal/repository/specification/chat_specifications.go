package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionID filters messages of one conversation
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.SessionID)
}

// ByOwner filters sessions of one owner
type ByOwner struct {
	OwnerID string
}

func (s ByOwner) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ?", s.OwnerID)
}

// NewestFirst orders sessions by creation time, most recent first
type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

// BySequence orders messages by their insertion sequence
type BySequence struct{}

func (s BySequence) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
