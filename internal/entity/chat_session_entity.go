package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id           uuid.UUID
	OwnerId      *string
	Title        *string
	Branch       *string
	Grade        *string
	Subject      *string
	PendingQuery *string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// ContextPatch is a partial slot-state update. A nil field leaves the
// stored value untouched; a pointer to the empty string clears it.
type ContextPatch struct {
	Branch       *string
	Grade        *string
	Subject      *string
	PendingQuery *string
	Title        *string
}

// Empty reports whether the patch would change nothing.
func (p ContextPatch) Empty() bool {
	return p.Branch == nil && p.Grade == nil && p.Subject == nil &&
		p.PendingQuery == nil && p.Title == nil
}
