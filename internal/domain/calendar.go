package domain

import (
	"time"

	"github.com/google/uuid"
)

// Calendar календарь бронирования, принадлежащий одному администратору
type Calendar struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy returns true if userID is the calendar administrator
func (c *Calendar) IsOwnedBy(userID uuid.UUID) bool {
	return c.OwnerID == userID
}
