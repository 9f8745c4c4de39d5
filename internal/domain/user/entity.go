package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents the users table. A handle is claimed once, is globally
// unique, and is never deleted or renamed.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Handle     string    `gorm:"size:16;uniqueIndex;not null"`
	SessionID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	LastActive time.Time `gorm:"not null"`
	IsOnline   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
}
