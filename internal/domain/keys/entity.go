package keys

import (
	"time"

	"github.com/google/uuid"
)

// KeyGrant represents the encryption_keys table: a named symmetric key
// recorded when a sender encrypts a public broadcast. Append-only audit log.
type KeyGrant struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerHandle string    `gorm:"size:16;not null;index"`
	KeyName     string    `gorm:"size:255;not null"`
	KeyMaterial string    `gorm:"size:255;not null"`
	CreatedAt   time.Time
}

// ShareGrant represents the shared_keys table: an explicit one-to-one key
// hand-off between users. Append-only, never mutated.
type ShareGrant struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Sender      string    `gorm:"size:16;not null"`
	Recipient   string    `gorm:"size:16;not null;index"`
	KeyMaterial string    `gorm:"size:255;not null"`
	SharedAt    time.Time `gorm:"not null"`
}
