package media

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindImage = "image"
	KindVideo = "video"
)

// MediaItem represents the media table. The bytes themselves live in object
// storage under StoragePath; the row is metadata only.
type MediaItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Sender      string    `gorm:"size:16;not null"`
	Recipient   string    `gorm:"size:16;not null;index"`
	Kind        string    `gorm:"size:8;not null"`
	StoragePath string    `gorm:"size:255;not null"`
	SentAt      time.Time `gorm:"not null"`
}
