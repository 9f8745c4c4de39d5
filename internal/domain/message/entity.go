package message

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// PrivateMessage represents the messages table. Rows are immutable and
// visible to sender and recipient only.
type PrivateMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Sender    string    `gorm:"size:16;not null;index"`
	Recipient string    `gorm:"size:16;not null;index"`
	Content   string    `gorm:"type:text;not null"`
	SentAt    time.Time `gorm:"not null;index"`
}

// PublicMessage represents the public_messages table. When KeyName is set the
// content is ciphertext produced by the legacy broadcast cipher; the server
// never decrypts it.
type PublicMessage struct {
	ID      uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Sender  string         `gorm:"size:16;not null"`
	Content string         `gorm:"type:text;not null"`
	KeyName sql.NullString `gorm:"size:255;column:encryption_key_name"`
	SentAt  time.Time      `gorm:"not null;index"`
}

// Item type discriminators for the merged feed.
const (
	TypePublic  = "public"
	TypePrivate = "private"
)

// FeedItem is one entry of the merged, audience-filtered feed a client polls.
type FeedItem struct {
	Type      string    `json:"type"`
	ID        uuid.UUID `json:"id"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient,omitempty"`
	Content   string    `json:"content"`
	KeyName   string    `json:"key,omitempty"`
	SentAt    time.Time `json:"time"`
}
