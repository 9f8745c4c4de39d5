package call

import (
	"time"

	"github.com/google/uuid"
)

// Invite statuses. pending transitions to accepted or rejected, both terminal.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// CallInvite represents the video_requests table. The room token is a
// globally unique opaque handshake record for a peer-to-peer video call.
type CallInvite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Caller    string    `gorm:"size:16;not null"`
	Callee    string    `gorm:"size:16;not null;index"`
	RoomID    string    `gorm:"size:255;uniqueIndex;not null"`
	Status    string    `gorm:"size:16;not null;default:pending"`
	CreatedAt time.Time `gorm:"not null"`
}

// Signal kinds exchanged while bootstrapping the peer connection.
const (
	SignalOffer  = "offer"
	SignalAnswer = "answer"
	SignalICE    = "ice_candidate"
)

// Signal is one WebRTC signaling record for a room. Signals are short-lived
// and live in Redis, not in the relational store.
type Signal struct {
	Room      string    `json:"room"`
	From      string    `json:"from"`
	Kind      string    `json:"kind"`
	Payload   string    `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}
