package repository

import (
	"context"
	"time"

	"github.com/enigma-chat/enigma/internal/domain/call"
	"github.com/enigma-chat/enigma/internal/domain/keys"
	"github.com/enigma-chat/enigma/internal/domain/media"
	"github.com/enigma-chat/enigma/internal/domain/message"
	"github.com/enigma-chat/enigma/internal/domain/stats"
	"github.com/enigma-chat/enigma/internal/domain/user"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByHandle(ctx context.Context, handle string) (user.User, error)
	GetBySessionID(ctx context.Context, sessionID uuid.UUID) (user.User, error)
	Touch(ctx context.Context, handle string, at time.Time) error
	SweepStale(ctx context.Context, cutoff time.Time) ([]string, error)
	IsOnline(ctx context.Context, handle string) (bool, error)
	CountOnline(ctx context.Context) (int64, error)
}

type MessageRepository interface {
	CreatePrivate(ctx context.Context, m *message.PrivateMessage) error
	CreatePublic(ctx context.Context, m *message.PublicMessage) error
	RecentPublic(ctx context.Context, limit int) ([]message.PublicMessage, error)
	RecentPrivate(ctx context.Context, handle string, limit int) ([]message.PrivateMessage, error)
}

type MediaRepository interface {
	Create(ctx context.Context, m *media.MediaItem) error
}

type KeyRepository interface {
	CreateGrant(ctx context.Context, g *keys.KeyGrant) error
	CreateShare(ctx context.Context, s *keys.ShareGrant) error
	GrantsByOwner(ctx context.Context, owner string) ([]keys.KeyGrant, error)
	SharesForRecipient(ctx context.Context, recipient string) ([]keys.ShareGrant, error)
}

type CallRepository interface {
	Create(ctx context.Context, c *call.CallInvite) error
	GetByRoom(ctx context.Context, roomID string) (call.CallInvite, error)
	TransitionStatus(ctx context.Context, roomID, from, to string) error
	PendingFor(ctx context.Context, callee string) ([]call.CallInvite, error)
}

type StatsRepository interface {
	Get(ctx context.Context) (stats.SiteStats, error)
	IncrementVisits(ctx context.Context) error
}
