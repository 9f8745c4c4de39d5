package services

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/enigma-chat/enigma/internal/domain/user"
	"github.com/enigma-chat/enigma/internal/repository"
	enigma_errors "github.com/enigma-chat/enigma/pkg/errors"

	"github.com/google/uuid"
)

var handlePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,16}$`)

// Presence is the fast-path mirror of the online set. Implemented by the
// Redis presence store; a nil Presence disables the mirror and every check
// falls through to the database.
type Presence interface {
	SetOnline(ctx context.Context, handle string) error
	SetOffline(ctx context.Context, handles ...string) error
	IsOnline(ctx context.Context, handle string) (bool, error)
}

// IdentityService owns handle reservation and presence. Handles are claimed
// once per session, globally unique, and never released.
type IdentityService struct {
	users     repository.UserRepository
	presence  Presence
	threshold time.Duration
}

func NewIdentityService(users repository.UserRepository, presence Presence, threshold time.Duration) *IdentityService {
	if threshold == 0 {
		threshold = 5 * time.Minute
	}
	return &IdentityService{users: users, presence: presence, threshold: threshold}
}

// Claim reserves a handle for a session. The database unique index is the
// arbiter for racing claims: exactly one wins, the rest get ErrAlreadyTaken.
func (s *IdentityService) Claim(ctx context.Context, handle string, sessionID uuid.UUID) (user.User, error) {
	if !handlePattern.MatchString(handle) {
		return user.User{}, enigma_errors.ErrInvalidFormat
	}

	// One claim per session lifetime.
	if _, err := s.users.GetBySessionID(ctx, sessionID); err == nil {
		return user.User{}, enigma_errors.ErrHandleBound
	} else if !errors.Is(err, enigma_errors.ErrNotFound) {
		return user.User{}, err
	}

	u := user.User{
		ID:         uuid.New(),
		Handle:     handle,
		SessionID:  sessionID,
		LastActive: time.Now(),
		IsOnline:   true,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return user.User{}, err
	}
	if s.presence != nil {
		_ = s.presence.SetOnline(ctx, handle)
	}
	return u, nil
}

// Resolve maps a session token back to its claimed user, if any.
func (s *IdentityService) Resolve(ctx context.Context, sessionID uuid.UUID) (user.User, error) {
	return s.users.GetBySessionID(ctx, sessionID)
}

// Touch marks the handle active now. Called on every authenticated request
// before command dispatch.
func (s *IdentityService) Touch(ctx context.Context, handle string) error {
	if err := s.users.Touch(ctx, handle, time.Now()); err != nil {
		return err
	}
	if s.presence != nil {
		_ = s.presence.SetOnline(ctx, handle)
	}
	return nil
}

// SweepStale flips users inactive past the threshold to offline. Runs inline
// once per incoming request, so presence accuracy is bounded by traffic, not
// wall-clock precision. Idempotent and safe to run redundantly.
func (s *IdentityService) SweepStale(ctx context.Context) error {
	swept, err := s.users.SweepStale(ctx, time.Now().Add(-s.threshold))
	if err != nil {
		return err
	}
	if s.presence != nil && len(swept) > 0 {
		_ = s.presence.SetOffline(ctx, swept...)
	}
	return nil
}

// IsOnline gates every command that targets another user. The Redis mirror
// answers the common case; a miss falls through to the users table.
func (s *IdentityService) IsOnline(ctx context.Context, handle string) (bool, error) {
	if s.presence != nil {
		if online, err := s.presence.IsOnline(ctx, handle); err == nil && online {
			return true, nil
		}
	}
	return s.users.IsOnline(ctx, handle)
}
