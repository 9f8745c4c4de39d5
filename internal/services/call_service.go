package services

import (
	"context"
	"time"

	"github.com/enigma-chat/enigma/internal/domain/call"
	"github.com/enigma-chat/enigma/internal/repository"
	enigma_errors "github.com/enigma-chat/enigma/pkg/errors"

	"github.com/google/uuid"
)

// Signaler persists short-lived handshake records for a room. Implemented by
// the Redis signaling store.
type Signaler interface {
	Append(ctx context.Context, sig call.Signal) error
	List(ctx context.Context, room string, offset int64) ([]call.Signal, error)
	Clear(ctx context.Context, room string) error
}

// CallService issues video-call handshake records and owns the invite
// lifecycle: pending at creation, then accepted or rejected by the callee,
// both terminal.
type CallService struct {
	invites  repository.CallRepository
	identity *IdentityService
	signals  Signaler
}

func NewCallService(invites repository.CallRepository, identity *IdentityService, signals Signaler) *CallService {
	return &CallService{invites: invites, identity: identity, signals: signals}
}

// Initiate creates a pending invite with a fresh globally unique room token.
func (s *CallService) Initiate(ctx context.Context, caller, target string) (call.CallInvite, error) {
	online, err := s.identity.IsOnline(ctx, target)
	if err != nil {
		return call.CallInvite{}, err
	}
	if !online {
		return call.CallInvite{}, enigma_errors.ErrRecipientOffline
	}

	invite := call.CallInvite{
		ID:        uuid.New(),
		Caller:    caller,
		Callee:    target,
		RoomID:    "room_" + uuid.NewString(),
		Status:    call.StatusPending,
		CreatedAt: time.Now(),
	}
	if err := s.invites.Create(ctx, &invite); err != nil {
		return call.CallInvite{}, err
	}
	return invite, nil
}

// Respond transitions a pending invite to accepted or rejected. Only the
// callee may respond; anyone else sees the room as not found.
func (s *CallService) Respond(ctx context.Context, callee, room string, accept bool) (call.CallInvite, error) {
	invite, err := s.invites.GetByRoom(ctx, room)
	if err != nil {
		return call.CallInvite{}, err
	}
	if invite.Callee != callee {
		return call.CallInvite{}, enigma_errors.ErrNotFound
	}

	to := call.StatusRejected
	if accept {
		to = call.StatusAccepted
	}
	if err := s.invites.TransitionStatus(ctx, room, call.StatusPending, to); err != nil {
		return call.CallInvite{}, err
	}
	if to == call.StatusRejected {
		// A rejected room never completes its handshake.
		_ = s.signals.Clear(ctx, room)
	}
	invite.Status = to
	return invite, nil
}

// Signal records one offer/answer/ICE blob for a room. Only the two call
// participants may write into it.
func (s *CallService) Signal(ctx context.Context, from, room, kind, payload string) error {
	invite, err := s.invites.GetByRoom(ctx, room)
	if err != nil {
		return err
	}
	if invite.Caller != from && invite.Callee != from {
		return enigma_errors.ErrNotFound
	}
	if invite.Status == call.StatusRejected {
		return enigma_errors.ErrInvalidTransition
	}
	return s.signals.Append(ctx, call.Signal{
		Room:    room,
		From:    from,
		Kind:    kind,
		Payload: payload,
	})
}

// Signals returns the handshake records for a room past the given offset.
func (s *CallService) Signals(ctx context.Context, handle, room string, offset int64) ([]call.Signal, error) {
	invite, err := s.invites.GetByRoom(ctx, room)
	if err != nil {
		return nil, err
	}
	if invite.Caller != handle && invite.Callee != handle {
		return nil, enigma_errors.ErrNotFound
	}
	return s.signals.List(ctx, room, offset)
}

// PendingFor lists a callee's outstanding invites, surfaced through the
// polled side-channel.
func (s *CallService) PendingFor(ctx context.Context, callee string) ([]call.CallInvite, error) {
	return s.invites.PendingFor(ctx, callee)
}
