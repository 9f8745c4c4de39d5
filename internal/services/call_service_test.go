package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/enigma-chat/enigma/internal/domain/call"
	"github.com/enigma-chat/enigma/internal/services"
	enigma_errors "github.com/enigma-chat/enigma/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type callFixture struct {
	invites  *fakeCallRepo
	signaler *fakeSignaler
	calls    *services.CallService
}

func newCallFixture(t *testing.T, online ...string) *callFixture {
	t.Helper()
	users := newFakeUserRepo()
	identity := newIdentityService(users)
	for _, handle := range online {
		_, err := identity.Claim(context.Background(), handle, uuid.New())
		require.NoError(t, err)
	}
	invites := newFakeCallRepo()
	signaler := newFakeSignaler()
	return &callFixture{
		invites:  invites,
		signaler: signaler,
		calls:    services.NewCallService(invites, identity, signaler),
	}
}

func TestInitiateCreatesPendingInvite(t *testing.T) {
	f := newCallFixture(t, "alice", "bob")

	invite, err := f.calls.Initiate(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, "alice", invite.Caller)
	assert.Equal(t, "bob", invite.Callee)
	assert.Equal(t, call.StatusPending, invite.Status)
	assert.True(t, strings.HasPrefix(invite.RoomID, "room_"))
}

func TestInitiateOfflineTarget(t *testing.T) {
	f := newCallFixture(t, "alice")

	_, err := f.calls.Initiate(context.Background(), "alice", "ghost")
	assert.ErrorIs(t, err, enigma_errors.ErrRecipientOffline)
}

func TestInitiateRoomsAreUnique(t *testing.T) {
	f := newCallFixture(t, "alice", "bob")

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		invite, err := f.calls.Initiate(context.Background(), "alice", "bob")
		require.NoError(t, err)
		assert.False(t, seen[invite.RoomID])
		seen[invite.RoomID] = true
	}
}

func TestRespondAccept(t *testing.T) {
	f := newCallFixture(t, "alice", "bob")
	invite, err := f.calls.Initiate(context.Background(), "alice", "bob")
	require.NoError(t, err)

	updated, err := f.calls.Respond(context.Background(), "bob", invite.RoomID, true)
	require.NoError(t, err)
	assert.Equal(t, call.StatusAccepted, updated.Status)
}

func TestRespondReject(t *testing.T) {
	f := newCallFixture(t, "alice", "bob")
	invite, err := f.calls.Initiate(context.Background(), "alice", "bob")
	require.NoError(t, err)

	updated, err := f.calls.Respond(context.Background(), "bob", invite.RoomID, false)
	require.NoError(t, err)
	assert.Equal(t, call.StatusRejected, updated.Status)
}

func TestRespondCalleeOnly(t *testing.T) {
	f := newCallFixture(t, "alice", "bob", "carol")
	invite, err := f.calls.Initiate(context.Background(), "alice", "bob")
	require.NoError(t, err)

	_, err = f.calls.Respond(context.Background(), "carol", invite.RoomID, true)
	assert.ErrorIs(t, err, enigma_errors.ErrNotFound)

	// Even the caller cannot answer their own invite.
	_, err = f.calls.Respond(context.Background(), "alice", invite.RoomID, true)
	assert.ErrorIs(t, err, enigma_errors.ErrNotFound)
}

func TestRespondTerminalStatesStick(t *testing.T) {
	f := newCallFixture(t, "alice", "bob")
	invite, err := f.calls.Initiate(context.Background(), "alice", "bob")
	require.NoError(t, err)

	_, err = f.calls.Respond(context.Background(), "bob", invite.RoomID, true)
	require.NoError(t, err)

	_, err = f.calls.Respond(context.Background(), "bob", invite.RoomID, false)
	assert.ErrorIs(t, err, enigma_errors.ErrInvalidTransition)
}

func TestRespondUnknownRoom(t *testing.T) {
	f := newCallFixture(t, "alice", "bob")

	_, err := f.calls.Respond(context.Background(), "bob", "room_nope", true)
	assert.ErrorIs(t, err, enigma_errors.ErrNotFound)
}

func TestSignalParticipantsOnly(t *testing.T) {
	f := newCallFixture(t, "alice", "bob", "carol")
	invite, err := f.calls.Initiate(context.Background(), "alice", "bob")
	require.NoError(t, err)

	require.NoError(t, f.calls.Signal(context.Background(), "alice", invite.RoomID, call.SignalOffer, "sdp-offer"))
	require.NoError(t, f.calls.Signal(context.Background(), "bob", invite.RoomID, call.SignalAnswer, "sdp-answer"))

	err = f.calls.Signal(context.Background(), "carol", invite.RoomID, call.SignalICE, "candidate")
	assert.ErrorIs(t, err, enigma_errors.ErrNotFound)
}

func TestSignalRejectedRoomIsClosed(t *testing.T) {
	f := newCallFixture(t, "alice", "bob")
	invite, err := f.calls.Initiate(context.Background(), "alice", "bob")
	require.NoError(t, err)

	_, err = f.calls.Respond(context.Background(), "bob", invite.RoomID, false)
	require.NoError(t, err)

	err = f.calls.Signal(context.Background(), "alice", invite.RoomID, call.SignalICE, "candidate")
	assert.ErrorIs(t, err, enigma_errors.ErrInvalidTransition)
}

func TestRejectDropsBufferedSignals(t *testing.T) {
	f := newCallFixture(t, "alice", "bob")
	invite, err := f.calls.Initiate(context.Background(), "alice", "bob")
	require.NoError(t, err)

	require.NoError(t, f.calls.Signal(context.Background(), "alice", invite.RoomID, call.SignalOffer, "sdp"))

	_, err = f.calls.Respond(context.Background(), "bob", invite.RoomID, false)
	require.NoError(t, err)

	assert.Empty(t, f.signaler.signals[invite.RoomID])
}

func TestSignalsOffsetPaging(t *testing.T) {
	f := newCallFixture(t, "alice", "bob")
	invite, err := f.calls.Initiate(context.Background(), "alice", "bob")
	require.NoError(t, err)

	require.NoError(t, f.calls.Signal(context.Background(), "alice", invite.RoomID, call.SignalOffer, "one"))
	require.NoError(t, f.calls.Signal(context.Background(), "bob", invite.RoomID, call.SignalAnswer, "two"))
	require.NoError(t, f.calls.Signal(context.Background(), "alice", invite.RoomID, call.SignalICE, "three"))

	all, err := f.calls.Signals(context.Background(), "alice", invite.RoomID, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	tail, err := f.calls.Signals(context.Background(), "bob", invite.RoomID, 2)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "three", tail[0].Payload)

	_, err = f.calls.Signals(context.Background(), "carol", invite.RoomID, 0)
	assert.ErrorIs(t, err, enigma_errors.ErrNotFound)
}

func TestPendingFor(t *testing.T) {
	f := newCallFixture(t, "alice", "bob")
	invite, err := f.calls.Initiate(context.Background(), "alice", "bob")
	require.NoError(t, err)

	pending, err := f.calls.PendingFor(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, invite.RoomID, pending[0].RoomID)

	_, err = f.calls.Respond(context.Background(), "bob", invite.RoomID, true)
	require.NoError(t, err)

	pending, err = f.calls.PendingFor(context.Background(), "bob")
	require.NoError(t, err)
	assert.Empty(t, pending)
}
