package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/enigma-chat/enigma/internal/domain/user"
	"github.com/enigma-chat/enigma/internal/repository"
	enigma_errors "github.com/enigma-chat/enigma/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo repository.UserRepository, handle string, online bool, lastActive time.Time) user.User {
	t.Helper()
	u := user.User{
		ID:         uuid.New(),
		Handle:     handle,
		SessionID:  uuid.New(),
		LastActive: lastActive,
		IsOnline:   online,
	}
	require.NoError(t, repo.Create(context.Background(), &u))
	return u
}

func TestUserCreateAndLookup(t *testing.T) {
	repo := repository.NewUserRepository(openTestDB(t))
	ctx := context.Background()

	u := seedUser(t, repo, "alice", true, time.Now())

	byHandle, err := repo.GetByHandle(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byHandle.ID)

	bySession, err := repo.GetBySessionID(ctx, u.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "alice", bySession.Handle)
}

func TestUserLookupMissing(t *testing.T) {
	repo := repository.NewUserRepository(openTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByHandle(ctx, "nobody")
	assert.ErrorIs(t, err, enigma_errors.ErrNotFound)

	_, err = repo.GetBySessionID(ctx, uuid.New())
	assert.ErrorIs(t, err, enigma_errors.ErrNotFound)
}

func TestUserDuplicateHandle(t *testing.T) {
	repo := repository.NewUserRepository(openTestDB(t))

	seedUser(t, repo, "alice", true, time.Now())

	dup := user.User{ID: uuid.New(), Handle: "alice", SessionID: uuid.New(), LastActive: time.Now()}
	err := repo.Create(context.Background(), &dup)
	assert.ErrorIs(t, err, enigma_errors.ErrAlreadyTaken)
}

func TestUserTouch(t *testing.T) {
	repo := repository.NewUserRepository(openTestDB(t))
	ctx := context.Background()

	seedUser(t, repo, "alice", false, time.Now().Add(-time.Hour))

	now := time.Now()
	require.NoError(t, repo.Touch(ctx, "alice", now))

	u, err := repo.GetByHandle(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, u.IsOnline)
	assert.WithinDuration(t, now, u.LastActive, time.Second)

	assert.ErrorIs(t, repo.Touch(ctx, "nobody", now), enigma_errors.ErrNotFound)
}

func TestUserSweepStale(t *testing.T) {
	repo := repository.NewUserRepository(openTestDB(t))
	ctx := context.Background()

	seedUser(t, repo, "fresh", true, time.Now())
	seedUser(t, repo, "stale1", true, time.Now().Add(-10*time.Minute))
	seedUser(t, repo, "stale2", true, time.Now().Add(-20*time.Minute))
	seedUser(t, repo, "gone", false, time.Now().Add(-30*time.Minute))

	swept, err := repo.SweepStale(ctx, time.Now().Add(-5*time.Minute))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"stale1", "stale2"}, swept)

	online, err := repo.IsOnline(ctx, "stale1")
	require.NoError(t, err)
	assert.False(t, online)

	online, err = repo.IsOnline(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, online)

	// Second sweep finds nothing new.
	swept, err = repo.SweepStale(ctx, time.Now().Add(-5*time.Minute))
	require.NoError(t, err)
	assert.Empty(t, swept)
}

func TestUserCountOnline(t *testing.T) {
	repo := repository.NewUserRepository(openTestDB(t))
	ctx := context.Background()

	seedUser(t, repo, "alice", true, time.Now())
	seedUser(t, repo, "bob", true, time.Now())
	seedUser(t, repo, "carol", false, time.Now())

	n, err := repo.CountOnline(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
