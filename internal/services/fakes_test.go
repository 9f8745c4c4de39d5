package services_test

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/enigma-chat/enigma/internal/domain/call"
	"github.com/enigma-chat/enigma/internal/domain/keys"
	"github.com/enigma-chat/enigma/internal/domain/media"
	"github.com/enigma-chat/enigma/internal/domain/message"
	"github.com/enigma-chat/enigma/internal/domain/stats"
	"github.com/enigma-chat/enigma/internal/domain/user"
	enigma_errors "github.com/enigma-chat/enigma/pkg/errors"

	"github.com/google/uuid"
)

// In-memory fakes for the repository interfaces. They mirror the relevant
// Postgres semantics (unique handle, guarded status transitions) so service
// tests exercise real decision paths.

type fakeUserRepo struct {
	users map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	if _, ok := r.users[u.Handle]; ok {
		return enigma_errors.ErrAlreadyTaken
	}
	cp := *u
	r.users[u.Handle] = &cp
	return nil
}

func (r *fakeUserRepo) GetByHandle(_ context.Context, handle string) (user.User, error) {
	if u, ok := r.users[handle]; ok {
		return *u, nil
	}
	return user.User{}, enigma_errors.ErrNotFound
}

func (r *fakeUserRepo) GetBySessionID(_ context.Context, sessionID uuid.UUID) (user.User, error) {
	for _, u := range r.users {
		if u.SessionID == sessionID {
			return *u, nil
		}
	}
	return user.User{}, enigma_errors.ErrNotFound
}

func (r *fakeUserRepo) Touch(_ context.Context, handle string, at time.Time) error {
	u, ok := r.users[handle]
	if !ok {
		return enigma_errors.ErrNotFound
	}
	u.LastActive = at
	u.IsOnline = true
	return nil
}

func (r *fakeUserRepo) SweepStale(_ context.Context, cutoff time.Time) ([]string, error) {
	var swept []string
	for _, u := range r.users {
		if u.IsOnline && u.LastActive.Before(cutoff) {
			u.IsOnline = false
			swept = append(swept, u.Handle)
		}
	}
	sort.Strings(swept)
	return swept, nil
}

func (r *fakeUserRepo) IsOnline(_ context.Context, handle string) (bool, error) {
	if u, ok := r.users[handle]; ok {
		return u.IsOnline, nil
	}
	return false, nil
}

func (r *fakeUserRepo) CountOnline(_ context.Context) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.IsOnline {
			n++
		}
	}
	return n, nil
}

type fakeMessageRepo struct {
	private []message.PrivateMessage
	public  []message.PublicMessage
}

func (r *fakeMessageRepo) CreatePrivate(_ context.Context, m *message.PrivateMessage) error {
	r.private = append(r.private, *m)
	return nil
}

func (r *fakeMessageRepo) CreatePublic(_ context.Context, m *message.PublicMessage) error {
	r.public = append(r.public, *m)
	return nil
}

func (r *fakeMessageRepo) RecentPublic(_ context.Context, limit int) ([]message.PublicMessage, error) {
	out := append([]message.PublicMessage(nil), r.public...)
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.After(out[j].SentAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMessageRepo) RecentPrivate(_ context.Context, handle string, limit int) ([]message.PrivateMessage, error) {
	var out []message.PrivateMessage
	for _, m := range r.private {
		if m.Sender == handle || m.Recipient == handle {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.After(out[j].SentAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeMediaRepo struct {
	items []media.MediaItem
}

func (r *fakeMediaRepo) Create(_ context.Context, m *media.MediaItem) error {
	r.items = append(r.items, *m)
	return nil
}

type fakeKeyRepo struct {
	grants []keys.KeyGrant
	shares []keys.ShareGrant
}

func (r *fakeKeyRepo) CreateGrant(_ context.Context, g *keys.KeyGrant) error {
	r.grants = append(r.grants, *g)
	return nil
}

func (r *fakeKeyRepo) CreateShare(_ context.Context, s *keys.ShareGrant) error {
	r.shares = append(r.shares, *s)
	return nil
}

func (r *fakeKeyRepo) GrantsByOwner(_ context.Context, owner string) ([]keys.KeyGrant, error) {
	var out []keys.KeyGrant
	for _, g := range r.grants {
		if g.OwnerHandle == owner {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeKeyRepo) SharesForRecipient(_ context.Context, recipient string) ([]keys.ShareGrant, error) {
	var out []keys.ShareGrant
	for _, s := range r.shares {
		if s.Recipient == recipient {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeCallRepo struct {
	invites map[string]*call.CallInvite
}

func newFakeCallRepo() *fakeCallRepo {
	return &fakeCallRepo{invites: make(map[string]*call.CallInvite)}
}

func (r *fakeCallRepo) Create(_ context.Context, c *call.CallInvite) error {
	if _, ok := r.invites[c.RoomID]; ok {
		return enigma_errors.ErrAlreadyTaken
	}
	cp := *c
	r.invites[c.RoomID] = &cp
	return nil
}

func (r *fakeCallRepo) GetByRoom(_ context.Context, roomID string) (call.CallInvite, error) {
	if c, ok := r.invites[roomID]; ok {
		return *c, nil
	}
	return call.CallInvite{}, enigma_errors.ErrNotFound
}

func (r *fakeCallRepo) TransitionStatus(_ context.Context, roomID, from, to string) error {
	c, ok := r.invites[roomID]
	if !ok || c.Status != from {
		return enigma_errors.ErrInvalidTransition
	}
	c.Status = to
	return nil
}

func (r *fakeCallRepo) PendingFor(_ context.Context, callee string) ([]call.CallInvite, error) {
	var out []call.CallInvite
	for _, c := range r.invites {
		if c.Callee == callee && c.Status == call.StatusPending {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeStatsRepo struct {
	row stats.SiteStats
}

func (r *fakeStatsRepo) Get(_ context.Context) (stats.SiteStats, error) {
	return r.row, nil
}

func (r *fakeStatsRepo) IncrementVisits(_ context.Context) error {
	r.row.TotalVisits++
	r.row.LastUpdated = time.Now()
	return nil
}

type fakeSignaler struct {
	signals map[string][]call.Signal
}

func newFakeSignaler() *fakeSignaler {
	return &fakeSignaler{signals: make(map[string][]call.Signal)}
}

func (s *fakeSignaler) Append(_ context.Context, sig call.Signal) error {
	s.signals[sig.Room] = append(s.signals[sig.Room], sig)
	return nil
}

func (s *fakeSignaler) List(_ context.Context, room string, offset int64) ([]call.Signal, error) {
	list := s.signals[room]
	if offset >= int64(len(list)) {
		return nil, nil
	}
	return append([]call.Signal(nil), list[offset:]...), nil
}

func (s *fakeSignaler) Clear(_ context.Context, room string) error {
	delete(s.signals, room)
	return nil
}

type fakeObjectStore struct {
	objects map[string][]byte
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (s *fakeObjectStore) Put(_ context.Context, key, _ string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *fakeObjectStore) URL(key string) string {
	return "https://cdn.test/" + key
}
