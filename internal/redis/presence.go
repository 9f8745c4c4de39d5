package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Redis keys for the presence mirror.
const (
	presenceOnlineSet = "presence:online"     // Set of online handles
	presenceLastSeen  = "presence:last_seen:" // Per-handle last-seen timestamp
)

// PresenceStore mirrors the online set in Redis for cheap IsOnline checks.
// The users table stays the source of truth: the mirror is rebuilt by every
// touch and pruned by every sweep, so a miss here only means a DB fallback.
type PresenceStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewPresenceStore(client *goredis.Client, ttl time.Duration) *PresenceStore {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &PresenceStore{client: client, ttl: ttl}
}

func (p *PresenceStore) SetOnline(ctx context.Context, handle string) error {
	now := time.Now()
	pipe := p.client.Pipeline()
	pipe.SAdd(ctx, presenceOnlineSet, handle)
	pipe.Set(ctx, presenceLastSeen+handle, now.Unix(), p.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (p *PresenceStore) SetOffline(ctx context.Context, handles ...string) error {
	if len(handles) == 0 {
		return nil
	}
	members := make([]interface{}, len(handles))
	for i, h := range handles {
		members[i] = h
	}
	return p.client.SRem(ctx, presenceOnlineSet, members...).Err()
}

// IsOnline reports whether the mirror considers handle online. Callers fall
// back to the database on false.
func (p *PresenceStore) IsOnline(ctx context.Context, handle string) (bool, error) {
	return p.client.SIsMember(ctx, presenceOnlineSet, handle).Result()
}
