package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/enigma-chat/enigma/internal/domain/call"

	goredis "github.com/redis/go-redis/v9"
)

const signalListKey = "call:signals:" // List of signaling records per room

// SignalingStore persists short-lived WebRTC handshake records (SDP offers,
// answers, ICE candidates) keyed by room id. Records expire with the room:
// the invite row in Postgres outlives them, the handshake blobs do not.
type SignalingStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewSignalingStore(client *goredis.Client, ttl time.Duration) *SignalingStore {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &SignalingStore{client: client, ttl: ttl}
}

func (s *SignalingStore) Append(ctx context.Context, sig call.Signal) error {
	if sig.Timestamp.IsZero() {
		sig.Timestamp = time.Now()
	}
	data, err := json.Marshal(sig)
	if err != nil {
		return err
	}
	key := signalListKey + sig.Room
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// List returns every signal recorded for the room after the given offset.
// Clients poll with the count they have already seen.
func (s *SignalingStore) List(ctx context.Context, room string, offset int64) ([]call.Signal, error) {
	key := signalListKey + room
	raw, err := s.client.LRange(ctx, key, offset, -1).Result()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, err
	}
	signals := make([]call.Signal, 0, len(raw))
	for _, item := range raw {
		var sig call.Signal
		if err := json.Unmarshal([]byte(item), &sig); err != nil {
			continue
		}
		signals = append(signals, sig)
	}
	return signals, nil
}

func (s *SignalingStore) Clear(ctx context.Context, room string) error {
	return s.client.Del(ctx, signalListKey+room).Err()
}
