package repositories

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// redisStore keeps the snapshot blob under a single Redis key
type redisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore creates a store backed by the given Redis key
func NewRedisStore(client redis.UniversalClient, key string) SnapshotStore {
	return &redisStore{client: client, key: key}
}

// Read gets the key
func (s *redisStore) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotMissing
	}
	return data, err
}

// Write sets the key without expiry
func (s *redisStore) Write(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key, data, 0).Err()
}

// Ping checks the Redis connection
func (s *redisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
