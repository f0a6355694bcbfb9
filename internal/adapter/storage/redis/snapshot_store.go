package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abdulsamad25/apartment-rentals/internal/repository"
	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "snapshot:"

// SnapshotStore persists each collection snapshot as a single redis
// string value, no expiry.
type SnapshotStore struct {
	client *redis.Client
}

func NewSnapshotStore(client *redis.Client) *SnapshotStore {
	return &SnapshotStore{client: client}
}

func (s *SnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, snapshotKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot %s from redis: %w", key, err)
	}
	return data, nil
}

func (s *SnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, snapshotKeyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot %s to redis: %w", key, err)
	}
	return nil
}

func (s *SnapshotStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, snapshotKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot %s from redis: %w", key, err)
	}
	return nil
}
