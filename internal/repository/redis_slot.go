package repository

import (
	"context"
	"errors"
	"time"

	"github.com/metinatakli/movie-favorites/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisClient is the part of the go-redis client the slot store uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

type RedisSlotStore struct {
	client RedisClient
}

func NewRedisSlotStore(client RedisClient) *RedisSlotStore {
	return &RedisSlotStore{
		client: client,
	}
}

func (s *RedisSlotStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrSlotEmpty
		}

		return "", err
	}

	return value, nil
}

// Set writes the value without expiration.
func (s *RedisSlotStore) Set(ctx context.Context, key string, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}
