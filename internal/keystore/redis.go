package keystore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKey is where RedisStore keeps the key
const RedisKey = "slack-remind:" + SlotName

// RedisStore keeps the key in a single redis string without expiry
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore returns a store over client
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, key string) error {
	key, err := normalize(key)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, RedisKey, key, 0).Err(); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	return nil
}

func (s *RedisStore) Read(ctx context.Context) (string, bool, error) {
	key, err := s.client.Get(ctx, RedisKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read api key: %w", err)
	}
	return key, true, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, RedisKey).Err(); err != nil {
		return fmt.Errorf("clear api key: %w", err)
	}
	return nil
}
