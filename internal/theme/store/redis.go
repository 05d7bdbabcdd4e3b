package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"countries/internal/theme"
	"countries/pkg/platform/sentinel"
)

// RedisStore keeps the theme under a single Redis key, for deployments that
// run more than one server process.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

// NewRedis stores the theme at prefix+"theme".
func NewRedis(client redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{client: client, key: prefix + "theme"}
}

func (s *RedisStore) Load(ctx context.Context) (theme.Theme, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return theme.Parse(raw)
}

func (s *RedisStore) Save(ctx context.Context, t theme.Theme) error {
	if err := s.client.Set(ctx, s.key, string(t), 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
