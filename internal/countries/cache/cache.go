// Package cache stores raw remote responses keyed by request URL.
//
// The cache sits below the query client: it never holds decoded records and never
// spans views, it only saves a network round trip for an identical request made
// within the TTL. It is disabled unless configured.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/bluele/gcache"
	"github.com/redis/go-redis/v9"

	"countries/pkg/platform/sentinel"
)

// Store is a byte cache. Get returns sentinel.ErrNotFound on a miss or after expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// MemoryStore is an in-process LRU cache with per-entry expiry.
type MemoryStore struct {
	entries gcache.Cache
	ttl     time.Duration
}

// DefaultTTL applies when a store is created with a non-positive TTL.
const DefaultTTL = 5 * time.Minute

// NewMemoryStore creates an LRU store holding at most size entries for ttl each.
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if size <= 0 {
		size = 128
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: gcache.New(size).LRU().Build(),
		ttl:     ttl,
	}
}

// Get retrieves a cached response.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	v, err := s.entries.Get(key)
	if err != nil {
		if errors.Is(err, gcache.KeyNotFoundError) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return b, nil
}

// Set stores a response for the store TTL.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	return s.entries.SetWithExpire(key, value, s.ttl)
}

// Len returns the number of live entries.
func (s *MemoryStore) Len() int {
	return s.entries.Len(true)
}

// RedisStore keeps responses in Redis so several server instances share them.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store. Keys are namespaced with prefix.
func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// Get retrieves a cached response.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// Set stores a response for the store TTL.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.prefix+key, value, s.ttl).Err()
}
