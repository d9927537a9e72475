// Package cache is a small JSON-over-redis cache. A Store whose client is
// nil (not configured, or the ping failed) misses every Get and ignores
// every Set, so callers never need to check whether caching is enabled.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/geoinspect/config"
)

// Store wraps a redis client under a key prefix.
type Store struct {
	rdb    *redis.Client
	prefix string
}

// New returns a Store over an existing client.
func New(rdb *redis.Client, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix}
}

// Connect builds a Store from REDIS_ADDR / REDIS_PASSWORD and verifies the
// connection with a ping. When REDIS_ADDR is empty it returns a disabled
// Store and no error; when the ping fails it returns a disabled Store and
// the error so the caller can log it.
func Connect(ctx context.Context) (*Store, error) {
	addr := config.RedisAddr()
	if addr == "" {
		return &Store{prefix: "geoinspect:"}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return &Store{prefix: "geoinspect:"}, fmt.Errorf("cache: redis ping: %w", err)
	}
	return New(rdb, "geoinspect:"), nil
}

// Enabled reports whether the store is backed by redis.
func (s *Store) Enabled() bool { return s != nil && s.rdb != nil }

// Get unmarshals the cached value for key into dest. It reports a hit.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}

	val, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(val, dest) == nil
}

// Set stores value under key for ttl.
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.prefix+key, data, ttl).Err()
}

// Close releases the redis connection.
func (s *Store) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.rdb.Close()
}
