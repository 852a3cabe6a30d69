// Package cache wraps a Redis client. A nil *Store is valid and behaves as
// an always-missing cache, so callers never branch on whether Redis is up.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a JSON-encoding view over a Redis client.
type Store struct {
	rdb *redis.Client
}

// Connect dials Redis and verifies the connection with a ping.
func Connect(ctx context.Context, addr, password string) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return &Store{rdb: rdb}, nil
}

// Available reports whether the store is backed by a client.
func (s *Store) Available() bool {
	return s != nil && s.rdb != nil
}

// Get unmarshals the value under key into dest. It reports a hit.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	if !s.Available() {
		return false
	}

	val, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(val, dest) == nil
}

// Set stores value as JSON under key for ttl.
func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !s.Available() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, data, ttl).Err()
}

// Incr increments the counter under key, setting ttl when the key is new.
func (s *Store) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if !s.Available() {
		return 0, errors.New("cache: redis unavailable")
	}

	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := s.rdb.Expire(ctx, key, ttl).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if !s.Available() {
		return errors.New("cache: redis unavailable")
	}
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	if !s.Available() {
		return nil
	}
	return s.rdb.Close()
}
