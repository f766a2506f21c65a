package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a thin client over redis used for cache-aside reads of widget
// data. Values are stored as JSON text. One Store is shared by all
// concurrent requests: go-redis pools connections internally, so no
// client side locking is needed.
type Store struct {
	client *redis.Client
}

// New connects to redis at the given URL (redis://...) and pings it,
// so a returned Store is known to be reachable at startup.
func New(ctx context.Context, url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("can't parse redis url. Err: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("can't connect to redis. Err: %w", err)
	}

	return &Store{client: client}, nil
}

// NewWithClient wraps an existing client. Used in tests.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get reads the value stored under key into dest.
// Returns (false, nil) when the key is absent: a miss is a normal result.
// A read or decode failure is an error, but callers are expected to treat
// it exactly like a miss and continue to the live fetch.
func (s *Store) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := s.client.Get(ctx, key).Result()

	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("cache get %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("cache decode %q: %w", key, err)
	}

	return true, nil
}

// Set serializes value as JSON and writes it under key with the given TTL.
// The write is a single SET with expiry, so concurrent writers may race
// but never leave a partial entry.
func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %q: %w", key, err)
	}

	if err := s.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete %q: %w", key, err)
	}

	return nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("cache exists %q: %w", key, err)
	}

	return n > 0, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
