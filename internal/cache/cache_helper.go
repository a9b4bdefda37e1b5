package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheNotAvailable means no Redis client is configured; callers fall
	// through to the backing store.
	ErrCacheNotAvailable = errors.New("cache not available")

	// ErrCacheNotFound means the key is absent or expired.
	ErrCacheNotFound = errors.New("cache key not found")
)

// Helper provides common caching operations with graceful degradation when
// no Redis client is configured.
type Helper struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewHelper creates a cache helper. A nil client is allowed and turns every
// read into a miss and every write into a no-op.
func NewHelper(client *redis.Client, prefix string, ttl time.Duration) *Helper {
	return &Helper{client: client, prefix: prefix, ttl: ttl}
}

func (h *Helper) key(k string) string {
	return fmt.Sprintf("%s%s", h.prefix, k)
}

// Get retrieves and unmarshals a cached value into dest.
func (h *Helper) Get(ctx context.Context, k string, dest interface{}) error {
	if h.client == nil {
		return ErrCacheNotAvailable
	}

	data, err := h.client.Get(ctx, h.key(k)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheNotFound
		}
		return fmt.Errorf("cache get: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("cache unmarshal: %w", err)
	}
	return nil
}

// Set marshals and stores a value under the helper's TTL.
func (h *Helper) Set(ctx context.Context, k string, value interface{}) error {
	if h.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	return h.client.Set(ctx, h.key(k), data, h.ttl).Err()
}

// Delete removes keys from the cache.
func (h *Helper) Delete(ctx context.Context, keys ...string) error {
	if h.client == nil || len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = h.key(k)
	}
	return h.client.Del(ctx, full...).Err()
}
