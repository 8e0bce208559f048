package common

import (
	"context"
	"time"
)

// CacheInterface defines the contract for cache implementations. Values are
// stored as JSON so every backend returns the same typed result.
type CacheInterface interface {
	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Get decodes the cached value into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Delete removes the given keys
	Delete(ctx context.Context, keys ...string) error

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}
