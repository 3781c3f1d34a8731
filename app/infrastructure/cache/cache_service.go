package cache

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound marks a cache miss. Implementations wrap it so callers can
// test with errors.Is.
var ErrKeyNotFound = errors.New("key not found")

// CacheService defines the interface for cache operations. Values are stored
// JSON-encoded; Get decodes into dest.
type CacheService interface {
	// Set stores a value in cache with an expiration time
	Set(ctx context.Context, key string, value any, expiration time.Duration) error

	// Get retrieves a value from cache into dest; returns ErrKeyNotFound on miss
	Get(ctx context.Context, key string, dest any) error

	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error

	// DeletePattern removes all keys matching a glob-style pattern
	DeletePattern(ctx context.Context, pattern string) error

	// FlushAll removes every key
	FlushAll(ctx context.Context) error

	// Exists checks if a key exists in cache
	Exists(ctx context.Context, key string) (bool, error)

	// Close closes the cache connection
	Close() error

	// HealthCheck verifies cache availability
	HealthCheck(ctx context.Context) error
}
