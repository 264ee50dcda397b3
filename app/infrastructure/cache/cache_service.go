package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redsync/redsync/v4"
)

// ErrCacheMiss is returned by Get when a key is absent. Transport failures
// are returned as distinct errors so callers can tell the two apart.
var ErrCacheMiss = errors.New("cache: key not found")

// CacheService defines the interface for cache operations. Values are plain
// strings; callers decide their own serialization.
type CacheService interface {
	// Set stores a string value in cache with an expiration time.
	// A zero expiration means the key never expires.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Get retrieves a string value from cache, ErrCacheMiss when absent
	Get(ctx context.Context, key string) (string, error)

	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error

	// DeletePattern removes all keys matching a glob pattern
	DeletePattern(ctx context.Context, pattern string) error

	// Exists checks if a key exists in cache
	Exists(ctx context.Context, key string) (bool, error)

	// Close closes the cache connection
	Close() error

	// HealthCheck verifies cache connectivity
	HealthCheck(ctx context.Context) error

	// NewMutex returns a distributed lock, or nil when the backing store
	// cannot provide one.
	NewMutex(name string, options ...redsync.Option) *redsync.Mutex
}
