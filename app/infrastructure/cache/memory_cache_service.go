package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
)

type memoryItem struct {
	value     string
	expiresAt time.Time
}

// MemoryCacheService keeps entries in an in-process map. It backs local
// development and tests where no external store is available.
type MemoryCacheService struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

// NewMemoryCacheService creates an empty in-memory cache service
func NewMemoryCacheService() *MemoryCacheService {
	return &MemoryCacheService{
		items: make(map[string]memoryItem),
	}
}

// Set stores a value with an expiration time; zero means no expiry
func (m *MemoryCacheService) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item := memoryItem{value: value}
	if expiration > 0 {
		item.expiresAt = time.Now().Add(expiration)
	}
	m.items[key] = item
	return nil
}

// Get retrieves a value, expiring it lazily
func (m *MemoryCacheService) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return "", ErrCacheMiss
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return "", ErrCacheMiss
	}
	return item.value, nil
}

// Delete removes a key
func (m *MemoryCacheService) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// DeletePattern removes all keys matching a glob pattern. Only the
// trailing-star form used by this service is supported.
func (m *MemoryCacheService) DeletePattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.items {
		if strings.HasPrefix(key, prefix) {
			delete(m.items, key)
		}
	}
	return nil
}

// Exists checks if a key exists
func (m *MemoryCacheService) Exists(ctx context.Context, key string) (bool, error) {
	if _, err := m.Get(ctx, key); err != nil {
		if err == ErrCacheMiss {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Close is a no-op implementation
func (m *MemoryCacheService) Close() error {
	return nil
}

// HealthCheck always returns nil (healthy)
func (m *MemoryCacheService) HealthCheck(ctx context.Context) error {
	return nil
}

// NewMutex returns nil; a single process needs no distributed lock
func (m *MemoryCacheService) NewMutex(name string, options ...redsync.Option) *redsync.Mutex {
	return nil
}
