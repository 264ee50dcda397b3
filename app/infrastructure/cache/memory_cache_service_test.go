package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	ctx := context.Background()
	service := NewMemoryCacheService()

	require.NoError(t, service.Set(ctx, "duckdb-data-api:get-/users?", `{"data":[]}`, 0))

	value, err := service.Get(ctx, "duckdb-data-api:get-/users?")
	require.NoError(t, err)
	assert.Equal(t, `{"data":[]}`, value)
}

func TestMemoryCacheMissIsSentinel(t *testing.T) {
	service := NewMemoryCacheService()

	_, err := service.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	service := NewMemoryCacheService()

	require.NoError(t, service.Set(ctx, "short-lived", "v", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, err := service.Get(ctx, "short-lived")
	assert.ErrorIs(t, err, ErrCacheMiss)

	exists, err := service.Exists(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCacheDelete(t *testing.T) {
	ctx := context.Background()
	service := NewMemoryCacheService()

	require.NoError(t, service.Set(ctx, "k", "v", 0))
	require.NoError(t, service.Delete(ctx, "k"))

	_, err := service.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheDeletePattern(t *testing.T) {
	ctx := context.Background()
	service := NewMemoryCacheService()

	require.NoError(t, service.Set(ctx, KeyPrefix+"get-/users?", "a", 0))
	require.NoError(t, service.Set(ctx, KeyPrefix+"get-/events?limit=5", "b", 0))
	require.NoError(t, service.Set(ctx, "other:key", "c", 0))

	require.NoError(t, service.DeletePattern(ctx, KeyPrefix+"*"))

	_, err := service.Get(ctx, KeyPrefix+"get-/users?")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = service.Get(ctx, KeyPrefix+"get-/events?limit=5")
	assert.ErrorIs(t, err, ErrCacheMiss)

	value, err := service.Get(ctx, "other:key")
	require.NoError(t, err)
	assert.Equal(t, "c", value)
}

func TestMemoryCacheMutexIsOptional(t *testing.T) {
	service := NewMemoryCacheService()
	assert.Nil(t, service.NewMutex(CatalogLockKey))
}
