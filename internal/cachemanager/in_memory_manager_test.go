package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)

	_, found := cache.Get(ctx, "missing")
	assert.False(t, found)

	cache.Set(ctx, "a", 1, time.Minute)
	v, found := cache.Get(ctx, "a")
	require.True(t, found)
	assert.Equal(t, 1, v)
}

func TestInMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "short", "lived", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, found := cache.Get(ctx, "short")
	assert.False(t, found)
}

func TestInMemoryGetMultiple(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "a", 1, time.Minute)
	cache.Set(ctx, "b", 2, time.Minute)

	values, found := cache.GetMultiple(ctx, []string{"a", "b", "c"})
	require.True(t, found)
	assert.Len(t, values, 2)
	assert.Equal(t, 1, values["a"])
	assert.Equal(t, 2, values["b"])

	_, found = cache.GetMultiple(ctx, []string{"x", "y"})
	assert.False(t, found)

	_, found = cache.GetMultiple(ctx, nil)
	assert.False(t, found)
}

func TestInMemoryDeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "a", 1, time.Minute)
	cache.Set(ctx, "b", 2, time.Minute)

	require.NoError(t, cache.Delete(ctx, "a"))
	_, found := cache.Get(ctx, "a")
	assert.False(t, found)

	require.NoError(t, cache.Flush(ctx))
	_, found = cache.Get(ctx, "b")
	assert.False(t, found)
}

func TestInMemoryKeys(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "a", 1, time.Minute)
	cache.Set(ctx, "b", 2, time.Minute)

	keys := cache.Keys(ctx)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)
}

func TestInMemoryGetWithRefresh(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "a", 1, 50*time.Millisecond)

	// Refresh extends the TTL past the original expiry.
	_, found := cache.GetWithRefresh(ctx, "a", time.Minute)
	require.True(t, found)

	time.Sleep(80 * time.Millisecond)
	_, found = cache.Get(ctx, "a")
	assert.True(t, found)
}
