package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClockedCache(start time.Time) (*MemoryCacheService, *time.Time) {
	current := start
	svc := NewMemoryCacheServiceWithClock(func() time.Time { return current })
	return svc, &current
}

func TestMemoryCacheSetGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newClockedCache(time.Unix(1000, 0))

	require.NoError(t, svc.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var got map[string]int
	require.NoError(t, svc.Get(ctx, "k", &got))
	assert.Equal(t, 1, got["a"])
}

func TestMemoryCacheTTLExpiry(t *testing.T) {
	ctx := context.Background()
	svc, clock := newClockedCache(time.Unix(1000, 0))

	require.NoError(t, svc.Set(ctx, "k", "v", time.Minute))

	var got string
	require.NoError(t, svc.Get(ctx, "k", &got))
	assert.Equal(t, "v", got)

	*clock = clock.Add(time.Minute + time.Second)
	err := svc.Get(ctx, "k", &got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrKeyNotFound))

	// Expired entries are evicted on read.
	exists, err := svc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCacheDeletePattern(t *testing.T) {
	ctx := context.Background()
	svc, _ := newClockedCache(time.Unix(1000, 0))

	require.NoError(t, svc.Set(ctx, "v1:products:new:12:2:0", "a", 0))
	require.NoError(t, svc.Set(ctx, "v1:products:product:rec-1", "b", 0))
	require.NoError(t, svc.Set(ctx, "v1:products:featured:8", "c", 0))

	require.NoError(t, svc.DeletePattern(ctx, "*rec-1*"))
	require.NoError(t, svc.DeletePattern(ctx, "v1:products:new:*"))

	var got string
	assert.ErrorIs(t, svc.Get(ctx, "v1:products:product:rec-1", &got), ErrKeyNotFound)
	assert.ErrorIs(t, svc.Get(ctx, "v1:products:new:12:2:0", &got), ErrKeyNotFound)
	assert.NoError(t, svc.Get(ctx, "v1:products:featured:8", &got))
}

func TestMemoryCacheFlushAll(t *testing.T) {
	ctx := context.Background()
	svc, _ := newClockedCache(time.Unix(1000, 0))

	require.NoError(t, svc.Set(ctx, "a", 1, 0))
	require.NoError(t, svc.Set(ctx, "b", 2, 0))
	require.NoError(t, svc.FlushAll(ctx))

	var got int
	assert.ErrorIs(t, svc.Get(ctx, "a", &got), ErrKeyNotFound)
	assert.ErrorIs(t, svc.Get(ctx, "b", &got), ErrKeyNotFound)
}

func TestMatchPattern(t *testing.T) {
	assert.True(t, matchPattern("v1:products:new:12", "v1:products:new:*"))
	assert.True(t, matchPattern("v1:products:product:rec-1", "*rec-1*"))
	assert.True(t, matchPattern("exact", "exact"))
	assert.False(t, matchPattern("v1:products:featured:8", "v1:products:new:*"))
	assert.False(t, matchPattern("prefix-mismatch", "other*"))
	assert.False(t, matchPattern("key", "*zzz*"))
}
