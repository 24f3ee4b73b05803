package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	defer goleak.VerifyNone(t)

	mc := NewMemoryCache()
	defer mc.Close()

	ctx := context.Background()
	in := []point{{"2025-01-01", 4.3}, {"2025-01-02", 4.32}}
	require.NoError(t, mc.Set(ctx, "series:SOFR", in, time.Hour))

	var out []point
	require.NoError(t, mc.Get(ctx, "series:SOFR", &out))
	assert.Equal(t, in, out)
}

func TestMemoryCacheExpiry(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &fakeClock{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	mc := NewMemoryCache(WithMemoryClock(clock.Now))
	defer mc.Close()

	ctx := context.Background()
	require.NoError(t, mc.Set(ctx, "k", 1, 15*time.Minute))

	clock.Advance(14 * time.Minute)
	var v int
	require.NoError(t, mc.Get(ctx, "k", &v))
	assert.Equal(t, 1, v)

	clock.Advance(2 * time.Minute)
	assert.ErrorIs(t, mc.Get(ctx, "k", &v), ErrCacheMiss)
	assert.Zero(t, mc.Len())
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &fakeClock{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	mc := NewMemoryCache(WithMemoryMaxSize(2), WithMemoryClock(clock.Now))
	defer mc.Close()

	ctx := context.Background()
	require.NoError(t, mc.Set(ctx, "a", 1, time.Hour))
	clock.Advance(time.Second)
	require.NoError(t, mc.Set(ctx, "b", 2, time.Hour))
	clock.Advance(time.Second)

	var v int
	require.NoError(t, mc.Get(ctx, "a", &v)) // a is now fresher than b
	clock.Advance(time.Second)
	require.NoError(t, mc.Set(ctx, "c", 3, time.Hour))

	assert.ErrorIs(t, mc.Get(ctx, "b", &v), ErrCacheMiss)
	assert.NoError(t, mc.Get(ctx, "a", &v))
	assert.NoError(t, mc.Get(ctx, "c", &v))
}

func TestMemoryCacheDeleteByPattern(t *testing.T) {
	defer goleak.VerifyNone(t)

	mc := NewMemoryCache()
	defer mc.Close()

	ctx := context.Background()
	require.NoError(t, mc.Set(ctx, "series:SOFR:2020-01-01", 1, time.Hour))
	require.NoError(t, mc.Set(ctx, "series:GS10:2020-01-01", 2, time.Hour))
	require.NoError(t, mc.Set(ctx, "activity:2020-01", 3, time.Hour))

	require.NoError(t, mc.DeleteByPattern(ctx, BuildPattern("series")))

	var v int
	assert.ErrorIs(t, mc.Get(ctx, "series:SOFR:2020-01-01", &v), ErrCacheMiss)
	assert.ErrorIs(t, mc.Get(ctx, "series:GS10:2020-01-01", &v), ErrCacheMiss)
	assert.NoError(t, mc.Get(ctx, "activity:2020-01", &v))
}

func TestMemoryCacheCloseIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	mc := NewMemoryCache(WithMemoryCleanup(time.Millisecond))
	require.NoError(t, mc.Close())
	require.NoError(t, mc.Close())
}

func TestLayeredCacheReadsThrough(t *testing.T) {
	defer goleak.VerifyNone(t)

	remote := NewMemoryCache()
	lc := NewLayeredCache(remote)
	defer lc.Close()

	ctx := context.Background()
	require.NoError(t, remote.Set(ctx, "k", point{"2025-01-01", 48.7}, time.Hour))

	var got point
	require.NoError(t, lc.Get(ctx, "k", &got))
	assert.Equal(t, 48.7, got.Value)

	// served from L1 after the remote copy is gone
	require.NoError(t, remote.Delete(ctx, "k"))
	got = point{}
	require.NoError(t, lc.Get(ctx, "k", &got))
	assert.Equal(t, 48.7, got.Value)

	require.NoError(t, lc.Delete(ctx, "k"))
	assert.ErrorIs(t, lc.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestGenerateKeyWithParams(t *testing.T) {
	assert.Equal(t, "series:SOFR:2020-01-01", GenerateKeyWithParams("series", "SOFR", "2020-01-01"))
	assert.Equal(t, "series:*", BuildPattern("series"))
}

func TestRedisConfigDefaults(t *testing.T) {
	cfg := RedisConfig{Host: "redis", Password: "x"}.withDefaults()
	assert.Equal(t, "redis:6379", cfg.Addr())
	assert.Equal(t, "x", cfg.Password)
	assert.Equal(t, "crisis", cfg.Prefix)
	assert.Equal(t, 10, cfg.PoolSize)
}
