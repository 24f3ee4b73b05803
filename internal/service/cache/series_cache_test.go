package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/psm5556/Crisis-Alert/internal/domain/models"
	pcache "github.com/psm5556/Crisis-Alert/pkg/cache"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type countingFetcher struct {
	mu    sync.Mutex
	calls map[string]int
	fail  error
}

func (f *countingFetcher) Fetch(_ context.Context, id string, _ time.Time) (models.Series, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[id]++
	if f.fail != nil {
		return models.Series{}, f.fail
	}
	v := 4.0
	if id == "GS2" {
		v = 4.5
	}
	return models.NewSeries(id, []models.Point{{Date: start, Value: v}, {Date: start.AddDate(0, 0, 1), Value: v + 0.1}}), nil
}

func (f *countingFetcher) count(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[id]
}

type countingResolver struct{ calls int }

func (r *countingResolver) Resolve(_ context.Context, _ time.Time) models.Resolution {
	r.calls++
	return models.Resolution{
		Series:   models.NewSeries("pmi", []models.Point{{Date: start, Value: 48.5}}),
		Strategy: models.StrategyBackup,
		Failures: []models.StrategyFailure{{Strategy: models.StrategyPrimary, Reason: "down"}},
	}
}

func newTestCache(t *testing.T, f *countingFetcher, r *countingResolver) (*SeriesCache, *clock) {
	t.Helper()
	clk := &clock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := pcache.NewMemoryCache(pcache.WithMemoryClock(clk.Now))
	t.Cleanup(func() { _ = store.Close() })
	return NewSeriesCache(store, f, r, DefaultTTLs(), nil, nil), clk
}

func TestSeriesCache_FetchHitsWithinTTL(t *testing.T) {
	f := &countingFetcher{}
	c, clk := newTestCache(t, f, &countingResolver{})
	ctx := context.Background()

	first, err := c.Fetch(ctx, "SOFR", start)
	require.NoError(t, err)
	second, err := c.Fetch(ctx, "SOFR", start)
	require.NoError(t, err)
	assert.Equal(t, first.Values(), second.Values())
	assert.Equal(t, 1, f.count("SOFR"))

	clk.Advance(time.Hour + time.Second)
	_, err = c.Fetch(ctx, "SOFR", start)
	require.NoError(t, err)
	assert.Equal(t, 2, f.count("SOFR"))
}

func TestSeriesCache_ErrorsAreNotCached(t *testing.T) {
	f := &countingFetcher{fail: models.NewFetchError(models.FetchUnavailable, "SOFR", nil)}
	c, _ := newTestCache(t, f, &countingResolver{})
	ctx := context.Background()

	_, err := c.Fetch(ctx, "SOFR", start)
	assert.True(t, errors.Is(err, models.ErrUnavailable))
	_, err = c.Fetch(ctx, "SOFR", start)
	assert.Error(t, err)
	assert.Equal(t, 2, f.count("SOFR"))
}

func TestSeriesCache_Spread(t *testing.T) {
	f := &countingFetcher{}
	c, _ := newTestCache(t, f, &countingResolver{})
	ctx := context.Background()

	s, err := c.FetchSpread(ctx, "GS10", "GS2", start)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	assert.InDelta(t, -0.5, s.Values()[0], 1e-9)

	_, err = c.FetchSpread(ctx, "GS10", "GS2", start)
	require.NoError(t, err)
	assert.Equal(t, 1, f.count("GS10"))
	assert.Equal(t, 1, f.count("GS2"))
}

func TestSeriesCache_ActivityUsesShorterTTL(t *testing.T) {
	r := &countingResolver{}
	c, clk := newTestCache(t, &countingFetcher{}, r)
	ctx := context.Background()

	res := c.Resolve(ctx, start)
	assert.Equal(t, models.StrategyBackup, res.Strategy)
	cached := c.Resolve(ctx, start)
	assert.Equal(t, 1, r.calls)
	assert.Equal(t, res.Failures, cached.Failures)
	assert.Equal(t, res.Series.Values(), cached.Series.Values())

	clk.Advance(16 * time.Minute)
	c.Resolve(ctx, start)
	assert.Equal(t, 2, r.calls)
}

func TestSeriesCache_Invalidate(t *testing.T) {
	f := &countingFetcher{}
	r := &countingResolver{}
	c, _ := newTestCache(t, f, r)
	ctx := context.Background()

	_, _ = c.Fetch(ctx, "SOFR", start)
	c.Resolve(ctx, start)
	require.NoError(t, c.Invalidate(ctx))

	_, _ = c.Fetch(ctx, "SOFR", start)
	c.Resolve(ctx, start)
	assert.Equal(t, 2, f.count("SOFR"))
	assert.Equal(t, 2, r.calls)
}
