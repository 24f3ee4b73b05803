// Package cache decorates series acquisition with a TTL cache so repeated
// dashboard evaluations do not hit upstream sources.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/psm5556/Crisis-Alert/internal/domain/models"
	drepo "github.com/psm5556/Crisis-Alert/internal/domain/repository"
	"github.com/psm5556/Crisis-Alert/internal/service/fred"
	pcache "github.com/psm5556/Crisis-Alert/pkg/cache"
	"github.com/psm5556/Crisis-Alert/pkg/logger"
	"github.com/psm5556/Crisis-Alert/pkg/util"
)

// Key prefix shared by every entry this package writes.
const Prefix = "series"

// TTLs holds the per-indicator freshness windows.
type TTLs struct {
	Rate     time.Duration
	Activity time.Duration
	Spread   time.Duration
}

// DefaultTTLs: the activity index refreshes fastest.
func DefaultTTLs() TTLs {
	return TTLs{Rate: time.Hour, Activity: 15 * time.Minute, Spread: time.Hour}
}

// SeriesCache wraps a fetcher and a resolver. Only successful results are
// stored; fetch errors are never cached.
type SeriesCache struct {
	store    pcache.Service
	fetcher  drepo.SeriesFetcher
	resolver drepo.ActivityResolver
	ttl      TTLs
	log      *logger.Logger
	metrics  drepo.Metrics
}

func NewSeriesCache(store pcache.Service, f drepo.SeriesFetcher, r drepo.ActivityResolver, ttl TTLs, l *logger.Logger, m drepo.Metrics) *SeriesCache {
	if l == nil {
		l = logger.Nop()
	}
	if m == nil {
		m = drepo.NopMetrics{}
	}
	return &SeriesCache{store: store, fetcher: f, resolver: r, ttl: ttl, log: l, metrics: m}
}

// Fetch serves seriesID from cache or the wrapped fetcher using the rate TTL.
func (c *SeriesCache) Fetch(ctx context.Context, seriesID string, start time.Time) (models.Series, error) {
	return c.fetch(ctx, seriesID, start, c.ttl.Rate)
}

// FetchSpread caches the derived spread under the spread TTL. The legs are
// fetched uncached so the spread is never built from mixed ages.
func (c *SeriesCache) FetchSpread(ctx context.Context, long, short string, start time.Time) (models.Series, error) {
	key := pcache.GenerateKeyWithParams(Prefix, "spread", long, short, start.Format(util.DateLayout))
	var s models.Series
	if c.get(ctx, "spread", key, &s) {
		return s, nil
	}
	s, err := fred.Spread(ctx, c.fetcher, long, short, start)
	if err != nil {
		return models.Series{}, err
	}
	c.set(ctx, key, s, c.ttl.Spread)
	return s, nil
}

// Resolve caches the activity resolution under the activity TTL.
func (c *SeriesCache) Resolve(ctx context.Context, start time.Time) models.Resolution {
	key := pcache.GenerateKeyWithParams(Prefix, "activity", start.Format(util.DateLayout))
	var res models.Resolution
	if c.get(ctx, "activity", key, &res) {
		return res
	}
	res = c.resolver.Resolve(ctx, start)
	c.set(ctx, key, res, c.ttl.Activity)
	return res
}

// Invalidate drops every cached series.
func (c *SeriesCache) Invalidate(ctx context.Context) error {
	if err := c.store.DeleteByPattern(ctx, pcache.BuildPattern(Prefix)); err != nil {
		return err
	}
	c.log.Info("series cache invalidated")
	return nil
}

func (c *SeriesCache) fetch(ctx context.Context, seriesID string, start time.Time, ttl time.Duration) (models.Series, error) {
	key := pcache.GenerateKeyWithParams(Prefix, "fetch", seriesID, start.Format(util.DateLayout))
	var s models.Series
	if c.get(ctx, "fetch", key, &s) {
		return s, nil
	}
	s, err := c.fetcher.Fetch(ctx, seriesID, start)
	if err != nil {
		return models.Series{}, err
	}
	c.set(ctx, key, s, ttl)
	return s, nil
}

func (c *SeriesCache) get(ctx context.Context, kind, key string, dest interface{}) bool {
	err := c.store.Get(ctx, key, dest)
	switch {
	case err == nil:
		c.metrics.RecordCache(kind, "hit")
		return true
	case errors.Is(err, pcache.ErrCacheMiss):
		c.metrics.RecordCache(kind, "miss")
	default:
		// a broken cache degrades to direct fetches
		c.metrics.RecordCache(kind, "error")
		c.log.Warn("cache get failed", logger.String("key", key), logger.Error(err))
	}
	return false
}

func (c *SeriesCache) set(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if err := c.store.Set(ctx, key, v, ttl); err != nil {
		c.log.Warn("cache set failed", logger.String("key", key), logger.Error(err))
	}
}

var (
	_ drepo.SeriesFetcher    = (*SeriesCache)(nil)
	_ drepo.SpreadFetcher    = (*SeriesCache)(nil)
	_ drepo.ActivityResolver = (*SeriesCache)(nil)
)
