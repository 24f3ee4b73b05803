package repository

import (
	"context"
	"time"

	"github.com/psm5556/Crisis-Alert/internal/domain/models"
)

// SeriesFetcher retrieves one upstream time series. Errors are *models.FetchError.
type SeriesFetcher interface {
	Fetch(ctx context.Context, seriesID string, start time.Time) (models.Series, error)
}

// SpreadFetcher retrieves the date-aligned difference of two series.
type SpreadFetcher interface {
	FetchSpread(ctx context.Context, long, short string, start time.Time) (models.Series, error)
}

// ActivityResolver produces the activity index series. It never fails.
type ActivityResolver interface {
	Resolve(ctx context.Context, start time.Time) models.Resolution
}

type Metrics interface {
	RecordFetch(series, outcome string)
	RecordStrategy(strategy, outcome string)
	RecordCache(kind, result string)
	RecordSignal(indicator, state string, all []string)
	RecordVerdict(tier string, all []string, danger, warning int)
	RecordLatency(op string, seconds float64)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordFetch(string, string)               {}
func (NopMetrics) RecordStrategy(string, string)            {}
func (NopMetrics) RecordCache(string, string)               {}
func (NopMetrics) RecordSignal(string, string, []string)    {}
func (NopMetrics) RecordVerdict(string, []string, int, int) {}
func (NopMetrics) RecordLatency(string, float64)            {}
