package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/psm5556/Crisis-Alert/internal/domain/models"
	drepo "github.com/psm5556/Crisis-Alert/internal/domain/repository"
)

// Strategy is one way of producing the activity index on a month grid.
// A returned series must hold exactly one point per grid month.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, grid []time.Time) (Result, error)
}

// Result is a strategy's grid series. SourceAsOf is the date of the latest
// real observation behind it, zero when the source carries no date.
type Result struct {
	Series     models.Series
	SourceAsOf time.Time
}

// PrimaryStrategy reads a structured index series through a SeriesFetcher.
type PrimaryStrategy struct {
	fetcher  drepo.SeriesFetcher
	seriesID string
	filler   []float64
	min, max float64
}

// NewPrimaryStrategy accepts the series only when its latest value is in
// [0,100]. Grid months older than the fetched history are taken from filler.
func NewPrimaryStrategy(f drepo.SeriesFetcher, seriesID string, filler []float64) *PrimaryStrategy {
	if len(filler) == 0 {
		filler = DefaultBackupSeries
	}
	return &PrimaryStrategy{fetcher: f, seriesID: seriesID, filler: filler, min: 0, max: 100}
}

func (s *PrimaryStrategy) Name() string { return models.StrategyPrimary }

func (s *PrimaryStrategy) Attempt(ctx context.Context, grid []time.Time) (Result, error) {
	if len(grid) == 0 {
		return Result{}, errors.New("empty grid")
	}
	src, err := s.fetcher.Fetch(ctx, s.seriesID, grid[0])
	if err != nil {
		return Result{}, err
	}
	latest, ok := src.Latest()
	if !ok {
		return Result{}, models.NewFetchError(models.FetchEmpty, s.seriesID, nil)
	}
	if latest.Value < s.min || latest.Value > s.max {
		return Result{}, fmt.Errorf("implausible value %.2f outside [%g,%g]", latest.Value, s.min, s.max)
	}

	// tail-align: the latest observation lands on the current month; its
	// real date is kept as SourceAsOf since monthly releases lag
	filler := tile(s.seriesID, s.filler, grid)
	vals := src.Values()
	k, n := len(vals), len(grid)
	pts := make([]models.Point, n)
	for i, d := range grid {
		back := n - 1 - i
		v := filler.Points[i].Value
		if back < k {
			v = vals[k-1-back]
		}
		pts[i] = models.Point{Date: d, Value: v}
	}
	return Result{Series: models.NewSeries(s.seriesID, pts), SourceAsOf: latest.Date}, nil
}

// BackupStrategy replays a static dataset. It never fails on a non-empty grid.
type BackupStrategy struct {
	data []float64
}

func NewBackupStrategy(data []float64) *BackupStrategy {
	if len(data) == 0 {
		data = DefaultBackupSeries
	}
	return &BackupStrategy{data: data}
}

func (s *BackupStrategy) Name() string { return models.StrategyBackup }

func (s *BackupStrategy) Attempt(_ context.Context, grid []time.Time) (Result, error) {
	if len(grid) == 0 {
		return Result{}, errors.New("empty grid")
	}
	return Result{Series: tile("activity-backup", s.data, grid)}, nil
}

var (
	_ Strategy = (*PrimaryStrategy)(nil)
	_ Strategy = (*BackupStrategy)(nil)
	_ Strategy = (*ScrapeStrategy)(nil)
)
