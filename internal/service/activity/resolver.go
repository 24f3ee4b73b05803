package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/psm5556/Crisis-Alert/internal/domain/models"
	drepo "github.com/psm5556/Crisis-Alert/internal/domain/repository"
	"github.com/psm5556/Crisis-Alert/pkg/logger"
	"github.com/psm5556/Crisis-Alert/pkg/util"
)

// Option configures Resolver.
type Option func(*Resolver)

// Resolver tries strategies in order and returns the first success. A static
// backup always terminates the chain, so Resolve never fails.
type Resolver struct {
	strategies []Strategy
	terminal   Strategy
	now        func() time.Time
	log        *logger.Logger
	metrics    drepo.Metrics
}

func NewResolver(strategies []Strategy, opts ...Option) *Resolver {
	r := &Resolver{
		strategies: strategies,
		terminal:   NewBackupStrategy(DefaultBackupSeries),
		now:        time.Now,
		log:        logger.Nop(),
		metrics:    drepo.NopMetrics{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

func WithLogger(l *logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

func WithMetrics(m drepo.Metrics) Option {
	return func(r *Resolver) {
		if m != nil {
			r.metrics = m
		}
	}
}

// Grid returns the first-of-month timestamps from the month of start through
// the current month. A start in the future yields just the current month.
func (r *Resolver) Grid(start time.Time) []time.Time {
	now := util.StartOfMonth(r.now())
	grid := util.MonthGrid(util.StartOfMonth(start), now)
	if len(grid) == 0 {
		grid = []time.Time{now}
	}
	return grid
}

// Resolve runs the chain for the grid starting at start.
func (r *Resolver) Resolve(ctx context.Context, start time.Time) models.Resolution {
	grid := r.Grid(start)
	began := time.Now()
	defer func() {
		r.metrics.RecordLatency("activity_resolve", time.Since(began).Seconds())
	}()

	var failures []models.StrategyFailure
	for _, s := range r.strategies {
		out, err := s.Attempt(ctx, grid)
		if err == nil && out.Series.Len() != len(grid) {
			err = errShape{got: out.Series.Len(), want: len(grid)}
		}
		if err != nil {
			failures = append(failures, models.StrategyFailure{Strategy: s.Name(), Reason: err.Error()})
			r.metrics.RecordStrategy(s.Name(), "failed")
			r.log.Warn("activity strategy failed",
				logger.String("strategy", s.Name()),
				logger.Error(err),
			)
			continue
		}
		r.metrics.RecordStrategy(s.Name(), "ok")
		return models.Resolution{
			Series:     out.Series,
			Strategy:   s.Name(),
			SourceAsOf: out.SourceAsOf,
			Failures:   failures,
		}
	}

	// every configured strategy failed; the built-in dataset cannot
	out, _ := r.terminal.Attempt(ctx, grid)
	r.metrics.RecordStrategy(r.terminal.Name(), "ok")
	failed := make([]string, len(failures))
	for i, f := range failures {
		failed[i] = f.Strategy
	}
	r.log.Warn("activity index served from built-in backup",
		logger.Strings("failed", failed),
	)
	return models.Resolution{Series: out.Series, Strategy: r.terminal.Name(), Failures: failures}
}

type errShape struct{ got, want int }

func (e errShape) Error() string {
	return fmt.Sprintf("series covers %d months, grid has %d", e.got, e.want)
}

var _ drepo.ActivityResolver = (*Resolver)(nil)
