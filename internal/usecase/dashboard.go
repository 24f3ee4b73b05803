package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/psm5556/Crisis-Alert/internal/domain/models"
	domrepo "github.com/psm5556/Crisis-Alert/internal/domain/repository"
	"github.com/psm5556/Crisis-Alert/pkg/logger"
)

// Invalidator drops cached series.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// DashboardUseCase runs one evaluation cycle: the three indicators are
// acquired and classified concurrently, then combined into a verdict.
type DashboardUseCase struct {
	agg     *SignalAggregator
	cache   Invalidator
	metrics domrepo.Metrics
	log     *logger.Logger
	timeout time.Duration
	now     func() time.Time
}

func NewDashboardUseCase(agg *SignalAggregator, cache Invalidator, m domrepo.Metrics, l *logger.Logger) *DashboardUseCase {
	if m == nil {
		m = domrepo.NopMetrics{}
	}
	if l == nil {
		l = logger.Nop()
	}
	return &DashboardUseCase{agg: agg, cache: cache, metrics: m, log: l, timeout: 45 * time.Second, now: time.Now}
}

// Evaluate builds a full snapshot. It only fails when ctx is done before the
// indicators finish; per-indicator failures are reported inside the snapshot.
func (uc *DashboardUseCase) Evaluate(ctx context.Context) (*models.Dashboard, error) {
	began := time.Now()
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	d := &models.Dashboard{ID: uuid.NewString(), EvaluatedAt: uc.now().UTC()}

	// each goroutine owns one field of d
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d.Rate = uc.agg.Rate(gctx)
		return nil
	})
	g.Go(func() error {
		d.Activity = uc.agg.Activity(gctx)
		return nil
	})
	g.Go(func() error {
		d.Spread = uc.agg.Spread(gctx)
		return nil
	})
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluate dashboard: %w", err)
	}

	d.Verdict = uc.agg.Classifier().Combine(d.Rate.Signal, d.Activity.Signal, d.Spread.Signal)
	uc.record(d)

	uc.metrics.RecordLatency("evaluate", time.Since(began).Seconds())
	uc.log.Info("dashboard evaluated",
		logger.String("id", d.ID),
		logger.String("tier", string(d.Verdict.Tier)),
		logger.Int("danger", d.Verdict.Danger),
		logger.Int("warning", d.Verdict.Warning),
		logger.Int("available", d.Verdict.Available),
		logger.Duration("took", time.Since(began)),
	)
	return d, nil
}

// Indicator evaluates a single indicator.
func (uc *DashboardUseCase) Indicator(ctx context.Context, ind models.Indicator) (*models.IndicatorReport, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	rep := uc.agg.Report(ctx, ind)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", ind, err)
	}
	uc.recordSignal(rep)
	return rep, nil
}

// Refresh drops cached series and evaluates from upstream.
func (uc *DashboardUseCase) Refresh(ctx context.Context) (*models.Dashboard, error) {
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			return nil, fmt.Errorf("invalidate cache: %w", err)
		}
	}
	return uc.Evaluate(ctx)
}

func (uc *DashboardUseCase) record(d *models.Dashboard) {
	for _, ind := range models.Indicators {
		rep := d.Report(ind)
		uc.recordSignal(rep)
		if rep.Error != "" {
			uc.log.Warn("indicator unavailable",
				logger.String("indicator", string(ind)),
				logger.String("error", rep.Error),
			)
		}
	}
	uc.metrics.RecordVerdict(string(d.Verdict.Tier), models.TierStrings(), d.Verdict.Danger, d.Verdict.Warning)
}

func (uc *DashboardUseCase) recordSignal(rep *models.IndicatorReport) {
	state := ""
	if rep.Signal != nil {
		state = string(rep.Signal.SignalState())
	}
	uc.metrics.RecordSignal(string(rep.Indicator), state, models.StateStrings(models.StatesOf(rep.Indicator)))
}
