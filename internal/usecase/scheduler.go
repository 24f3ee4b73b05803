package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/psm5556/Crisis-Alert/internal/domain/models"
	"github.com/psm5556/Crisis-Alert/pkg/logger"
)

// Refresher re-evaluates the dashboard from upstream.
type Refresher interface {
	Refresh(ctx context.Context) (*models.Dashboard, error)
}

// RefreshScheduler keeps the series cache warm on a cron schedule.
type RefreshScheduler struct {
	target Refresher
	cron   *cron.Cron
	log    *logger.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	last   *models.Dashboard
	warm   sync.WaitGroup
}

func NewRefreshScheduler(target Refresher, l *logger.Logger) *RefreshScheduler {
	if l == nil {
		l = logger.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &RefreshScheduler{
		target: target,
		// overlapping runs would only duplicate upstream calls
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:    l,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start registers schedule (standard cron expression or @every descriptor) and
// starts the scheduler.
func (s *RefreshScheduler) Start(schedule string) error {
	if schedule == "" {
		schedule = "@every 15m"
	}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return fmt.Errorf("schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	s.log.Info("refresh scheduler started", logger.String("schedule", schedule))
	return nil
}

// Stop cancels in-flight refreshes, scheduled or warm-up, and waits for
// them to return.
func (s *RefreshScheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.warm.Wait()
	s.log.Info("refresh scheduler stopped")
}

// RunNow refreshes synchronously.
func (s *RefreshScheduler) RunNow() {
	s.run()
}

// Warm refreshes once in the background. Stop waits for it.
func (s *RefreshScheduler) Warm() {
	s.warm.Add(1)
	go func() {
		defer s.warm.Done()
		s.run()
	}()
}

// Last returns the most recent scheduled snapshot, nil before the first run.
func (s *RefreshScheduler) Last() *models.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *RefreshScheduler) run() {
	began := time.Now()
	d, err := s.target.Refresh(s.ctx)
	if err != nil {
		s.log.Error("scheduled refresh failed", logger.Error(err))
		return
	}
	s.mu.Lock()
	s.last = d
	s.mu.Unlock()
	s.log.Info("scheduled refresh",
		logger.String("tier", string(d.Verdict.Tier)),
		logger.Duration("took", time.Since(began)),
	)
}
