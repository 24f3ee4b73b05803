package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/psm5556/Crisis-Alert/internal/domain/models"
)

type countingRefresher struct {
	calls int32
	err   error
}

func (r *countingRefresher) Refresh(ctx context.Context) (*models.Dashboard, error) {
	atomic.AddInt32(&r.calls, 1)
	if r.err != nil {
		return nil, r.err
	}
	return &models.Dashboard{ID: "x", Verdict: models.Verdict{Tier: models.TierNormal}}, nil
}

func TestRefreshScheduler_RunNowAndStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := &countingRefresher{}
	s := NewRefreshScheduler(r, nil)
	require.NoError(t, s.Start("@every 1h"))

	assert.Nil(t, s.Last())
	s.RunNow()
	assert.Equal(t, int32(1), atomic.LoadInt32(&r.calls))
	require.NotNil(t, s.Last())
	assert.Equal(t, "x", s.Last().ID)

	s.Stop()
}

func TestRefreshScheduler_FailedRunKeepsLast(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := &countingRefresher{err: errors.New("upstream down")}
	s := NewRefreshScheduler(r, nil)
	require.NoError(t, s.Start(""))
	s.RunNow()
	assert.Nil(t, s.Last())
	s.Stop()
}

type blockingRefresher struct {
	started  chan struct{}
	finished atomic.Bool
}

func (r *blockingRefresher) Refresh(ctx context.Context) (*models.Dashboard, error) {
	close(r.started)
	<-ctx.Done()
	r.finished.Store(true)
	return nil, ctx.Err()
}

func TestRefreshScheduler_StopWaitsForWarm(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := &blockingRefresher{started: make(chan struct{})}
	s := NewRefreshScheduler(r, nil)
	require.NoError(t, s.Start("@every 1h"))

	s.Warm()
	<-r.started
	s.Stop()

	assert.True(t, r.finished.Load())
	assert.Nil(t, s.Last())
}

func TestRefreshScheduler_InvalidSchedule(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewRefreshScheduler(&countingRefresher{}, nil)
	err := s.Start("not a schedule")
	assert.Error(t, err)
	s.Stop()
}
