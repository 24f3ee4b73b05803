package usecase

import (
	"context"
	"time"

	"github.com/psm5556/Crisis-Alert/internal/domain/models"
	domrepo "github.com/psm5556/Crisis-Alert/internal/domain/repository"
	"github.com/psm5556/Crisis-Alert/internal/services/signals"
)

// SeriesIDs names the upstream series behind each indicator.
type SeriesIDs struct {
	Rate        string
	SpreadLong  string
	SpreadShort string
}

// SignalAggregator acquires and classifies one indicator at a time. Fetch
// failures become the report's Error and leave its Signal nil.
type SignalAggregator struct {
	fetcher    domrepo.SeriesFetcher
	spread     domrepo.SpreadFetcher
	resolver   domrepo.ActivityResolver
	classifier *signals.Classifier
	ids        SeriesIDs
	start      time.Time
}

func NewSignalAggregator(f domrepo.SeriesFetcher, sp domrepo.SpreadFetcher, r domrepo.ActivityResolver, c *signals.Classifier, ids SeriesIDs, start time.Time) *SignalAggregator {
	return &SignalAggregator{fetcher: f, spread: sp, resolver: r, classifier: c, ids: ids, start: start}
}

// Classifier exposes the thresholds in use to the composite step.
func (a *SignalAggregator) Classifier() *signals.Classifier { return a.classifier }

// Report dispatches on ind.
func (a *SignalAggregator) Report(ctx context.Context, ind models.Indicator) *models.IndicatorReport {
	switch ind {
	case models.IndicatorRate:
		return a.Rate(ctx)
	case models.IndicatorActivity:
		return a.Activity(ctx)
	case models.IndicatorSpread:
		return a.Spread(ctx)
	}
	return &models.IndicatorReport{Indicator: ind, Error: "unknown indicator"}
}

func (a *SignalAggregator) Rate(ctx context.Context) *models.IndicatorReport {
	rep := &models.IndicatorReport{Indicator: models.IndicatorRate, SeriesID: a.ids.Rate, Source: "fred"}
	s, err := a.fetcher.Fetch(ctx, a.ids.Rate, a.start)
	if err != nil {
		rep.Error = err.Error()
		return rep
	}
	rep.Series = s.Points
	if sig := a.classifier.Rate(s); sig != nil {
		rep.Signal = sig
	}
	return rep
}

func (a *SignalAggregator) Activity(ctx context.Context) *models.IndicatorReport {
	res := a.resolver.Resolve(ctx, a.start)
	rep := &models.IndicatorReport{
		Indicator: models.IndicatorActivity,
		SeriesID:  res.Series.ID,
		Source:    res.Strategy,
		Series:    res.Series.Points,
		Failures:  res.Failures,
	}
	if !res.SourceAsOf.IsZero() {
		asOf := res.SourceAsOf
		rep.SourceAsOf = &asOf
	}
	if sig := a.classifier.Activity(res.Series); sig != nil {
		// the grid relabels the reading onto the current month
		if rep.SourceAsOf != nil {
			sig.AsOf = *rep.SourceAsOf
		}
		rep.Signal = sig
	}
	return rep
}

func (a *SignalAggregator) Spread(ctx context.Context) *models.IndicatorReport {
	rep := &models.IndicatorReport{
		Indicator: models.IndicatorSpread,
		SeriesID:  a.ids.SpreadLong + "-" + a.ids.SpreadShort,
		Source:    "fred",
	}
	s, err := a.spread.FetchSpread(ctx, a.ids.SpreadLong, a.ids.SpreadShort, a.start)
	if err != nil {
		rep.Error = err.Error()
		return rep
	}
	rep.Series = s.Points
	if sig := a.classifier.Spread(s); sig != nil {
		rep.Signal = sig
	}
	return rep
}
