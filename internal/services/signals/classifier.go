package signals

import (
	"github.com/psm5556/Crisis-Alert/internal/domain/models"
)

// Classifier applies Thresholds to series. It holds no mutable state.
type Classifier struct {
	th Thresholds
}

func NewClassifier(th Thresholds) *Classifier {
	return &Classifier{th: th}
}

// Thresholds returns the cut-offs in use.
func (c *Classifier) Thresholds() Thresholds { return c.th }

// Rate classifies the short-term funding rate. The trailing window includes
// the latest observation. Returns nil below the minimum length.
func (c *Classifier) Rate(s models.Series) *models.RateSignal {
	th := c.th.Rate
	if s.Len() < th.MinPoints {
		return nil
	}
	latest, _ := s.At(-1)
	prev, _ := s.At(-2)
	mean := s.Tail(th.Window).Mean()

	sig := &models.RateSignal{
		AsOf:        latest.Date,
		Latest:      latest.Value,
		Previous:    prev.Value,
		TrailMean:   mean,
		DailyChange: latest.Value - prev.Value,
		Deviation:   latest.Value - mean,
	}

	switch {
	case sig.DailyChange >= th.SevereChange:
		sig.State = models.StateSevereCrisis
	case sig.DailyChange >= th.EarlyChange:
		sig.State = models.StateEarlyWarning
	case sig.Deviation >= th.Deviation:
		sig.State = models.StateCaution
	default:
		sig.State = models.StateNormal
	}
	sig.Label = sig.State.Label()
	return sig
}

// Activity classifies the manufacturing activity index.
func (c *Classifier) Activity(s models.Series) *models.ActivitySignal {
	th := c.th.Activity
	if s.Len() < th.MinPoints {
		return nil
	}
	latest, _ := s.Latest()
	trailing := s.Tail(th.Window).Values()

	sig := &models.ActivitySignal{
		AsOf:      latest.Date,
		Latest:    latest.Value,
		Trailing:  trailing,
		TrailMean: models.Mean(trailing),
	}

	switch {
	case latest.Value < th.Crisis:
		sig.State = models.StateWarning
		if allBelow(trailing, th.Crisis) {
			sig.State = models.StateCrisisRealized
		}
	case latest.Value < th.Caution:
		sig.State = models.StateCaution
	default:
		sig.State = models.StateNormal
	}
	sig.Label = sig.State.Label()
	return sig
}

// Spread classifies the long-minus-short yield spread. The prior value is the
// Lookback-th observation counted back from the latest (the latest is 1st).
// Inversion wins over renormalization.
func (c *Classifier) Spread(s models.Series) *models.SpreadSignal {
	th := c.th.Spread
	if s.Len() < th.MinPoints || s.Len() < th.Lookback {
		return nil
	}
	latest, _ := s.Latest()
	prior, _ := s.At(-th.Lookback)

	sig := &models.SpreadSignal{
		AsOf:       latest.Date,
		Latest:     latest.Value,
		Prior:      prior.Value,
		Change:     latest.Value - prior.Value,
		IsInverted: latest.Value < th.Inverted,
	}

	switch {
	case sig.IsInverted:
		sig.State = models.StateCurveInverted
	case sig.Change > th.Renormal && prior.Value < th.Inverted:
		sig.State = models.StateRecessionImminent
		sig.RapidNormalization = true
	default:
		sig.State = models.StateNormal
	}
	sig.Label = sig.State.Label()
	return sig
}

func allBelow(xs []float64, limit float64) bool {
	for _, x := range xs {
		if x >= limit {
			return false
		}
	}
	return len(xs) > 0
}
