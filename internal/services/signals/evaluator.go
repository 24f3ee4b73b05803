package signals

import "github.com/psm5556/Crisis-Alert/internal/domain/models"

// Evaluate folds the available classifier results into a composite verdict.
// Nil results count toward nothing; with none available the tier is unknown.
func (c *Classifier) Evaluate(rate *models.RateSignal, activity *models.ActivitySignal, spread *models.SpreadSignal) models.Verdict {
	var sigs []models.Signal
	// typed nil pointers must not become non-nil interface values
	if rate != nil {
		sigs = append(sigs, rate)
	}
	if activity != nil {
		sigs = append(sigs, activity)
	}
	if spread != nil {
		sigs = append(sigs, spread)
	}
	return c.Combine(sigs...)
}

// Combine is Evaluate over an arbitrary list of signals. Nil entries, typed
// or not, are skipped.
func (c *Classifier) Combine(sigs ...models.Signal) models.Verdict {
	th := c.th.Composite
	var v models.Verdict
	for _, s := range sigs {
		if s == nil || !s.Present() {
			continue
		}
		v.Available++
		switch s.Contribution() {
		case models.ContributionDanger:
			v.Danger++
		case models.ContributionWarning:
			v.Warning++
		}
	}

	switch {
	case v.Available == 0:
		v.Tier = models.TierUnknown
	case v.Danger >= th.CrisisDanger:
		v.Tier = models.TierCrisis
	case v.Danger >= th.WarningDanger || v.Warning >= th.WarningCount:
		v.Tier = models.TierWarning
	default:
		v.Tier = models.TierNormal
	}
	v.Headline = v.Tier.Headline()
	v.Guidance = v.Tier.Guidance()
	return v
}
