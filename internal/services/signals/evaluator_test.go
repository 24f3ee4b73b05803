package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/psm5556/Crisis-Alert/internal/domain/models"
)

func rate(s models.State) *models.RateSignal         { return &models.RateSignal{State: s} }
func activity(s models.State) *models.ActivitySignal { return &models.ActivitySignal{State: s} }
func spread(s models.State) *models.SpreadSignal     { return &models.SpreadSignal{State: s} }

func TestEvaluate_CountingRules(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	tests := []struct {
		name    string
		r       *models.RateSignal
		a       *models.ActivitySignal
		s       *models.SpreadSignal
		danger  int
		warning int
		tier    models.Tier
	}{
		{"danger 2 warning 0", rate(models.StateSevereCrisis), activity(models.StateCrisisRealized), spread(models.StateNormal), 2, 0, models.TierCrisis},
		{"danger 0 warning 2", rate(models.StateCaution), activity(models.StateWarning), spread(models.StateNormal), 0, 2, models.TierWarning},
		{"danger 0 warning 1", rate(models.StateEarlyWarning), activity(models.StateNormal), spread(models.StateNormal), 0, 1, models.TierNormal},
		{"danger 1 warning 0", rate(models.StateNormal), activity(models.StateNormal), spread(models.StateRecessionImminent), 1, 0, models.TierWarning},
		{"danger 3", rate(models.StateSevereCrisis), activity(models.StateCrisisRealized), spread(models.StateRecessionImminent), 3, 0, models.TierCrisis},
		{"warning 3", rate(models.StateCaution), activity(models.StateCaution), spread(models.StateCurveInverted), 0, 3, models.TierWarning},
		{"all normal", rate(models.StateNormal), activity(models.StateNormal), spread(models.StateNormal), 0, 0, models.TierNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := c.Evaluate(tt.r, tt.a, tt.s)
			assert.Equal(t, tt.danger, v.Danger)
			assert.Equal(t, tt.warning, v.Warning)
			assert.Equal(t, tt.tier, v.Tier)
			assert.Equal(t, 3, v.Available)
			assert.NotEmpty(t, v.Guidance)
			assert.Equal(t, tt.tier.Headline(), v.Headline)
		})
	}
}

func TestEvaluate_AbsentIndicators(t *testing.T) {
	c := NewClassifier(DefaultThresholds())

	v := c.Evaluate(nil, activity(models.StateCrisisRealized), nil)
	assert.Equal(t, 1, v.Available)
	assert.Equal(t, 1, v.Danger)
	assert.Equal(t, models.TierWarning, v.Tier)

	v = c.Evaluate(nil, nil, spread(models.StateNormal))
	assert.Equal(t, models.TierNormal, v.Tier)
}

func TestEvaluate_AllAbsentIsUnknown(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	v := c.Evaluate(nil, nil, nil)
	assert.Equal(t, models.TierUnknown, v.Tier)
	assert.Zero(t, v.Available)
	assert.Zero(t, v.Danger)
	assert.Zero(t, v.Warning)
}

func TestCombine_SkipsNil(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	v := c.Combine(nil, rate(models.StateSevereCrisis), spread(models.StateRecessionImminent))
	assert.Equal(t, 2, v.Available)
	assert.Equal(t, models.TierCrisis, v.Tier)
}

func TestCombine_SkipsTypedNil(t *testing.T) {
	c := NewClassifier(DefaultThresholds())

	var r *models.RateSignal
	var a *models.ActivitySignal
	assert.NotPanics(t, func() {
		v := c.Combine(r, a, spread(models.StateCurveInverted))
		assert.Equal(t, 1, v.Available)
		assert.Equal(t, 1, v.Warning)
		assert.Equal(t, models.TierNormal, v.Tier)
	})

	v := c.Combine(r, a, (*models.SpreadSignal)(nil))
	assert.Equal(t, models.TierUnknown, v.Tier)
	assert.Zero(t, v.Available)
}
