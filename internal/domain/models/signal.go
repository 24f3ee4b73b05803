package models

import "time"

// Indicator names one of the three monitored series.
type Indicator string

const (
	IndicatorRate     Indicator = "rate"
	IndicatorActivity Indicator = "activity"
	IndicatorSpread   Indicator = "spread"
)

// Indicators lists every indicator in display order.
var Indicators = []Indicator{IndicatorRate, IndicatorActivity, IndicatorSpread}

// ParseIndicator reports whether s names a known indicator.
func ParseIndicator(s string) (Indicator, bool) {
	for _, ind := range Indicators {
		if string(ind) == s {
			return ind, true
		}
	}
	return "", false
}

// State is the classification of one indicator.
type State string

const (
	StateNormal State = "normal"

	// rate
	StateSevereCrisis State = "severe_crisis"
	StateEarlyWarning State = "early_warning"
	StateCaution      State = "caution"

	// activity
	StateCrisisRealized State = "crisis_realized"
	StateWarning        State = "warning"

	// spread
	StateCurveInverted     State = "curve_inverted"
	StateRecessionImminent State = "recession_imminent"
)

var stateLabels = map[State]string{
	StateNormal:            "normal",
	StateSevereCrisis:      "severe crisis",
	StateEarlyWarning:      "early warning",
	StateCaution:           "caution",
	StateCrisisRealized:    "crisis realized",
	StateWarning:           "warning",
	StateCurveInverted:     "curve inverted (recession warning)",
	StateRecessionImminent: "recession imminent (rapid renormalization)",
}

// Label returns the human-readable label.
func (s State) Label() string {
	if l, ok := stateLabels[s]; ok {
		return l
	}
	return string(s)
}

// States an indicator can take, used to reset metrics gauges.
var (
	RateStates     = []State{StateNormal, StateCaution, StateEarlyWarning, StateSevereCrisis}
	ActivityStates = []State{StateNormal, StateCaution, StateWarning, StateCrisisRealized}
	SpreadStates   = []State{StateNormal, StateCurveInverted, StateRecessionImminent}
)

// StatesOf returns the state set of ind.
func StatesOf(ind Indicator) []State {
	switch ind {
	case IndicatorRate:
		return RateStates
	case IndicatorActivity:
		return ActivityStates
	case IndicatorSpread:
		return SpreadStates
	}
	return nil
}

// Contribution is what a signal adds to the composite verdict.
type Contribution int

const (
	ContributionNone Contribution = iota
	ContributionWarning
	ContributionDanger
)

// Signal is the common view of a classifier result.
type Signal interface {
	// Present is false for a nil result held in a non-nil interface.
	Present() bool
	Indicator() Indicator
	SignalState() State
	Contribution() Contribution
}

// RateSignal is the short-term funding rate classification.
type RateSignal struct {
	AsOf        time.Time `json:"as_of"`
	Latest      float64   `json:"latest"`
	Previous    float64   `json:"previous"`
	TrailMean   float64   `json:"trailing_mean"`
	DailyChange float64   `json:"daily_change"`
	Deviation   float64   `json:"deviation"`
	State       State     `json:"state"`
	Label       string    `json:"label"`
}

func (s *RateSignal) Indicator() Indicator { return IndicatorRate }
func (s *RateSignal) Present() bool        { return s != nil }

func (s *RateSignal) SignalState() State {
	if s == nil {
		return ""
	}
	return s.State
}

func (s *RateSignal) Contribution() Contribution {
	if s == nil {
		return ContributionNone
	}
	switch s.State {
	case StateSevereCrisis:
		return ContributionDanger
	case StateEarlyWarning, StateCaution:
		return ContributionWarning
	}
	return ContributionNone
}

// ActivitySignal is the manufacturing activity index classification.
type ActivitySignal struct {
	AsOf      time.Time `json:"as_of"`
	Latest    float64   `json:"latest"`
	Trailing  []float64 `json:"trailing"`
	TrailMean float64   `json:"trailing_mean"`
	State     State     `json:"state"`
	Label     string    `json:"label"`
}

func (s *ActivitySignal) Indicator() Indicator { return IndicatorActivity }
func (s *ActivitySignal) Present() bool        { return s != nil }

func (s *ActivitySignal) SignalState() State {
	if s == nil {
		return ""
	}
	return s.State
}

func (s *ActivitySignal) Contribution() Contribution {
	if s == nil {
		return ContributionNone
	}
	switch s.State {
	case StateCrisisRealized:
		return ContributionDanger
	case StateWarning, StateCaution:
		return ContributionWarning
	}
	return ContributionNone
}

// SpreadSignal is the yield curve spread classification.
type SpreadSignal struct {
	AsOf               time.Time `json:"as_of"`
	Latest             float64   `json:"latest"`
	Prior              float64   `json:"prior"`
	Change             float64   `json:"change"`
	IsInverted         bool      `json:"is_inverted"`
	RapidNormalization bool      `json:"rapid_normalization"`
	State              State     `json:"state"`
	Label              string    `json:"label"`
}

func (s *SpreadSignal) Indicator() Indicator { return IndicatorSpread }
func (s *SpreadSignal) Present() bool        { return s != nil }

func (s *SpreadSignal) SignalState() State {
	if s == nil {
		return ""
	}
	return s.State
}

func (s *SpreadSignal) Contribution() Contribution {
	if s == nil {
		return ContributionNone
	}
	switch s.State {
	case StateRecessionImminent:
		return ContributionDanger
	case StateCurveInverted:
		return ContributionWarning
	}
	return ContributionNone
}
