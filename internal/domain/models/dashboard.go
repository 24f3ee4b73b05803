package models

import "time"

// Strategy names for activity index acquisition.
const (
	StrategyPrimary = "primary"
	StrategyScrape  = "scrape"
	StrategyBackup  = "backup"
)

// StrategyFailure records why one acquisition strategy was skipped.
type StrategyFailure struct {
	Strategy string `json:"strategy"`
	Reason   string `json:"reason"`
}

// Resolution is the outcome of the activity fallback chain. Series is laid
// on the month grid; SourceAsOf is the real date of the latest observation
// when the winning source reports one.
type Resolution struct {
	Series     Series            `json:"series"`
	Strategy   string            `json:"strategy"`
	SourceAsOf time.Time         `json:"source_as_of"`
	Failures   []StrategyFailure `json:"failures,omitempty"`
}

// IndicatorReport is one indicator of a dashboard snapshot.
type IndicatorReport struct {
	Indicator  Indicator         `json:"indicator"`
	SeriesID   string            `json:"series_id"`
	Source     string            `json:"source"`
	SourceAsOf *time.Time        `json:"source_as_of,omitempty"`
	Series     []Point           `json:"series"`
	Signal     Signal            `json:"signal"`
	Error      string            `json:"error,omitempty"`
	Failures   []StrategyFailure `json:"failures,omitempty"`
}

// Dashboard is a full evaluation snapshot.
type Dashboard struct {
	ID          string           `json:"id"`
	EvaluatedAt time.Time        `json:"evaluated_at"`
	Rate        *IndicatorReport `json:"rate"`
	Activity    *IndicatorReport `json:"activity"`
	Spread      *IndicatorReport `json:"spread"`
	Verdict     Verdict          `json:"verdict"`
}

// Report returns the report for ind.
func (d *Dashboard) Report(ind Indicator) *IndicatorReport {
	switch ind {
	case IndicatorRate:
		return d.Rate
	case IndicatorActivity:
		return d.Activity
	case IndicatorSpread:
		return d.Spread
	}
	return nil
}
