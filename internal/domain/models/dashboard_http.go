package models

// DashboardRequest selects how much history each indicator report carries.
// Points 0 returns the full series.
type DashboardRequest struct {
	Points int `query:"points" json:"points" validate:"gte=0,lte=5000"`
}

type SignalRequest struct {
	Indicator string `param:"indicator" json:"indicator" validate:"required"`
	Points    int    `query:"points" json:"points" validate:"gte=0,lte=5000"`
}

// TrimSeries returns a copy of rep whose series holds at most n trailing
// points (all of them when n is 0).
func (rep *IndicatorReport) TrimSeries(n int) *IndicatorReport {
	if rep == nil {
		return nil
	}
	out := *rep
	if n > 0 && n < len(rep.Series) {
		out.Series = rep.Series[len(rep.Series)-n:]
	}
	return &out
}

// TrimSeries applies IndicatorReport.TrimSeries to every report of d.
func (d *Dashboard) TrimSeries(n int) *Dashboard {
	out := *d
	out.Rate = d.Rate.TrimSeries(n)
	out.Activity = d.Activity.TrimSeries(n)
	out.Spread = d.Spread.TrimSeries(n)
	return &out
}
