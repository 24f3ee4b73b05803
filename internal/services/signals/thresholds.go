package signals

import "fmt"

// Thresholds holds every classification cut-off. Zero values are replaced by
// the `default` tags when loaded through config.
type Thresholds struct {
	Rate struct {
		MinPoints    int     `yaml:"min_points" default:"2"`
		Window       int     `yaml:"window" default:"30"`
		SevereChange float64 `yaml:"severe_change" default:"1.0"`
		EarlyChange  float64 `yaml:"early_change" default:"0.2"`
		Deviation    float64 `yaml:"deviation" default:"0.5"`
	} `yaml:"rate"`
	Activity struct {
		MinPoints int     `yaml:"min_points" default:"3"`
		Window    int     `yaml:"window" default:"3"`
		Crisis    float64 `yaml:"crisis" default:"45"`
		Caution   float64 `yaml:"caution" default:"50"`
	} `yaml:"activity"`
	Spread struct {
		MinPoints int     `yaml:"min_points" default:"30"`
		Lookback  int     `yaml:"lookback" default:"30"`
		Inverted  float64 `yaml:"inverted" default:"0"`
		Renormal  float64 `yaml:"renormalization" default:"0.5"`
	} `yaml:"spread"`
	Composite struct {
		CrisisDanger  int `yaml:"crisis_danger" default:"2"`
		WarningDanger int `yaml:"warning_danger" default:"1"`
		WarningCount  int `yaml:"warning_count" default:"2"`
	} `yaml:"composite"`
}

// DefaultThresholds returns the stock cut-offs.
func DefaultThresholds() Thresholds {
	var t Thresholds
	t.Rate.MinPoints = 2
	t.Rate.Window = 30
	t.Rate.SevereChange = 1.0
	t.Rate.EarlyChange = 0.2
	t.Rate.Deviation = 0.5
	t.Activity.MinPoints = 3
	t.Activity.Window = 3
	t.Activity.Crisis = 45
	t.Activity.Caution = 50
	t.Spread.MinPoints = 30
	t.Spread.Lookback = 30
	t.Spread.Inverted = 0
	t.Spread.Renormal = 0.5
	t.Composite.CrisisDanger = 2
	t.Composite.WarningDanger = 1
	t.Composite.WarningCount = 2
	return t
}

// Validate rejects cut-offs that would make a classifier misbehave.
func (t Thresholds) Validate() error {
	if t.Rate.MinPoints < 2 {
		return fmt.Errorf("rate.min_points must be at least 2, got %d", t.Rate.MinPoints)
	}
	if t.Rate.Window < 1 {
		return fmt.Errorf("rate.window must be positive, got %d", t.Rate.Window)
	}
	if t.Rate.EarlyChange > t.Rate.SevereChange {
		return fmt.Errorf("rate.early_change (%v) exceeds rate.severe_change (%v)", t.Rate.EarlyChange, t.Rate.SevereChange)
	}
	if t.Activity.Window < 1 || t.Activity.MinPoints < t.Activity.Window {
		return fmt.Errorf("activity.min_points (%d) must cover activity.window (%d)", t.Activity.MinPoints, t.Activity.Window)
	}
	if t.Activity.Crisis > t.Activity.Caution {
		return fmt.Errorf("activity.crisis (%v) exceeds activity.caution (%v)", t.Activity.Crisis, t.Activity.Caution)
	}
	if t.Spread.Lookback < 2 || t.Spread.MinPoints < t.Spread.Lookback {
		return fmt.Errorf("spread.min_points (%d) must cover spread.lookback (%d)", t.Spread.MinPoints, t.Spread.Lookback)
	}
	if t.Composite.CrisisDanger < 1 || t.Composite.WarningDanger < 1 || t.Composite.WarningCount < 1 {
		return fmt.Errorf("composite counts must be positive")
	}
	return nil
}
