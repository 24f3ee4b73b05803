package models

// Tier is the composite severity.
type Tier string

const (
	TierNormal  Tier = "normal"
	TierWarning Tier = "warning"
	TierCrisis  Tier = "crisis"
	// TierUnknown is reported when no indicator produced a signal.
	TierUnknown Tier = "unknown"
)

// Tiers lists every tier.
var Tiers = []Tier{TierNormal, TierWarning, TierCrisis, TierUnknown}

var tierHeadlines = map[Tier]string{
	TierNormal:  "Normal: keep monitoring the market",
	TierWarning: "Warning: prepare to reduce exposure",
	TierCrisis:  "Severe crisis: immediate action required",
	TierUnknown: "Unknown: no indicator data available",
}

var tierGuidance = map[Tier][]string{
	TierNormal: {
		"Keep the regular portfolio allocation",
		"Monitor the indicators on schedule",
		"Stay with the long-term strategy",
	},
	TierWarning: {
		"Reduce portfolio risk",
		"Raise the cash allocation",
		"Sell part of the high-risk assets",
	},
	TierCrisis: {
		"Sell risk assets immediately",
		"Maximize cash and safe-haven assets",
		"Switch to defensive positions",
	},
	TierUnknown: {
		"Check upstream data sources and credentials",
		"Do not read the missing data as a normal market",
	},
}

// Headline returns the one-line status for t.
func (t Tier) Headline() string { return tierHeadlines[t] }

// Guidance returns the action guide for t.
func (t Tier) Guidance() []string {
	g := tierGuidance[t]
	out := make([]string, len(g))
	copy(out, g)
	return out
}

// Verdict is the composite result of the three classifiers.
type Verdict struct {
	Tier      Tier     `json:"tier"`
	Danger    int      `json:"danger"`
	Warning   int      `json:"warning"`
	Available int      `json:"available"`
	Headline  string   `json:"headline"`
	Guidance  []string `json:"guidance"`
}

// TierStrings returns Tiers as strings for metrics.
func TierStrings() []string {
	out := make([]string, len(Tiers))
	for i, t := range Tiers {
		out[i] = string(t)
	}
	return out
}

// StateStrings converts states for metrics.
func StateStrings(states []State) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = string(s)
	}
	return out
}
