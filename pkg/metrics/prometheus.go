package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	fetches     *prometheus.CounterVec
	strategies  *prometheus.CounterVec
	cacheEvents *prometheus.CounterVec
	signalState *prometheus.GaugeVec
	verdictTier *prometheus.GaugeVec
	counts      *prometheus.GaugeVec
	latency     *prometheus.HistogramVec
}

// New registers the collectors on the default registry.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers on reg; tests pass a fresh prometheus.NewRegistry().
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crisis_series_fetch_total",
				Help: "Series fetches by series id and outcome (ok, unavailable, auth_failed, empty)",
			},
			[]string{"series", "outcome"},
		),
		strategies: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crisis_activity_strategy_total",
				Help: "Activity index acquisition attempts by strategy and outcome",
			},
			[]string{"strategy", "outcome"},
		),
		cacheEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crisis_series_cache_total",
				Help: "Series cache lookups by kind and result (hit, miss, error)",
			},
			[]string{"kind", "result"},
		),
		signalState: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "crisis_signal_state",
				Help: "1 for the current state of each indicator, 0 otherwise",
			},
			[]string{"indicator", "state"},
		),
		verdictTier: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "crisis_verdict_tier",
				Help: "1 for the current composite tier, 0 otherwise",
			},
			[]string{"tier"},
		),
		counts: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "crisis_verdict_contributions",
				Help: "Danger and warning contributions of the latest verdict",
			},
			[]string{"kind"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crisis_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch counts one upstream fetch.
func (r *Recorder) RecordFetch(series, outcome string) {
	r.fetches.WithLabelValues(series, outcome).Inc()
}

// RecordStrategy counts one acquisition strategy attempt.
func (r *Recorder) RecordStrategy(strategy, outcome string) {
	r.strategies.WithLabelValues(strategy, outcome).Inc()
}

// RecordCache counts one cache lookup.
func (r *Recorder) RecordCache(kind, result string) {
	r.cacheEvents.WithLabelValues(kind, result).Inc()
}

// RecordSignal marks state as current for indicator among all of its states.
// An empty state clears every state (indicator unavailable).
func (r *Recorder) RecordSignal(indicator, state string, all []string) {
	for _, s := range all {
		v := 0.0
		if s == state {
			v = 1
		}
		r.signalState.WithLabelValues(indicator, s).Set(v)
	}
}

// RecordVerdict marks tier as current among all tiers and stores the counts.
func (r *Recorder) RecordVerdict(tier string, all []string, danger, warning int) {
	for _, t := range all {
		v := 0.0
		if t == tier {
			v = 1
		}
		r.verdictTier.WithLabelValues(t).Set(v)
	}
	r.counts.WithLabelValues("danger").Set(float64(danger))
	r.counts.WithLabelValues("warning").Set(float64(warning))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
