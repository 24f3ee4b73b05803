package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	EvaluationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "crisis",
			Subsystem: "api",
			Name:      "evaluation_seconds",
			Help:      "Latency of dashboard evaluations served by the API",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	RefreshRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crisis",
			Subsystem: "api",
			Name:      "refresh_total",
			Help:      "Refresh requests by result (ok, limited, error)",
		},
		[]string{"result"},
	)

	EvaluationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crisis",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Errors by API endpoint",
		},
		[]string{"endpoint"},
	)
)

// Register adds the API collectors to the default registry once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(EvaluationLatency, RefreshRequests, EvaluationErrors)
	})
}
