package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounters(t *testing.T) {
	r := NewWithRegisterer(prometheus.NewRegistry())

	r.RecordFetch("SOFR", "ok")
	r.RecordFetch("SOFR", "ok")
	r.RecordFetch("GS10", "unavailable")
	r.RecordStrategy("primary_api", "rejected")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.fetches.WithLabelValues("SOFR", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetches.WithLabelValues("GS10", "unavailable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.strategies.WithLabelValues("primary_api", "rejected")))
}

func TestRecorderSignalStateIsOneHot(t *testing.T) {
	r := NewWithRegisterer(prometheus.NewRegistry())
	all := []string{"normal", "caution", "early_warning", "severe_crisis"}

	r.RecordSignal("rate", "caution", all)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.signalState.WithLabelValues("rate", "caution")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.signalState.WithLabelValues("rate", "normal")))

	r.RecordSignal("rate", "", all)
	assert.Equal(t, 0.0, testutil.ToFloat64(r.signalState.WithLabelValues("rate", "caution")))
}

func TestRecorderVerdict(t *testing.T) {
	r := NewWithRegisterer(prometheus.NewRegistry())
	r.RecordVerdict("warning", []string{"normal", "warning", "crisis", "unknown"}, 1, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.verdictTier.WithLabelValues("warning")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.verdictTier.WithLabelValues("crisis")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.counts.WithLabelValues("danger")))
}
