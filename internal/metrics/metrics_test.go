package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return New(reg), reg
}

func TestObserveAnalysis(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.ObserveAnalysis("greek", 3, time.Millisecond, nil)
	m.ObserveAnalysis("greek", 0, time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("greek", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("greek", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.OperationDuration))
}

func TestObserveComparison(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.ObserveComparison(time.Millisecond, nil)
	m.ObserveComparison(time.Millisecond, nil)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ComparisonsTotal.WithLabelValues("success")))
}

func TestCounters(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RateLimited("/api/v1/analyze")
	m.HistoryWrite("analysis", nil)
	m.HistoryWrite("comparison", errors.New("disk full"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimitedTotal.WithLabelValues("/api/v1/analyze")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryWrites.WithLabelValues("analysis", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryWrites.WithLabelValues("comparison", "error")))
}

func TestRegistryNames(t *testing.T) {
	m, reg := newTestMetrics(t)
	m.ObserveAnalysis("quantum_hermetic", 2, time.Millisecond, nil)
	m.ObserveComparison(time.Millisecond, nil)
	m.RateLimited("/x")
	m.HistoryWrite("analysis", nil)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"qhg_engine_analyses_total",
		"qhg_engine_comparisons_total",
		"qhg_engine_operation_duration_seconds",
		"qhg_engine_patterns_detected",
		"qhg_http_rate_limited_total",
		"qhg_history_writes_total",
	} {
		assert.True(t, names[want], want)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAnalysis("x", 1, time.Second, nil)
		m.ObserveComparison(time.Second, nil)
		m.ObserveOperation("chart", time.Second)
		m.RateLimited("/x")
		m.HistoryWrite("analysis", nil)
	})
}
