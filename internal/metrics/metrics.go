// Package metrics holds the Prometheus instruments for the engine, the HTTP
// layer and the history store.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "qhg"

// Metrics groups every instrument. A nil *Metrics records nothing.
type Metrics struct {
	AnalysesTotal     *prometheus.CounterVec
	ComparisonsTotal  *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	PatternsDetected  prometheus.Histogram
	RateLimitedTotal  *prometheus.CounterVec
	HistoryWrites     *prometheus.CounterVec
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AnalysesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "analyses_total",
			Help:      "Single-text analyses by scheme and status",
		}, []string{"scheme", "status"}),

		ComparisonsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "comparisons_total",
			Help:      "Phrase comparisons by status",
		}, []string{"status"}),

		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "operation_duration_seconds",
			Help:      "Engine operation latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}, []string{"operation"}),

		PatternsDetected: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "patterns_detected",
			Help:      "Quantum patterns detected per analysis",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		}),

		RateLimitedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-IP limiter",
		}, []string{"route"}),

		HistoryWrites: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "writes_total",
			Help:      "History store writes by kind and status",
		}, []string{"kind", "status"}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveAnalysis records one analysis outcome.
func (m *Metrics) ObserveAnalysis(scheme string, patterns int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(scheme, status(err)).Inc()
	m.OperationDuration.WithLabelValues("analyze").Observe(elapsed.Seconds())
	if err == nil {
		m.PatternsDetected.Observe(float64(patterns))
	}
}

// ObserveComparison records one comparison outcome.
func (m *Metrics) ObserveComparison(elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.ComparisonsTotal.WithLabelValues(status(err)).Inc()
	m.OperationDuration.WithLabelValues("compare").Observe(elapsed.Seconds())
}

// ObserveOperation records the latency of any other named operation.
func (m *Metrics) ObserveOperation(operation string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RateLimited counts a rejected request.
func (m *Metrics) RateLimited(route string) {
	if m == nil {
		return
	}
	m.RateLimitedTotal.WithLabelValues(route).Inc()
}

// HistoryWrite counts a history store write.
func (m *Metrics) HistoryWrite(kind string, err error) {
	if m == nil {
		return
	}
	m.HistoryWrites.WithLabelValues(kind, status(err)).Inc()
}
