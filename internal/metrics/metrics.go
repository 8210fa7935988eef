// Package metrics holds the Prometheus collectors of msgview.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "msgview"

// Build results.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics groups the collectors. Use New with a registry of its own in tests.
type Metrics struct {
	builds        *prometheus.CounterVec
	anomalies     *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	httpRequests  *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		builds: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "builds_total",
				Help:      "Total message views built.",
			},
			[]string{"kind", "result"},
		),
		anomalies: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "anomalies_total",
				Help:      "Malformed report flags tolerated while building views.",
			},
			[]string{"field"},
		),
		buildDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "build_duration_seconds",
				Help:      "Duration of fetching and building one message view.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests.",
			},
			[]string{"method", "path", "status_code"},
		),
	}
}

// ObserveBuild records one build attempt.
func (m *Metrics) ObserveBuild(kind string, seconds float64, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.builds.WithLabelValues(kind, result).Inc()
	m.buildDuration.WithLabelValues(kind).Observe(seconds)
}

// AddAnomaly counts one tolerated anomaly on field.
func (m *Metrics) AddAnomaly(field string) {
	m.anomalies.WithLabelValues(field).Inc()
}

// ObserveRequest counts one HTTP request. path is the route pattern.
func (m *Metrics) ObserveRequest(method, path, statusCode string) {
	m.httpRequests.WithLabelValues(method, path, statusCode).Inc()
}
