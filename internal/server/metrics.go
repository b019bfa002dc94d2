// This file contains the Prometheus instrumentation for the dashboard server.
// Each Metrics instance carries its own registry so tests can construct
// servers independently without duplicate-registration panics.

package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the HTTP server and the
// workflow runs it triggers.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests   prometheus.Gauge
	requestsTotal    *prometheus.CounterVec
	workflowRuns     *prometheus.CounterVec
	workflowDuration prometheus.Histogram
}

// NewMetrics creates and registers all server collectors on a fresh registry,
// including the Go runtime collector.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pbbdash_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pbbdash_requests_total",
			Help: "Total HTTP requests served, by path.",
		}, []string{"path"}),
		workflowRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pbbdash_workflow_runs_total",
			Help: "Total workflow runs triggered over HTTP, by outcome.",
		}, []string{"status"}),
		workflowDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pbbdash_workflow_duration_seconds",
			Help:    "Wall-clock duration of workflow runs.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		m.activeRequests,
		m.requestsTotal,
		m.workflowRuns,
		m.workflowDuration,
	)

	// Pre-create label combinations so the series appear in scrapes before
	// the first request.
	for _, path := range []string{"/api/analyze", "/api/summary", "/api/status", "/healthz"} {
		m.requestsTotal.WithLabelValues(path)
	}
	for _, status := range []string{"success", "failure"} {
		m.workflowRuns.WithLabelValues(status)
	}

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests increments the in-flight request gauge.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests decrements the in-flight request gauge.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// CountRequest records a served request for the given path.
func (m *Metrics) CountRequest(path string) {
	m.requestsTotal.WithLabelValues(path).Inc()
}

// ObserveWorkflowRun records the outcome and duration of one workflow run.
// Status is "success" or "failure".
func (m *Metrics) ObserveWorkflowRun(status string, seconds float64) {
	m.workflowRuns.WithLabelValues(status).Inc()
	m.workflowDuration.Observe(seconds)
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
