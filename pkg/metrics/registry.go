// Package metrics exposes Prometheus instrumentation for the service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Engine Metrics
	GraphBuildsTotal      *prometheus.CounterVec
	GraphBuildDuration    prometheus.Histogram
	AnalysesTotal         *prometheus.CounterVec
	CircularityScore      prometheus.Histogram
	LoopsDetected         prometheus.Histogram
	OpportunitiesDetected *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all application metrics registered,
// plus the standard Go runtime collectors.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	r.initHTTPMetrics()
	r.initEngineMetrics()
	return r
}

// Handler returns the HTTP handler serving this registry in the Prometheus
// exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordGraphBuild records a graph build with its route and outcome.
func (r *Registry) RecordGraphBuild(route, status string, duration time.Duration) {
	r.GraphBuildsTotal.WithLabelValues(route, status).Inc()
	r.GraphBuildDuration.Observe(duration.Seconds())
}

// RecordAnalysis records one analysis operation (metrics, optimizations,
// visualization) and its outcome.
func (r *Registry) RecordAnalysis(operation, status string) {
	r.AnalysesTotal.WithLabelValues(operation, status).Inc()
}

// RecordCircularity records the computed score and loop count for one graph.
func (r *Registry) RecordCircularity(score float64, loopCount int) {
	r.CircularityScore.Observe(score)
	r.LoopsDetected.Observe(float64(loopCount))
}

// RecordOpportunities records how many opportunities of each type a scan found.
func (r *Registry) RecordOpportunities(opportunityType string, count int) {
	r.OpportunitiesDetected.WithLabelValues(opportunityType).Add(float64(count))
}
