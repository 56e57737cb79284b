package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEngineMetrics() {
	r.GraphBuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "metallca_graph_builds_total",
			Help: "Total number of process graph builds",
		},
		[]string{"route", "status"},
	)

	r.GraphBuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "metallca_graph_build_duration_seconds",
			Help:    "Process graph build latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	r.AnalysesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "metallca_analyses_total",
			Help: "Total number of analysis operations",
		},
		[]string{"operation", "status"},
	)

	r.CircularityScore = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "metallca_circularity_score",
			Help:    "Distribution of computed circularity scores",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	r.LoopsDetected = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "metallca_loops_detected",
			Help:    "Distribution of material loops found per graph",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
	)

	r.OpportunitiesDetected = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "metallca_opportunities_detected_total",
			Help: "Total optimization opportunities found, by type",
		},
		[]string{"type"},
	)
}
