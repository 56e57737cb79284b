// Package api exposes the LCA circularity engine over REST. Persisted-state
// layout and report text formatting live elsewhere; this layer validates
// requests, maps engine errors to status codes, and serializes responses.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/carbonloop/metallca/pkg/engine"
	"github.com/carbonloop/metallca/pkg/history"
	"github.com/carbonloop/metallca/pkg/lca"
	"github.com/carbonloop/metallca/pkg/logging"
	"github.com/carbonloop/metallca/pkg/metrics"
)

// Server is the REST front of the engine.
type Server struct {
	engine      *engine.Engine
	predictor   *lca.Predictor
	history     *history.PGStore // nil when persistence is not configured
	logger      logging.Logger
	registry    *metrics.Registry
	corsOrigins []string
	startTime   time.Time
	version     string
	port        int
}

// Options configures optional server collaborators.
type Options struct {
	History     *history.PGStore
	Logger      logging.Logger
	Registry    *metrics.Registry
	CORSOrigins []string
}

// NewServer creates an API server over the given engine and predictor.
func NewServer(eng *engine.Engine, predictor *lca.Predictor, port int, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}
	registry := opts.Registry
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	corsOrigins := opts.CORSOrigins
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	return &Server{
		engine:      eng,
		predictor:   predictor,
		history:     opts.History,
		logger:      logger.With(logging.Component("api")),
		registry:    registry,
		corsOrigins: corsOrigins,
		startTime:   time.Now(),
		version:     "1.0.0",
		port:        port,
	}
}

// Handler builds the full request pipeline: routing wrapped in panic
// recovery, CORS, request logging, and metrics collection.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", s.registry.Handler())

	// Reference data
	mux.HandleFunc("/metals", s.handleMetals)
	mux.HandleFunc("/model/metrics", s.handleModelMetrics)

	// LCA endpoints
	mux.HandleFunc("/lca/analyze", s.handleAnalyze)
	mux.HandleFunc("/compare", s.handleCompare)
	mux.HandleFunc("/analyses", s.handleAnalyses)

	// Circularity endpoints
	mux.HandleFunc("/circularity/analyze", s.handleCircularityAnalyze)
	mux.HandleFunc("/circularity/graph/", s.handleGraph)                 // /circularity/graph/{process_id}
	mux.HandleFunc("/circularity/metrics/", s.handleMetricsFor)          // /circularity/metrics/{process_id}
	mux.HandleFunc("/circularity/optimizations/", s.handleOptimizations) // /circularity/optimizations/{process_id}

	return s.panicRecoveryMiddleware(s.corsMiddleware(s.metricsMiddleware(s.loggingMiddleware(mux))))
}

// Start starts the HTTP server with production timeouts.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", logging.String("addr", addr))

	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server.ListenAndServe()
}
