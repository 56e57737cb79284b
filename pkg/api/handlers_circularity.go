package api

import (
	"net/http"

	"github.com/carbonloop/metallca/pkg/routes"
	"github.com/carbonloop/metallca/pkg/visualization"
)

func (s *Server) handleCircularityAnalyze(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Post(func() { s.circularityAnalyze(w, r) }).
		NotAllowed()
}

// circularityAnalyze builds (or rebuilds) the process graph for the supplied
// route and returns its metrics and opportunities together with the
// process_id for later lookups.
func (s *Server) circularityAnalyze(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	var route routes.Route
	decoder := s.NewRequestDecoder(w, r)
	decoder.DecodeJSON(&req).ParseRoute(req.ProcessRoute, &route).ValidateParams(&req.Params)
	if decoder.RespondError() {
		return
	}

	processID, err := s.engine.BuildGraph(route, req.Params)
	if err != nil {
		s.respondEngineError(w, "circularity analysis", err)
		return
	}

	metrics, err := s.engine.CircularityMetrics(processID)
	if err != nil {
		s.respondEngineError(w, "circularity analysis", err)
		return
	}
	opportunities, err := s.engine.Optimizations(processID)
	if err != nil {
		s.respondEngineError(w, "circularity analysis", err)
		return
	}

	s.respondJSON(w, http.StatusOK, CircularityResponse{
		ProcessID:     processID,
		Metrics:       metrics,
		Opportunities: opportunities,
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() { s.getGraph(w, r) }).
		NotAllowed()
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	processID, ok := s.extractProcessID(w, r, "/circularity/graph/")
	if !ok {
		return
	}
	layout := visualization.LayoutByName(r.URL.Query().Get("layout"))
	view, err := s.engine.Visualization(processID, layout)
	if err != nil {
		s.respondEngineError(w, "graph retrieval", err)
		return
	}
	s.respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleMetricsFor(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() { s.getMetricsFor(w, r) }).
		NotAllowed()
}

func (s *Server) getMetricsFor(w http.ResponseWriter, r *http.Request) {
	processID, ok := s.extractProcessID(w, r, "/circularity/metrics/")
	if !ok {
		return
	}
	metrics, err := s.engine.CircularityMetrics(processID)
	if err != nil {
		s.respondEngineError(w, "metrics retrieval", err)
		return
	}
	s.respondJSON(w, http.StatusOK, metrics)
}

func (s *Server) handleOptimizations(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() { s.getOptimizations(w, r) }).
		NotAllowed()
}

func (s *Server) getOptimizations(w http.ResponseWriter, r *http.Request) {
	processID, ok := s.extractProcessID(w, r, "/circularity/optimizations/")
	if !ok {
		return
	}
	opportunities, err := s.engine.Optimizations(processID)
	if err != nil {
		s.respondEngineError(w, "optimization retrieval", err)
		return
	}
	s.respondJSON(w, http.StatusOK, opportunities)
}
