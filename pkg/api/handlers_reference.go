package api

import (
	"net/http"

	"github.com/carbonloop/metallca/pkg/lca"
)

// supportedMetals is the reference list the frontend presents.
var supportedMetals = []MetalInfo{
	{Name: "Aluminium", Symbol: "Al", TypicalRecyclingRate: "30-80%"},
	{Name: "Copper", Symbol: "Cu", TypicalRecyclingRate: "40-85%"},
	{Name: "Steel", Symbol: "Fe", TypicalRecyclingRate: "60-95%"},
	{Name: "Zinc", Symbol: "Zn", TypicalRecyclingRate: "50-80%"},
	{Name: "Lead", Symbol: "Pb", TypicalRecyclingRate: "70-90%"},
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() { s.health(w, r) }).
		NotAllowed()
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	historyOK := false
	if s.history != nil {
		historyOK = s.history.Ping(r.Context()) == nil
	}
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: s.version,
		Components: map[string]bool{
			"engine":    true,
			"predictor": s.predictor != nil,
			"history":   historyOK,
		},
	})
}

func (s *Server) handleMetals(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() { s.respondJSON(w, http.StatusOK, map[string][]MetalInfo{"metals": supportedMetals}) }).
		NotAllowed()
}

func (s *Server) handleModelMetrics(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() { s.respondJSON(w, http.StatusOK, lca.ModelPerformance()) }).
		NotAllowed()
}
