package api

import (
	"encoding/json"
	"net/http"

	"github.com/carbonloop/metallca/pkg/history"
	"github.com/carbonloop/metallca/pkg/lca"
	"github.com/carbonloop/metallca/pkg/logging"
	"github.com/carbonloop/metallca/pkg/routes"
)

// confidenceScores are the fixed per-indicator confidences of the stand-in
// models, reported alongside every analysis.
var confidenceScores = map[string]float64{
	"energy_consumption": 0.89,
	"co2_emissions":      0.94,
	"water_usage":        0.87,
	"waste_generation":   0.82,
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Post(func() { s.analyze(w, r) }).
		NotAllowed()
}

// analyze runs the full assessment: predict missing physical parameters,
// estimate LCA figures, build the process graph, score its circularity, and
// persist the outcome when history is configured.
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	var route routes.Route
	decoder := s.NewRequestDecoder(w, r)
	decoder.DecodeJSON(&req).ParseRoute(req.ProcessRoute, &route).ValidateParams(&req.Params)
	if decoder.RespondError() {
		return
	}

	predicted := s.predictor.PredictMissingParameters(route, req.Params)
	lcaMetrics := s.predictor.CalculateMetrics(route, req.Params)

	processID, err := s.engine.BuildGraph(route, req.Params)
	if err != nil {
		s.respondEngineError(w, "LCA analysis", err)
		return
	}
	circ, err := s.engine.CircularityMetrics(processID)
	if err != nil {
		s.respondEngineError(w, "LCA analysis", err)
		return
	}

	resp := AnalyzeResponse{
		ProcessID:          processID,
		MetalType:          req.MetalType,
		ProcessRoute:       string(route),
		EnergyConsumption:  lcaMetrics.EnergyConsumption,
		CO2Emissions:       lcaMetrics.CO2Emissions,
		WaterUsage:         lcaMetrics.WaterUsage,
		WasteGeneration:    lcaMetrics.WasteGeneration,
		LandUse:            lcaMetrics.LandUse,
		GWP:                lcaMetrics.CO2Emissions * 1000, // per tonne
		Acidification:      lcaMetrics.AcidificationPotential,
		Eutrophication:     lcaMetrics.EutrophicationPotential,
		HumanToxicity:      lcaMetrics.HumanToxicity,
		CircularityScore:   circ.Score,
		RecycledContent:    circ.RecyclingEfficiency,
		ResourceEfficiency: circ.RecyclingEfficiency,
		PredictedValues:    predicted,
		ConfidenceScores:   confidenceScores,
	}

	s.storeAnalysis(r, processID, route, req, lcaMetrics, resp)
	s.respondJSON(w, http.StatusOK, resp)
}

// storeAnalysis persists the analysis when history is configured.
// Persistence failures are logged, never surfaced: the analysis itself
// succeeded.
func (s *Server) storeAnalysis(r *http.Request, processID string, route routes.Route, req ProcessRequest, lcaMetrics lca.Metrics, resp AnalyzeResponse) {
	if s.history == nil {
		return
	}

	rec := history.NewRecord(processID, route, req.Params, lcaMetrics, resp.CircularityScore)
	rec.RawInput, _ = json.Marshal(req)
	rec.RawResults, _ = json.Marshal(resp)

	if err := s.history.StoreAnalysis(r.Context(), rec); err != nil {
		s.logger.Warn("failed to persist analysis",
			logging.ProcessID(processID),
			logging.Error(err),
		)
	}
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Post(func() { s.compare(w, r) }).
		NotAllowed()
}

// compare assesses several routes side by side without persisting anything.
func (s *Server) compare(w http.ResponseWriter, r *http.Request) {
	var reqs []ProcessRequest
	decoder := s.NewRequestDecoder(w, r)
	decoder.DecodeJSON(&reqs)
	if decoder.RespondError() {
		return
	}
	if len(reqs) == 0 {
		s.respondError(w, http.StatusBadRequest, "at least one process is required")
		return
	}

	resp := ComparisonResponse{Comparisons: make([]ComparisonEntry, 0, len(reqs))}
	for _, req := range reqs {
		route, err := routes.ParseRoute(req.ProcessRoute)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := req.Params.Validate(); err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		processID, err := s.engine.BuildGraph(route, req.Params)
		if err != nil {
			s.respondEngineError(w, "process comparison", err)
			return
		}
		circ, err := s.engine.CircularityMetrics(processID)
		if err != nil {
			s.respondEngineError(w, "process comparison", err)
			return
		}

		resp.Comparisons = append(resp.Comparisons, ComparisonEntry{
			Process:     req,
			LCA:         s.predictor.CalculateMetrics(route, req.Params),
			Circularity: circ,
		})
	}

	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnalyses(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() { s.listAnalyses(w, r) }).
		NotAllowed()
}

// listAnalyses returns recent persisted analyses, newest first.
func (s *Server) listAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.respondError(w, http.StatusServiceUnavailable, "analysis history is not configured")
		return
	}
	records, err := s.history.ListAnalyses(r.Context(), 50)
	if err != nil {
		s.logger.Error("failed to list analyses", logging.Error(err))
		s.respondError(w, http.StatusInternalServerError, "listing analyses failed")
		return
	}
	s.respondJSON(w, http.StatusOK, records)
}
