package api

import (
	"github.com/carbonloop/metallca/pkg/circularity"
	"github.com/carbonloop/metallca/pkg/lca"
	"github.com/carbonloop/metallca/pkg/optimize"
	"github.com/carbonloop/metallca/pkg/routes"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ProcessRequest is the request body shared by the analysis endpoints:
// a production route plus its parameter set.
type ProcessRequest struct {
	ProcessRoute string `json:"process_route"`
	routes.Params
}

// AnalyzeResponse is the full LCA assessment for one production route.
type AnalyzeResponse struct {
	ProcessID          string                  `json:"process_id"`
	MetalType          string                  `json:"metal_type"`
	ProcessRoute       string                  `json:"process_route"`
	EnergyConsumption  float64                 `json:"energy_consumption"` // MJ/kg
	CO2Emissions       float64                 `json:"co2_emissions"`      // kg CO2 eq/kg
	WaterUsage         float64                 `json:"water_usage"`        // L/kg
	WasteGeneration    float64                 `json:"waste_generation"`   // kg/kg
	LandUse            float64                 `json:"land_use"`           // m²/kg
	GWP                float64                 `json:"gwp"`                // kg CO2e/tonne
	Acidification      float64                 `json:"acidification_potential"`
	Eutrophication     float64                 `json:"eutrophication_potential"`
	HumanToxicity      float64                 `json:"human_toxicity"`
	CircularityScore   float64                 `json:"circularity_score"`
	RecycledContent    float64                 `json:"recycled_content"`
	ResourceEfficiency float64                 `json:"resource_efficiency"`
	PredictedValues    lca.PredictedParameters `json:"predicted_values"`
	ConfidenceScores   map[string]float64      `json:"confidence_scores"`
}

// CircularityResponse pairs the metrics and opportunities for one graph.
type CircularityResponse struct {
	ProcessID     string                 `json:"process_id"`
	Metrics       circularity.Metrics    `json:"metrics"`
	Opportunities []optimize.Opportunity `json:"opportunities"`
}

// ComparisonEntry is one route's figures inside a comparison response.
type ComparisonEntry struct {
	Process     ProcessRequest      `json:"process"`
	LCA         lca.Metrics         `json:"lca"`
	Circularity circularity.Metrics `json:"circularity"`
}

// ComparisonResponse holds side-by-side assessments of several routes.
type ComparisonResponse struct {
	Comparisons []ComparisonEntry `json:"comparisons"`
}

// MetalInfo describes one supported metal.
type MetalInfo struct {
	Name                 string `json:"name"`
	Symbol               string `json:"symbol"`
	TypicalRecyclingRate string `json:"typical_recycling_rate"`
}

// HealthResponse reports component availability.
type HealthResponse struct {
	Status     string          `json:"status"`
	Version    string          `json:"version"`
	Components map[string]bool `json:"components"`
}
