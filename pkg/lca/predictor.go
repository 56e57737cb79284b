// Package lca estimates life-cycle impact figures for a production route.
// The estimates are rule-based stand-ins for the regression models the full
// platform trains offline: fixed per-metal baselines adjusted by route,
// energy source, and capacity, with jittered secondary indicators. Model
// training itself is out of scope.
package lca

import (
	"math"
	"math/rand"
	"sync"

	"github.com/carbonloop/metallca/pkg/routes"
)

// Per-metal baselines, kg CO2 eq/kg and MJ/kg.
var (
	baseEmissions = map[string]float64{
		"Aluminium": 12.5,
		"Copper":    8.2,
		"Steel":     2.8,
		"Zinc":      6.1,
		"Lead":      4.3,
	}
	baseEnergy = map[string]float64{
		"Aluminium": 15.2,
		"Copper":    12.8,
		"Steel":     20.1,
		"Zinc":      14.5,
		"Lead":      11.2,
	}
)

// energyMultipliers scale impact by the carbon intensity of the energy source.
var energyMultipliers = map[string]float64{
	"Coal":        1.2,
	"Natural Gas": 0.8,
	"Nuclear":     0.3,
	"Renewable":   0.1,
	"Grid":        1.0,
}

// Recycled-route reductions relative to primary production.
const (
	recycledEmissionFactor = 0.4
	recycledEnergyFactor   = 0.3
)

// Metrics is one LCA estimate for a production route.
type Metrics struct {
	EnergyConsumption       float64 `json:"energy_consumption"`       // MJ/kg
	CO2Emissions            float64 `json:"co2_emissions"`            // kg CO2 eq/kg
	WaterUsage              float64 `json:"water_usage"`              // L/kg
	WasteGeneration         float64 `json:"waste_generation"`         // kg/kg
	LandUse                 float64 `json:"land_use"`                 // m²/kg
	AcidificationPotential  float64 `json:"acidification_potential"`  // kg SO2 eq/tonne
	EutrophicationPotential float64 `json:"eutrophication_potential"` // kg PO4 eq/tonne
	HumanToxicity           float64 `json:"human_toxicity"`           // CTUh
}

// PredictedParameters fills in physical parameters the caller did not supply.
type PredictedParameters struct {
	EnergyConsumption  float64 `json:"energy_consumption"`
	WaterUsage         float64 `json:"water_usage"`
	TemperatureCelsius float64 `json:"temperature_celsius"`
	PressureBar        float64 `json:"pressure_bar"`
	EfficiencyPercent  float64 `json:"efficiency_percent"`
}

// ModelMetrics reports the performance figures of the stand-in models.
type ModelMetrics struct {
	Name     string  `json:"name"`
	MAE      float64 `json:"mae"`
	RMSE     float64 `json:"rmse"`
	R2       float64 `json:"r2"`
	Accuracy float64 `json:"accuracy"`
}

// Predictor produces LCA estimates. Safe for concurrent use.
type Predictor struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a predictor seeded for reproducible jitter. Tests pass a fixed
// seed; the service seeds from the clock via NewDefault.
func New(seed int64) *Predictor {
	return &Predictor{rng: rand.New(rand.NewSource(seed))}
}

// NewDefault creates a predictor with non-deterministic jitter.
func NewDefault() *Predictor {
	return New(rand.Int63())
}

// CalculateMetrics estimates the LCA figures for the given route and
// parameters. The headline figures (energy, CO2) are deterministic in the
// inputs; the secondary indicators carry bounded jitter standing in for
// model variance.
func (p *Predictor) CalculateMetrics(route routes.Route, params routes.Params) Metrics {
	co2 := baseFor(baseEmissions, params.MetalType, 10.0)
	energy := baseFor(baseEnergy, params.MetalType, 15.0)

	if route == routes.RouteRecycled {
		co2 *= recycledEmissionFactor
		energy *= recycledEnergyFactor
	}

	energyFactor, ok := energyMultipliers[params.EnergySource]
	if !ok {
		energyFactor = 1.0
	}
	capacityFactor := params.ProductionCapacity / 1000.0

	return Metrics{
		EnergyConsumption:       round2(energy * capacityFactor * energyFactor),
		CO2Emissions:            round2(co2 * capacityFactor * energyFactor),
		WaterUsage:              round2(p.uniform(100, 300) * capacityFactor),
		WasteGeneration:         round2(p.uniform(5, 25) * capacityFactor),
		LandUse:                 round2(p.uniform(0.1, 2.0) * capacityFactor),
		AcidificationPotential:  round3(p.uniform(0.01, 0.5) * capacityFactor),
		EutrophicationPotential: round3(p.uniform(0.01, 0.3) * capacityFactor),
		HumanToxicity:           round2(p.uniform(0.1, 5.0) * capacityFactor),
	}
}

// metalMultipliers scale predicted parameters by how demanding the metal is
// to process.
var metalMultipliers = map[string]float64{
	"Aluminium": 1.2,
	"Copper":    0.9,
	"Steel":     1.1,
	"Zinc":      0.8,
	"Lead":      0.7,
}

// PredictMissingParameters estimates the physical parameters a caller left
// blank, scaled sublinearly with capacity.
func (p *Predictor) PredictMissingParameters(route routes.Route, params routes.Params) PredictedParameters {
	multiplier, ok := metalMultipliers[params.MetalType]
	if !ok {
		multiplier = 1.0
	}
	if route == routes.RouteRecycled {
		multiplier *= 0.6
	}

	capacity := params.ProductionCapacity
	if capacity <= 0 {
		capacity = 1000
	}
	capacityFactor := math.Pow(capacity/1000.0, 0.8)

	return PredictedParameters{
		EnergyConsumption:  round2(multiplier * capacityFactor * p.uniform(80, 120)),
		WaterUsage:         round2(multiplier * capacityFactor * p.uniform(150, 250)),
		TemperatureCelsius: round1(p.uniform(750, 950)),
		PressureBar:        round2(p.uniform(1.0, 2.5)),
		EfficiencyPercent:  round1(p.uniform(75, 95)),
	}
}

// ModelPerformance returns the fixed performance table of the stand-in
// models, as reported by the original training runs.
func ModelPerformance() []ModelMetrics {
	return []ModelMetrics{
		{Name: "energy_consumption", MAE: 2.1, RMSE: 3.8, R2: 0.89, Accuracy: 91.2},
		{Name: "co2_emissions", MAE: 1.5, RMSE: 2.4, R2: 0.94, Accuracy: 93.7},
		{Name: "water_usage", MAE: 8.3, RMSE: 12.1, R2: 0.87, Accuracy: 88.9},
		{Name: "waste_generation", MAE: 0.8, RMSE: 1.2, R2: 0.82, Accuracy: 85.4},
	}
}

func (p *Predictor) uniform(lo, hi float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return lo + p.rng.Float64()*(hi-lo)
}

func baseFor(table map[string]float64, metal string, fallback float64) float64 {
	if v, ok := table[metal]; ok {
		return v
	}
	return fallback
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
