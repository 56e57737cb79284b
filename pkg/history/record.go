// Package history persists completed LCA analyses to PostgreSQL so past
// assessments can be listed and compared. The engine itself never depends on
// this package; the server wires it in when a database URL is configured.
package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/carbonloop/metallca/pkg/lca"
	"github.com/carbonloop/metallca/pkg/routes"
)

// Record is one stored analysis: the caller's inputs plus the headline
// results. Raw input and result payloads are kept as JSON for auditing.
type Record struct {
	ID                 uuid.UUID `json:"id"`
	ProcessID          string    `json:"process_id"`
	MetalType          string    `json:"metal_type"`
	ProcessRoute       string    `json:"process_route"`
	ProductionCapacity float64   `json:"production_capacity"`
	EnergySource       string    `json:"energy_source"`
	ProcessingLocation string    `json:"processing_location"`
	EndOfLifeOption    string    `json:"end_of_life_option"`
	CO2Emissions       float64   `json:"co2_emissions"`
	EnergyConsumption  float64   `json:"energy_consumption"`
	CircularityScore   float64   `json:"circularity_score"`
	CreatedAt          time.Time `json:"created_at"`
	RawInput           []byte    `json:"-"`
	RawResults         []byte    `json:"-"`
}

// NewRecord assembles a Record from an analysis run. CreatedAt is set by the
// database on insert.
func NewRecord(processID string, route routes.Route, params routes.Params, metrics lca.Metrics, circularityScore float64) *Record {
	return &Record{
		ID:                 uuid.New(),
		ProcessID:          processID,
		MetalType:          params.MetalType,
		ProcessRoute:       string(route),
		ProductionCapacity: params.ProductionCapacity,
		EnergySource:       params.EnergySource,
		ProcessingLocation: params.ProcessingLocation,
		EndOfLifeOption:    params.EndOfLifeOption,
		CO2Emissions:       metrics.CO2Emissions,
		EnergyConsumption:  metrics.EnergyConsumption,
		CircularityScore:   circularityScore,
	}
}
