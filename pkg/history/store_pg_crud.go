package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrRecordNotFound is returned when no analysis exists for the given id.
var ErrRecordNotFound = errors.New("analysis record not found")

const recordColumns = `
	id, process_id, metal_type, process_route, production_capacity,
	energy_source, processing_location, end_of_life_option,
	co2_emissions, energy_consumption, circularity_score, created_at
`

// StoreAnalysis persists one completed analysis.
func (s *PGStore) StoreAnalysis(ctx context.Context, rec *Record) error {
	query := `
		INSERT INTO lca_analyses (
			id, process_id, metal_type, process_route, production_capacity,
			energy_source, processing_location, end_of_life_option,
			co2_emissions, energy_consumption, circularity_score,
			raw_input, raw_results
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := s.pool.Exec(ctx, query,
		rec.ID,
		rec.ProcessID,
		rec.MetalType,
		rec.ProcessRoute,
		rec.ProductionCapacity,
		rec.EnergySource,
		rec.ProcessingLocation,
		rec.EndOfLifeOption,
		rec.CO2Emissions,
		rec.EnergyConsumption,
		rec.CircularityScore,
		rec.RawInput,
		rec.RawResults,
	)
	if err != nil {
		return fmt.Errorf("failed to store analysis: %w", err)
	}
	return nil
}

// GetAnalysis retrieves one analysis by id.
func (s *PGStore) GetAnalysis(ctx context.Context, id uuid.UUID) (*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM lca_analyses WHERE id = $1`

	rec := &Record{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.ProcessID,
		&rec.MetalType,
		&rec.ProcessRoute,
		&rec.ProductionCapacity,
		&rec.EnergySource,
		&rec.ProcessingLocation,
		&rec.EndOfLifeOption,
		&rec.CO2Emissions,
		&rec.EnergyConsumption,
		&rec.CircularityScore,
		&rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return rec, nil
}

// ListAnalyses returns the most recent analyses, newest first.
func (s *PGStore) ListAnalyses(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + recordColumns + ` FROM lca_analyses ORDER BY created_at DESC LIMIT $1`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec := &Record{}
		if err := rows.Scan(
			&rec.ID,
			&rec.ProcessID,
			&rec.MetalType,
			&rec.ProcessRoute,
			&rec.ProductionCapacity,
			&rec.EnergySource,
			&rec.ProcessingLocation,
			&rec.EndOfLifeOption,
			&rec.CO2Emissions,
			&rec.EnergyConsumption,
			&rec.CircularityScore,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read analysis rows: %w", err)
	}
	return records, nil
}
