package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore handles analysis persistence using PostgreSQL
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a new PostgreSQL-backed analysis store
func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pooling configuration
	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &PGStore{pool: pool}

	// Create tables if they don't exist
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return s, nil
}

// Ping checks database connectivity
func (s *PGStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the database connection pool
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PGStore) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS lca_analyses (
			id UUID PRIMARY KEY,
			process_id TEXT NOT NULL,
			metal_type TEXT NOT NULL,
			process_route TEXT NOT NULL,
			production_capacity DOUBLE PRECISION,
			energy_source TEXT,
			processing_location TEXT,
			end_of_life_option TEXT,
			co2_emissions DOUBLE PRECISION,
			energy_consumption DOUBLE PRECISION,
			circularity_score DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			raw_input JSONB,
			raw_results JSONB
		);
		CREATE INDEX IF NOT EXISTS lca_analyses_process_id_idx ON lca_analyses (process_id);
		CREATE INDEX IF NOT EXISTS lca_analyses_created_at_idx ON lca_analyses (created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to create lca_analyses table: %w", err)
	}
	return nil
}
