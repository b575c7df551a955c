package repository

import (
	"context"
	"fmt"

	"geoscout/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database is the subset of pgxpool.Pool methods the repository uses.
// pgxmock implements the same methods, so tests run without a server.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// NewDatabase opens a pgx connection pool and verifies it with a ping.
func NewDatabase(ctx context.Context, host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, password, host, port, name)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the lookups table if it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS lookups (
			id BIGSERIAL PRIMARY KEY,
			address TEXT NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			places_found INT NOT NULL,
			temperature_c DOUBLE PRECISION,
			wind_speed_kmh DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	_, err := r.db.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create lookups table: %w", err)
	}

	return nil
}

// SaveLookup stores the outcome of one pipeline run. The weather columns
// stay NULL when the weather stage failed.
func (r *Repository) SaveLookup(ctx context.Context, lookup models.Lookup) error {
	query := `
		INSERT INTO lookups (address, latitude, longitude, places_found, temperature_c, wind_speed_kmh)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	var temperature, windSpeed *float64
	if lookup.Weather != nil {
		temperature = &lookup.Weather.TemperatureC
		windSpeed = &lookup.Weather.WindSpeedKmh
	}

	_, err := r.db.Exec(ctx, query,
		lookup.Address,
		lookup.Coordinates.Latitude,
		lookup.Coordinates.Longitude,
		lookup.PlacesFound,
		temperature,
		windSpeed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lookup: %w", err)
	}

	r.log.DebugContext(ctx, "Lookup stored", "address", lookup.Address, "places", lookup.PlacesFound)

	return nil
}
