package repository

import (
	"context"
	"log/slog"

	"geoscout/internal/models"
)

// Repository persists lookup history to Postgres.
// The store is optional: the pipeline runs without it when no database is
// configured, in which case nothing is retained between runs.
type Repository struct {
	db  Database
	log *slog.Logger
}

// Interface describes the lookup history store used by the pipeline.
type Interface interface {
	EnsureSchema(ctx context.Context) error
	SaveLookup(ctx context.Context, lookup models.Lookup) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
