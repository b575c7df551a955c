package geocoding

import (
	"context"

	"geoscout/internal/models"
)

// Provider resolves a free-text address into geographic coordinates.
// Implementations return a wrapped error when the upstream API fails or
// reports a non-success status; the caller decides how to surface it.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}
