package places

import (
	"context"

	"geoscout/internal/models"
)

// Finder searches for points of interest around a coordinate.
type Finder interface {
	Nearby(ctx context.Context, coords models.Coordinates) ([]models.Place, error)
}
