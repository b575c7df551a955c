package weather

import (
	"context"

	"geoscout/internal/models"
)

// Source fetches the current weather conditions at a coordinate.
type Source interface {
	Current(ctx context.Context, coords models.Coordinates) (*models.WeatherReading, error)
}
