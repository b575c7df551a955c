package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"geoscout/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleAPIClient is the subset of the Google Maps client used for geocoding.
// Narrowed to an interface so tests can substitute a mock.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ErrEmptyResponse is returned when the geocoder reports success but carries no results.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

// GoogleProvider geocodes addresses through the Google Maps Geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// NewGoogleProvider wraps an existing Google Maps API client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode resolves the given address and returns the first result's location.
// Provider-reported failure statuses (OVER_QUERY_LIMIT, REQUEST_DENIED, ...)
// surface as errors from the maps client; a success status with zero results
// yields ErrEmptyResponse.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	req := maps.GeocodingRequest{Address: address}
	results, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrEmptyResponse
	}
	loc := results[0].Geometry.Location

	return &models.Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}
