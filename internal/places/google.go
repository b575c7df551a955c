package places

import (
	"context"
	"fmt"
	"log/slog"

	"geoscout/internal/models"
	"googlemaps.github.io/maps"
)

// SearchAPIClient is the subset of the Google Maps client used for nearby
// search. Narrowed to an interface so tests can substitute a mock.
type SearchAPIClient interface {
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
}

// GoogleFinder lists nearby places through the Google Places Nearby Search
// API. The search radius and place category are fixed at construction.
type GoogleFinder struct {
	client    SearchAPIClient // client is the Google Maps API client
	radius    uint            // radius is the search radius in meters
	placeType maps.PlaceType  // placeType restricts results to one category
	log       *slog.Logger    // log is the logger for logging operations
}

// NewGoogleFinder wraps an existing Google Maps API client.
func NewGoogleFinder(client SearchAPIClient, radius uint, placeType string, log *slog.Logger) *GoogleFinder {
	return &GoogleFinder{
		client:    client,
		radius:    radius,
		placeType: maps.PlaceType(placeType),
		log:       log,
	}
}

// Nearby returns the places around coords in the provider's ranking order.
// Zero results is not an error: the provider reports ZERO_RESULTS as a
// successful search, so the caller gets an empty slice.
func (gf *GoogleFinder) Nearby(ctx context.Context, coords models.Coordinates) ([]models.Place, error) {
	gf.log.DebugContext(ctx, "Searching nearby places",
		"lat", coords.Latitude, "lng", coords.Longitude, "radius", gf.radius, "type", string(gf.placeType))

	req := maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: coords.Latitude, Lng: coords.Longitude},
		Radius:   gf.radius,
		Type:     gf.placeType,
	}
	resp, err := gf.client.NearbySearch(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to search nearby places: %w", err)
	}

	found := make([]models.Place, 0, len(resp.Results))
	for _, result := range resp.Results {
		found = append(found, models.Place{Name: result.Name, Vicinity: result.Vicinity})
	}

	return found, nil
}
