package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"geoscout/internal/geocoding"
	"geoscout/internal/metrics"
	"geoscout/internal/models"
	"geoscout/internal/places"
	"geoscout/internal/repository"
	"geoscout/internal/weather"
)

// maxShownPlaces caps how many places are printed per run; the total count
// is always printed.
const maxShownPlaces = 3

// LookupService runs the demonstration pipeline: geocode the configured
// address, then search nearby places and fetch current weather for the
// resulting coordinate. The stages run strictly in that order and never
// concurrently; places and weather only run after a successful geocode.
type LookupService struct {
	log      *slog.Logger         // Logger for logging service activities
	out      io.Writer            // Destination for the human-readable outcome lines
	repo     repository.Interface // Optional lookup history store, nil when disabled
	geocoder geocoding.Provider   // Geocoding provider
	finder   places.Finder        // Nearby place finder
	source   weather.Source       // Current weather source
	metrics  *metrics.Metrics     // Metrics for tracking stage outcomes
	address  string               // Address the pipeline looks up
	interval time.Duration        // Interval between runs, zero means a single run
}

// NewLookupService creates a new instance of LookupService. A nil repo
// disables history persistence; everything else is required.
func NewLookupService(
	log *slog.Logger,
	out io.Writer,
	repo repository.Interface,
	geocoder geocoding.Provider,
	finder places.Finder,
	source weather.Source,
	appMetrics *metrics.Metrics,
	address string,
	interval time.Duration,
) *LookupService {
	return &LookupService{
		log:      log,
		out:      out,
		repo:     repo,
		geocoder: geocoder,
		finder:   finder,
		source:   source,
		metrics:  appMetrics,
		address:  address,
		interval: interval,
	}
}

// Run executes the pipeline once when no interval is configured, otherwise
// repeatedly on a ticker until the context is cancelled.
func (ls *LookupService) Run(ctx context.Context) {
	if ls.interval == 0 {
		ls.RunOnce(ctx)
		return
	}

	ticker := time.NewTicker(ls.interval)
	defer ticker.Stop()

	ls.log.InfoContext(ctx, "Lookup service started...", "interval", ls.interval)

	for {
		select {
		case <-ctx.Done():
			ls.log.InfoContext(ctx, "Lookup service stopped.")
			return
		case <-ticker.C:
			ls.RunOnce(ctx)
		}
	}
}

// RunOnce performs one strictly ordered lookup sequence for the configured
// address. Every failure collapses into a printed failure line and an
// absent result; nothing panics and nothing is retried.
func (ls *LookupService) RunOnce(ctx context.Context) {
	coords := ls.geocodeStage(ctx)
	if coords == nil {
		return
	}

	count := ls.placesStage(ctx, *coords)
	reading := ls.weatherStage(ctx, *coords)

	if ls.repo == nil {
		return
	}

	lookup := models.Lookup{
		Address:     ls.address,
		Coordinates: *coords,
		PlacesFound: count,
		Weather:     reading,
	}
	if err := ls.repo.SaveLookup(ctx, lookup); err != nil {
		ls.log.ErrorContext(ctx, "Failed to store lookup", "error", err)
	}
}

// geocodeStage resolves the configured address. It returns nil on failure,
// which ends the run before the dependent stages start.
func (ls *LookupService) geocodeStage(ctx context.Context) *models.Coordinates {
	startTime := time.Now()
	coords, err := ls.geocoder.Geocode(ctx, ls.address)
	ls.metrics.RequestSeconds.WithLabelValues("google-geocoding").Observe(time.Since(startTime).Seconds())

	if err != nil {
		ls.log.ErrorContext(ctx, "Failed to geocode", "address", ls.address, "error", err)
		ls.metrics.StagesProcessed.WithLabelValues("geocode", "failure").Inc()
		ls.metrics.APIErrors.Inc()
		fmt.Fprintf(ls.out, "Geocoding failed for %q: %v\n", ls.address, err)
		return nil
	}

	ls.metrics.StagesProcessed.WithLabelValues("geocode", "success").Inc()
	fmt.Fprintf(ls.out, "Geocoding success for %q: lat=%.4f, lng=%.4f\n",
		ls.address, coords.Latitude, coords.Longitude)

	return coords
}

// placesStage lists nearby places and prints the count plus the first few
// entries. It returns the total count for the history record.
func (ls *LookupService) placesStage(ctx context.Context, coords models.Coordinates) int {
	startTime := time.Now()
	found, err := ls.finder.Nearby(ctx, coords)
	ls.metrics.RequestSeconds.WithLabelValues("google-places").Observe(time.Since(startTime).Seconds())

	if err != nil {
		ls.log.ErrorContext(ctx, "Failed to search nearby places", "error", err)
		ls.metrics.StagesProcessed.WithLabelValues("places", "failure").Inc()
		ls.metrics.APIErrors.Inc()
		fmt.Fprintf(ls.out, "Places search failed: %v\n", err)
		return 0
	}

	ls.metrics.StagesProcessed.WithLabelValues("places", "success").Inc()
	fmt.Fprintf(ls.out, "Places found: %d\n", len(found))
	for idx, place := range found {
		if idx == maxShownPlaces {
			break
		}
		fmt.Fprintf(ls.out, " - %s (%s)\n", place.Name, place.Vicinity)
	}

	return len(found)
}

// weatherStage fetches the current conditions at coords. It returns nil on
// failure so the history record keeps NULL weather columns.
func (ls *LookupService) weatherStage(ctx context.Context, coords models.Coordinates) *models.WeatherReading {
	startTime := time.Now()
	reading, err := ls.source.Current(ctx, coords)
	ls.metrics.RequestSeconds.WithLabelValues("open-meteo").Observe(time.Since(startTime).Seconds())

	if err != nil {
		ls.log.ErrorContext(ctx, "Failed to fetch current weather", "error", err)
		ls.metrics.StagesProcessed.WithLabelValues("weather", "failure").Inc()
		ls.metrics.APIErrors.Inc()
		fmt.Fprintf(ls.out, "Weather lookup failed\n")
		return nil
	}

	ls.metrics.StagesProcessed.WithLabelValues("weather", "success").Inc()
	fmt.Fprintf(ls.out, "Weather: %.1f°C, windspeed %.1f km/h\n", reading.TemperatureC, reading.WindSpeedKmh)

	return reading
}
