package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"geoscout/internal/models"
)

// OpenMeteoBaseURL is the Open-Meteo forecast endpoint.
const OpenMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrNoCurrentWeather is returned when the response carries no current_weather payload.
var ErrNoCurrentWeather = errors.New("open-meteo API returned no current weather")

// OpenMeteoSource fetches current conditions from the Open-Meteo API.
// The API is free and keyless; it reports temperature in Celsius and
// wind speed in km/h, which map directly onto models.WeatherReading.
type OpenMeteoSource struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the Open-Meteo API
	log     *slog.Logger // Logger for logging operations
}

// openMeteoResponse is the subset of the forecast payload this source reads.
type openMeteoResponse struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
	} `json:"current_weather"`
}

// NewOpenMeteoSource creates a source backed by a default HTTP client.
func NewOpenMeteoSource(log *slog.Logger) *OpenMeteoSource {
	const timeout = 10
	return &OpenMeteoSource{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: OpenMeteoBaseURL,
		log:     log,
	}
}

// NewOpenMeteoSourceWithClient allows injecting a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewOpenMeteoSourceWithClient(client HTTPClient, log *slog.Logger) *OpenMeteoSource {
	return &OpenMeteoSource{client: client, baseURL: OpenMeteoBaseURL, log: log}
}

// Current fetches the current weather at the given coordinates.
func (oms *OpenMeteoSource) Current(ctx context.Context, coords models.Coordinates) (*models.WeatherReading, error) {
	oms.log.DebugContext(ctx, "Fetching current weather", "lat", coords.Latitude, "lng", coords.Longitude)

	reqURL, err := url.Parse(oms.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	query.Set("current_weather", "true")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := oms.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		oms.log.ErrorContext(ctx, "Open-Meteo API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("open-meteo API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result openMeteoResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode open-meteo response: %w", err)
	}

	if result.CurrentWeather == nil {
		return nil, ErrNoCurrentWeather
	}

	oms.log.DebugContext(ctx, "Open-Meteo found result",
		"temperature", result.CurrentWeather.Temperature, "windspeed", result.CurrentWeather.WindSpeed)

	return &models.WeatherReading{
		TemperatureC: result.CurrentWeather.Temperature,
		WindSpeedKmh: result.CurrentWeather.WindSpeed,
	}, nil
}
