package weather_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"geoscout/internal/models"
	"geoscout/internal/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestOpenMeteoSource_Current(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	coords := models.Coordinates{Latitude: 40.758, Longitude: -73.9855}

	t.Run("successfull fetch", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				// Verify request parameters
				assert.Equal(t, "GET", req.Method)
				assert.Contains(t, req.URL.String(), weather.OpenMeteoBaseURL)
				assert.Equal(t, "40.758", req.URL.Query().Get("latitude"))
				assert.Equal(t, "-73.9855", req.URL.Query().Get("longitude"))
				assert.Equal(t, "true", req.URL.Query().Get("current_weather"))
				assert.Equal(t, "application/json", req.Header.Get("Accept"))

				responseBody := `{"current_weather":{"temperature":21.3,"windspeed":11.9,"winddirection":250,"weathercode":3}}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		source := weather.NewOpenMeteoSourceWithClient(mockClient, logger)
		reading, err := source.Current(ctx, coords)

		require.NoError(t, err)
		require.NotNil(t, reading)
		assert.InEpsilon(t, 21.3, reading.TemperatureC, 0.0001)
		assert.InEpsilon(t, 11.9, reading.WindSpeedKmh, 0.0001)
	})

	t.Run("missing current_weather payload", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{"latitude":40.758,"longitude":-73.9855}`)),
				}, nil
			},
		}

		source := weather.NewOpenMeteoSourceWithClient(mockClient, logger)
		reading, err := source.Current(ctx, coords)

		require.Error(t, err)
		assert.Nil(t, reading)
		assert.ErrorIs(t, err, weather.ErrNoCurrentWeather)
	})

	t.Run("non-200 status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusBadRequest,
					Body:       io.NopCloser(bytes.NewBufferString(`{"reason":"Latitude must be in range"}`)),
				}, nil
			},
		}

		source := weather.NewOpenMeteoSourceWithClient(mockClient, logger)
		reading, err := source.Current(ctx, coords)

		require.Error(t, err)
		assert.Nil(t, reading)
		assert.ErrorContains(t, err, "status 400")
	})

	t.Run("malformed response body", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`not json`)),
				}, nil
			},
		}

		source := weather.NewOpenMeteoSourceWithClient(mockClient, logger)
		reading, err := source.Current(ctx, coords)

		require.Error(t, err)
		assert.Nil(t, reading)
		assert.ErrorContains(t, err, "failed to decode")
	})

	t.Run("network error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		source := weather.NewOpenMeteoSourceWithClient(mockClient, logger)
		reading, err := source.Current(ctx, coords)

		require.Error(t, err)
		assert.Nil(t, reading)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
