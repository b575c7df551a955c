package repository_test

import (
	"log/slog"
	"regexp"
	"testing"

	"geoscout/internal/models"
	"geoscout/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const createTableQuery = `
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

const insertLookupQuery = `
		INSERT INTO lookups (address, latitude, longitude, places_found, temperature_c, wind_speed_kmh)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

func TestEnsureSchema(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()

	t.Run("error - create table", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(createTableQuery)).
			WillReturnError(assert.AnError)

		err = repo.EnsureSchema(ctx)

		require.Error(t, err)
		require.ErrorContains(t, err, "failed to create lookups table")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - create table", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(createTableQuery)).
			WillReturnResult(pgxmock.NewResult("CREATE", 0))

		err = repo.EnsureSchema(ctx)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSaveLookup(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()

	temperature := 21.3
	windSpeed := 11.9
	lookup := models.Lookup{
		Address:     "Times Square, New York",
		Coordinates: models.Coordinates{Latitude: 40.7580, Longitude: -73.9855},
		PlacesFound: 20,
		Weather:     &models.WeatherReading{TemperatureC: temperature, WindSpeedKmh: windSpeed},
	}

	t.Run("error - insert lookup", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(insertLookupQuery)).
			WithArgs(lookup.Address, 40.7580, -73.9855, 20, &temperature, &windSpeed).
			WillReturnError(assert.AnError)

		err = repo.SaveLookup(ctx, lookup)

		require.Error(t, err)
		require.ErrorContains(t, err, "failed to insert lookup")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - insert lookup", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(insertLookupQuery)).
			WithArgs(lookup.Address, 40.7580, -73.9855, 20, &temperature, &windSpeed).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err = repo.SaveLookup(ctx, lookup)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - insert lookup without weather", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		noWeather := lookup
		noWeather.Weather = nil

		mock.ExpectExec(regexp.QuoteMeta(insertLookupQuery)).
			WithArgs(noWeather.Address, 40.7580, -73.9855, 20, (*float64)(nil), (*float64)(nil)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err = repo.SaveLookup(ctx, noWeather)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
