package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"geoscout/internal/config"
	"geoscout/internal/geocoding"
	"geoscout/internal/metrics"
	"geoscout/internal/places"
	"geoscout/internal/repository"
	"geoscout/internal/service"
	"geoscout/internal/weather"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"googlemaps.github.io/maps"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for application metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// One Google Maps client serves both the geocoder and the place finder.
	mapsClient, err := maps.NewClient(maps.WithAPIKey(cfg.APIKey))
	if err != nil {
		log.Fatalf("Failed to create Google Maps client: %v", err)
	}

	// Lookup history is optional: without DB_HOST a run leaves no state behind.
	var repo repository.Interface
	var pool *pgxpool.Pool
	if cfg.Database.Host != "" {
		pool, err = repository.NewDatabase(
			ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		defer pool.Close()

		pgRepo := repository.NewRepository(pool, logger)
		if err = pgRepo.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to prepare lookup history schema: %v", err)
		}
		repo = pgRepo
	} else {
		logger.InfoContext(ctx, "Lookup history disabled, no database configured")
	}

	// Init the lookup service with the three providers.
	lookupService := service.NewLookupService(
		logger,
		os.Stdout,
		repo,
		geocoding.NewGoogleProvider(mapsClient, logger),
		places.NewGoogleFinder(mapsClient, cfg.Radius, cfg.PlaceType, logger),
		weather.NewOpenMeteoSource(logger),
		appMetrics,
		cfg.Address,
		cfg.Interval,
	)

	logger.InfoContext(ctx, "Application started.", "address", cfg.Address, "interval", cfg.Interval)

	if cfg.Interval > 0 {
		// Long-running mode gets the monitoring endpoints; a single-shot run does not.
		go startMonitoringServer(ctx, logger, reg, pool, cfg.Port)

		go lookupService.Run(ctx)

		// Wait for the context to be canceled (e.g., by Ctrl+C).
		<-ctx.Done()
		logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")
	} else {
		lookupService.Run(ctx)
	}

	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// startMonitoringServer starts an HTTP server that provides health check and
// metrics endpoints. The health check pings the database only when lookup
// history is enabled.
func startMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	pool *pgxpool.Pool,
	port int,
) {
	http.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if pool != nil {
			if err := pool.Ping(ctx); err != nil {
				status, body = http.StatusServiceUnavailable, "DB ping failed"
			}
		}
		writer.WriteHeader(status)
		_, err := writer.Write([]byte(body))
		if err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}
	})
	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      http.DefaultServeMux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envLocal:
		logger = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		logger = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelWarn,
			}),
		)
	default:
		logger = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelError,
			}),
		)

		logger.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return logger
}
