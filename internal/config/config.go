package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the lookup pipeline.
//
// Fields:
// - Env: The current environment (local, development, production).
// - Address: The demonstration address the pipeline resolves.
// - APIKey: The Google API key used for geocoding and places (required).
// - Radius: The nearby search radius in meters.
// - PlaceType: The nearby search category.
// - Interval: The duration between runs; zero runs the pipeline once and exits.
// - Port: The port for the monitoring server (interval mode only).
// - Database: Optional PostgreSQL configuration for lookup history.
type Config struct {
	Env       string         // Env is the current environment: local, development, production.
	Address   string         // Address is the demonstration address to look up.
	APIKey    string         // APIKey is the Google API key for geocoding and places.
	Radius    uint           // Radius is the nearby search radius in meters.
	PlaceType string         // PlaceType is the nearby search category.
	Interval  time.Duration  // Interval between runs; zero means run once and exit.
	Port      int            // Port is the monitoring server port.
	Database  PostgresConfig // Database holds the optional postgres configuration.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
// An empty Host disables lookup history entirely.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad reads the configuration from the environment (and an optional
// .env file) and panics on a missing key or a malformed value.
func MustLoad() *Config {
	_ = godotenv.Load()

	// The Google key has no useful default: a run without it can never
	// succeed, so it fails loudly at startup instead.
	apiKey := os.Getenv("GEOSCOUT_API_KEY")
	if apiKey == "" {
		panic("GEOSCOUT_API_KEY is required")
	}

	interval, err := time.ParseDuration(setDefaultEnv("GEOSCOUT_INTERVAL", "0s"))
	if err != nil {
		panic("failed to parse interval from configuration")
	}

	healthPort, err := strconv.Atoi(setDefaultEnv("GEOSCOUT_HEALTH_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	radius, err := strconv.ParseUint(setDefaultEnv("GEOSCOUT_RADIUS", "1500"), 10, 32)
	if err != nil {
		panic("failed to parse radius from configuration, must be an integer")
	}

	return &Config{
		Env:       setDefaultEnv("GEOSCOUT_ENV", "production"),
		Address:   setDefaultEnv("GEOSCOUT_ADDRESS", "Times Square, New York"),
		APIKey:    apiKey,
		Radius:    uint(radius),
		PlaceType: setDefaultEnv("GEOSCOUT_PLACE_TYPE", "restaurant"),
		Interval:  interval,
		Port:      healthPort,
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     setDefaultEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
