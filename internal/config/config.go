// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at start-up
type Config struct {
	Port        string
	Environment string

	Database  DatabaseConfig
	Log       LogConfig
	Telemetry TelemetryConfig

	// GenreRelationshipsPath optionally points at a JSON or YAML file that
	// replaces the built-in similarity table
	GenreRelationshipsPath string

	DefaultRecommendations int
	MaxRecommendations     int
	RequestTimeout         time.Duration
	GzipEnabled            bool
}

// DatabaseConfig holds connection settings for the books store
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string
	File  string
}

// TelemetryConfig holds OpenTelemetry settings
type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	SamplingRate float64
}

// LoadDotEnv loads a .env file if one exists. A missing file is not an error.
func LoadDotEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "5000"),
		Environment: os.Getenv("ENVIRONMENT"),
		Database: DatabaseConfig{
			URL:             databaseURL(),
			MaxOpenConns:    getIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationOrDefault("DB_CONN_MAX_LIFETIME", time.Hour),
			SlowThreshold:   getDurationOrDefault("DB_SLOW_THRESHOLD", 200*time.Millisecond),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
			File:  getEnvOrDefault("LOG_FILE", "recommender.log"),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getBoolOrDefault("OTEL_ENABLED", false),
			OTLPEndpoint: getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			SamplingRate: getFloatOrDefault("OTEL_SAMPLING_RATE", 1.0),
		},
		GenreRelationshipsPath: os.Getenv("GENRE_RELATIONSHIPS_PATH"),
		DefaultRecommendations: getIntOrDefault("DEFAULT_RECOMMENDATIONS", 5),
		MaxRecommendations:     getIntOrDefault("MAX_RECOMMENDATIONS", 50),
		RequestTimeout:         getDurationOrDefault("REQUEST_TIMEOUT", 10*time.Second),
		GzipEnabled:            getBoolOrDefault("GZIP_ENABLED", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later in confusing ways
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.DefaultRecommendations <= 0 {
		return fmt.Errorf("DEFAULT_RECOMMENDATIONS must be positive, got %d", c.DefaultRecommendations)
	}
	if c.MaxRecommendations < c.DefaultRecommendations {
		return fmt.Errorf("MAX_RECOMMENDATIONS (%d) must be >= DEFAULT_RECOMMENDATIONS (%d)",
			c.MaxRecommendations, c.DefaultRecommendations)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.Telemetry.SamplingRate < 0 || c.Telemetry.SamplingRate > 1 {
		return fmt.Errorf("OTEL_SAMPLING_RATE must be within [0,1], got %v", c.Telemetry.SamplingRate)
	}
	return nil
}

// IsDevelopment reports whether the deployment label marks a dev environment
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Environment)
	return env == "" || env == "development" || env == "dev" || env == "local"
}

// databaseURL prefers DATABASE_URL and falls back to individual components
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnvOrDefault("DB_HOST", "localhost")
	port := getEnvOrDefault("DB_PORT", "5432")
	user := getEnvOrDefault("DB_USER", "postgres")
	password := getEnvOrDefault("DB_PASSWORD", "")
	dbname := getEnvOrDefault("DB_NAME", "bookwise")
	sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
