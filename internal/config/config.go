package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Dataset files, loaded once at startup.
	ClimateDataPath  string
	RainfallDataPath string

	CORSAllowedOrigins []string
	StatsCacheTTL      time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment take precedence over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env file: %w", err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	statsCacheTTL, err := time.ParseDuration(sharedcfg.EnvOrDefault("STATS_CACHE_TTL", "10m"))
	if err != nil || statsCacheTTL <= 0 {
		return nil, errors.New("invalid STATS_CACHE_TTL")
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ClimateDataPath:  sharedcfg.EnvOrDefault("CLIMATE_DATA_PATH", "data/DailyDelhiClimateTest.csv"),
		RainfallDataPath: sharedcfg.EnvOrDefault("RAINFALL_DATA_PATH", "data/district_wise_rainfall_normal.csv"),

		CORSAllowedOrigins: parseList(sharedcfg.EnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		StatsCacheTTL:      statsCacheTTL,
	}

	if strings.TrimSpace(cfg.ClimateDataPath) == "" {
		return nil, errors.New("CLIMATE_DATA_PATH is required")
	}
	if strings.TrimSpace(cfg.RainfallDataPath) == "" {
		return nil, errors.New("RAINFALL_DATA_PATH is required")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return nil, errors.New("CORS_ALLOWED_ORIGINS must name at least one origin")
	}

	return cfg, nil
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
