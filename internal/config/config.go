package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

// GatewayConfig configures the weather-gateway service.
type GatewayConfig struct {
	Port string `validate:"required,numeric"`

	// Upstream selects the primary provider; the other one, if it has a key,
	// is used as a fallback.
	Upstream          string `validate:"oneof=openweather weatherapi"`
	OpenWeatherAPIKey string
	WeatherAPIKey     string

	HTTPTimeout time.Duration `validate:"gt=0"`

	// Lookup log retention.
	LookupLogMaxHistory    int           // max number of records per city (0 = unlimited)
	LookupLogMaxAge        time.Duration // max age of records (0 = unlimited)
	LookupLogSweepInterval time.Duration `validate:"gt=0"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*GatewayConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &GatewayConfig{}

	cfg.Port = getenvDefault("PORT", "8000")
	cfg.Upstream = getenvDefault("UPSTREAM_PROVIDER", "openweather")
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	cfg.LookupLogMaxHistory = getenvInt("LOOKUP_LOG_MAX_HISTORY", 50)
	if cfg.LookupLogMaxAge, err = getenvDuration("LOOKUP_LOG_MAX_AGE", "24h"); err != nil {
		return nil, err
	}
	if cfg.LookupLogSweepInterval, err = getenvDuration("LOOKUP_LOG_SWEEP_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid gateway config: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
