package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// ClientConfig configures the weather CLI.
type ClientConfig struct {
	GatewayURL  string        `yaml:"gatewayURL" validate:"required,url"`
	DefaultCity string        `yaml:"defaultCity"`
	Unit        string        `yaml:"unit" validate:"omitempty,oneof=C F c f celsius fahrenheit"`
	Timeout     time.Duration `yaml:"timeout" validate:"gte=0"`
}

func defaultClientConfig() ClientConfig {
	return ClientConfig{
		GatewayURL:  "http://127.0.0.1:8000",
		DefaultCity: "Nairobi",
		Unit:        "C",
		Timeout:     10 * time.Second,
	}
}

// LoadClient reads the YAML file at path on top of the defaults. A missing file
// is not an error; WEATHER_GATEWAY_URL overrides the file.
func LoadClient(path string) (*ClientConfig, error) {
	cfg := defaultClientConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read client config: %w", err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return nil, fmt.Errorf("parse client config: %w", err)
			}
		}
	}

	if v := os.Getenv("WEATHER_GATEWAY_URL"); v != "" {
		cfg.GatewayURL = v
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}
	return &cfg, nil
}

// PreferredUnit parses the configured unit, defaulting to Celsius.
func (c ClientConfig) PreferredUnit() weather.Unit {
	u, _ := weather.ParseUnit(c.Unit)
	return u
}
