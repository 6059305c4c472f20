package weather

import (
	"context"
	"time"
)

// Provider abstracts an upstream weather source (e.g. OpenWeatherMap, WeatherAPI).
// Implementations return ErrCityNotFound when the upstream does not know the city.
type Provider interface {
	Name() string
	Current(ctx context.Context, city string) (Payload, error)
}

// LookupRecord describes one lookup served by the gateway.
type LookupRecord struct {
	RequestID string    `json:"requestId"`
	City      string    `json:"city"`
	Provider  string    `json:"provider"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"` // always UTC
}

// Store is the contract the in-memory lookup log must satisfy.
type Store interface {
	Record(rec LookupRecord)
	Recent(city string) ([]LookupRecord, error)
	Prune(now time.Time) int
}
