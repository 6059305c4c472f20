package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// Service answers gateway lookups from the configured providers and records
// every served lookup in the store.
type Service struct {
	store     Store
	providers []Provider
	now       func() time.Time
}

// NewService creates a new Service. Providers are tried in order.
func NewService(store Store, providers []Provider) *Service {
	return &Service{
		store:     store,
		providers: providers,
		now:       time.Now,
	}
}

// Current fetches current conditions for city. The first provider that answers
// wins. ErrCityNotFound from a provider is authoritative and ends the lookup;
// any other provider error falls through to the next provider.
func (s *Service) Current(ctx context.Context, city, requestID string) (Payload, error) {
	if len(s.providers) == 0 {
		log.Printf("ERROR: No providers available to look up %q", city)
		return Payload{}, fmt.Errorf("no weather providers configured")
	}

	var lastErr error
	for _, p := range s.providers {
		payload, err := p.Current(ctx, city)
		if err == nil {
			s.record(requestID, city, p.Name(), http.StatusOK)
			return payload, nil
		}
		if errors.Is(err, ErrCityNotFound) {
			s.record(requestID, city, p.Name(), http.StatusNotFound)
			return Payload{}, err
		}

		log.Printf("provider %s lookup failed for %q: %v", p.Name(), city, err)
		lastErr = fmt.Errorf("%s: %w", p.Name(), err)
	}

	s.record(requestID, city, "", http.StatusBadGateway)
	return Payload{}, lastErr
}

// History delegates to the underlying store.
func (s *Service) History(city string) ([]LookupRecord, error) {
	return s.store.Recent(city)
}

// Prune drops lookup records that fell out of the retention window.
func (s *Service) Prune() int {
	return s.store.Prune(s.now())
}

func (s *Service) record(requestID, city, provider string, status int) {
	if s.store == nil {
		return
	}
	s.store.Record(LookupRecord{
		RequestID: requestID,
		City:      strings.TrimSpace(city),
		Provider:  provider,
		Status:    status,
		Timestamp: s.now().UTC(),
	})
}
