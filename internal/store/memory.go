package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/weather-lookup/internal/weather"
)

var (
	// ErrNotFound is returned when no lookups were recorded for a city.
	ErrNotFound = errors.New("no lookups recorded for city")
)

// LookupHistory holds a time-ordered list of lookup records for a city.
type LookupHistory struct {
	Records []weather.LookupRecord
}

// MemoryStore is a concurrency-safe in-memory lookup log.
type MemoryStore struct {
	mu sync.RWMutex

	// key: normalized city, value: history
	data map[string]*LookupHistory

	// retention configuration
	maxHistory int           // max number of records per city
	maxAge     time.Duration // optional max age for records
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*LookupHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// Record appends a lookup record and enforces the count limit.
func (s *MemoryStore) Record(rec weather.LookupRecord) {
	key := cityKey(rec.City)

	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[key]
	if !ok {
		history = &LookupHistory{}
		s.data[key] = history
	}

	history.Records = append(history.Records, rec)

	if s.maxHistory > 0 && len(history.Records) > s.maxHistory {
		over := len(history.Records) - s.maxHistory
		history.Records = history.Records[over:]
	}
}

// Recent returns the records for a city, oldest first.
func (s *MemoryStore) Recent(city string) ([]weather.LookupRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[cityKey(city)]
	if !ok || len(history.Records) == 0 {
		return nil, ErrNotFound
	}

	out := make([]weather.LookupRecord, len(history.Records))
	copy(out, history.Records)
	return out, nil
}

// Prune enforces retention by age and returns the number of dropped records.
// Cities left without records are removed.
func (s *MemoryStore) Prune(now time.Time) int {
	if s.maxAge <= 0 {
		return 0
	}
	cutoff := now.Add(-s.maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for key, history := range s.data {
		i := 0
		for ; i < len(history.Records); i++ {
			if !history.Records[i].Timestamp.Before(cutoff) {
				break
			}
		}
		dropped += i
		history.Records = history.Records[i:]
		if len(history.Records) == 0 {
			delete(s.data, key)
		}
	}
	return dropped
}
