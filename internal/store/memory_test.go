package store

import (
	"errors"
	"testing"
	"time"

	"github.com/i474232898/weather-lookup/internal/weather"
)

func TestRecordAndRecent(t *testing.T) {
	s := NewMemoryStore(2, time.Hour)
	now := time.Now().UTC()

	for i, id := range []string{"a", "b", "c"} {
		s.Record(weather.LookupRecord{RequestID: id, City: "Nairobi", Timestamp: now.Add(time.Duration(i) * time.Second)})
	}

	got, err := s.Recent(" nairobi ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].RequestID != "b" || got[1].RequestID != "c" {
		t.Fatalf("expected the two newest records, got %+v", got)
	}

	if _, err := s.Recent("Mombasa"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPrune(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)
	now := time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC)

	s.Record(weather.LookupRecord{RequestID: "old", City: "Nairobi", Timestamp: now.Add(-2 * time.Hour)})
	s.Record(weather.LookupRecord{RequestID: "new", City: "Nairobi", Timestamp: now.Add(-time.Minute)})
	s.Record(weather.LookupRecord{RequestID: "gone", City: "Mombasa", Timestamp: now.Add(-3 * time.Hour)})

	if n := s.Prune(now); n != 2 {
		t.Fatalf("expected 2 pruned records, got %d", n)
	}

	got, err := s.Recent("Nairobi")
	if err != nil || len(got) != 1 || got[0].RequestID != "new" {
		t.Fatalf("unexpected records after prune: %+v (%v)", got, err)
	}
	if _, err := s.Recent("Mombasa"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected Mombasa to be dropped, got %v", err)
	}
}

func TestPruneWithoutMaxAge(t *testing.T) {
	s := NewMemoryStore(0, 0)
	s.Record(weather.LookupRecord{City: "Nairobi", Timestamp: time.Unix(0, 0)})
	if n := s.Prune(time.Now()); n != 0 {
		t.Fatalf("expected nothing pruned, got %d", n)
	}
}
