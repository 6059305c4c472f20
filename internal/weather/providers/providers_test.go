package providers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/i474232898/weather-lookup/internal/weather"
)

var fastBackoff = BackoffConfig{
	MaxRetries:      2,
	InitialInterval: time.Millisecond,
	MaxInterval:     5 * time.Millisecond,
}

func TestOpenWeatherCurrent(t *testing.T) {
	var query string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("q")
		if r.URL.Query().Get("units") != "metric" {
			t.Errorf("expected metric units, got %q", r.URL.Query().Get("units"))
		}
		_, _ = w.Write([]byte(`{"main":{"temp":21.5,"humidity":60,"pressure":1012},"weather":[{"id":500,"main":"Rain","description":"light rain"}],"wind":{"speed":3.2},"name":"Nairobi"}`))
	}))
	defer upstream.Close()

	p := NewOpenWeatherProvider(upstream.Client(), "key", WithBaseURL(upstream.URL), WithBackoff(fastBackoff))
	payload, err := p.Current(context.Background(), "Nairobi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query != "Nairobi" {
		t.Fatalf("expected q=Nairobi, got %q", query)
	}

	snap, err := payload.Snapshot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.LocationName != "Nairobi" || snap.ConditionMain != "Rain" || snap.WindSpeedMetersPerSecond != 3.2 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestOpenWeatherNotFoundIsNotRetried(t *testing.T) {
	var hits int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer upstream.Close()

	p := NewOpenWeatherProvider(upstream.Client(), "key", WithBaseURL(upstream.URL), WithBackoff(fastBackoff))
	_, err := p.Current(context.Background(), "Atlantis")
	if !errors.Is(err, weather.ErrCityNotFound) {
		t.Fatalf("expected ErrCityNotFound, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("expected a single upstream call, got %d", hits)
	}
}

func TestOpenWeatherRetriesServerErrors(t *testing.T) {
	var hits int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"main":{"temp":1,"humidity":2},"weather":[{"main":"Clear","description":"clear sky"}]}`))
	}))
	defer upstream.Close()

	p := NewOpenWeatherProvider(upstream.Client(), "key", WithBaseURL(upstream.URL), WithBackoff(fastBackoff))
	if _, err := p.Current(context.Background(), "Nairobi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&hits) != 3 {
		t.Fatalf("expected 3 upstream calls, got %d", hits)
	}
}

func TestOpenWeatherRequiresKey(t *testing.T) {
	p := NewOpenWeatherProvider(http.DefaultClient, "")
	if _, err := p.Current(context.Background(), "Nairobi"); err == nil {
		t.Fatal("expected an error without an api key")
	}
}

func TestWeatherAPICurrent(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "Atlantis" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
			return
		}
		_, _ = w.Write([]byte(`{"location":{"name":"Nairobi"},"current":{"temp_c":21.5,"humidity":60,"wind_kph":36,"condition":{"text":"Patchy light rain"}}}`))
	}))
	defer upstream.Close()

	p := NewWeatherAPIProvider(upstream.Client(), "key", WithBaseURL(upstream.URL), WithBackoff(fastBackoff))

	payload, err := p.Current(context.Background(), "Nairobi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap, err := payload.Snapshot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.ConditionMain != "Rain" || snap.ConditionDescription != "patchy light rain" {
		t.Fatalf("unexpected condition %q / %q", snap.ConditionMain, snap.ConditionDescription)
	}
	if math.Abs(snap.WindSpeedMetersPerSecond-10) > 1e-9 {
		t.Fatalf("expected 10 m/s, got %v", snap.WindSpeedMetersPerSecond)
	}

	if _, err := p.Current(context.Background(), "Atlantis"); !errors.Is(err, weather.ErrCityNotFound) {
		t.Fatalf("expected ErrCityNotFound, got %v", err)
	}
}

func TestMapWeatherAPICondition(t *testing.T) {
	cases := map[string]string{
		"Sunny":                   "Clear",
		"Clear":                   "Clear",
		"Partly cloudy":           "Clouds",
		"Overcast":                "Clouds",
		"Moderate rain":           "Rain",
		"Light drizzle":           "Drizzle",
		"Thundery outbreaks":      "Thunderstorm",
		"Blizzard":                "Snow",
		"Fog":                     "Mist",
		"Something else entirely": "Something else entirely",
	}
	for in, want := range cases {
		if got := mapWeatherAPICondition(in); got != want {
			t.Errorf("mapWeatherAPICondition(%q): expected %q, got %q", in, want, got)
		}
	}
}
