package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// Option tweaks a provider after construction.
type Option func(*settings)

type settings struct {
	baseURL string
	backoff *BackoffConfig
}

// WithBaseURL points the provider at a different endpoint.
func WithBaseURL(u string) Option {
	return func(s *settings) { s.baseURL = u }
}

// WithBackoff replaces the default retry policy.
func WithBackoff(b BackoffConfig) Option {
	return func(s *settings) { s.backoff = &b }
}

func applyOptions(defaultURL string, client *http.Client, opts []Option) (string, HTTPClientConfig) {
	s := settings{baseURL: defaultURL}
	for _, o := range opts {
		o(&s)
	}
	cfg := defaultHTTPConfig(client)
	if s.backoff != nil {
		cfg.Backoff = *s.backoff
	}
	return s.baseURL, cfg
}

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
// Its response already has the gateway payload shape.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts ...Option) *OpenWeatherProvider {
	baseURL, httpCfg := applyOptions("https://api.openweathermap.org/data/2.5/weather", client, opts)
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) Current(ctx context.Context, city string) (weather.Payload, error) {
	if p.apiKey == "" {
		return weather.Payload{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("q", city)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Payload{}, err
	}
	defer resp.Body.Close()

	var payload weather.Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Payload{}, err
	}
	if !payload.Valid() {
		return weather.Payload{}, weather.ErrInvalidPayload
	}

	return payload, nil
}
