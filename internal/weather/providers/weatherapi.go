package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/common"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
// Its response is reshaped into the gateway payload.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string, opts ...Option) *WeatherAPIProvider {
	baseURL, httpCfg := applyOptions("https://api.weatherapi.com/v1/current.json", client, opts)
	// WeatherAPI answers 400 (error code 1006) for unknown locations.
	httpCfg.NotFound = func(status int) bool {
		return status == http.StatusNotFound || status == http.StatusBadRequest
	}

	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) Current(ctx context.Context, city string) (weather.Payload, error) {
	if p.apiKey == "" {
		return weather.Payload{}, fmt.Errorf("weatherapi api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("q", city)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Payload{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Location struct {
			Name string `json:"name"`
		} `json:"location"`
		Current *struct {
			TempC     float64 `json:"temp_c"`
			Humidity  float64 `json:"humidity"`
			WindKph   float64 `json:"wind_kph"`
			Condition struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Payload{}, err
	}
	if payload.Current == nil || payload.Current.Condition.Text == "" {
		return weather.Payload{}, weather.ErrInvalidPayload
	}

	text := payload.Current.Condition.Text
	out := weather.Payload{
		Main: &weather.MainBlock{
			Temp:     payload.Current.TempC,
			Humidity: payload.Current.Humidity,
		},
		Weather: []*weather.ConditionEntry{{
			Main:        mapWeatherAPICondition(text),
			Description: strings.ToLower(text),
		}},
		// Convert wind from kph to m/s.
		Wind: &weather.WindBlock{Speed: payload.Current.WindKph / 3.6},
	}
	if name := payload.Location.Name; name != "" {
		out.Name = &name
	}
	return out, nil
}

// mapWeatherAPICondition turns free-text conditions into OpenWeatherMap-style
// "main" groups.
func mapWeatherAPICondition(text string) string {
	switch {
	case common.ContainsAnyFold(text, "thunder", "storm"):
		return "Thunderstorm"
	case common.ContainsAnyFold(text, "snow", "sleet", "blizzard"):
		return "Snow"
	case common.ContainsAnyFold(text, "drizzle"):
		return "Drizzle"
	case common.ContainsAnyFold(text, "rain", "shower"):
		return "Rain"
	case common.ContainsAnyFold(text, "mist", "fog"):
		return "Mist"
	case common.ContainsAnyFold(text, "cloud", "overcast"):
		return "Clouds"
	case common.ContainsAnyFold(text, "sunny", "clear"):
		return "Clear"
	default:
		return text
	}
}
