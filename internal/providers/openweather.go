package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/city-weather/internal/weather"
)

const defaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherProvider creates a provider for the current-weather endpoint.
// An empty baseURL selects the public API.
func NewOpenWeatherProvider(client *http.Client, apiKey, baseURL string, maxRetries int) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = defaultOpenWeatherURL
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(maxRetries),
		},
		circuit: newCircuitBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// FetchWeather looks the city up by name. Unknown cities come back as a
// plain ErrFetchFailed like any other failure.
func (p *OpenWeatherProvider) FetchWeather(ctx context.Context, city string, units weather.UnitSystem) (weather.Observation, error) {
	if p.apiKey == "" {
		return weather.Observation{}, fmt.Errorf("%w: openweather api key is not configured", ErrFetchFailed)
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", p.apiKey)
	values.Set("units", string(units))
	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())

	var payload struct {
		Name string `json:"name"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
			Pressure float64 `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	}

	if err := getJSON(ctx, p.httpCfg, p.circuit, u, &payload); err != nil {
		return weather.Observation{}, err
	}
	if len(payload.Weather) == 0 {
		return weather.Observation{}, fmt.Errorf("%w: response has no weather conditions", ErrFetchFailed)
	}

	cond := payload.Weather[0]
	return weather.Observation{
		CityName:        payload.Name,
		Temperature:     payload.Main.Temp,
		WeatherMain:     cond.Main,
		Description:     cond.Description,
		IconCode:        cond.Icon,
		HumidityPercent: payload.Main.Humidity,
		WindSpeed:       payload.Wind.Speed,
		PressureHPa:     payload.Main.Pressure,
		UnitSystem:      units,
	}, nil
}

var _ weather.Provider = (*OpenWeatherProvider)(nil)
