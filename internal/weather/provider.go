package weather

import "context"

// Provider abstracts a current-weather data source (e.g. OpenWeatherMap).
// Unit conversion is the provider's job; observations come back in units.
type Provider interface {
	Name() string
	FetchWeather(ctx context.Context, city string, units UnitSystem) (Observation, error)
}
