package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/i474232898/city-weather/internal/weather"
)

// RateLimitedWeatherProvider wraps a weather.Provider with a shared rate limit,
// keeping all sessions together under the upstream API quota.
type RateLimitedWeatherProvider struct {
	provider weather.Provider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedWeatherProvider allows rps requests per second with the given burst.
func NewRateLimitedWeatherProvider(provider weather.Provider, rps float64, burst int) *RateLimitedWeatherProvider {
	return &RateLimitedWeatherProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

// FetchWeather waits for the limiter before forwarding to the wrapped provider.
func (r *RateLimitedWeatherProvider) FetchWeather(ctx context.Context, city string, units weather.UnitSystem) (weather.Observation, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return weather.Observation{}, fmt.Errorf("%w: rate limit wait canceled: %v", ErrFetchFailed, err)
	}
	return r.provider.FetchWeather(ctx, city, units)
}

func (r *RateLimitedWeatherProvider) Name() string {
	return r.name
}

var _ weather.Provider = (*RateLimitedWeatherProvider)(nil)
