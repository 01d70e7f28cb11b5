package datasource

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"world-dashboard/models"
)

// RateLimitedProvider wraps a WeatherForecaster so that current and forecast requests
// share one limiter. Upstream quotas are counted per API key, not per endpoint.
type RateLimitedProvider struct {
	provider WeatherForecaster
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedProvider creates a new rate limited provider
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second)
// burst is the maximum burst size allowed
func NewRateLimitedProvider(provider WeatherForecaster, rps float64, burst int) *RateLimitedProvider {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

// GetWeather implements WeatherProvider interface with rate limiting
func (r *RateLimitedProvider) GetWeather(ctx context.Context, city models.City) (models.CurrentConditions, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.CurrentConditions{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.GetWeather(ctx, city)
}

// FetchForecast implements ForecastSource interface with rate limiting
func (r *RateLimitedProvider) FetchForecast(ctx context.Context, city models.City) ([]models.ForecastEntry, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.FetchForecast(ctx, city)
}

// Name returns the provider name
func (r *RateLimitedProvider) Name() string {
	return r.name
}

var _ WeatherForecaster = (*RateLimitedProvider)(nil)
