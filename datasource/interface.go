// Package datasource defines the upstream provider interfaces and the shared HTTP
// plumbing used by the concrete providers.
package datasource

import (
	"context"

	"world-dashboard/models"
)

// WeatherProvider is an interface for services that can fetch current weather data
type WeatherProvider interface {
	// GetWeather fetches current conditions at the city's coordinates
	GetWeather(ctx context.Context, city models.City) (models.CurrentConditions, error)

	// Name returns the provider's name
	Name() string
}

// ForecastSource is an interface for services that can fetch weather forecasts
type ForecastSource interface {
	// FetchForecast fetches the 3-hourly forecast periods in chronological order
	FetchForecast(ctx context.Context, city models.City) ([]models.ForecastEntry, error)

	// Name returns the source's name
	Name() string
}

// WeatherForecaster serves both current conditions and forecasts
type WeatherForecaster interface {
	WeatherProvider
	ForecastSource
}

// SunSource is an interface for services that report today's sunrise and sunset
type SunSource interface {
	// FetchSunTimes fetches the UTC sunrise and sunset for the city's coordinates
	FetchSunTimes(ctx context.Context, city models.City) (models.SunTimes, error)

	// Name returns the source's name
	Name() string
}
