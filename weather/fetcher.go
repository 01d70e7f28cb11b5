// Package weather turns provider readings into translated per-city snapshots and
// refreshes all cities concurrently.
package weather

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"world-dashboard/datasource"
	"world-dashboard/i18n"
	"world-dashboard/models"
)

const (
	// samplesPerDay is the number of 3-hourly periods in a day.
	samplesPerDay = 8
	// forecastDays caps the published forecast.
	forecastDays = 5
)

// Fetcher fetches and translates weather for cities.
type Fetcher struct {
	provider datasource.WeatherForecaster
	printer  *i18n.Printer
	iconBase string
	logger   *slog.Logger
	now      func() time.Time
}

// NewFetcher creates a weather fetcher.
func NewFetcher(provider datasource.WeatherForecaster, printer *i18n.Printer, iconBase string, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		provider: provider,
		printer:  printer,
		iconBase: iconBase,
		logger:   logger.With("component", "weather"),
		now:      time.Now,
	}
}

// CycleResult is the fan-in of one refresh cycle.
type CycleResult struct {
	CycleID string
	Updated map[string]models.CityWeather
	Failed  map[string]error
}

// FetchCity requests current conditions and then the forecast for one city.
// Either both succeed or the city reports an error.
func (f *Fetcher) FetchCity(ctx context.Context, city models.City) (models.CityWeather, error) {
	current, err := f.provider.GetWeather(ctx, city)
	if err != nil {
		return models.CityWeather{}, fmt.Errorf("current weather for %s: %w", city.Name, err)
	}

	entries, err := f.provider.FetchForecast(ctx, city)
	if err != nil {
		return models.CityWeather{}, fmt.Errorf("forecast for %s: %w", city.Name, err)
	}

	loc, err := time.LoadLocation(city.TimeZone)
	if err != nil {
		return models.CityWeather{}, fmt.Errorf("load timezone %s: %w", city.TimeZone, err)
	}

	return models.CityWeather{
		City:      city.Name,
		Current:   f.snapshot(current),
		Forecast:  f.buildForecast(SampleForecast(entries), loc),
		UpdatedAt: f.now(),
	}, nil
}

// RefreshAll fetches every city concurrently. A failing city is reported in Failed
// and does not affect the others.
func (f *Fetcher) RefreshAll(ctx context.Context, cycleID string, list []models.City) CycleResult {
	result := CycleResult{
		CycleID: cycleID,
		Updated: make(map[string]models.CityWeather, len(list)),
		Failed:  make(map[string]error),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, city := range list {
		wg.Add(1)
		go func(city models.City) {
			defer wg.Done()

			cw, err := f.FetchCity(ctx, city)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				f.logger.Error("weather fetch failed", "cycle", cycleID, "city", city.Name, "error", err)
				result.Failed[city.Name] = err
				return
			}
			cw.CycleID = cycleID
			result.Updated[city.Name] = cw
		}(city)
	}
	wg.Wait()

	f.logger.Info("weather cycle complete",
		"cycle", cycleID,
		"updated", len(result.Updated),
		"failed", len(result.Failed),
	)
	return result
}

// SampleForecast keeps one entry per day: indices 0, 8, 16, ... up to five entries.
func SampleForecast(entries []models.ForecastEntry) []models.ForecastEntry {
	sampled := make([]models.ForecastEntry, 0, forecastDays)
	for i := 0; i < len(entries) && len(sampled) < forecastDays; i += samplesPerDay {
		sampled = append(sampled, entries[i])
	}
	return sampled
}

func (f *Fetcher) snapshot(c models.CurrentConditions) models.WeatherSnapshot {
	return models.WeatherSnapshot{
		TemperatureC:  int(math.Round(c.Temperature)),
		Condition:     Translate(f.printer, c.Condition, c.Cloudiness, c.RainMmPerHour),
		IconCode:      c.Icon,
		IconURL:       IconURL(f.iconBase, c.Icon),
		HumidityPct:   c.Humidity,
		WindSpeedMps:  c.WindSpeed,
		PressureHpa:   c.Pressure,
		CloudinessPct: c.Cloudiness,
		RainMmPerHour: c.RainMmPerHour,
	}
}

func (f *Fetcher) buildForecast(entries []models.ForecastEntry, loc *time.Location) []models.ForecastDay {
	days := make([]models.ForecastDay, 0, len(entries))
	for _, e := range entries {
		local := e.Timestamp.In(loc)
		days = append(days, models.ForecastDay{
			Date:         fmt.Sprintf("%d/%d", int(local.Month()), local.Day()),
			TemperatureC: int(math.Round(e.Temperature)),
			Condition:    Translate(f.printer, e.Condition, e.Cloudiness, e.RainMmPerHour),
			IconCode:     e.Icon,
			IconURL:      IconURL(f.iconBase, e.Icon),
			At:           e.Timestamp,
		})
	}
	return days
}
