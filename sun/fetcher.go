// Package sun builds localized sunrise/sunset windows for the dashboard cities.
package sun

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"world-dashboard/apperrors"
	"world-dashboard/datasource"
	"world-dashboard/i18n"
	"world-dashboard/models"
)

const clockLayout = "15:04"

// Fetcher requests sun times and localizes them.
type Fetcher struct {
	source  datasource.SunSource
	printer *i18n.Printer
	logger  *slog.Logger
	now     func() time.Time
}

// NewFetcher creates a sun window fetcher.
func NewFetcher(source datasource.SunSource, printer *i18n.Printer, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		source:  source,
		printer: printer,
		logger:  logger.With("component", "sun"),
		now:     time.Now,
	}
}

// Result is the outcome of one refresh over a set of cities.
type Result struct {
	Windows map[string]models.SunWindow
	Failed  map[string]error
}

// FetchCity fetches and localizes the sun window of one city.
func (f *Fetcher) FetchCity(ctx context.Context, city models.City) (models.SunWindow, error) {
	times, err := f.source.FetchSunTimes(ctx, city)
	if err != nil {
		return models.SunWindow{}, fmt.Errorf("sun times for %s: %w", city.Name, err)
	}
	w, err := BuildWindow(city, times, f.printer)
	if err != nil {
		return models.SunWindow{}, err
	}
	w.UpdatedAt = f.now()
	return w, nil
}

// Refresh fetches every city concurrently. Failed cities are listed in Failed only.
func (f *Fetcher) Refresh(ctx context.Context, list []models.City) Result {
	res := Result{
		Windows: make(map[string]models.SunWindow, len(list)),
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
			w, err := f.FetchCity(ctx, city)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				f.logger.Error("sun fetch failed", "city", city.Name, "error", err)
				res.Failed[city.Name] = err
				return
			}
			res.Windows[city.Name] = w
		}(city)
	}
	wg.Wait()
	return res
}

// BuildWindow converts UTC sun times to the city's wall clock. Day length is
// sunset minus sunrise, wrapped into [0, 24h).
func BuildWindow(city models.City, times models.SunTimes, p *i18n.Printer) (models.SunWindow, error) {
	if times.Sunrise.IsZero() || times.Sunset.IsZero() {
		return models.SunWindow{}, apperrors.Wrap(apperrors.CodeMalformedResponse,
			"sun times for "+city.Name+" are incomplete", nil)
	}

	loc, err := time.LoadLocation(city.TimeZone)
	if err != nil {
		return models.SunWindow{}, fmt.Errorf("load timezone %s: %w", city.TimeZone, err)
	}

	length := DayLength(times.Sunrise, times.Sunset)
	return models.SunWindow{
		City:          city.Name,
		Sunrise:       times.Sunrise.In(loc).Format(clockLayout),
		Sunset:        times.Sunset.In(loc).Format(clockLayout),
		DayLength:     p.DayLength(length),
		SunriseAt:     times.Sunrise,
		SunsetAt:      times.Sunset,
		Length:        length,
		LengthSeconds: int64(length / time.Second),
	}, nil
}

// DayLength returns sunset - sunrise modulo 24 hours.
func DayLength(sunrise, sunset time.Time) time.Duration {
	d := sunset.Sub(sunrise) % (24 * time.Hour)
	if d < 0 {
		d += 24 * time.Hour
	}
	return d
}
