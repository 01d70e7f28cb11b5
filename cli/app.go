package cli

import (
	"log/slog"

	"world-dashboard/cache"
	"world-dashboard/cities"
	"world-dashboard/clock"
	"world-dashboard/config"
	"world-dashboard/datasource"
	"world-dashboard/delta"
	"world-dashboard/i18n"
	"world-dashboard/models"
	"world-dashboard/providers/openweathermap"
	"world-dashboard/providers/sunrisesunset"
	"world-dashboard/scheduler"
	"world-dashboard/store"
	"world-dashboard/sun"
	"world-dashboard/weather"
)

// app is the wired component graph shared by the commands.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	dir       *cities.Directory
	printer   *i18n.Printer
	store     *store.DashboardStore
	delta     *delta.Calculator
	sun       *sun.Fetcher
	sunCache  *cache.CachedSunSource
	scheduler *scheduler.Scheduler
}

func cityList(cfg *config.Config) []models.City {
	if len(cfg.Cities) > 0 {
		return cfg.Cities
	}
	return cities.DefaultCities()
}

func newDirectory(cfg *config.Config) (*cities.Directory, error) {
	return cities.NewDirectory(cityList(cfg))
}

// newApp builds every component from configuration. A missing weather API key
// leaves the weather cycle disabled and records the reason in the store.
func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	dir, err := newDirectory(cfg)
	if err != nil {
		return nil, err
	}

	printer := i18n.New(cfg.Locale)
	st := store.NewDashboardStore()
	engine := clock.NewEngine(clock.WithPrinter(printer))

	sunClient := datasource.NewClient(cfg.Sun.Timeout, cfg.Sun.Retry, logger.With("component", "sun-client"))
	sunSource := cache.NewCachedSunSource(sunrisesunset.NewProvider(cfg.Sun.BaseURL, sunClient), cfg.Sun.CacheTTL, logger)

	var weatherFetcher *weather.Fetcher
	if err := cfg.CheckWeatherCredentials(); err != nil {
		logger.Warn("weather disabled", "error", err)
		st.SetWeatherUnavailable(err)
	} else {
		weatherClient := datasource.NewClient(cfg.Weather.Timeout, cfg.Weather.Retry, logger.With("component", "weather-client"))
		var provider datasource.WeatherForecaster = openweathermap.NewProvider(cfg.Weather.APIKey, cfg.Weather.BaseURL, weatherClient)
		if cfg.Weather.RateLimit.Enabled {
			provider = datasource.NewRateLimitedProvider(provider, cfg.Weather.RateLimit.RequestsPerSecond, cfg.Weather.RateLimit.Burst)
			logger.Info("applied rate limiting to weather provider",
				"rps", cfg.Weather.RateLimit.RequestsPerSecond,
				"burst", cfg.Weather.RateLimit.Burst,
			)
		}
		weatherFetcher = weather.NewFetcher(provider, printer, cfg.Weather.IconBaseURL, logger)
	}

	sunFetcher := sun.NewFetcher(sunSource, printer, logger)
	sched := scheduler.New(scheduler.Options{
		Cities:          dir.All(),
		Engine:          engine,
		Sun:             sunFetcher,
		Weather:         weatherFetcher,
		Store:           st,
		ClockInterval:   cfg.Schedule.ClockInterval,
		WeatherInterval: cfg.Schedule.WeatherInterval,
		SunInterval:     cfg.Sun.RefreshInterval,
		Logger:          logger,
	})

	return &app{
		cfg:       cfg,
		logger:    logger,
		dir:       dir,
		printer:   printer,
		store:     st,
		delta:     delta.NewCalculator(dir, engine),
		sun:       sunFetcher,
		sunCache:  sunSource,
		scheduler: sched,
	}, nil
}

// reloadCities swaps in the city list of cfg. Lookups switch at once; the
// scheduler drops removed cities and refreshes sun and weather for the new set.
func (a *app) reloadCities(cfg *config.Config) error {
	if err := a.dir.Replace(cityList(cfg)); err != nil {
		return err
	}
	a.scheduler.SetCities(a.dir.All())
	a.logger.Info("city list reloaded", "cities", a.dir.Names())
	return nil
}
