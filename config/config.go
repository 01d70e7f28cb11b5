// Package config loads the dashboard configuration from defaults, an optional YAML file,
// a .env file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"world-dashboard/apperrors"
	"world-dashboard/models"
)

// DefaultPath is read when no explicit config path is given and the file exists.
const DefaultPath = "config.yaml"

// Config aggregates runtime configuration used across the service.
type Config struct {
	LogLevel string         `yaml:"logLevel"`
	Locale   string         `yaml:"locale"`
	HTTP     HTTPConfig     `yaml:"http"`
	Weather  WeatherConfig  `yaml:"weather"`
	Sun      SunConfig      `yaml:"sun"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Cities   []models.City  `yaml:"cities"`
}

// HTTPConfig controls the JSON API server.
type HTTPConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

// WeatherConfig configures the OpenWeatherMap client.
type WeatherConfig struct {
	APIKey      string          `yaml:"apiKey"`
	BaseURL     string          `yaml:"baseUrl"`
	IconBaseURL string          `yaml:"iconBaseUrl"`
	Timeout     time.Duration   `yaml:"timeout"`
	RateLimit   RateLimitConfig `yaml:"rateLimit"`
	Retry       RetryConfig     `yaml:"retry"`
}

// SunConfig configures the sunrise-sunset client.
type SunConfig struct {
	BaseURL         string        `yaml:"baseUrl"`
	Timeout         time.Duration `yaml:"timeout"`
	CacheTTL        time.Duration `yaml:"cacheTtl"`
	RefreshInterval time.Duration `yaml:"refreshInterval"`
	Retry           RetryConfig   `yaml:"retry"`
}

// RateLimitConfig drives the provider rate limiter.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
}

// RetryConfig configures retries of transient upstream failures.
type RetryConfig struct {
	Attempts uint          `yaml:"attempts"`
	Delay    time.Duration `yaml:"delay"`
	MaxDelay time.Duration `yaml:"maxDelay"`
}

// ScheduleConfig sets the refresh cadence of each cycle.
type ScheduleConfig struct {
	ClockInterval   time.Duration `yaml:"clockInterval"`
	WeatherInterval time.Duration `yaml:"weatherInterval"`
}

// Load reads configuration. An empty path falls back to DefaultPath when present.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()

	switch {
	case path != "":
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	default:
		if _, err := os.Stat(DefaultPath); err == nil {
			if err := hydrateFromFile(cfg, DefaultPath); err != nil {
				return nil, err
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidConfig, "invalid environment", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidConfig, "invalid config", err)
	}
	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DASHBOARD_LOCALE"); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv("DASHBOARD_HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("OPENWEATHERMAP_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("OPENWEATHERMAP_BASE_URL"); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv("WEATHER_RATE_LIMIT_ENABLED"); v != "" {
		cfg.Weather.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("SUNRISE_SUNSET_BASE_URL"); v != "" {
		cfg.Sun.BaseURL = v
	}

	var errs []error
	if v := os.Getenv("WEATHER_RATE_LIMIT_RPS"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("WEATHER_RATE_LIMIT_RPS: %w", err))
		} else {
			cfg.Weather.RateLimit.RequestsPerSecond = parsed
		}
	}
	errs = append(errs,
		envDuration("WEATHER_REFRESH_INTERVAL", &cfg.Schedule.WeatherInterval),
		envDuration("SUN_REFRESH_INTERVAL", &cfg.Sun.RefreshInterval),
		envDuration("SUN_CACHE_TTL", &cfg.Sun.CacheTTL),
	)
	var timeout time.Duration
	if err := envDuration("FETCH_TIMEOUT", &timeout); err != nil {
		errs = append(errs, err)
	} else if timeout != 0 {
		cfg.Weather.Timeout = timeout
		cfg.Sun.Timeout = timeout
	}
	return errors.Join(errs...)
}

// envDuration parses key into dst when set. dst is left untouched on error.
func envDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = parsed
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Locale:   "en",
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Weather: WeatherConfig{
			BaseURL:     "https://api.openweathermap.org/data/2.5",
			IconBaseURL: "https://openweathermap.org/img/wn",
			Timeout:     10 * time.Second,
			// OpenWeatherMap free tier allows 60 calls/minute
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerSecond: 1,
				Burst:             5,
			},
			Retry: RetryConfig{
				Attempts: 3,
				Delay:    500 * time.Millisecond,
				MaxDelay: 5 * time.Second,
			},
		},
		Sun: SunConfig{
			BaseURL:         "https://api.sunrise-sunset.org",
			Timeout:         10 * time.Second,
			CacheTTL:        6 * time.Hour,
			RefreshInterval: time.Hour,
			Retry: RetryConfig{
				Attempts: 3,
				Delay:    500 * time.Millisecond,
				MaxDelay: 5 * time.Second,
			},
		},
		Schedule: ScheduleConfig{
			ClockInterval:   time.Second,
			WeatherInterval: 10 * time.Minute,
		},
	}
}

// Validate ensures the configuration is safe to use. A missing API key is not a
// validation failure; see CheckWeatherCredentials.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Address) == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Schedule.ClockInterval <= 0 {
		return errors.New("schedule.clockInterval must be positive")
	}
	if c.Schedule.WeatherInterval <= 0 {
		return errors.New("schedule.weatherInterval must be positive")
	}
	if c.Weather.Timeout <= 0 || c.Sun.Timeout <= 0 {
		return errors.New("fetch timeouts must be positive")
	}
	if strings.TrimSpace(c.Weather.BaseURL) == "" {
		return errors.New("weather.baseUrl cannot be empty")
	}
	if strings.TrimSpace(c.Sun.BaseURL) == "" {
		return errors.New("sun.baseUrl cannot be empty")
	}
	if c.Sun.RefreshInterval <= 0 {
		return errors.New("sun.refreshInterval must be positive")
	}
	if c.Sun.CacheTTL < 0 {
		return errors.New("sun.cacheTtl cannot be negative")
	}
	if c.Weather.RateLimit.Enabled {
		if c.Weather.RateLimit.RequestsPerSecond <= 0 {
			return errors.New("weather.rateLimit.requestsPerSecond must be positive")
		}
		if c.Weather.RateLimit.Burst <= 0 {
			return errors.New("weather.rateLimit.burst must be positive")
		}
	}
	seen := make(map[string]struct{}, len(c.Cities))
	for _, city := range c.Cities {
		key := strings.ToLower(strings.TrimSpace(city.Name))
		if key == "" {
			return errors.New("cities: name cannot be empty")
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("cities: duplicate name %q", city.Name)
		}
		seen[key] = struct{}{}
		if _, err := time.LoadLocation(city.TimeZone); err != nil {
			return fmt.Errorf("cities: %s: %w", city.Name, err)
		}
	}
	return nil
}

// CheckWeatherCredentials reports a missing_credentials error when no API key is set.
func (c *Config) CheckWeatherCredentials() error {
	if strings.TrimSpace(c.Weather.APIKey) == "" {
		return apperrors.Wrap(apperrors.CodeMissingCredentials, "weather unavailable: missing credentials", nil)
	}
	return nil
}
