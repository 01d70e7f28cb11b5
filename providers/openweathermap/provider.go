// Package openweathermap fetches current conditions and 5-day forecasts from the
// OpenWeatherMap 2.5 API by coordinates, in metric units.
package openweathermap

import (
	"context"
	"math"
	"net/url"
	"strconv"
	"strings"

	"world-dashboard/apperrors"
	"world-dashboard/datasource"
	"world-dashboard/models"
)

// DefaultBaseURL is the public 2.5 API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Provider implements both WeatherProvider and ForecastSource
type Provider struct {
	apiKey  string
	baseURL string
	client  *datasource.Client
}

// Ensure Provider implements both interfaces
var _ datasource.WeatherForecaster = (*Provider)(nil)

// NewProvider creates a new OpenWeatherMap provider. An empty baseURL uses DefaultBaseURL.
func NewProvider(apiKey, baseURL string, client *datasource.Client) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Provider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "OpenWeatherMap"
}

type condition struct {
	Main string `json:"main"`
	Icon string `json:"icon"`
}

// currentResponse represents the /weather response structure
type currentResponse struct {
	Main *struct {
		Temp     float64 `json:"temp"`
		Pressure float64 `json:"pressure"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []condition `json:"weather"`
	Clouds  struct {
		All int `json:"all"`
	} `json:"clouds"`
	Rain *struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
}

// GetWeather fetches current weather at the city's coordinates
func (p *Provider) GetWeather(ctx context.Context, city models.City) (models.CurrentConditions, error) {
	var resp currentResponse
	if err := p.client.GetJSON(ctx, p.baseURL+"/weather", p.params(city), &resp); err != nil {
		return models.CurrentConditions{}, err
	}

	if resp.Main == nil || len(resp.Weather) == 0 {
		return models.CurrentConditions{}, apperrors.Wrap(apperrors.CodeMalformedResponse,
			"current weather for "+city.Name+" is missing main or weather", nil)
	}

	rain := 0.0
	if resp.Rain != nil {
		rain = resp.Rain.OneHour
	}

	return models.CurrentConditions{
		Temperature:   resp.Main.Temp,
		Humidity:      int(math.Round(resp.Main.Humidity)),
		Pressure:      int(math.Round(resp.Main.Pressure)),
		WindSpeed:     resp.Wind.Speed,
		Condition:     resp.Weather[0].Main,
		Icon:          resp.Weather[0].Icon,
		Cloudiness:    resp.Clouds.All,
		RainMmPerHour: rain,
	}, nil
}

func (p *Provider) params(city models.City) url.Values {
	lat, lng := city.Coordinates()
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("units", "metric")
	params.Set("appid", p.apiKey)
	return params
}
