// Package sunrisesunset reads today's sunrise and sunset from api.sunrise-sunset.org.
package sunrisesunset

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"world-dashboard/apperrors"
	"world-dashboard/datasource"
	"world-dashboard/models"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://api.sunrise-sunset.org"

// Provider implements datasource.SunSource
type Provider struct {
	baseURL string
	client  *datasource.Client
}

var _ datasource.SunSource = (*Provider)(nil)

// NewProvider creates a sunrise-sunset provider. An empty baseURL uses DefaultBaseURL.
func NewProvider(baseURL string, client *datasource.Client) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Provider{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "SunriseSunset"
}

type response struct {
	Results struct {
		Sunrise string `json:"sunrise"`
		Sunset  string `json:"sunset"`
	} `json:"results"`
	Status string `json:"status"`
}

// FetchSunTimes requests the ISO 8601 (formatted=0) boundaries for the city's coordinates.
func (p *Provider) FetchSunTimes(ctx context.Context, city models.City) (models.SunTimes, error) {
	lat, lng := city.Coordinates()
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("formatted", "0")

	var resp response
	if err := p.client.GetJSON(ctx, p.baseURL+"/json", params, &resp); err != nil {
		return models.SunTimes{}, err
	}

	if resp.Status != "OK" {
		return models.SunTimes{}, apperrors.Wrap(apperrors.CodeMalformedResponse,
			"sun times for "+city.Name+": status "+strconv.Quote(resp.Status), nil)
	}

	sunrise, err := time.Parse(time.RFC3339, resp.Results.Sunrise)
	if err != nil {
		return models.SunTimes{}, apperrors.Wrap(apperrors.CodeMalformedResponse, "parse sunrise for "+city.Name, err)
	}
	sunset, err := time.Parse(time.RFC3339, resp.Results.Sunset)
	if err != nil {
		return models.SunTimes{}, apperrors.Wrap(apperrors.CodeMalformedResponse, "parse sunset for "+city.Name, err)
	}

	return models.SunTimes{Sunrise: sunrise.UTC(), Sunset: sunset.UTC()}, nil
}
