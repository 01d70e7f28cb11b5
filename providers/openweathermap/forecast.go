package openweathermap

import (
	"context"
	"fmt"
	"sort"
	"time"

	"world-dashboard/apperrors"
	"world-dashboard/models"
)

// forecastResponse represents the /forecast response structure
type forecastResponse struct {
	List *[]struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []condition `json:"weather"`
		Clouds  struct {
			All int `json:"all"`
		} `json:"clouds"`
		Rain *struct {
			ThreeHours float64 `json:"3h"`
		} `json:"rain"`
	} `json:"list"`
}

// FetchForecast gets the 3-hourly forecast periods from OpenWeatherMap.
// Rain is reported per hour, approximated from the 3h accumulation.
func (p *Provider) FetchForecast(ctx context.Context, city models.City) ([]models.ForecastEntry, error) {
	var resp forecastResponse
	if err := p.client.GetJSON(ctx, p.baseURL+"/forecast", p.params(city), &resp); err != nil {
		return nil, err
	}
	if resp.List == nil {
		return nil, apperrors.Wrap(apperrors.CodeMalformedResponse,
			"forecast for "+city.Name+" has no list", nil)
	}

	entries := make([]models.ForecastEntry, 0, len(*resp.List))
	for i, item := range *resp.List {
		if len(item.Weather) == 0 {
			return nil, apperrors.Wrap(apperrors.CodeMalformedResponse,
				fmt.Sprintf("forecast entry %d for %s has no weather", i, city.Name), nil)
		}

		rain := 0.0
		if item.Rain != nil {
			rain = item.Rain.ThreeHours / 3
		}

		entries = append(entries, models.ForecastEntry{
			Timestamp:     time.Unix(item.Dt, 0).UTC(),
			Temperature:   item.Main.Temp,
			Condition:     item.Weather[0].Main,
			Icon:          item.Weather[0].Icon,
			Cloudiness:    item.Clouds.All,
			RainMmPerHour: rain,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries, nil
}
