package display

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"world-dashboard/cities"
	"world-dashboard/config"
	"world-dashboard/i18n"
	"world-dashboard/models"
	"world-dashboard/store"
)

func init() {
	color.NoColor = true
}

func populatedStore() *store.DashboardStore {
	st := store.NewDashboardStore()
	st.SetClocks([]models.ClockState{
		{City: "London", Time: "12:00:00", Date: "Saturday, February 14, 2026", Offset: "UTC+00:00", Abbrev: "GMT"},
		{City: "Tokyo", Time: "21:00:00", Date: "Saturday, February 14, 2026", Offset: "UTC+09:00", Abbrev: "JST"},
	})
	st.UpdateSun(models.SunWindow{City: "Tokyo", Sunrise: "06:31", Sunset: "17:28", DayLength: "10 hours 57 minutes"})
	st.PublishWeather("c1", map[string]models.CityWeather{
		"Tokyo": {
			City:    "Tokyo",
			Current: models.WeatherSnapshot{TemperatureC: 8, Condition: "Light clouds", HumidityPct: 40, WindSpeedMps: 3.4, PressureHpa: 1020},
			Forecast: []models.ForecastDay{
				{Date: "2/15", TemperatureC: 9, Condition: "Clear"},
			},
		},
	}, time.Now())
	return st
}

func TestRenderShowsClocksSunAndWeather(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, populatedStore(), i18n.New("en"), time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC))

	out := buf.String()
	require.Contains(t, out, "World Dashboard")
	require.Contains(t, out, "London")
	require.Contains(t, out, "21:00:00")
	require.Contains(t, out, "UTC+09:00 JST")
	require.Contains(t, out, "06:31")
	require.Contains(t, out, "10 hours 57 minutes")
	require.Contains(t, out, "8°C")
	require.Contains(t, out, "3.4 m/s")
	require.Contains(t, out, "2/15 9°C Clear")
}

func TestRenderLocalizedHeaders(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, populatedStore(), i18n.New("zh"), time.Now())

	require.Contains(t, buf.String(), "城市")
	require.Contains(t, buf.String(), "日出")
}

func TestRenderMissingCredentials(t *testing.T) {
	st := populatedStore()
	st.SetWeatherUnavailable(config.Default().CheckWeatherCredentials())

	var buf bytes.Buffer
	Render(&buf, st, i18n.New("en"), time.Now())
	require.Contains(t, buf.String(), "weather unavailable: missing credentials")
}

func TestRenderDelta(t *testing.T) {
	var buf bytes.Buffer
	d := models.TimeDelta{
		From:      models.City{Name: "London"},
		To:        models.City{Name: "Tokyo"},
		Hours:     9,
		Direction: models.Ahead,
	}
	RenderDelta(&buf, i18n.New("en"), d)
	require.Equal(t, "Tokyo is 9 hours ahead of London\n", buf.String())
}

func TestRenderCities(t *testing.T) {
	var buf bytes.Buffer
	RenderCities(&buf, cities.DefaultCities())
	require.Contains(t, buf.String(), "America/New_York")
	require.Contains(t, buf.String(), "-33.9000")
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	Run(ctx, &buf, populatedStore(), i18n.New("en"), 10*time.Millisecond)
	require.Contains(t, buf.String(), "Goodbye!")
	require.Contains(t, buf.String(), "Tokyo")
}
