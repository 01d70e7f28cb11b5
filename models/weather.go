package models

import (
	"time"
)

// WeatherSnapshot represents the current conditions for a city after translation
type WeatherSnapshot struct {
	TemperatureC  int     `json:"temperatureC"`  // rounded, in Celsius
	Condition     string  `json:"condition"`     // translated condition label
	IconCode      string  `json:"iconCode"`      // raw provider icon code
	IconURL       string  `json:"iconUrl"`       // day variant icon image
	HumidityPct   int     `json:"humidityPct"`   // percentage
	WindSpeedMps  float64 `json:"windSpeedMps"`  // in m/s
	PressureHpa   int     `json:"pressureHpa"`   // in hPa
	CloudinessPct int     `json:"cloudinessPct"` // percentage
	RainMmPerHour float64 `json:"rainMmPerHour"` // 0 when the provider reports none
}

// ForecastDay represents one sampled day of the 5-day forecast
type ForecastDay struct {
	Date         string    `json:"date"` // "M/D" in the city's zone
	TemperatureC int       `json:"temperatureC"`
	Condition    string    `json:"condition"`
	IconCode     string    `json:"iconCode"`
	IconURL      string    `json:"iconUrl"`
	At           time.Time `json:"at"` // forecast period start
}

// CityWeather is the unit published per city and refresh cycle.
// Current and Forecast always come from the same cycle.
type CityWeather struct {
	City      string          `json:"city"`
	Current   WeatherSnapshot `json:"current"`
	Forecast  []ForecastDay   `json:"forecast"`
	CycleID   string          `json:"cycleId"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CurrentConditions is the provider-neutral current weather reading
type CurrentConditions struct {
	Temperature   float64 // in Celsius
	Humidity      int     // percentage
	Pressure      int     // in hPa
	WindSpeed     float64 // in m/s
	Condition     string  // raw condition code, e.g. "Clouds"
	Icon          string  // raw icon code, e.g. "04n"
	Cloudiness    int     // percentage
	RainMmPerHour float64 // 0 when absent
}

// ForecastEntry is a single 3-hourly forecast period
type ForecastEntry struct {
	Timestamp     time.Time
	Temperature   float64
	Condition     string
	Icon          string
	Cloudiness    int
	RainMmPerHour float64 // normalized from the 3h accumulation
}
