package models

import "time"

// SunTimes holds the raw UTC day boundaries reported by a sun source
type SunTimes struct {
	Sunrise time.Time
	Sunset  time.Time
}

// SunWindow is the localized sunrise/sunset view for a city
type SunWindow struct {
	City          string        `json:"city"`
	Sunrise       string        `json:"sunrise"`   // "15:04" in the city's zone
	Sunset        string        `json:"sunset"`    // "15:04" in the city's zone
	DayLength     string        `json:"dayLength"` // localized "H hours M minutes"
	SunriseAt     time.Time     `json:"sunriseAt"`
	SunsetAt      time.Time     `json:"sunsetAt"`
	Length        time.Duration `json:"-"`
	LengthSeconds int64         `json:"lengthSeconds"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}
