package models

import "time"

// ClockState is the analog and digital reading of one city's clock at an instant
type ClockState struct {
	City        string    `json:"city"`
	LocalTime   time.Time `json:"localTime"`
	Hour12      int       `json:"hour12"`
	Minute      int       `json:"minute"`
	Second      int       `json:"second"`
	HourAngle   float64   `json:"hourAngle"`   // degrees from 12 o'clock
	MinuteAngle float64   `json:"minuteAngle"` // degrees from 12 o'clock
	SecondAngle float64   `json:"secondAngle"` // degrees from 12 o'clock
	Time        string    `json:"time"`        // "15:04:05"
	Date        string    `json:"date"`        // "Monday, January 2, 2006"
	Offset      string    `json:"offset"`      // "UTC+09:00"
	Abbrev      string    `json:"abbrev"`      // zone abbreviation, e.g. "JST"
}
