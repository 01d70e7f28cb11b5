package models

// Direction tells whether the target city is ahead of or behind the origin
type Direction string

const (
	Ahead  Direction = "ahead"
	Behind Direction = "behind"
	Same   Direction = "same"
)

// TimeDelta represents the signed offset between two cities at one instant
type TimeDelta struct {
	From      City      `json:"from"`
	To        City      `json:"to"`
	Hours     float64   `json:"hours"` // signed, fractional for half-hour zones
	Direction Direction `json:"direction"`
}

// Magnitude returns the absolute number of hours
func (d TimeDelta) Magnitude() float64 {
	if d.Hours < 0 {
		return -d.Hours
	}
	return d.Hours
}
