// Package delta computes the signed hour offset between two dashboard cities.
package delta

import (
	"strconv"
	"time"

	"world-dashboard/cities"
	"world-dashboard/clock"
	"world-dashboard/i18n"
	"world-dashboard/models"
)

// Calculator resolves city names and compares their UTC offsets.
type Calculator struct {
	dir    *cities.Directory
	engine *clock.Engine
	now    func() time.Time
}

// NewCalculator creates a calculator over the configured cities. Zones are
// resolved through engine, sharing its location cache with the clocks.
func NewCalculator(dir *cities.Directory, engine *clock.Engine) *Calculator {
	return &Calculator{dir: dir, engine: engine, now: time.Now}
}

// Between compares two cities at the current instant.
func (c *Calculator) Between(from, to string) (models.TimeDelta, error) {
	return c.At(from, to, c.now())
}

// At compares two cities at the given instant. Hours is positive when to is ahead of
// from. An unknown name yields a city_not_found error.
func (c *Calculator) At(from, to string, now time.Time) (models.TimeDelta, error) {
	fromCity, err := c.dir.Lookup(from)
	if err != nil {
		return models.TimeDelta{}, err
	}
	toCity, err := c.dir.Lookup(to)
	if err != nil {
		return models.TimeDelta{}, err
	}

	fromOffset, err := c.offsetSeconds(fromCity.TimeZone, now)
	if err != nil {
		return models.TimeDelta{}, err
	}
	toOffset, err := c.offsetSeconds(toCity.TimeZone, now)
	if err != nil {
		return models.TimeDelta{}, err
	}

	hours := float64(toOffset-fromOffset) / 3600
	return models.TimeDelta{
		From:      fromCity,
		To:        toCity,
		Hours:     hours,
		Direction: direction(hours),
	}, nil
}

func (c *Calculator) offsetSeconds(tz string, now time.Time) (int, error) {
	local, err := c.engine.LocalTime(tz, now)
	if err != nil {
		return 0, err
	}
	_, offset := local.Zone()
	return offset, nil
}

func direction(hours float64) models.Direction {
	switch {
	case hours > 0:
		return models.Ahead
	case hours < 0:
		return models.Behind
	default:
		return models.Same
	}
}

// Describe phrases a delta from the target city's point of view.
func Describe(p *i18n.Printer, d models.TimeDelta) string {
	hours := FormatHours(d.Magnitude())
	switch d.Direction {
	case models.Ahead:
		return p.Sprintf(i18n.AheadFormat, d.To.Name, hours, d.From.Name)
	case models.Behind:
		return p.Sprintf(i18n.BehindFormat, d.To.Name, hours, d.From.Name)
	default:
		return p.Sprintf(i18n.SameFormat, d.To.Name, d.From.Name)
	}
}

// FormatHours renders whole hours without a fraction and half hours as "5.5".
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
