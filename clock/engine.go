// Package clock converts instants into per-city wall-clock readings and analog
// hand angles.
package clock

import (
	"fmt"
	"sync"
	"time"

	"world-dashboard/i18n"
	"world-dashboard/models"
)

const (
	timeLayout = "15:04:05"
	dateLayout = "Monday, January 2, 2006"
)

// Engine converts instants to local civil time. Zones are loaded once and reused.
type Engine struct {
	mu        sync.RWMutex
	locs      map[string]*time.Location
	dateLabel func(time.Time) string
}

// Option configures an Engine.
type Option func(*Engine)

// WithPrinter renders the date label in the printer's locale.
func WithPrinter(p *i18n.Printer) Option {
	return func(e *Engine) {
		e.dateLabel = p.LongDate
	}
}

// NewEngine creates an engine with an empty zone cache and English date labels.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		locs:      make(map[string]*time.Location),
		dateLabel: func(t time.Time) string { return t.Format(dateLayout) },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Location returns the cached *time.Location for an IANA identifier.
func (e *Engine) Location(tz string) (*time.Location, error) {
	e.mu.RLock()
	loc, ok := e.locs[tz]
	e.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", tz, err)
	}

	e.mu.Lock()
	e.locs[tz] = loc
	e.mu.Unlock()
	return loc, nil
}

// LocalTime returns now as seen on a wall clock in tz.
func (e *Engine) LocalTime(tz string, now time.Time) (time.Time, error) {
	loc, err := e.Location(tz)
	if err != nil {
		return time.Time{}, err
	}
	return now.In(loc), nil
}

// Compute returns the clock state of a city at now.
func (e *Engine) Compute(city models.City, now time.Time) (models.ClockState, error) {
	local, err := e.LocalTime(city.TimeZone, now)
	if err != nil {
		return models.ClockState{}, err
	}

	hourAngle, minuteAngle, secondAngle := Angles(local)
	abbrev, _ := local.Zone()
	return models.ClockState{
		City:        city.Name,
		LocalTime:   local,
		Hour12:      local.Hour() % 12,
		Minute:      local.Minute(),
		Second:      local.Second(),
		HourAngle:   hourAngle,
		MinuteAngle: minuteAngle,
		SecondAngle: secondAngle,
		Time:        local.Format(timeLayout),
		Date:        e.dateLabel(local),
		Offset:      FormatOffset(local),
		Abbrev:      abbrev,
	}, nil
}

// ComputeAll returns the clock state of every city at the same instant.
// Cities whose zone cannot be loaded are skipped.
func (e *Engine) ComputeAll(list []models.City, now time.Time) []models.ClockState {
	states := make([]models.ClockState, 0, len(list))
	for _, c := range list {
		st, err := e.Compute(c, now)
		if err != nil {
			continue
		}
		states = append(states, st)
	}
	return states
}

// Angles returns hour, minute and second hand angles in degrees from 12 o'clock.
// All three are in [0, 360) for whole-second precision.
func Angles(local time.Time) (hour, minute, second float64) {
	s := float64(local.Second())
	m := float64(local.Minute())
	h := float64(local.Hour() % 12)

	second = s / 60 * 360
	minute = (m + s/60) / 60 * 360
	hour = (h + m/60) / 12 * 360
	return hour, minute, second
}

// FormatOffset returns the zone offset of t in UTC±HH:MM form.
func FormatOffset(t time.Time) string {
	_, offset := t.Zone()

	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	hours := offset / 3600
	minutes := (offset % 3600) / 60
	return fmt.Sprintf("UTC%s%02d:%02d", sign, hours, minutes)
}
