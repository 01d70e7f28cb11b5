// Package store holds the latest computed dashboard state shared between the
// scheduler and the presentation layers.
package store

import (
	"sort"
	"sync"
	"time"

	"world-dashboard/models"
)

// DashboardStore holds clocks, sun windows and weather organized by city name.
// After Close every write is dropped.
type DashboardStore struct {
	clocks      map[string]models.ClockState
	order       []string
	sun         map[string]models.SunWindow
	weather     map[string]models.CityWeather
	weatherErr  error
	lastCycle   string
	lastCycleAt time.Time
	closed      bool
	mutex       sync.RWMutex
}

// NewDashboardStore creates a new in-memory dashboard store
func NewDashboardStore() *DashboardStore {
	return &DashboardStore{
		clocks:  make(map[string]models.ClockState),
		sun:     make(map[string]models.SunWindow),
		weather: make(map[string]models.CityWeather),
	}
}

// SetClocks replaces all clock states, keeping the given order for listings.
func (s *DashboardStore) SetClocks(states []models.ClockState) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return false
	}

	s.clocks = make(map[string]models.ClockState, len(states))
	s.order = make([]string, 0, len(states))
	for _, st := range states {
		s.clocks[st.City] = st
		s.order = append(s.order, st.City)
	}
	return true
}

// Clocks returns the clock states in city order.
func (s *DashboardStore) Clocks() []models.ClockState {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]models.ClockState, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.clocks[name])
	}
	return out
}

// Clock retrieves the clock state of one city
func (s *DashboardStore) Clock(city string) (models.ClockState, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	st, ok := s.clocks[city]
	return st, ok
}

// UpdateSun stores a fully populated sun window.
func (s *DashboardStore) UpdateSun(w models.SunWindow) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return false
	}
	s.sun[w.City] = w
	return true
}

// Sun retrieves the sun window of one city
func (s *DashboardStore) Sun(city string) (models.SunWindow, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	w, ok := s.sun[city]
	return w, ok
}

// Retain drops sun windows and weather of cities no longer configured.
func (s *DashboardStore) Retain(names []string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return
	}

	keep := make(map[string]struct{}, len(names))
	for _, n := range names {
		keep[n] = struct{}{}
	}
	for name := range s.sun {
		if _, ok := keep[name]; !ok {
			delete(s.sun, name)
		}
	}
	for name := range s.weather {
		if _, ok := keep[name]; !ok {
			delete(s.weather, name)
		}
	}
}

// PublishWeather stores the successful cities of one cycle. Cities missing from
// updated keep their previous value.
func (s *DashboardStore) PublishWeather(cycleID string, updated map[string]models.CityWeather, at time.Time) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return false
	}

	for name, cw := range updated {
		s.weather[name] = cw
	}
	s.lastCycle = cycleID
	s.lastCycleAt = at
	return true
}

// Weather retrieves the weather of one city
func (s *DashboardStore) Weather(city string) (models.CityWeather, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	cw, ok := s.weather[city]
	return cw, ok
}

// AllWeather returns every city's weather sorted by city name.
func (s *DashboardStore) AllWeather() []models.CityWeather {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]models.CityWeather, 0, len(s.weather))
	for _, cw := range s.weather {
		out = append(out, cw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].City < out[j].City })
	return out
}

// LastCycle returns the ID and completion time of the last published weather cycle.
func (s *DashboardStore) LastCycle() (string, time.Time) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.lastCycle, s.lastCycleAt
}

// SetWeatherUnavailable records why weather is not being refreshed at all.
func (s *DashboardStore) SetWeatherUnavailable(err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return
	}
	s.weatherErr = err
}

// WeatherUnavailable returns the recorded reason, or nil.
func (s *DashboardStore) WeatherUnavailable() error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.weatherErr
}

// Close freezes the store. Reads keep working.
func (s *DashboardStore) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.closed = true
}

// Closed reports whether Close has been called.
func (s *DashboardStore) Closed() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.closed
}
