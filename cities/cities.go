// Package cities holds the fixed dashboard city list and name lookup.
package cities

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"world-dashboard/apperrors"
	"world-dashboard/models"
)

// DefaultCities returns the six dashboard cities.
func DefaultCities() []models.City {
	return []models.City{
		{Name: "Beijing", TimeZone: "Asia/Shanghai", Latitude: 39.9, Longitude: 116.4},
		{Name: "Shanghai", TimeZone: "Asia/Shanghai", Latitude: 31.2, Longitude: 121.5},
		{Name: "Tokyo", TimeZone: "Asia/Tokyo", Latitude: 35.7, Longitude: 139.7},
		{Name: "London", TimeZone: "Europe/London", Latitude: 51.5, Longitude: -0.1},
		{Name: "New York", TimeZone: "America/New_York", Latitude: 40.7, Longitude: -74.0},
		{Name: "Sydney", TimeZone: "Australia/Sydney", Latitude: -33.9, Longitude: 151.2},
	}
}

// Directory is a case-insensitive index over a city list. The list can be
// swapped as a whole with Replace; individual cities never change.
type Directory struct {
	mu     sync.RWMutex
	list   []models.City
	byName map[string]models.City
}

// NewDirectory validates every zone and builds the index.
// Names are matched case-insensitively and must be unique.
func NewDirectory(list []models.City) (*Directory, error) {
	d := &Directory{}
	if err := d.Replace(list); err != nil {
		return nil, err
	}
	return d, nil
}

// Replace validates list and swaps it in. On error the current list is kept.
func (d *Directory) Replace(list []models.City) error {
	if len(list) == 0 {
		return fmt.Errorf("no cities configured")
	}
	byName := make(map[string]models.City, len(list))
	for _, c := range list {
		key := normalize(c.Name)
		if key == "" {
			return fmt.Errorf("city with empty name")
		}
		if _, dup := byName[key]; dup {
			return fmt.Errorf("duplicate city %q", c.Name)
		}
		if _, err := time.LoadLocation(c.TimeZone); err != nil {
			return fmt.Errorf("load timezone %s for %s: %w", c.TimeZone, c.Name, err)
		}
		byName[key] = c
	}

	cp := make([]models.City, len(list))
	copy(cp, list)

	d.mu.Lock()
	d.list = cp
	d.byName = byName
	d.mu.Unlock()
	return nil
}

// All returns a copy of the cities in configured order.
func (d *Directory) All() []models.City {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.City, len(d.list))
	copy(out, d.list)
	return out
}

// Lookup finds a city by name.
func (d *Directory) Lookup(name string) (models.City, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.byName[normalize(name)]
	if !ok {
		return models.City{}, apperrors.Wrap(apperrors.CodeCityNotFound,
			fmt.Sprintf("city %q not found (use one of: %s)", name, strings.Join(d.names(), ", ")), nil)
	}
	return c, nil
}

// Names returns the display names in configured order.
func (d *Directory) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.names()
}

func (d *Directory) names() []string {
	names := make([]string, 0, len(d.list))
	for _, c := range d.list {
		names = append(names, c.Name)
	}
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
