package models

import "fmt"

// City represents a dashboard city with its IANA zone and coordinates
type City struct {
	Name      string  `json:"name" yaml:"name"`
	TimeZone  string  `json:"timeZone" yaml:"timeZone"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Coordinates returns the latitude/longitude pair
func (c City) Coordinates() (lat, lng float64) {
	return c.Latitude, c.Longitude
}

// CoordinateKey renders the coordinates with the precision the upstream APIs accept
func (c City) CoordinateKey() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}
