package model

import (
	"math"

	"github.com/rotisserie/eris"
)

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Validate checks that both components are finite and within valid ranges.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) {
		return eris.New("model: latitude is not a finite number")
	}
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) {
		return eris.New("model: longitude is not a finite number")
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return eris.Errorf("model: latitude %.4f out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return eris.Errorf("model: longitude %.4f out of range [-180, 180]", c.Longitude)
	}
	return nil
}
