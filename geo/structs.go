// Package geo keeps coordinate types shared between geolocation
// providers and map projections.
package geo

import "math"

// Coordinate is a point in WGS84 degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Valid tells if coordinate is finite and lies within the geographic
// domain.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) ||
		math.IsInf(c.Latitude, 0) || math.IsInf(c.Longitude, 0) {
		return false
	}

	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Pixel is a point in raster space: origin at the top-left corner, x
// grows to the right and y grows downwards.
type Pixel struct {
	X float64
	Y float64
}
