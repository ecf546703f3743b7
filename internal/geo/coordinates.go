// Package geo resolves the user's coordinates: a saved location first, then
// a live position lookup, then a fixed fallback.
package geo

import (
	"encoding/json"
	"math"
	"strconv"
)

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Fallback is used when no location can be determined (Toronto).
var Fallback = Coordinates{Latitude: 43.6532, Longitude: -79.3832}

// Valid reports whether both fields are finite and in range.
func (c Coordinates) Valid() bool {
	for _, v := range []float64{c.Latitude, c.Longitude} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Key returns the "lat,lng" form used in cache keys, with the shortest
// decimal representation of each value.
func (c Coordinates) Key() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// decodeCoordinates parses stored JSON. Both fields must be present and
// numeric and the result must be Valid; anything else reports false.
func decodeCoordinates(raw string) (Coordinates, bool) {
	var v struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Coordinates{}, false
	}
	if v.Latitude == nil || v.Longitude == nil {
		return Coordinates{}, false
	}
	c := Coordinates{Latitude: *v.Latitude, Longitude: *v.Longitude}
	if !c.Valid() {
		return Coordinates{}, false
	}
	return c, true
}
