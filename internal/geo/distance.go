// File: internal/geo/distance.go

// Package geo provides great-circle distance math and human-readable
// distance formatting.
package geo

import (
	"fmt"
	"math"
)

// Unit selects the measurement system for distance results.
type Unit string

const (
	UnitMiles Unit = "miles"
	UnitKm    Unit = "km"
)

const (
	earthRadiusMiles = 3959.0
	earthRadiusKm    = 6371.0

	kmPerMile     = 1.60934
	feetPerMile   = 5280.0
	metersPerKm   = 1000.0
	feetThreshold = 0.1
)

// ParseUnit normalizes a unit string, defaulting to miles.
func ParseUnit(s string) Unit {
	if s == string(UnitKm) {
		return UnitKm
	}
	return UnitMiles
}

// Distance computes the haversine great-circle distance between two
// coordinates in the given unit. NaN inputs propagate as NaN; callers
// validate coordinates upstream.
func Distance(lat1, lng1, lat2, lng2 float64, unit Unit) float64 {
	radius := earthRadiusMiles
	if unit == UnitKm {
		radius = earthRadiusKm
	}

	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return radius * c
}

// Convert translates a distance value between miles and km.
func Convert(d float64, from, to Unit) float64 {
	if from == to {
		return d
	}
	if from == UnitMiles {
		return d * kmPerMile
	}
	return d / kmPerMile
}

// Format renders a distance as a short human string. Small values switch
// to a sub-unit: feet below 0.1 miles, meters below 1 km.
func Format(d float64, unit Unit) string {
	if unit == UnitKm {
		if d < 1 {
			return fmt.Sprintf("%.0fm", d*metersPerKm)
		}
		return fmt.Sprintf("%.1fkm", d)
	}
	if d < feetThreshold {
		return fmt.Sprintf("%.0fft", d*feetPerMile)
	}
	return fmt.Sprintf("%.1fmi", d)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
