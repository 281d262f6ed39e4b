package utils

import (
	"math"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
)

const (
	earthRadiusKm = 6371.0

	// AverageSpeedKmh is assumed when no routing provider answers.
	AverageSpeedKmh = 30.0
)

// Haversine returns the great-circle distance between two points in km.
func Haversine(a, b domain.Coordinates) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	deltaPhi := (b.Lat - a.Lat) * math.Pi / 180
	deltaLambda := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	// rounding can push h just outside [0,1] for antipodal points
	h = math.Min(math.Max(h, 0), 1)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// EstimateDurationMin converts a distance to minutes at the average speed.
func EstimateDurationMin(distanceKm float64) float64 {
	if distanceKm <= 0 {
		return 0
	}
	return distanceKm / AverageSpeedKmh * 60
}

// ValidCoordinates rejects out-of-range latitude/longitude.
func ValidCoordinates(c domain.Coordinates) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180 &&
		!math.IsNaN(c.Lat) && !math.IsNaN(c.Lng)
}
