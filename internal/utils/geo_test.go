package utils

import (
	"math"
	"testing"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHaversine_SamePointIsZero(t *testing.T) {
	for _, p := range []domain.Coordinates{
		{Lat: 0, Lng: 0},
		{Lat: 19.0760, Lng: 72.8777},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 89.9, Lng: -179.9},
	} {
		assert.Equal(t, 0.0, Haversine(p, p))
	}
}

func TestHaversine_KnownDistance(t *testing.T) {
	mumbai := domain.Coordinates{Lat: 19.0760, Lng: 72.8777}
	pune := domain.Coordinates{Lat: 18.5204, Lng: 73.8567}
	// ~120 km great-circle.
	assert.InDelta(t, 120, Haversine(mumbai, pune), 2)
	assert.InDelta(t, Haversine(mumbai, pune), Haversine(pune, mumbai), 1e-9)
}

func TestHaversine_AntipodalIsHalfCircumference(t *testing.T) {
	half := math.Pi * earthRadiusKm
	for _, p := range []domain.Coordinates{
		{Lat: 0, Lng: 0},
		{Lat: 45.1234, Lng: 12.3},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 12.971599, Lng: 77.594566},
	} {
		anti := domain.Coordinates{Lat: -p.Lat, Lng: p.Lng - 180}
		d := Haversine(p, anti)
		assert.False(t, math.IsNaN(d), "point %+v", p)
		assert.InDelta(t, half, d, 0.01)
	}
}

func TestEstimateDurationMin(t *testing.T) {
	assert.Equal(t, 0.0, EstimateDurationMin(0))
	assert.Equal(t, 0.0, EstimateDurationMin(-3))
	assert.InDelta(t, 60, EstimateDurationMin(30), 1e-9)
	assert.InDelta(t, 20, EstimateDurationMin(10), 1e-9)
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(domain.Coordinates{Lat: 12.9, Lng: 77.5}))
	assert.False(t, ValidCoordinates(domain.Coordinates{Lat: 91, Lng: 0}))
	assert.False(t, ValidCoordinates(domain.Coordinates{Lat: 0, Lng: 181}))
}
