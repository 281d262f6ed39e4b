package models

import "time"

// Waypoint is a location stamped with the moment it was recorded.
type Waypoint struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// Ride is a QR-scanned session on a bus. Trip has the same shape for
// journeys the commuter tracks from their own device.
type Ride struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"userId"`
	BusID       string    `json:"busId,omitempty"`
	Start       Waypoint  `json:"startLocation"`
	End         *Waypoint `json:"endLocation,omitempty"`
	Active      bool      `json:"active"`
	DistanceKm  float64   `json:"distance,omitempty"`
	Fare        float64   `json:"fare,omitempty"`
	DurationMin float64   `json:"duration,omitempty"`
}

type Trip = Ride

// RideCompletion is what the gateway sends when a ride or trip ends.
type RideCompletion struct {
	End             Waypoint `json:"endLocation"`
	DistanceKm      float64  `json:"distance"`
	DurationMin     float64  `json:"duration"`
	Fare            float64  `json:"fare"`
	UsedRealRouting bool     `json:"usedRealRouting"`
}
