package models

import "time"

// BusLocation is the latest reported position of a bus.
type BusLocation struct {
	BusID     string    `json:"busId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  *float64  `json:"accuracy,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Notification is pushed to a user through the backend.
type Notification struct {
	UserID  string `json:"userId"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

// ConcessionVerification is an admin decision on a rider's concession claim.
type ConcessionVerification struct {
	ConcessionType string `json:"concessionType"`
	Verified       bool   `json:"verified"`
	Note           string `json:"note,omitempty"`
}

// ScanRecord is one QR scan as kept in the journal.
type ScanRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	BusID     string    `json:"busId"`
	Action    string    `json:"action"`
	RideID    string    `json:"rideId"`
	ScannedAt time.Time `json:"scannedAt"`
}
