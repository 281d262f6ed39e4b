package models

import "time"

// Pass is a time-bounded entitlement for a route.
type Pass struct {
	ID           string    `json:"_id"`
	UserID       string    `json:"userId"`
	RouteID      string    `json:"routeId"`
	Price        float64   `json:"price"`
	PurchaseDate time.Time `json:"purchaseDate"`
	ExpiryDate   time.Time `json:"expiryDate"`
}

// Expired is derived on every read; only ExpiryDate matters.
func (p Pass) Expired(now time.Time) bool {
	return now.After(p.ExpiryDate)
}

// PassView is the pass as returned to clients, with the derived flag.
type PassView struct {
	Pass
	Expired bool `json:"expired"`
}

func (p Pass) View(now time.Time) PassView {
	return PassView{Pass: p, Expired: p.Expired(now)}
}

// Ticket is a single-journey entitlement between two stations.
type Ticket struct {
	ID           string    `json:"_id,omitempty"`
	UserID       string    `json:"userId"`
	RouteID      string    `json:"routeId"`
	BusID        string    `json:"busId,omitempty"`
	StartStation string    `json:"startStation,omitempty"`
	EndStation   string    `json:"endStation,omitempty"`
	Price        float64   `json:"price"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	ExpiryDate   time.Time `json:"expiryDate,omitempty"`
}
