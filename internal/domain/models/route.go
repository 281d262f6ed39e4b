package models

// Route is a bus line between two named ends.
type Route struct {
	ID    string  `json:"_id"`
	Start string  `json:"start"`
	End   string  `json:"end"`
	Fare  float64 `json:"fare"`
}

type Bus struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	RouteID  string `json:"route"`
}

type Station struct {
	ID        string  `json:"_id"`
	RouteID   string  `json:"routeId"`
	BusID     string  `json:"busId"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Fare      float64 `json:"fare"`
}
