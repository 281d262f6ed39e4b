package domain

import "strings"

// ID is the backend's opaque string identifier.
type ID = string

// Concession is the fare-discount category of a rider.
type Concession string

const (
	ConcessionGeneral  Concession = "general"
	ConcessionStudent  Concession = "student"
	ConcessionChild    Concession = "child"
	ConcessionWomen    Concession = "women"
	ConcessionElderly  Concession = "elderly"
	ConcessionDisabled Concession = "disabled"
)

// Concessions lists every known category in display order.
var Concessions = []Concession{
	ConcessionGeneral,
	ConcessionStudent,
	ConcessionChild,
	ConcessionWomen,
	ConcessionElderly,
	ConcessionDisabled,
}

// ParseConcession normalizes user input; unknown values become general.
func ParseConcession(s string) Concession {
	c := Concession(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Concessions {
		if c == known {
			return c
		}
	}
	return ConcessionGeneral
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}
