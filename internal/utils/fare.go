package utils

import (
	"math"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
)

const (
	BaseFare  = 20.0
	PerKmRate = 2.0
)

// discountPercentage is fixed per concession category.
var discountPercentage = map[domain.Concession]float64{
	domain.ConcessionGeneral:  0,
	domain.ConcessionStudent:  0.50,
	domain.ConcessionChild:    0.50,
	domain.ConcessionWomen:    0.30,
	domain.ConcessionElderly:  0.40,
	domain.ConcessionDisabled: 0.75,
}

type FareBreakdown struct {
	DistanceKm         float64           `json:"distanceKm"`
	BaseFare           float64           `json:"baseFare"`
	DistanceFare       float64           `json:"distanceFare"`
	Subtotal           float64           `json:"subtotal"`
	Concession         domain.Concession `json:"concession"`
	DiscountPercentage float64           `json:"discountPercentage"`
	DiscountAmount     float64           `json:"discountAmount"`
	FinalFare          float64           `json:"finalFare"`
}

// DiscountFor returns the discount fraction of a category; unknown ones get none.
func DiscountFor(c domain.Concession) float64 {
	return discountPercentage[c]
}

// ComputeFare prices a distance for a concession category:
// round(base + km*rate) * (1 - discount).
func ComputeFare(distanceKm float64, c domain.Concession) FareBreakdown {
	if _, ok := discountPercentage[c]; !ok {
		c = domain.ConcessionGeneral
	}
	return applyDiscount(distanceKm, c, discountPercentage[c])
}

func applyDiscount(distanceKm float64, c domain.Concession, pct float64) FareBreakdown {
	if distanceKm < 0 || math.IsNaN(distanceKm) {
		distanceKm = 0
	}
	pct = math.Min(math.Max(pct, 0), 1)

	distanceFare := distanceKm * PerKmRate
	subtotal := math.Round(BaseFare + distanceFare)
	final := subtotal * (1 - pct)

	return FareBreakdown{
		DistanceKm:         RoundTo(distanceKm, 2),
		BaseFare:           BaseFare,
		DistanceFare:       RoundTo(distanceFare, 2),
		Subtotal:           subtotal,
		Concession:         c,
		DiscountPercentage: pct,
		DiscountAmount:     RoundTo(subtotal-final, 2),
		FinalFare:          RoundTo(final, 2),
	}
}

// RoundTo rounds x to the given number of decimals.
func RoundTo(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}
