package utils

import (
	"testing"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFare_General(t *testing.T) {
	got := ComputeFare(10, domain.ConcessionGeneral)
	assert.Equal(t, 40.0, got.Subtotal)
	assert.Equal(t, 40.0, got.FinalFare)
	assert.Equal(t, 0.0, got.DiscountAmount)
}

func TestComputeFare_Concessions(t *testing.T) {
	tests := []struct {
		concession domain.Concession
		want       float64
	}{
		{domain.ConcessionGeneral, 40},
		{domain.ConcessionStudent, 20},
		{domain.ConcessionChild, 20},
		{domain.ConcessionWomen, 28},
		{domain.ConcessionElderly, 24},
		{domain.ConcessionDisabled, 10},
	}
	for _, tc := range tests {
		t.Run(string(tc.concession), func(t *testing.T) {
			got := ComputeFare(10, tc.concession)
			assert.InDelta(t, tc.want, got.FinalFare, 0.001)
			assert.Equal(t, tc.concession, got.Concession)
		})
	}
}

func TestComputeFare_RoundsSubtotalBeforeDiscount(t *testing.T) {
	// 20 + 3.3*2 = 26.6 -> 27, then 30% off.
	got := ComputeFare(3.3, domain.ConcessionWomen)
	assert.Equal(t, 27.0, got.Subtotal)
	assert.InDelta(t, 18.9, got.FinalFare, 0.001)
}

func TestComputeFare_UnknownCategoryIsGeneral(t *testing.T) {
	got := ComputeFare(5, domain.Concession("vip"))
	assert.Equal(t, domain.ConcessionGeneral, got.Concession)
	assert.Equal(t, 30.0, got.FinalFare)
}

func TestComputeFare_NeverNegative(t *testing.T) {
	for _, c := range domain.Concessions {
		for _, d := range []float64{-50, -0.1, 0, 0.4, 12.7, 250} {
			got := ComputeFare(d, c)
			assert.GreaterOrEqual(t, got.FinalFare, 0.0, "concession=%s distance=%v", c, d)
		}
	}
}

func TestFare_NonIncreasingInDiscount(t *testing.T) {
	for _, d := range []float64{0, 1, 7.5, 42} {
		prev := -1.0
		for pct := 0.0; pct <= 1.0001; pct += 0.05 {
			got := applyDiscount(d, domain.ConcessionGeneral, pct)
			if prev >= 0 {
				require.LessOrEqual(t, got.FinalFare, prev, "distance=%v pct=%v", d, pct)
			}
			prev = got.FinalFare
		}
	}

	// The fixed category table obeys the same ordering.
	byDiscount := map[float64]float64{}
	for _, c := range domain.Concessions {
		byDiscount[DiscountFor(c)] = ComputeFare(15, c).FinalFare
	}
	for p1, f1 := range byDiscount {
		for p2, f2 := range byDiscount {
			if p1 < p2 {
				assert.GreaterOrEqual(t, f1, f2)
			}
		}
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.23, RoundTo(1.2349, 2))
	assert.Equal(t, 2.0, RoundTo(1.5, 0))
}
