// Package pricing computes effective property prices from a base price and
// optional discount and surcharge percentages.
package pricing

import "math"

// halfUpEpsilon absorbs binary representation error on exact half-cent values.
const halfUpEpsilon = 1e-9

// Breakdown records every step of a calculation. Only Final is rounded.
type Breakdown struct {
	Base           float64 `json:"base"`
	DiscountPct    float64 `json:"discount_pct"`
	SurchargePct   float64 `json:"surcharge_pct"`
	AfterDiscount  float64 `json:"after_discount"`
	AfterSurcharge float64 `json:"after_surcharge"`
	Final          float64 `json:"final"`
}

// Calculate returns the effective price. A negative base clamps to 0; a
// positive discount is applied before a positive surcharge; the result is
// rounded half-up to cents once, at the end.
//
// Percentages are not bounded: a discount above 100 yields a negative price.
func Calculate(basePrice, discountPct, surchargePct float64) float64 {
	return Compute(basePrice, discountPct, surchargePct).Final
}

// Compute is Calculate with the intermediate values exposed.
func Compute(basePrice, discountPct, surchargePct float64) Breakdown {
	b := Breakdown{
		Base:         math.Max(basePrice, 0),
		DiscountPct:  discountPct,
		SurchargePct: surchargePct,
	}

	price := b.Base
	if discountPct > 0 {
		price *= 1 - discountPct/100
	}
	b.AfterDiscount = price

	if surchargePct > 0 {
		price *= 1 + surchargePct/100
	}
	b.AfterSurcharge = price

	b.Final = RoundCents(price)
	return b
}

// RoundCents rounds half-up on the cent boundary.
func RoundCents(v float64) float64 {
	return math.Floor(v*100+0.5+halfUpEpsilon) / 100
}
