// Package rounding provides decimal half-up rounding for regulatory-style
// rate and price conventions.
package rounding

import "github.com/shopspring/decimal"

// RoundHalfUp rounds x to the given number of decimal places with ties
// rounding away from zero (the "5 rounds up" convention used by CME for
// settlement rates and prices).
//
// The rounding is performed in exact decimal arithmetic on the float's
// shortest decimal representation, so half-way values like 0.1235 round
// up to 0.124 regardless of their binary representation. decimals <= 0
// rounds to an integer.
func RoundHalfUp(x float64, decimals int) float64 {
	if decimals < 0 {
		decimals = 0
	}
	return decimal.NewFromFloat(x).Round(int32(decimals)).InexactFloat64()
}
