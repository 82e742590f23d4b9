package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// The projection and eligibility logic never rejects malformed numeric input;
// partially-filled scenarios degrade to documented fallbacks instead of
// raising. Every public entry point routes raw numbers through these helpers.

// CoerceFloat returns v unless it is NaN or infinite, in which case it
// returns fallback.
func CoerceFloat(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// CoerceFloatRange coerces v to a finite value and then clamps it to
// [min, max].
func CoerceFloatRange(v, fallback, min, max float64) float64 {
	v = CoerceFloat(v, fallback)
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// CoerceDecimal returns v unless it is negative, in which case it returns
// fallback. Decimals cannot hold NaN or infinities, so negativity is the
// malformed case that matters for balances, salaries and rates here.
func CoerceDecimal(v, fallback decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return fallback
	}
	return v
}

// ClampInt clamps v to [min, max].
func ClampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampIntMin clamps v to at least min.
func ClampIntMin(v, min int) int {
	if v < min {
		return min
	}
	return v
}
