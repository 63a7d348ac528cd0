package common

import "math"

// Round rounds half away from zero.
// https://stackoverflow.com/questions/18390266/how-can-we-truncate-float64-type-to-a-particular-precision
func Round(num float64) int {
	return int(num + math.Copysign(0.5, num))
}

// DecimalToFixed rounds num to the given number of decimal places.
// A negative precision is a no-op; intermediate sums should stay
// unrounded or the error compounds.
func DecimalToFixed(num float64, precision int) float64 {
	if precision < 0 {
		return num
	}
	output := math.Pow(10, float64(precision))
	return float64(Round(num*output)) / output
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
