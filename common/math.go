package common

import (
	"math"
)

// Lerp linearly interpolates between a and b by factor f.
// f is not clamped; f = 0 yields a and f = 1 yields b.
//
// Parameters:
//   - a: start value
//   - b: end value
//   - f: interpolation factor
//
// Returns:
//   - float64: a + (b-a)*f
func Lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}

// Clamp restricts v to the closed interval [lo, hi].
// NaN inputs collapse to lo so a degenerate ratio never leaks into per-frame output.
//
// Parameters:
//   - v: value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float64: v limited to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SafeRatio divides num by den, returning fallback when den is zero.
//
// Parameters:
//   - num: numerator
//   - den: denominator
//   - fallback: value returned for a zero denominator
//
// Returns:
//   - float64: num/den, or fallback
func SafeRatio(num, den, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	return num / den
}

// ApproxEqual reports whether a and b agree within a relative tolerance.
// Values near zero are compared with tol as an absolute tolerance.
//
// Parameters:
//   - a, b: values to compare
//   - tol: relative tolerance (e.g. 1e-9)
//
// Returns:
//   - bool: true if |a-b| <= tol * max(1, |a|, |b|)
func ApproxEqual(a, b, tol float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tol*scale
}

// IsFinite reports whether every value is neither NaN nor infinite.
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
