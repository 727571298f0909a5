// Package mathutil provides common mathematical utility functions.
package mathutil

import "math"

// Epsilon is the spacing between 1.0 and the next representable float64,
// i.e. double-precision machine epsilon.
var Epsilon = math.Nextafter(1, 2) - 1

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}
