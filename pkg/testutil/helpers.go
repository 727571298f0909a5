// Package testutil provides common utility functions for testing.
package testutil

import "math"

// CloseTo reports whether got is within tol of want.
func CloseTo(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

// StrictlyIncreasing reports whether each value exceeds the one before it.
func StrictlyIncreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return false
		}
	}
	return true
}
