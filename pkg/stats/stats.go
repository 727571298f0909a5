// Package stats reduces simulation sample populations to summary statistics.
package stats

import "math"

// Summary holds the aggregate statistics of a sample population.
type Summary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes the arithmetic mean, population standard deviation
// (normalized by the sample count, not count-1), minimum, and maximum of the
// samples. The reduction is associative and commutative so the result does
// not depend on how the samples were produced, only on their values and
// count. An empty population yields a zero Summary.
func Summarize(samples []float64) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	sum := 0.0
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, x := range samples {
		sum += x
		min = math.Min(min, x)
		max = math.Max(max, x)
	}
	mean := sum / float64(len(samples))

	variance := 0.0
	for _, x := range samples {
		d := x - mean
		variance += d * d
	}
	variance /= float64(len(samples))

	return Summary{
		Mean:   mean,
		StdDev: math.Sqrt(variance),
		Min:    min,
		Max:    max,
	}
}
