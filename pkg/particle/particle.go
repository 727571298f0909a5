// Package particle provides percentile statistics for particle size
// distributions and related separation-process helpers.
package particle

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidInput indicates an empty or undeclared size buffer.
var ErrInvalidInput = errors.New("invalid particle input")

// Distribution holds the characteristic percentile diameters of a particle
// size distribution.
type Distribution struct {
	D10 float64
	D50 float64
	D90 float64
}

// AnalyzeDistribution sorts a copy of the sizes and reports the 10th, 50th,
// and 90th percentile values by nearest rank.
func AnalyzeDistribution(sizes []float64) (Distribution, error) {
	if len(sizes) == 0 {
		return Distribution{}, fmt.Errorf("%w: empty size buffer", ErrInvalidInput)
	}

	sorted := make([]float64, len(sizes))
	copy(sorted, sizes)
	sort.Float64s(sorted)

	return Distribution{
		D10: percentile(sorted, 10),
		D50: percentile(sorted, 50),
		D90: percentile(sorted, 90),
	}, nil
}

// percentile picks the nearest-rank element of a sorted sample.
func percentile(sorted []float64, p float64) float64 {
	idx := int(math.Round(p / 100 * float64(len(sorted)-1)))
	return sorted[idx]
}

// ProteinRecovery computes the recovered protein mass from the yield,
// protein content, and separation efficiency (in percent) of a run.
func ProteinRecovery(proteinYield, proteinContent, separationEfficiency float64) float64 {
	return proteinYield * proteinContent * separationEfficiency / 100
}
