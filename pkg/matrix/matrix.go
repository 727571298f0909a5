// Package matrix provides dense row-major matrix utilities consumed through
// the same raw-buffer convention as the cash-flow analyses.
package matrix

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"econengine/pkg/constants"
)

var (
	// ErrInvalidInput indicates buffers or dimensions that fail the
	// boundary contract.
	ErrInvalidInput = errors.New("invalid matrix input")

	// ErrSingular indicates no pivot exceeded the numerical threshold
	// during elimination.
	ErrSingular = errors.New("matrix is singular")
)

// Multiply computes the (m×n)·(n×p) product of two row-major matrices and
// returns the m×p result. Result rows are computed in parallel; each row
// depends only on the read-only inputs, so order never affects the values.
func Multiply(a, b []float64, m, n, p int) ([]float64, error) {
	if m <= 0 || n <= 0 || p <= 0 {
		return nil, fmt.Errorf("%w: dimensions (%dx%d)·(%dx%d)", ErrInvalidInput, m, n, n, p)
	}
	if len(a) < m*n {
		return nil, fmt.Errorf("%w: left buffer holds %d values, need %d", ErrInvalidInput, len(a), m*n)
	}
	if len(b) < n*p {
		return nil, fmt.Errorf("%w: right buffer holds %d values, need %d", ErrInvalidInput, len(b), n*p)
	}

	result := make([]float64, m*p)

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < m; i++ {
		i := i
		g.Go(func() error {
			row := result[i*p : (i+1)*p]
			for j := 0; j < p; j++ {
				sum := 0.0
				for k := 0; k < n; k++ {
					sum += a[i*n+k] * b[k*p+j]
				}
				row[j] = sum
			}
			return nil
		})
	}
	_ = g.Wait()

	return result, nil
}

// Invert returns the inverse of an n×n row-major matrix computed by
// Gauss-Jordan elimination with partial pivoting. The input buffer is left
// untouched; a fresh buffer holds the inverse.
func Invert(a []float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: dimension %d", ErrInvalidInput, n)
	}
	if len(a) < n*n {
		return nil, fmt.Errorf("%w: buffer holds %d values, need %d", ErrInvalidInput, len(a), n*n)
	}

	// Augmented [A|I].
	width := 2 * n
	aug := make([]float64, n*width)
	for i := 0; i < n; i++ {
		copy(aug[i*width:i*width+n], a[i*n:(i+1)*n])
		aug[i*width+n+i] = 1
	}

	for i := 0; i < n; i++ {
		// Partial pivot: largest magnitude in the column at or below the
		// diagonal.
		maxVal := math.Abs(aug[i*width+i])
		maxRow := i
		for j := i + 1; j < n; j++ {
			if v := math.Abs(aug[j*width+i]); v > maxVal {
				maxVal = v
				maxRow = j
			}
		}
		if maxVal < constants.PivotThreshold {
			return nil, fmt.Errorf("%w: no pivot above %g in column %d", ErrSingular, float64(constants.PivotThreshold), i)
		}
		if maxRow != i {
			for j := 0; j < width; j++ {
				aug[i*width+j], aug[maxRow*width+j] = aug[maxRow*width+j], aug[i*width+j]
			}
		}

		pivot := aug[i*width+i]
		for j := 0; j < width; j++ {
			aug[i*width+j] /= pivot
		}

		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			factor := aug[j*width+i]
			for k := 0; k < width; k++ {
				aug[j*width+k] -= factor * aug[i*width+k]
			}
		}
	}

	inv := make([]float64, n*n)
	for i := 0; i < n; i++ {
		copy(inv[i*n:(i+1)*n], aug[i*width+n:i*width+width])
	}
	return inv, nil
}
