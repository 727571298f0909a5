// Package cashflow defines the cash-flow series type shared by all analyses
// and the net-present-value primitive that discounts it.
package cashflow

import (
	"errors"
	"fmt"
	"math"

	"econengine/pkg/mathutil"
)

// ErrInvalidInput indicates a buffer that fails the boundary contract.
var ErrInvalidInput = errors.New("invalid cash-flow input")

// Series is an ordered cash-flow series. Index 0 conventionally holds the
// initial investment (typically negative); later indices hold per-period net
// cash flow. A Series is owned by whoever constructed it and is never
// mutated by the analyses.
type Series []float64

// FromBuffer validates a caller-declared buffer extent and copies it into an
// owned Series. The declared length must be positive and must not exceed the
// backing buffer; nothing outside the declared extent is read.
func FromBuffer(buf []float64, n int) (Series, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidInput)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: declared length %d", ErrInvalidInput, n)
	}
	if n > len(buf) {
		return nil, fmt.Errorf("%w: declared length %d exceeds buffer length %d", ErrInvalidInput, n, len(buf))
	}
	s := make(Series, n)
	copy(s, buf[:n])
	return s, nil
}

// Clone returns an independent copy of the series.
func (s Series) Clone() Series {
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// DiscountFactor returns (1+rate)^period, the divisor applied to the cash
// flow at the given zero-based period.
func DiscountFactor(rate float64, period int) float64 {
	return math.Pow(1+rate, float64(period))
}

// Degenerate reports whether 1+rate is too close to zero to discount with.
// NPV defines every term at such a rate as zero rather than letting the
// division produce infinities.
func Degenerate(rate float64) bool {
	return math.Abs(1+rate) < mathutil.Epsilon
}

// NPV computes the net present value of the series at the given per-period
// discount rate. An empty series values to 0, as does any series at a
// degenerate rate. Safe for concurrent use on independent inputs.
func NPV(flows Series, rate float64) float64 {
	if len(flows) == 0 || Degenerate(rate) {
		return 0
	}
	npv := 0.0
	for t, flow := range flows {
		npv += flow / DiscountFactor(rate, t)
	}
	return npv
}
