// Package irr solves for the internal rate of return of a cash-flow series,
// the discount rate at which its net present value reaches zero.
package irr

import (
	"errors"
	"fmt"
	"math"

	"econengine/pkg/cashflow"
	"econengine/pkg/constants"
)

var (
	// ErrInvalidInput indicates a series the solver cannot iterate on.
	ErrInvalidInput = errors.New("invalid IRR input")

	// ErrNonConvergence indicates the iteration cap was reached before the
	// NPV objective fell within tolerance. An expected outcome for series
	// with no root near the initial guess, not a fault.
	ErrNonConvergence = errors.New("IRR did not converge")

	// ErrDerivativeVanished indicates a flat NPV objective: the estimated
	// derivative is too small to divide by, so no Newton step can be taken.
	ErrDerivativeVanished = errors.New("IRR derivative vanished")
)

// Solve runs Newton-Raphson iteration on the objective f(rate) = NPV(flows,
// rate), starting from a 10% guess with a forward-difference derivative.
// A converged result r satisfies |NPV(flows, r)| < 1e-6.
func Solve(flows cashflow.Series) (float64, error) {
	if len(flows) == 0 {
		return 0, fmt.Errorf("%w: empty cash-flow series", ErrInvalidInput)
	}

	rate := float64(constants.IRRInitialGuess)
	for i := 0; i < constants.IRRMaxIterations; i++ {
		npv := cashflow.NPV(flows, rate)
		if math.Abs(npv) < constants.IRRTolerance {
			return rate, nil
		}

		delta := float64(constants.IRRDerivativeStep)
		derivative := (cashflow.NPV(flows, rate+delta) - npv) / delta
		if math.Abs(derivative) < constants.IRRDerivativeFloor {
			return 0, fmt.Errorf("%w: |f'| = %g at rate %g", ErrDerivativeVanished, math.Abs(derivative), rate)
		}

		rate = rate - npv/derivative
	}

	return 0, fmt.Errorf("%w: no root within %d iterations", ErrNonConvergence, constants.IRRMaxIterations)
}
