// Package montecarlo quantifies cash-flow uncertainty by stochastic
// simulation: each iteration perturbs the series under three independent
// zero-mean normal noise sources, values the result as a discounted sum, and
// the iteration population reduces to summary statistics.
package montecarlo

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"econengine/pkg/cashflow"
	"econengine/pkg/stats"
)

// ErrInvalidParameters indicates simulation inputs rejected before any work
// begins.
var ErrInvalidParameters = errors.New("invalid simulation parameters")

// chunkSize is the number of iterations handed to one worker at a time.
const chunkSize = 1024

// UncertaintyModel holds the standard deviations of the three independent
// zero-mean normal noise sources applied to a cash-flow series. Input-price
// risk and output-price risk are economically distinct, so revenue and cost
// flows carry separate noise; production-volume risk scales both.
type UncertaintyModel struct {
	// Price applies to positive (revenue) flows.
	Price float64
	// Cost applies to negative (cost) flows.
	Cost float64
	// Production applies to every flow after the initial investment.
	Production float64
}

// Validate checks that each parameter can form a zero-mean normal
// distribution.
func (m UncertaintyModel) Validate() error {
	params := []struct {
		name  string
		sigma float64
	}{
		{"price", m.Price},
		{"cost", m.Cost},
		{"production", m.Production},
	}
	for _, p := range params {
		if p.sigma < 0 || math.IsNaN(p.sigma) {
			return fmt.Errorf("%w: %s uncertainty %g is not a valid standard deviation", ErrInvalidParameters, p.name, p.sigma)
		}
	}
	return nil
}

// Simulate runs the uncertainty simulation and reduces the iteration
// population to its mean, population standard deviation, minimum, and
// maximum. Iterations are independent and run on a worker pool sized to the
// available cores; each derives its random stream from seed+iteration alone,
// so identical inputs produce bit-identical statistics regardless of worker
// count.
func Simulate(flows cashflow.Series, iterations int, model UncertaintyModel, seed int64, discountRate float64) (stats.Summary, error) {
	if len(flows) == 0 {
		return stats.Summary{}, fmt.Errorf("%w: empty cash-flow series", ErrInvalidParameters)
	}
	if iterations <= 0 {
		return stats.Summary{}, fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidParameters, iterations)
	}
	if err := model.Validate(); err != nil {
		return stats.Summary{}, err
	}

	samples := make([]float64, iterations)

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for start := 0; start < iterations; start += chunkSize {
		end := start + chunkSize
		if end > iterations {
			end = iterations
		}
		start := start
		g.Go(func() error {
			for i := start; i < end; i++ {
				samples[i] = runIteration(flows, model, seed+int64(i), discountRate)
			}
			return nil
		})
	}
	// Iterations cannot fail once the inputs validate.
	_ = g.Wait()

	return stats.Summarize(samples), nil
}

// runIteration values one perturbed copy of the series. The initial
// investment is committed and passes through unchanged; every later period
// draws a production-volume sample, then a price sample (revenue) or a cost
// sample (cost), and discounts the combined value. A degenerate discount
// rate zeroes every term, matching the NPV policy.
func runIteration(flows cashflow.Series, model UncertaintyModel, streamSeed int64, discountRate float64) float64 {
	if cashflow.Degenerate(discountRate) {
		return 0
	}

	rng := rand.New(rand.NewSource(streamSeed))

	npv := flows[0]
	for t := 1; t < len(flows); t++ {
		base := flows[t]
		production := rng.NormFloat64() * model.Production

		adjusted := base
		switch {
		case base > 0:
			price := rng.NormFloat64() * model.Price
			adjusted = base * (1 + price) * (1 + production)
		case base < 0:
			cost := rng.NormFloat64() * model.Cost
			adjusted = base * (1 + cost) * (1 + production)
		}

		npv += adjusted / cashflow.DiscountFactor(discountRate, t)
	}
	return npv
}
