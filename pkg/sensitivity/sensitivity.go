// Package sensitivity produces parametric NPV curves by sweeping one
// economic variable across a range of multiplicative factors and revaluing
// the cash-flow series at each step.
package sensitivity

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"econengine/pkg/cashflow"
)

var (
	// ErrInvalidInput indicates sweep inputs rejected before any
	// evaluation.
	ErrInvalidInput = errors.New("invalid sweep input")

	// ErrInvalidRange indicates range bounds the selected variable cannot
	// normalize against.
	ErrInvalidRange = errors.New("invalid sweep range")
)

// Variable selects which transformation rule a sweep applies. The
// enumeration is closed; any other value runs the documented fallback of
// sweeping the discount rate around the caller's base, i.e. the sample
// values NPV(flows, discountRate*factor).
type Variable int

const (
	// DiscountRate sweeps the discount rate itself; each swept factor is
	// valued directly as the rate and the caller's discountRate is ignored.
	DiscountRate Variable = iota

	// ProductionVolume scales revenue and the variable share of costs by
	// the factor's ratio to the midpoint of the swept range.
	ProductionVolume

	// OperatingCosts scales the variable-cost component of each flow by the
	// factor; revenue and fixed cost hold constant.
	OperatingCosts

	// Revenue scales positive flows by the factor; costs hold constant.
	Revenue
)

// String returns the configuration name of the variable.
func (v Variable) String() string {
	switch v {
	case DiscountRate:
		return "discountRate"
	case ProductionVolume:
		return "productionVolume"
	case OperatingCosts:
		return "operatingCosts"
	case Revenue:
		return "revenue"
	}
	return fmt.Sprintf("Variable(%d)", int(v))
}

// ParseVariable maps a configuration name to a Variable. Matching is
// case-insensitive and tolerates snake_case and kebab-case spellings.
func ParseVariable(name string) (Variable, error) {
	normalized := strings.ToLower(name)
	normalized = strings.ReplaceAll(normalized, "_", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	switch normalized {
	case "discountrate":
		return DiscountRate, nil
	case "productionvolume":
		return ProductionVolume, nil
	case "operatingcosts":
		return OperatingCosts, nil
	case "revenue":
		return Revenue, nil
	}
	return DiscountRate, fmt.Errorf("%w: unknown sensitivity variable %q", ErrInvalidInput, name)
}

// Sweep evaluates steps+1 equally spaced factors in [rangeMin, rangeMax]
// inclusive and returns the NPV at each, ordered by step index regardless of
// execution order. Steps run in parallel on a worker pool sized to the
// available cores; every evaluation works on its own copy of the series.
func Sweep(flows cashflow.Series, variable Variable, rangeMin, rangeMax float64, steps int, discountRate, fixedCostRatio, variableCostRatio float64) ([]float64, error) {
	if len(flows) == 0 {
		return nil, fmt.Errorf("%w: empty cash-flow series", ErrInvalidInput)
	}
	if steps < 1 {
		return nil, fmt.Errorf("%w: steps must be >= 1, got %d", ErrInvalidInput, steps)
	}
	if variable == ProductionVolume && rangeMin+rangeMax == 0 {
		return nil, fmt.Errorf("%w: production-volume sweep cannot normalize against a zero midpoint", ErrInvalidRange)
	}

	stepSize := (rangeMax - rangeMin) / float64(steps)
	results := make([]float64, steps+1)

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i := 0; i <= steps; i++ {
		i := i
		g.Go(func() error {
			factor := rangeMin + float64(i)*stepSize
			results[i] = evaluate(flows, variable, factor, rangeMin, rangeMax, discountRate, fixedCostRatio, variableCostRatio)
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

func evaluate(flows cashflow.Series, variable Variable, factor, rangeMin, rangeMax, discountRate, fixedCostRatio, variableCostRatio float64) float64 {
	switch variable {
	case DiscountRate:
		return cashflow.NPV(flows, factor)
	case ProductionVolume:
		baseVolume := (rangeMin + rangeMax) / 2
		return cashflow.NPV(scaleProductionVolume(flows, factor, baseVolume, fixedCostRatio), discountRate)
	case OperatingCosts:
		return cashflow.NPV(scaleOperatingCosts(flows, factor, fixedCostRatio, variableCostRatio), discountRate)
	case Revenue:
		return cashflow.NPV(scaleRevenue(flows, factor), discountRate)
	default:
		// Unrecognized selector: sweep the discount rate around the
		// caller's base. Defined fallback, not an error.
		return cashflow.NPV(flows, discountRate*factor)
	}
}

// scaleProductionVolume scales revenue directly and costs through their
// variable portion by the factor's ratio to the base volume. Non-positive
// factors collapse the relative multiplier to zero. The initial investment
// is committed and untouched.
func scaleProductionVolume(flows cashflow.Series, factor, baseVolume, fixedCostRatio float64) cashflow.Series {
	relFactor := 0.0
	if factor > 0 {
		relFactor = factor / baseVolume
	}

	out := flows.Clone()
	for t := 1; t < len(out); t++ {
		flow := out[t]
		switch {
		case flow > 0:
			out[t] = flow * relFactor
		case flow < 0:
			fixed := flow * fixedCostRatio
			variable := flow * (1 - fixedCostRatio)
			out[t] = fixed + variable*relFactor
		}
	}
	return out
}

// scaleOperatingCosts decomposes each flow's magnitude into variable-cost
// and fixed-cost components and rebuilds it with only the variable component
// scaled by the factor.
func scaleOperatingCosts(flows cashflow.Series, factor, fixedCostRatio, variableCostRatio float64) cashflow.Series {
	out := flows.Clone()
	for t := 1; t < len(out); t++ {
		flow := out[t]
		variable := math.Abs(flow) * variableCostRatio
		fixed := math.Abs(flow) * fixedCostRatio
		out[t] = (flow + variable) - variable*factor - fixed
	}
	return out
}

// scaleRevenue scales positive flows by the factor and leaves costs alone.
func scaleRevenue(flows cashflow.Series, factor float64) cashflow.Series {
	out := flows.Clone()
	for t := 1; t < len(out); t++ {
		if out[t] > 0 {
			out[t] *= factor
		}
	}
	return out
}
