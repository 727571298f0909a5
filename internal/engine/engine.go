// Package engine orchestrates the configured analyses over a scenario and
// assembles their results into a report.
package engine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"econengine/internal/config"
	"econengine/pkg/cashflow"
	"econengine/pkg/irr"
	"econengine/pkg/montecarlo"
	"econengine/pkg/sensitivity"
	"econengine/pkg/stats"
)

// Report holds all analysis results for a scenario.
type Report struct {
	Scenario     string
	DiscountRate float64
	NPV          float64
	IRR          *float64
	IRRFailure   string
	MonteCarlo   *stats.Summary
	Sweeps       []SweepReport
}

// SweepReport holds the result curve of one sensitivity sweep.
type SweepReport struct {
	Variable string
	Factors  []float64
	Values   []float64
}

// Run executes every analysis enabled in the configuration and returns the
// assembled report. Solver failures the caller is expected to handle (IRR
// non-convergence, a flat objective) are recorded in the report; anything
// else aborts the run.
func Run(logger *zap.Logger, conf config.Configuration) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := conf.Scenario
	flows, err := cashflow.FromBuffer(s.CashFlows, len(s.CashFlows))
	if err != nil {
		return nil, err
	}

	report := &Report{Scenario: s.Name, DiscountRate: s.DiscountRate}

	report.NPV = cashflow.NPV(flows, s.DiscountRate)
	logger.Debug(fmt.Sprintf("valued scenario %s at NPV %.2f", s.Name, report.NPV),
		zap.String("op", "engine.Run"),
	)

	if s.IRR {
		rate, irrErr := irr.Solve(flows)
		switch {
		case irrErr == nil:
			report.IRR = &rate
		case errors.Is(irrErr, irr.ErrNonConvergence), errors.Is(irrErr, irr.ErrDerivativeVanished):
			report.IRRFailure = irrErr.Error()
			logger.Warn("IRR solver failed",
				zap.String("op", "engine.Run"),
				zap.Error(irrErr),
			)
		default:
			return nil, irrErr
		}
	}

	if mc := s.MonteCarlo; mc != nil {
		model := montecarlo.UncertaintyModel{
			Price:      mc.PriceUncertainty,
			Cost:       mc.CostUncertainty,
			Production: mc.ProductionUncertainty,
		}
		summary, mcErr := montecarlo.Simulate(flows, mc.Iterations, model, mc.Seed, s.DiscountRate)
		if mcErr != nil {
			return nil, mcErr
		}
		report.MonteCarlo = &summary
		logger.Debug(fmt.Sprintf("simulated %d iterations with mean NPV %.2f", mc.Iterations, summary.Mean),
			zap.String("op", "engine.Run"),
		)
	}

	for i, sw := range s.Sweeps {
		variable, parseErr := sensitivity.ParseVariable(sw.Variable)
		if parseErr != nil {
			// Unrecognized selectors run the documented discount-rate
			// fallback rather than aborting the scenario.
			logger.Warn(fmt.Sprintf("sweep %d uses unknown variable %q, falling back to discount-rate behavior", i, sw.Variable),
				zap.String("op", "engine.Run"),
			)
			variable = sensitivity.Variable(-1)
		}

		values, sweepErr := sensitivity.Sweep(flows, variable, sw.RangeMin, sw.RangeMax, sw.Steps, s.DiscountRate, sw.FixedCostRatio, sw.VariableCostRatio)
		if sweepErr != nil {
			return nil, sweepErr
		}

		factors := make([]float64, sw.Steps+1)
		stepSize := (sw.RangeMax - sw.RangeMin) / float64(sw.Steps)
		for j := range factors {
			factors[j] = sw.RangeMin + float64(j)*stepSize
		}

		report.Sweeps = append(report.Sweeps, SweepReport{
			Variable: sw.Variable,
			Factors:  factors,
			Values:   values,
		})
	}

	return report, nil
}
