// Package config defines the data structures related to scenario
// configuration and includes functions for loading and validating it.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"econengine/pkg/constants"
	"econengine/pkg/sensitivity"
)

// Configuration holds all configuration for an econengine run.
type Configuration struct {
	Scenario Scenario
	Logging  LoggingConfig `yaml:"logging,omitempty"`
	Output   OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Scenario holds the cash-flow series and the analyses to run over it.
type Scenario struct {
	Name         string
	CashFlows    []float64
	DiscountRate float64
	IRR          bool
	MonteCarlo   *MonteCarloConfig
	Sweeps       []SweepConfig
}

// MonteCarloConfig parameterizes the uncertainty simulation.
type MonteCarloConfig struct {
	Iterations            int
	Seed                  int64
	PriceUncertainty      float64
	CostUncertainty       float64
	ProductionUncertainty float64
}

// SweepConfig parameterizes one sensitivity sweep.
type SweepConfig struct {
	Variable          string
	RangeMin          float64
	RangeMax          float64
	Steps             int
	FixedCostRatio    float64
	VariableCostRatio float64
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")
	v.SetDefault("scenario.discountRate", constants.DefaultDiscountRate)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration checks the scenario for conditions that will fail at
// analysis time and returns human-readable warnings.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	s := conf.Scenario
	if len(s.CashFlows) == 0 {
		warnings = append(warnings, "scenario has no cash flows; every analysis will fail validation")
	} else if s.CashFlows[0] > 0 {
		warnings = append(warnings, fmt.Sprintf("initial cash flow %.2f is positive; index 0 normally holds the (negative) initial investment", s.CashFlows[0]))
	}

	if mc := s.MonteCarlo; mc != nil {
		if mc.Iterations <= 0 {
			warnings = append(warnings, fmt.Sprintf("monteCarlo.iterations = %d; the simulation requires at least one iteration", mc.Iterations))
		}
		uncertainties := []struct {
			name  string
			sigma float64
		}{
			{"priceUncertainty", mc.PriceUncertainty},
			{"costUncertainty", mc.CostUncertainty},
			{"productionUncertainty", mc.ProductionUncertainty},
		}
		for _, u := range uncertainties {
			if u.sigma < 0 {
				warnings = append(warnings, fmt.Sprintf("monteCarlo.%s = %g; standard deviations must be non-negative", u.name, u.sigma))
			}
		}
	}

	for i, sw := range s.Sweeps {
		if _, err := sensitivity.ParseVariable(sw.Variable); err != nil {
			warnings = append(warnings, fmt.Sprintf("sweeps[%d]: unknown variable %q; the sweep will fall back to discount-rate behavior", i, sw.Variable))
		}
		if sw.Steps < 1 {
			warnings = append(warnings, fmt.Sprintf("sweeps[%d]: steps = %d; sweeps require at least one step", i, sw.Steps))
		}
		if sw.RangeMin > sw.RangeMax {
			warnings = append(warnings, fmt.Sprintf("sweeps[%d]: rangeMin %g exceeds rangeMax %g", i, sw.RangeMin, sw.RangeMax))
		}
	}

	return warnings
}
