// Package constants provides shared constants for the econengine analyses.
package constants

// Discounting constants
const (
	// DefaultDiscountRate is the per-period discount rate assumed when a
	// scenario does not declare one.
	DefaultDiscountRate = 0.10
)

// IRR solver constants
const (
	// IRRInitialGuess is the starting rate for Newton-Raphson iteration.
	IRRInitialGuess = 0.10

	// IRRMaxIterations caps the Newton-Raphson loop.
	IRRMaxIterations = 100

	// IRRTolerance is the absolute NPV magnitude accepted as a root.
	IRRTolerance = 1e-6

	// IRRDerivativeStep is the forward-difference step used to estimate the
	// derivative of the NPV objective.
	IRRDerivativeStep = 1e-4

	// IRRDerivativeFloor is the smallest derivative magnitude the solver
	// will divide by.
	IRRDerivativeFloor = 1e-12
)

// Matrix constants
const (
	// PivotThreshold is the smallest pivot magnitude treated as nonzero
	// during Gauss-Jordan elimination.
	PivotThreshold = 1e-10
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default scenario configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example scenario configuration file name
	ExampleConfigFile = "config.yaml.example"
)
