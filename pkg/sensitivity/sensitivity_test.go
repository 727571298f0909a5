package sensitivity

import (
	"errors"
	"math"
	"testing"

	"econengine/pkg/cashflow"
	"econengine/pkg/testutil"
)

func TestParseVariable(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Variable
		expectErr bool
	}{
		{name: "Camel case", input: "discountRate", expected: DiscountRate},
		{name: "Snake case", input: "production_volume", expected: ProductionVolume},
		{name: "Kebab case", input: "operating-costs", expected: OperatingCosts},
		{name: "Upper case", input: "REVENUE", expected: Revenue},
		{name: "Unknown name", input: "exchange_rate", expectErr: true},
		{name: "Empty name", input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variable, err := ParseVariable(tt.input)
			if tt.expectErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("ParseVariable(%q) error = %v, expected ErrInvalidInput", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVariable(%q) error = %v", tt.input, err)
			}
			if variable != tt.expected {
				t.Errorf("ParseVariable(%q) = %v, expected %v", tt.input, variable, tt.expected)
			}
		})
	}
}

func TestSweepValidation(t *testing.T) {
	flows := cashflow.Series{-1000, 500}

	tests := []struct {
		name      string
		flows     cashflow.Series
		variable  Variable
		rangeMin  float64
		rangeMax  float64
		steps     int
		expectErr error
	}{
		{
			name:      "Empty series",
			flows:     cashflow.Series{},
			variable:  Revenue,
			rangeMin:  0.8,
			rangeMax:  1.2,
			steps:     2,
			expectErr: ErrInvalidInput,
		},
		{
			name:      "Zero steps",
			flows:     flows,
			variable:  Revenue,
			rangeMin:  0.8,
			rangeMax:  1.2,
			steps:     0,
			expectErr: ErrInvalidInput,
		},
		{
			name:      "Production volume with zero midpoint",
			flows:     flows,
			variable:  ProductionVolume,
			rangeMin:  -1,
			rangeMax:  1,
			steps:     2,
			expectErr: ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sweep(tt.flows, tt.variable, tt.rangeMin, tt.rangeMax, tt.steps, 0.10, 0.4, 0.6)
			if !errors.Is(err, tt.expectErr) {
				t.Errorf("Sweep() error = %v, expected %v", err, tt.expectErr)
			}
		})
	}
}

func TestSweepDiscountRate(t *testing.T) {
	flows := cashflow.Series{-1000, 500, 500, 500}

	values, err := Sweep(flows, DiscountRate, 0.05, 0.15, 2, 0.99, 0, 0)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	expected := []float64{
		cashflow.NPV(flows, 0.05),
		cashflow.NPV(flows, 0.10),
		cashflow.NPV(flows, 0.15),
	}
	for i, want := range expected {
		if !testutil.CloseTo(values[i], want, 1e-9) {
			t.Errorf("values[%d] = %.6f, expected %.6f", i, values[i], want)
		}
	}
}

func TestSweepDiscountRateDegenerateRange(t *testing.T) {
	flows := cashflow.Series{-1000, 500, 500}
	r0 := 0.10

	values, err := Sweep(flows, DiscountRate, r0, r0, 1, 0.25, 0, 0)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	expected := cashflow.NPV(flows, r0)
	if len(values) != 2 {
		t.Fatalf("len(values) = %d, expected 2", len(values))
	}
	if values[0] != expected || values[1] != expected {
		t.Errorf("values = %v, expected [%v, %v]", values, expected, expected)
	}
}

func TestSweepRevenue(t *testing.T) {
	flows := cashflow.Series{-1000, 800}

	values, err := Sweep(flows, Revenue, 0.8, 1.2, 2, 0.10, 0.4, 0.6)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	expected := []float64{-418.181818, -272.727273, -127.272727}
	for i, want := range expected {
		if !testutil.CloseTo(values[i], want, 1e-4) {
			t.Errorf("values[%d] = %.6f, expected %.6f", i, values[i], want)
		}
	}
	if !testutil.StrictlyIncreasing(values) {
		t.Errorf("revenue sweep should increase with the multiplier, got %v", values)
	}
}

func TestSweepRevenueLeavesCostsAlone(t *testing.T) {
	// Costs are untouched by a revenue sweep, so a cost-only series yields
	// a flat curve.
	flows := cashflow.Series{-1000, -200}

	values, err := Sweep(flows, Revenue, 0.5, 1.5, 2, 0.10, 0.4, 0.6)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	base := cashflow.NPV(flows, 0.10)
	for i, value := range values {
		if !testutil.CloseTo(value, base, 1e-9) {
			t.Errorf("values[%d] = %.6f, expected flat %.6f", i, value, base)
		}
	}
}

func TestSweepProductionVolume(t *testing.T) {
	flows := cashflow.Series{-1000, 500, -300}

	values, err := Sweep(flows, ProductionVolume, 0.5, 1.5, 2, 0.10, 0.4, 0.6)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	// Midpoint factor 1.0 reproduces the unmodified series.
	if !testutil.CloseTo(values[1], cashflow.NPV(flows, 0.10), 1e-9) {
		t.Errorf("values[1] = %.6f, expected the base NPV %.6f", values[1], cashflow.NPV(flows, 0.10))
	}

	expected := []float64{-946.280992, values[1], -640.495868}
	for i, want := range expected {
		if !testutil.CloseTo(values[i], want, 1e-4) {
			t.Errorf("values[%d] = %.6f, expected %.6f", i, values[i], want)
		}
	}
	if !testutil.StrictlyIncreasing(values) {
		t.Errorf("volume sweep should increase with the factor, got %v", values)
	}
}

func TestSweepProductionVolumeNonPositiveFactor(t *testing.T) {
	flows := cashflow.Series{-1000, 500, -300}

	// Factors at or below zero collapse the relative multiplier: revenue
	// vanishes and only the fixed share of costs remains.
	values, err := Sweep(flows, ProductionVolume, -2, 4, 3, 0.10, 0.4, 0.6)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	expected := -1000 + 0/1.1 + (-300*0.4)/1.21
	if !testutil.CloseTo(values[0], expected, 1e-4) {
		t.Errorf("values[0] = %.6f, expected %.6f", values[0], expected)
	}
}

func TestSweepOperatingCosts(t *testing.T) {
	flows := cashflow.Series{-1000, 1000, -200}

	values, err := Sweep(flows, OperatingCosts, 0.5, 1.5, 2, 0.10, 0.3, 0.5)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	expected := []float64{-309.917355, -578.512397, -847.107438}
	for i, want := range expected {
		if !testutil.CloseTo(values[i], want, 1e-4) {
			t.Errorf("values[%d] = %.6f, expected %.6f", i, values[i], want)
		}
	}

	// Scaling up operating costs can only hurt NPV.
	for i := 1; i < len(values); i++ {
		if values[i] >= values[i-1] {
			t.Errorf("NPV should fall as the cost factor rises, got %v", values)
		}
	}
}

func TestSweepUnknownVariableFallsBack(t *testing.T) {
	flows := cashflow.Series{-1000, 1100}
	base := 0.20

	values, err := Sweep(flows, Variable(99), 0.5, 1.5, 2, base, 0, 0)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	expected := []float64{
		cashflow.NPV(flows, base*0.5),
		cashflow.NPV(flows, base*1.0),
		cashflow.NPV(flows, base*1.5),
	}
	for i, want := range expected {
		if !testutil.CloseTo(values[i], want, 1e-9) {
			t.Errorf("values[%d] = %.6f, expected %.6f", i, values[i], want)
		}
	}
}

func TestSweepLengthAndOrder(t *testing.T) {
	flows := cashflow.Series{-1000, 500, 500}

	steps := 16
	values, err := Sweep(flows, DiscountRate, 0.01, 0.50, steps, 0.10, 0, 0)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	if len(values) != steps+1 {
		t.Fatalf("len(values) = %d, expected %d", len(values), steps+1)
	}

	// NPV falls as the swept discount rate rises, so index order must match
	// step order no matter how the steps were scheduled.
	for i := 1; i < len(values); i++ {
		if values[i] >= values[i-1] {
			t.Errorf("values out of step order at index %d: %v", i, values)
		}
	}
}

func TestSweepDoesNotMutateInput(t *testing.T) {
	flows := cashflow.Series{-1000, 800, -200}
	original := flows.Clone()

	if _, err := Sweep(flows, Revenue, 0.5, 1.5, 4, 0.10, 0.4, 0.6); err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	for i := range flows {
		if flows[i] != original[i] {
			t.Errorf("input series mutated at index %d: %v", i, flows)
		}
	}
}

func TestVariableString(t *testing.T) {
	if DiscountRate.String() != "discountRate" || Revenue.String() != "revenue" {
		t.Error("Variable.String() does not round-trip configuration names")
	}
	if s := Variable(7).String(); s != "Variable(7)" {
		t.Errorf("Variable(7).String() = %q", s)
	}
}

func TestSweepDegenerateDiscountRate(t *testing.T) {
	flows := cashflow.Series{-1000, 500}

	// Sweeping the discount rate across -1 must hand back zeros, not NaN.
	values, err := Sweep(flows, DiscountRate, -1, -1, 1, 0.10, 0, 0)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	for i, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) || value != 0 {
			t.Errorf("values[%d] = %v, expected 0", i, value)
		}
	}
}
