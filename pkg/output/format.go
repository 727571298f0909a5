// Package output provides utilities for formatting and displaying analysis
// reports.
package output

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"econengine/internal/engine"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(report *engine.Report) {
	p := message.NewPrinter(language.English)

	name := report.Scenario
	if name == "" {
		name = "scenario"
	}
	fmt.Printf("--- Results for %s ---\n", name)
	_, _ = p.Printf("NPV at %.2f%% discount rate: $%.2f\n", report.DiscountRate*100, report.NPV)

	if report.IRR != nil {
		_, _ = p.Printf("IRR: %.4f%%\n", *report.IRR*100)
	} else if report.IRRFailure != "" {
		fmt.Printf("IRR: not available (%s)\n", report.IRRFailure)
	}

	if mc := report.MonteCarlo; mc != nil {
		fmt.Printf("\nMonte Carlo NPV distribution:\n")
		_, _ = p.Printf("  mean   | $%.2f\n", mc.Mean)
		_, _ = p.Printf("  stddev | $%.2f\n", mc.StdDev)
		_, _ = p.Printf("  min    | $%.2f\n", mc.Min)
		_, _ = p.Printf("  max    | $%.2f\n", mc.Max)
	}

	for _, sweep := range report.Sweeps {
		fmt.Printf("\nSensitivity sweep: %s\n", sweep.Variable)
		fmt.Printf("Factor | NPV\n")
		fmt.Printf("______ | ___\n")
		for i, factor := range sweep.Factors {
			_, _ = p.Printf("%.4f | $%.2f\n", factor, sweep.Values[i])
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(report *engine.Report) {
	fmt.Printf("\"metric\",\"factor\",\"value\"\n")
	fmt.Printf("\"npv\",\"\",\"%.2f\"\n", report.NPV)
	if report.IRR != nil {
		fmt.Printf("\"irr\",\"\",\"%.6f\"\n", *report.IRR)
	}
	if mc := report.MonteCarlo; mc != nil {
		fmt.Printf("\"monte_carlo_mean\",\"\",\"%.2f\"\n", mc.Mean)
		fmt.Printf("\"monte_carlo_stddev\",\"\",\"%.2f\"\n", mc.StdDev)
		fmt.Printf("\"monte_carlo_min\",\"\",\"%.2f\"\n", mc.Min)
		fmt.Printf("\"monte_carlo_max\",\"\",\"%.2f\"\n", mc.Max)
	}
	for _, sweep := range report.Sweeps {
		for i, factor := range sweep.Factors {
			fmt.Printf("\"sweep_%s\",\"%.4f\",\"%.2f\"\n", sweep.Variable, factor, sweep.Values[i])
		}
	}
}
