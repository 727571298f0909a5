package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"econengine/internal/config"
	"econengine/internal/engine"
	"econengine/pkg/cashflow"
	"econengine/pkg/constants"
	"econengine/pkg/irr"
	"econengine/pkg/output"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// parseFlows converts a comma-separated flag value into a cash-flow series.
func parseFlows(raw string) (cashflow.Series, error) {
	fields := strings.Split(raw, ",")
	buf := make([]float64, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid cash flow %q: %v", field, err)
		}
		buf = append(buf, value)
	}
	return cashflow.FromBuffer(buf, len(buf))
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "econengine",
		Short:         "Cash-flow valuation, IRR, uncertainty simulation, and sensitivity analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAnalyzeCmd(), newNPVCmd(), newIRRCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	var (
		configLocation   string
		outputFormatFlag string
		logLevel         string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run every analysis enabled in a scenario configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.LoadConfiguration(configLocation)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %v", configLocation, err)
			}

			logger, err := initializeLogger(conf.Logging, logLevel)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			// Determine output format (CLI override takes precedence over config)
			outputFormat := conf.Output.Format
			if outputFormatFlag != "" {
				outputFormat = outputFormatFlag
			}
			if outputFormat == "" {
				outputFormat = constants.OutputFormatPretty
			}
			if outputFormat != constants.OutputFormatPretty && outputFormat != constants.OutputFormatCSV {
				return fmt.Errorf("invalid output format: %s", outputFormat)
			}

			// Validate configuration and display any warnings
			for _, warning := range conf.ValidateConfiguration() {
				logger.Warn("Configuration warning: "+warning,
					zap.String("op", "main"),
				)
			}

			report, err := engine.Run(logger, *conf)
			if err != nil {
				logger.Error("failed to run analyses",
					zap.String("op", "main"),
					zap.Error(err),
				)
				return err
			}

			switch outputFormat {
			case constants.OutputFormatPretty:
				output.PrettyFormat(report)
			case constants.OutputFormatCSV:
				output.CsvFormat(report)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configLocation, "config", constants.DefaultConfigFile, "path to scenario configuration file")
	cmd.Flags().StringVar(&outputFormatFlag, "output-format", "", "type of output override: pretty, csv")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return cmd
}

func newNPVCmd() *cobra.Command {
	var (
		flowsFlag string
		rate      float64
	)

	cmd := &cobra.Command{
		Use:   "npv",
		Short: "Value a cash-flow series at a discount rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			flows, err := parseFlows(flowsFlag)
			if err != nil {
				return err
			}
			fmt.Printf("%.6f\n", cashflow.NPV(flows, rate))
			return nil
		},
	}

	cmd.Flags().StringVar(&flowsFlag, "flows", "", "comma-separated cash flows, initial investment first")
	cmd.Flags().Float64Var(&rate, "rate", constants.DefaultDiscountRate, "per-period discount rate")
	_ = cmd.MarkFlagRequired("flows")
	return cmd
}

func newIRRCmd() *cobra.Command {
	var flowsFlag string

	cmd := &cobra.Command{
		Use:   "irr",
		Short: "Solve for the internal rate of return of a cash-flow series",
		RunE: func(cmd *cobra.Command, args []string) error {
			flows, err := parseFlows(flowsFlag)
			if err != nil {
				return err
			}
			rate, err := irr.Solve(flows)
			if err != nil {
				return err
			}
			fmt.Printf("%.6f\n", rate)
			return nil
		},
	}

	cmd.Flags().StringVar(&flowsFlag, "flows", "", "comma-separated cash flows, initial investment first")
	_ = cmd.MarkFlagRequired("flows")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
