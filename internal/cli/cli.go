package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/pivotaxis/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// flagKeys maps flag names onto the setting keys they override.
var flagKeys = map[string]string{
	"report":     app.KeyReport,
	"r":          app.KeyReport,
	"log-level":  app.KeyLogLevel,
	"log-format": app.KeyLogFormat,
	"output":     app.KeyOutput,
	"layout":     app.KeyLayout,
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("pivotaxis", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
pivotaxis - Normalizes the column axes of crosstab reports.

Usage:
  pivotaxis [options] REPORT_PATH...

Arguments:
  REPORT_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	reportFlag := flagSet.String("report", "", "Name of the report to run. Optional when only one report is defined.")
	rFlag := flagSet.String("r", "", "Name of the report to run (shorthand).")
	settingsFlag := flagSet.String("config", "", "Path to a settings file. Defaults to ./pivotaxis.yaml when present.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	outputFlag := flagSet.String("output", app.OutputText, "Result format. Options: 'text' or 'json'.")
	layoutFlag := flagSet.Bool("layout", false, "Run the render pass and print the laid out tables.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	explicit := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			explicit[key] = true
		}
	})

	name := *reportFlag
	if name == "" {
		name = *rFlag
	}
	cfg := app.Config{
		ReportPaths: flagSet.Args(),
		ReportName:  name,
		LogFormat:   strings.ToLower(*logFormatFlag),
		LogLevel:    strings.ToLower(*logLevelFlag),
		Output:      strings.ToLower(*outputFlag),
		Layout:      *layoutFlag,
	}
	cfg, err := app.LoadSettings(*settingsFlag, cfg, explicit)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if len(cfg.ReportPaths) == 0 {
		slog.Debug("No report path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
