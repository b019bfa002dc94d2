// Package config defines the application configuration: flag parsing,
// environment variable overrides, and the optional YAML services file that
// rebinds the remote prediction endpoints.
//
// Resolution chain (highest priority first):
//  1. CLI flags (--org-url, --timeout, ...)
//  2. Environment variables (PBBDASH_ORG_URL, ...)
//  3. Services YAML file for endpoint bindings (--services)
//  4. Static defaults
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/abenson/pbbdash/internal/errors"
	"github.com/abenson/pbbdash/internal/services"
)

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "PBBDASH_"

// Default configuration values.
const (
	DefaultAddr       = ":8080"
	DefaultRunTimeout = 10 * time.Minute
	DefaultOrgName    = "Your Government Organization"
)

// AppConfig carries the full application configuration for one invocation.
type AppConfig struct {
	// PositionsPath and BudgetsPath locate the uploaded spreadsheets for
	// CLI runs. The HTTP server receives them as multipart uploads instead.
	PositionsPath string
	BudgetsPath   string

	// OrgURL is the organization website passed to the remote services.
	OrgURL string
	// OrgName is the organization name used by the insights service.
	OrgName string
	// ProgramsPerDepartment tunes the inventory service (1-10).
	ProgramsPerDepartment int
	// CostThreshold is the evaluation threshold in dollars.
	CostThreshold int

	// ServicesFile is an optional YAML file rebinding the remote endpoints.
	ServicesFile string
	// Timeout bounds one whole workflow run.
	Timeout time.Duration

	// Insights enables the optional insights step.
	Insights bool
	// LiveScoring selects the live evaluation service for the scoring step
	// instead of the fixture strategy.
	LiveScoring bool

	// Serve runs the HTTP dashboard server on Addr instead of a CLI run.
	Serve bool
	Addr  string
	// TUI runs the interactive terminal dashboard.
	TUI bool
	// Tool names a single capability to invoke instead of the full
	// workflow (program-inventory, budget-allocation, program-evaluation,
	// program-insights, benchmark-analysis).
	Tool string

	// OutputFile saves the workflow summary as JSON (empty for no file output).
	OutputFile string
	// Completion names a shell to emit a completion script for.
	Completion string
	// ShowVersion prints version information and exits.
	ShowVersion bool

	Verbose bool
	Quiet   bool

	// Endpoints is the resolved endpoint set, after applying ServicesFile.
	Endpoints map[services.Capability]services.Endpoint
}

// ParseConfig parses the command line and environment into an AppConfig.
//
// Parameters:
//   - programName: The invoked binary name, used in usage output.
//   - args: The command-line arguments, excluding the program name.
//   - errWriter: Destination for usage and error output.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp if help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		OrgName:               DefaultOrgName,
		ProgramsPerDepartment: services.DefaultProgramsPerDepartment,
		CostThreshold:         services.DefaultCostThreshold,
		Timeout:               DefaultRunTimeout,
		Addr:                  DefaultAddr,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&cfg.PositionsPath, "positions", "", "path to the staff positions spreadsheet (CSV/XLSX)")
	fs.StringVar(&cfg.BudgetsPath, "budgets", "", "path to the department budgets spreadsheet (CSV/XLSX)")
	fs.StringVar(&cfg.OrgURL, "org-url", "", "organization website URL (default "+services.DefaultOrgURL+")")
	fs.StringVar(&cfg.OrgName, "org-name", cfg.OrgName, "organization name for insights")
	fs.IntVar(&cfg.ProgramsPerDepartment, "programs-per-dept", cfg.ProgramsPerDepartment, "programs identified per department (1-10)")
	fs.IntVar(&cfg.CostThreshold, "cost-threshold", cfg.CostThreshold, "evaluation cost threshold in dollars")
	fs.StringVar(&cfg.ServicesFile, "services", "", "YAML file overriding remote service endpoints")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall workflow run timeout")
	fs.BoolVar(&cfg.Insights, "insights", false, "run the insights step after scoring")
	fs.BoolVar(&cfg.LiveScoring, "live-scoring", false, "use the live evaluation service for scoring")
	fs.BoolVar(&cfg.Serve, "serve", false, "run the HTTP dashboard server")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address for --serve")
	fs.BoolVar(&cfg.TUI, "tui", false, "run the interactive terminal dashboard")
	fs.StringVar(&cfg.Tool, "tool", "", "invoke a single capability instead of the full workflow")
	fs.StringVar(&cfg.OutputFile, "output", "", "save the workflow summary as JSON to this path")
	fs.StringVar(&cfg.OutputFile, "o", "", "save the workflow summary as JSON to this path")
	fs.StringVar(&cfg.Completion, "completion", "", "generate a shell completion script (bash, zsh, fish, powershell)")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "show version information")
	fs.BoolVar(&cfg.ShowVersion, "V", false, "show version information")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "verbose output")
	fs.BoolVar(&cfg.Quiet, "q", false, "suppress progress output")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "suppress progress output")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}

	endpoints, err := ResolveEndpoints(cfg.ServicesFile)
	if err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}
	cfg.Endpoints = endpoints

	return cfg, nil
}

// Validate checks cross-field constraints.
func (c AppConfig) Validate() error {
	if c.ProgramsPerDepartment < 1 || c.ProgramsPerDepartment > 10 {
		return apperrors.NewConfigError("programs-per-dept must be between 1 and 10, got %d", c.ProgramsPerDepartment)
	}
	if c.CostThreshold < 0 {
		return apperrors.NewConfigError("cost-threshold must not be negative, got %d", c.CostThreshold)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Tool != "" {
		if _, err := ToolCapability(c.Tool); err != nil {
			return err
		}
	}
	modes := 0
	for _, m := range []bool{c.Serve, c.TUI, c.Tool != ""} {
		if m {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("--serve, --tui and --tool are mutually exclusive")
	}
	return nil
}

// ToolCapability maps a --tool name to the capability it invokes.
func ToolCapability(tool string) (services.Capability, error) {
	switch tool {
	case "program-inventory":
		return services.CapabilityInventory, nil
	case "budget-allocation":
		return services.CapabilityAllocation, nil
	case "program-evaluation":
		return services.CapabilityEvaluation, nil
	case "program-insights":
		return services.CapabilityInsights, nil
	case "benchmark-analysis":
		return services.CapabilityBenchmark, nil
	default:
		return "", apperrors.NewConfigError("unknown tool %q", tool)
	}
}
