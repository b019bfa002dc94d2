package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/abenson/pbbdash/internal/cli"
	apperrors "github.com/abenson/pbbdash/internal/errors"
	"github.com/abenson/pbbdash/internal/fallback"
	"github.com/abenson/pbbdash/internal/services"
	"github.com/abenson/pbbdash/internal/upload"
)

// runTool invokes a single remote capability outside the workflow. The
// -positions flag names the input spreadsheet for every tool; the
// budget-allocation tool additionally consumes -budgets.
func (a *Application) runTool(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	caller, provider, _ := a.collaborators()

	res, err := a.callTool(ctx, caller, provider)
	if err != nil {
		return cli.HandleRunError(err, a.ErrWriter)
	}
	if !res.OK() {
		fmt.Fprintf(a.ErrWriter, "%s failed: %s\n", a.Config.Tool, res.FailureMessage())
		return apperrors.ExitErrorWorkflow
	}

	return a.writeToolPayload(res.Payload(), out)
}

// callTool dispatches to the matching capability, substituting canned
// results when the endpoint is an unconfigured placeholder.
func (a *Application) callTool(ctx context.Context, caller *services.Client, provider *fallback.Provider) (services.CallResult, error) {
	if a.Config.PositionsPath == "" {
		return services.CallResult{}, apperrors.NewConfigError("tool %s requires an input file (-positions)", a.Config.Tool)
	}

	switch a.Config.Tool {
	case "program-inventory":
		file, err := readUpload(a.Config.PositionsPath, upload.KindPositions)
		if err != nil {
			return services.CallResult{}, err
		}
		ep := a.Config.Endpoints[services.CapabilityInventory]
		if provider.ShouldFallback(ep) {
			return provider.Inventory(file), nil
		}
		return caller.ProgramInventory(ctx, ep, file, a.Config.OrgURL, a.Config.ProgramsPerDepartment), nil

	case "budget-allocation":
		if a.Config.BudgetsPath == "" {
			return services.CallResult{}, apperrors.NewConfigError("tool budget-allocation requires -budgets")
		}
		inventory, err := readUpload(a.Config.PositionsPath, upload.KindGenerated)
		if err != nil {
			return services.CallResult{}, err
		}
		budgets, err := readUpload(a.Config.BudgetsPath, upload.KindBudgets)
		if err != nil {
			return services.CallResult{}, err
		}
		ep := a.Config.Endpoints[services.CapabilityAllocation]
		if provider.ShouldFallback(ep) {
			return provider.Allocation(), nil
		}
		return caller.BudgetAllocation(ctx, ep, inventory, budgets), nil

	case "program-evaluation":
		file, err := readUpload(a.Config.PositionsPath, upload.KindGenerated)
		if err != nil {
			return services.CallResult{}, err
		}
		ep := a.Config.Endpoints[services.CapabilityEvaluation]
		if provider.ShouldFallback(ep) {
			return provider.Evaluation(), nil
		}
		return caller.ProgramEvaluation(ctx, ep, file, a.Config.OrgURL, a.Config.CostThreshold), nil

	case "program-insights":
		file, err := readUpload(a.Config.PositionsPath, upload.KindGenerated)
		if err != nil {
			return services.CallResult{}, err
		}
		ep := a.Config.Endpoints[services.CapabilityInsights]
		if provider.ShouldFallback(ep) {
			return provider.Insights(a.Config.OrgName), nil
		}
		return caller.ProgramInsights(ctx, ep, file, a.Config.OrgName), nil

	case "benchmark-analysis":
		file, err := readUpload(a.Config.PositionsPath, upload.KindGenerated)
		if err != nil {
			return services.CallResult{}, err
		}
		return caller.BenchmarkAnalysis(ctx, a.Config.Endpoints[services.CapabilityBenchmark], file), nil

	default:
		return services.CallResult{}, apperrors.NewConfigError("unknown tool %q", a.Config.Tool)
	}
}

// writeToolPayload emits the raw JSON payload to the output file or stdout.
func (a *Application) writeToolPayload(payload []byte, out io.Writer) int {
	if a.Config.OutputFile != "" {
		if err := os.WriteFile(a.Config.OutputFile, payload, 0o644); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving output: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}
	fmt.Fprintf(out, "%s\n", payload)
	return apperrors.ExitSuccess
}
