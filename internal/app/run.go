package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/abenson/pbbdash/internal/cli"
	apperrors "github.com/abenson/pbbdash/internal/errors"
	"github.com/abenson/pbbdash/internal/services"
	"github.com/abenson/pbbdash/internal/tui"
	"github.com/abenson/pbbdash/internal/ui"
	"github.com/abenson/pbbdash/internal/upload"
	"github.com/abenson/pbbdash/internal/workflow"
)

// runAnalyze executes the full analysis workflow in CLI mode.
func (a *Application) runAnalyze(ctx context.Context, out io.Writer) int {
	in, err := a.loadInputs()
	if err != nil {
		return cli.HandleRunError(err, a.ErrWriter)
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	caller, provider, store := a.collaborators()

	if !a.Config.Quiet {
		cli.PrintRunConfig(a.Config.OrgURL, a.Config.ProgramsPerDepartment, a.Config.CostThreshold, out)
	}

	// Probe the remote services up front in verbose mode.
	if a.Config.Verbose {
		statuses := caller.Probe(ctx, a.Config.Endpoints)
		cli.PresentServiceStatus(statuses, out)
	}

	// Choose progress reporter based on quiet mode
	var reporter workflow.ProgressReporter
	var spinner *cli.SpinnerReporter
	if a.Config.Quiet {
		reporter = workflow.NullProgressReporter{}
	} else {
		spinner = cli.NewSpinnerReporter(out)
		reporter = spinner
	}

	opts := []workflow.SequencerOption{
		workflow.WithProgressReporter(reporter),
		workflow.WithInsights(a.Config.Insights),
		workflow.WithStore(store),
		workflow.WithSequencerLogger(a.Logger),
	}
	if a.Config.LiveScoring {
		opts = append(opts, workflow.WithScoringStrategy(workflow.LiveScoring{
			Caller:   caller,
			Endpoint: a.Config.Endpoints[services.CapabilityEvaluation],
			Provider: provider,
		}))
	}

	seq := workflow.NewSequencer(caller, provider, a.Config.Endpoints, cli.NewPresenter(out), opts...)

	summary, err := seq.Run(ctx, in)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return cli.HandleRunError(err, a.ErrWriter)
	}

	return a.saveSummaryIfNeeded(summary, out)
}

// runTUI launches the interactive terminal dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	in, err := a.loadInputs()
	if err != nil {
		return cli.HandleRunError(err, a.ErrWriter)
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	caller, provider, store := a.collaborators()

	deps := tui.Deps{
		Caller:   caller,
		Provider: provider,
		Store:    store,
		Logger:   a.Logger,
	}
	return tui.Run(ctx, deps, in, a.Config, Version)
}

// loadInputs reads the positions and budgets spreadsheets from disk and
// assembles the workflow inputs.
func (a *Application) loadInputs() (workflow.Inputs, error) {
	if a.Config.PositionsPath == "" {
		return workflow.Inputs{}, apperrors.NewConfigError("missing required -positions file")
	}
	if a.Config.BudgetsPath == "" {
		return workflow.Inputs{}, apperrors.NewConfigError("missing required -budgets file")
	}

	positions, err := readUpload(a.Config.PositionsPath, upload.KindPositions)
	if err != nil {
		return workflow.Inputs{}, err
	}
	budgets, err := readUpload(a.Config.BudgetsPath, upload.KindBudgets)
	if err != nil {
		return workflow.Inputs{}, err
	}

	return workflow.Inputs{
		Positions:             positions,
		Budgets:               budgets,
		OrgURL:                a.Config.OrgURL,
		OrgName:               a.Config.OrgName,
		ProgramsPerDepartment: a.Config.ProgramsPerDepartment,
		CostThreshold:         a.Config.CostThreshold,
	}, nil
}

// readUpload loads a spreadsheet from disk into an upload.File.
func readUpload(path string, kind upload.Kind) (upload.File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return upload.File{}, apperrors.NewConfigError("reading %s file: %v", kind, err)
	}
	return upload.New(filepath.Base(path), content, kind), nil
}

// saveSummaryIfNeeded writes the summary JSON to the configured output file.
func (a *Application) saveSummaryIfNeeded(summary workflow.Summary, out io.Writer) int {
	if a.Config.OutputFile == "" {
		return apperrors.ExitSuccess
	}
	if err := cli.WriteSummaryToFile(summary, a.Config.OutputFile); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving summary: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Summary saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
	}
	return apperrors.ExitSuccess
}
