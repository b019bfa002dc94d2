package cli

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"

	apperrors "github.com/abenson/pbbdash/internal/errors"
	"github.com/abenson/pbbdash/internal/format"
	"github.com/abenson/pbbdash/internal/services"
	"github.com/abenson/pbbdash/internal/ui"
	"github.com/abenson/pbbdash/internal/workflow"
)

// Presenter implements workflow.Renderer for terminal output.
// It provides formatted, colorized output for workflow results in the
// command-line interface.
type Presenter struct {
	out io.Writer
}

// Verify interface compliance.
var _ workflow.Renderer = (*Presenter)(nil)

// NewPresenter creates a presenter writing to out.
func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

// RenderSuccess displays the completed workflow summary as a formatted
// metrics table.
func (p *Presenter) RenderSuccess(summary workflow.Summary) {
	fmt.Fprintf(p.out, "\n--- Budget Analysis Summary ---\n")

	rows := []struct {
		label string
		value string
		color string
	}{
		{"Total programs", strconv.Itoa(summary.TotalPrograms), ui.ColorBlue()},
		{"Total budget", format.FormatCurrency(summary.TotalBudget), ui.ColorYellow()},
		{"Avg program cost", format.FormatCurrency(summary.AvgProgramCost), ui.ColorYellow()},
		{"Potential savings", format.FormatCurrency(summary.PotentialSavings), ui.ColorGreen()},
		{"Critical programs", strconv.Itoa(summary.CriticalPrograms), ui.ColorRed()},
		{"Optimization targets", strconv.Itoa(summary.OptimizationTargets), ui.ColorYellow()},
	}

	maxLabelLen := 0
	for _, row := range rows {
		if len(row.label) > maxLabelLen {
			maxLabelLen = len(row.label)
		}
	}

	for _, row := range rows {
		fmt.Fprintf(p.out, "%s%s   %s%s%s\n",
			row.label, padRight("", maxLabelLen-len(row.label)),
			row.color, row.value, ui.ColorReset())
	}

	if len(summary.Recommendations) > 0 {
		fmt.Fprintf(p.out, "\n%sRecommendations%s\n", ui.ColorUnderline(), ui.ColorReset())
		for i, rec := range summary.Recommendations {
			fmt.Fprintf(p.out, "  %d. %s\n", i+1, rec)
		}
	}

	if !summary.CompletedAt.IsZero() {
		fmt.Fprintf(p.out, "\nCompleted at %s%s%s.\n",
			ui.ColorCyan(), summary.CompletedAt.Format("2006-01-02 15:04:05 MST"), ui.ColorReset())
	}
}

// RenderError displays a step failure with the failing step highlighted.
func (p *Presenter) RenderError(step workflow.Step, message string) {
	fmt.Fprintf(p.out, "\n%s❌ %s failed%s: %s\n",
		ui.ColorRed(), step, ui.ColorReset(), message)
}

// PresentServiceStatus displays the availability of each remote service in a
// formatted tabular layout. Uses manual padding to correctly handle ANSI
// color codes.
func PresentServiceStatus(statuses []services.Status, out io.Writer) {
	fmt.Fprintf(out, "\n--- Service Availability ---\n")

	maxNameLen := 7 // "Service" header length
	for _, st := range statuses {
		if len(st.Capability) > maxNameLen {
			maxNameLen = len(string(st.Capability))
		}
	}

	fmt.Fprintf(out, "%sService%s%s   %sStatus%s   %sLatency%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-7),
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset())

	for _, st := range statuses {
		var status string
		if st.Reachable {
			status = fmt.Sprintf("%s✅ Online %s", ui.ColorGreen(), ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s❌ Offline%s", ui.ColorRed(), ui.ColorReset())
		}
		latency := format.FormatExecutionDuration(st.Latency)
		if !st.Reachable {
			latency = "-"
		}
		fmt.Fprintf(out, "%s%s%s%s   %s   %s%s%s\n",
			ui.ColorBlue(), st.Capability, ui.ColorReset(), padRight("", maxNameLen-len(string(st.Capability))),
			status,
			ui.ColorYellow(), latency, ui.ColorReset())
	}
}

// PrintRunConfig displays the analysis configuration before a run starts.
//
// Parameters:
//   - orgURL: The organization website used by the remote services.
//   - programsPerDept: Programs identified per department.
//   - costThreshold: The evaluation cost threshold in dollars.
//   - out: The writer for standard output.
func PrintRunConfig(orgURL string, programsPerDept, costThreshold int, out io.Writer) {
	fmt.Fprintf(out, "--- Analysis Configuration ---\n")
	fmt.Fprintf(out, "Organization: %s%s%s\n", ui.ColorMagenta(), orgURL, ui.ColorReset())
	fmt.Fprintf(out, "Programs per department: %s%d%s, cost threshold: %s%s%s.\n",
		ui.ColorCyan(), programsPerDept, ui.ColorReset(),
		ui.ColorCyan(), format.FormatCurrency(float64(costThreshold)), ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "\n--- Starting Analysis ---\n")
}

// HandleRunError maps a workflow error to a process exit code and prints a
// colorized diagnostic.
//
// Returns:
//   - int: The exit code: config errors map to ExitErrorConfig, timeouts to
//     ExitErrorTimeout, cancellation to ExitErrorCanceled, everything else to
//     ExitErrorWorkflow.
func HandleRunError(err error, out io.Writer) int {
	var cfgErr *apperrors.ConfigError
	switch {
	case errors.As(err, &cfgErr):
		fmt.Fprintf(out, "%sConfiguration error:%s %v\n", ui.ColorRed(), ui.ColorReset(), err)
		return apperrors.ExitErrorConfig
	case apperrors.IsTimeout(err):
		fmt.Fprintf(out, "%sTimeout:%s %v\n", ui.ColorRed(), ui.ColorReset(), err)
		return apperrors.ExitErrorTimeout
	case apperrors.IsContextError(err):
		fmt.Fprintf(out, "%sCanceled:%s %v\n", ui.ColorYellow(), ui.ColorReset(), err)
		return apperrors.ExitErrorCanceled
	default:
		fmt.Fprintf(out, "%sError:%s %v\n", ui.ColorRed(), ui.ColorReset(), err)
		return apperrors.ExitErrorWorkflow
	}
}

// padRight returns s followed by spaces up to the given pad length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}
