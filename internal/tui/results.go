package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abenson/pbbdash/internal/format"
	"github.com/abenson/pbbdash/internal/workflow"
)

// ResultsModel renders the budget summary panel once a run completes.
type ResultsModel struct {
	summary    workflow.Summary
	hasSummary bool
	failedStep workflow.Step
	failedMsg  string
	width      int
	height     int
}

// NewResultsModel creates an empty results panel.
func NewResultsModel() ResultsModel {
	return ResultsModel{}
}

// SetSize updates the panel dimensions.
func (r *ResultsModel) SetSize(w, h int) {
	r.width = w
	r.height = h
}

// SetSummary records the completed summary.
func (r *ResultsModel) SetSummary(s workflow.Summary) {
	r.summary = s
	r.hasSummary = true
	r.failedMsg = ""
}

// SetFailure records a step failure.
func (r *ResultsModel) SetFailure(step workflow.Step, message string) {
	r.failedStep = step
	r.failedMsg = message
}

// Reset clears the panel.
func (r *ResultsModel) Reset() {
	*r = ResultsModel{width: r.width, height: r.height}
}

// View renders the results panel.
func (r ResultsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("BUDGET SUMMARY"))
	b.WriteString("\n\n")

	switch {
	case r.failedMsg != "":
		b.WriteString("  " + statusErrorStyle.Render(fmt.Sprintf("%s failed", r.failedStep)) + "\n")
		b.WriteString("  " + stepErrorStyle.Render(r.failedMsg) + "\n")

	case !r.hasSummary:
		b.WriteString("  " + metricLabelStyle.Render("Waiting for analysis to complete...") + "\n")

	default:
		rows := []struct {
			label string
			value string
		}{
			{"Total Programs", format.FormatNumberString(strconv.Itoa(r.summary.TotalPrograms))},
			{"Total Budget", format.FormatCurrency(r.summary.TotalBudget)},
			{"Avg Program Cost", format.FormatCurrency(r.summary.AvgProgramCost)},
			{"Potential Savings", format.FormatCurrency(r.summary.PotentialSavings)},
			{"Critical Programs", format.FormatNumberString(strconv.Itoa(r.summary.CriticalPrograms))},
			{"Optimization Targets", format.FormatNumberString(strconv.Itoa(r.summary.OptimizationTargets))},
		}
		for _, row := range rows {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				metricLabelStyle.Render(padLabel(row.label, 21)),
				metricValueStyle.Render(row.value),
			))
		}

		if r.summary.Recommendations != "" {
			b.WriteString("\n  " + metricLabelStyle.Render("Recommendations") + "\n")
			for _, line := range wrapText(r.summary.Recommendations, maxInt(r.width-6, 20)) {
				b.WriteString("  " + line + "\n")
			}
		}
	}

	content := b.String()
	return panelStyle.Width(maxInt(r.width-2, 0)).Height(maxInt(r.height-2, 0)).Render(content)
}

// padLabel right-pads a label to a fixed column width.
func padLabel(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + spaces(width-len(s))
}

// wrapText breaks text into lines no longer than width, on word boundaries.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)
	return lines
}
