package tui

import (
	"fmt"
	"strings"

	"github.com/abenson/pbbdash/internal/format"
	"github.com/abenson/pbbdash/internal/workflow"
)

// stepStatus is the display state of one pipeline step.
type stepStatus int

const (
	stepPending stepStatus = iota
	stepRunning
	stepDone
	stepFailed
)

// stepRow pairs a workflow step with its display label.
type stepRow struct {
	step   workflow.Step
	label  string
	status stepStatus
}

// StepsModel renders the analysis pipeline: one row per step plus an
// overall progress bar. Step states are derived from the sequencer's
// milestone percentages.
type StepsModel struct {
	rows     []stepRow
	percent  int
	message  string
	insights bool
	failed   bool
	width    int
	height   int
}

// NewStepsModel creates the pipeline panel. The insights row is only
// shown when the insights step is enabled.
func NewStepsModel(insights bool) StepsModel {
	rows := []stepRow{
		{step: workflow.StepInventory, label: "Program inventory"},
		{step: workflow.StepCost, label: "Cost prediction"},
		{step: workflow.StepScoring, label: "Strategic scoring"},
	}
	if insights {
		rows = append(rows, stepRow{step: workflow.StepInsights, label: "Program insights"})
	}
	return StepsModel{rows: rows, insights: insights}
}

// SetSize updates the panel dimensions.
func (s *StepsModel) SetSize(w, h int) {
	s.width = w
	s.height = h
}

// UpdateProgress applies a milestone update and re-derives step states.
func (s *StepsModel) UpdateProgress(percent int, message string) {
	if percent < s.percent {
		return
	}
	s.percent = percent
	s.message = message

	for i := range s.rows {
		s.rows[i].status = statusAt(s.rows[i].step, percent)
	}
}

// SetFailed marks the named step as failed and leaves later steps pending.
func (s *StepsModel) SetFailed(step workflow.Step) {
	s.failed = true
	for i := range s.rows {
		if s.rows[i].step == step {
			s.rows[i].status = stepFailed
			return
		}
	}
}

// SetDone marks every step completed.
func (s *StepsModel) SetDone() {
	s.percent = workflow.ProgressComplete
	for i := range s.rows {
		s.rows[i].status = stepDone
	}
}

// Reset returns the panel to its initial state.
func (s *StepsModel) Reset() {
	*s = NewStepsModel(s.insights)
}

// statusAt derives a step's display state from the current milestone
// percentage. Each step runs from its own milestone until the next one.
func statusAt(step workflow.Step, percent int) stepStatus {
	start, end := stepRange(step)
	switch {
	case percent < start:
		return stepPending
	case percent < end:
		return stepRunning
	default:
		return stepDone
	}
}

// stepRange returns the milestone interval during which a step is running.
func stepRange(step workflow.Step) (start, end int) {
	switch step {
	case workflow.StepInventory:
		return workflow.ProgressInventory, workflow.ProgressCost
	case workflow.StepCost:
		return workflow.ProgressCost, workflow.ProgressScoring
	case workflow.StepScoring:
		return workflow.ProgressScoring, workflow.ProgressInsights
	case workflow.StepInsights:
		return workflow.ProgressInsights, workflow.ProgressComplete
	default:
		return 0, 0
	}
}

// View renders the pipeline panel.
func (s StepsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ANALYSIS PIPELINE"))
	b.WriteString("\n\n")

	for _, row := range s.rows {
		var marker, label string
		switch row.status {
		case stepRunning:
			marker = stepRunningStyle.Render("▶")
			label = stepRunningStyle.Render(row.label)
		case stepDone:
			marker = stepSuccessStyle.Render("✓")
			label = stepSuccessStyle.Render(row.label)
		case stepFailed:
			marker = stepErrorStyle.Render("✗")
			label = stepErrorStyle.Render(row.label)
		default:
			marker = stepPendingStyle.Render("·")
			label = stepPendingStyle.Render(row.label)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", marker, label))
	}

	b.WriteString("\n")

	barWidth := s.width - 12
	if barWidth < 10 {
		barWidth = 10
	}
	bar := format.ProgressBar(float64(s.percent)/100, barWidth)
	b.WriteString(fmt.Sprintf("  %s %3d%%\n", progressBarStyle.Render(bar), s.percent))

	if s.message != "" {
		style := metricLabelStyle
		if s.failed {
			style = stepErrorStyle
		}
		b.WriteString("  " + style.Render(s.message) + "\n")
	}

	content := b.String()
	return panelStyle.Width(maxInt(s.width-2, 0)).Height(maxInt(s.height-2, 0)).Render(content)
}

// maxInt returns the larger of two ints.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
