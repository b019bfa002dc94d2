//go:generate mockgen -source=progress.go -destination=mocks/mock_progress.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/abenson/pbbdash/internal/format"
	"github.com/abenson/pbbdash/internal/workflow"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	// 200ms keeps the terminal readable without excessive redraws.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the progress reporter from a specific
// spinner implementation, facilitating easier testing and maintenance.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
//
// Parameters:
//   - suffix: The string to display.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// SpinnerReporter displays workflow milestones as a spinner with a progress
// bar and ETA suffix. It implements workflow.ProgressReporter.
type SpinnerReporter struct {
	spinner Spinner
	state   *format.RunProgress
	started bool
}

// Verify that SpinnerReporter implements workflow.ProgressReporter.
var _ workflow.ProgressReporter = (*SpinnerReporter)(nil)

// NewSpinnerReporter creates a reporter writing spinner frames to out.
func NewSpinnerReporter(out io.Writer) *SpinnerReporter {
	return &SpinnerReporter{
		spinner: newSpinner(spinner.WithWriter(out)),
		state:   format.NewRunProgress(),
	}
}

// ReportProgress records a milestone and refreshes the spinner suffix with
// the progress bar, percentage, ETA, and step message.
func (r *SpinnerReporter) ReportProgress(percent int, message string) {
	if !r.started {
		r.spinner.Start()
		r.started = true
	}
	r.state.Update(percent, message)
	r.spinner.UpdateSuffix(fmt.Sprintf(" %s %s", r.state.StatusLine(ProgressBarWidth), message))
	if percent >= 100 {
		r.spinner.Stop()
		r.started = false
	}
}

// Stop halts the spinner, for runs that end before reaching 100%.
func (r *SpinnerReporter) Stop() {
	if r.started {
		r.spinner.Stop()
		r.started = false
	}
}
