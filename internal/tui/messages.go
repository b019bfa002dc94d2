package tui

import (
	"time"

	"github.com/abenson/pbbdash/internal/workflow"
)

// Messages exchanged between the bridge goroutines and the bubbletea model.
// Every message produced by a run carries the run's generation so that
// stale messages from a cancelled run can be discarded after a reset.

// ProgressMsg carries a milestone update from the sequencer.
type ProgressMsg struct {
	Generation int
	Percent    int
	Message    string
}

// RunSuccessMsg carries the completed summary.
type RunSuccessMsg struct {
	Generation int
	Summary    workflow.Summary
}

// StepFailedMsg reports a failed workflow step.
type StepFailedMsg struct {
	Generation int
	Step       workflow.Step
	Message    string
}

// RunCompleteMsg signals that the run goroutine has finished, successfully
// or not, and carries the process exit code.
type RunCompleteMsg struct {
	Generation int
	ExitCode   int
}

// TickMsg drives the elapsed timer and system stat sampling.
type TickMsg time.Time

// SysStatsMsg carries a system-wide CPU/memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// ContextCancelledMsg signals that the run context was cancelled externally.
type ContextCancelledMsg struct {
	Generation int
	Err        error
}
