package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abenson/pbbdash/internal/workflow"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements workflow.ProgressReporter.
// It forwards milestone updates as bubbletea messages.
type TUIProgressReporter struct {
	ref        *programRef
	generation int
}

// Verify interface compliance.
var _ workflow.ProgressReporter = (*TUIProgressReporter)(nil)

// ReportProgress sends a ProgressMsg to the TUI.
func (t *TUIProgressReporter) ReportProgress(percent int, message string) {
	t.ref.Send(ProgressMsg{
		Generation: t.generation,
		Percent:    percent,
		Message:    message,
	})
}

// TUIRenderer implements workflow.Renderer.
// It sends result messages to the TUI instead of writing to stdout.
type TUIRenderer struct {
	ref        *programRef
	generation int
}

// Verify interface compliance.
var _ workflow.Renderer = (*TUIRenderer)(nil)

// RenderSuccess sends the completed summary to the TUI.
func (t *TUIRenderer) RenderSuccess(summary workflow.Summary) {
	t.ref.Send(RunSuccessMsg{Generation: t.generation, Summary: summary})
}

// RenderError sends a step failure to the TUI.
func (t *TUIRenderer) RenderError(step workflow.Step, message string) {
	t.ref.Send(StepFailedMsg{Generation: t.generation, Step: step, Message: message})
}
