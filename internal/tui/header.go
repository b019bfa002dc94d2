package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/abenson/pbbdash/internal/format"
)

// HeaderModel renders the top bar: title, version and the run timer.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	width     int
}

// NewHeaderModel creates a header with the timer started.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{startTime: time.Now(), version: version}
}

// SetDone freezes the run timer.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the run timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// elapsed is the running duration, frozen once SetDone was called.
func (h HeaderModel) elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header row.
func (h HeaderModel) View() string {
	titleText := "PBB Dashboard"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}

	left := titleStyle.Render(titleText) +
		versionStyle.Render(" | ") +
		elapsedStyle.Render("Elapsed: "+format.FormatExecutionDuration(h.elapsed()))

	innerWidth := h.width - 2
	gap := innerWidth - lipgloss.Width(left)
	if gap < 0 {
		gap = 0
	}
	return headerStyle.Width(h.width).Render(left + spaces(gap))
}

// spaces returns n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
