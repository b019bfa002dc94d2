package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the bottom bar: run status and key hints.
type FooterModel struct {
	width int
	done  bool
	err   bool
}

// NewFooterModel creates a new footer.
func NewFooterModel() FooterModel {
	return FooterModel{}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
}

// SetDone marks the run finished.
func (f *FooterModel) SetDone(done bool) {
	f.done = done
}

// SetError marks the run failed.
func (f *FooterModel) SetError(failed bool) {
	f.err = failed
}

// View renders the footer.
func (f FooterModel) View() string {
	var status string
	switch {
	case f.err:
		status = statusErrorStyle.Render("FAILED")
	case f.done:
		status = statusDoneStyle.Render("DONE")
	default:
		status = statusRunningStyle.Render("RUNNING")
	}

	hints := []struct {
		key  string
		desc string
	}{
		{"r", "restart"},
		{"q", "quit"},
	}
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, footerKeyStyle.Render("["+h.key+"]")+footerDescStyle.Render(" "+h.desc))
	}
	help := strings.Join(parts, "  ")

	left := " " + status
	right := help + " "
	gap := f.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return left + spaces(gap) + right
}
