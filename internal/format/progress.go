// This file contains progress bar rendering and ETA estimation for workflow
// runs. Progress is reported in whole percent at step milestones, so the ETA
// is a coarse rate-based estimate rather than a smooth extrapolation.

package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps the estimate so a stalled run never reports absurd values.
const maxETA = 24 * time.Hour

// ProgressBar renders a textual progress bar of the given length using
// block characters. Progress outside [0, 1] is clamped.
func ProgressBar(progress float64, length int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatETA formats an estimated time of arrival for display.
// Zero or negative durations render as "calculating...".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		s := int(eta.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h := int(eta.Hours())
		m := int(eta.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// FormatProgressBarWithETA combines a progress bar, a percentage, and an ETA
// into a single status line.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	return fmt.Sprintf("[%s] %3.0f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}

// RunProgress tracks the percent milestones of a single workflow run and
// estimates time remaining from the observed completion rate. It is safe for
// concurrent use: the reporter goroutine updates it while the UI reads it.
type RunProgress struct {
	mu        sync.Mutex
	startTime time.Time
	percent   int
	message   string
}

// NewRunProgress creates a tracker with the clock started.
func NewRunProgress() *RunProgress {
	return &RunProgress{startTime: time.Now()}
}

// Update records a milestone. Percent values outside [0, 100] are clamped,
// and the tracker never moves backwards.
func (p *RunProgress) Update(percent int, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if percent > p.percent {
		p.percent = percent
	}
	p.message = message
}

// Percent returns the last recorded milestone as a fraction in [0, 1].
func (p *RunProgress) Percent() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return float64(p.percent) / 100
}

// Message returns the last recorded milestone message.
func (p *RunProgress) Message() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.message
}

// ETA estimates time remaining from the completion rate so far. Returns 0
// when there is not enough data to estimate.
func (p *RunProgress) ETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.percent <= 0 || p.percent >= 100 {
		return 0
	}
	elapsed := time.Since(p.startTime)
	if elapsed <= 0 {
		return 0
	}
	rate := float64(p.percent) / elapsed.Seconds()
	if rate <= 0 {
		return 0
	}
	eta := time.Duration(float64(100-p.percent) / rate * float64(time.Second))
	if eta > maxETA {
		return maxETA
	}
	return eta
}

// StatusLine renders the tracker as a progress bar line for terminal display.
func (p *RunProgress) StatusLine(width int) string {
	return FormatProgressBarWithETA(p.Percent(), p.ETA(), width)
}
