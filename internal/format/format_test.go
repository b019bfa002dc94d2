package format

import (
	"strings"
	"testing"
	"time"
)

// TestFormatExecutionDuration verifies duration formatting.
func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
	}

	for _, tt := range tests {
		got := FormatExecutionDuration(tt.d)
		if got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

// TestFormatNumberString verifies thousand separator formatting.
func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"1", "1"},
		{"12", "12"},
		{"123", "123"},
		{"1234", "1,234"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
		{"-1234", "-1,234"},
	}

	for _, tt := range tests {
		got := FormatNumberString(tt.input)
		if got != tt.expected {
			t.Errorf("FormatNumberString(%q) = %q; want %q", tt.input, got, tt.expected)
		}
	}
}

// TestFormatCurrency verifies dollar amount formatting.
func TestFormatCurrency(t *testing.T) {
	t.Parallel()
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "$0"},
		{185000, "$185,000"},
		{750000, "$750,000"},
		{1234567.4, "$1,234,567"},
		{999.6, "$1,000"},
		{-185000, "-$185,000"},
	}

	for _, tt := range tests {
		got := FormatCurrency(tt.amount)
		if got != tt.expected {
			t.Errorf("FormatCurrency(%f) = %q; want %q", tt.amount, got, tt.expected)
		}
	}
}

// TestProgressBar verifies progress bar rendering.
func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		expected string
	}{
		{0.0, 10, "░░░░░░░░░░"},
		{0.5, 10, "█████░░░░░"},
		{1.0, 10, "██████████"},
		{1.2, 10, "██████████"}, // Cap at 1.0
		{-0.1, 10, "░░░░░░░░░░"}, // Floor at 0.0
	}

	for _, tt := range tests {
		got := ProgressBar(tt.progress, tt.length)
		if got != tt.expected {
			t.Errorf("ProgressBar(%f, %d) = %s; want %s", tt.progress, tt.length, got, tt.expected)
		}
	}
}

// TestFormatETA verifies ETA formatting.
func TestFormatETA(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		eta      time.Duration
		expected string
	}{
		{"Zero duration", 0, "calculating..."},
		{"Negative duration", -time.Second, "calculating..."},
		{"Less than a second", 500 * time.Millisecond, "< 1s"},
		{"One second", time.Second, "1s"},
		{"Multiple seconds", 45 * time.Second, "45s"},
		{"One minute", time.Minute, "1m"},
		{"Minutes and seconds", 2*time.Minute + 30*time.Second, "2m30s"},
		{"One hour", time.Hour, "1h"},
		{"Hours and minutes", time.Hour + 15*time.Minute, "1h15m"},
		{"Multiple hours", 3*time.Hour + 45*time.Minute, "3h45m"},
		{"Hours only (no minutes)", 2 * time.Hour, "2h"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := FormatETA(tc.eta)
			if result != tc.expected {
				t.Errorf("FormatETA(%v) = %q, want %q", tc.eta, result, tc.expected)
			}
		})
	}
}

// TestFormatProgressBarWithETA verifies combined progress and ETA formatting.
func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	result := FormatProgressBarWithETA(0.5, 30*time.Second, 20)

	if !strings.Contains(result, "ETA:") {
		t.Errorf("result should contain 'ETA:', got %q", result)
	}
	if !strings.Contains(result, "50%") {
		t.Errorf("result should contain the percentage, got %q", result)
	}
	if !strings.Contains(result, "[") || !strings.Contains(result, "]") {
		t.Errorf("result should contain progress bar brackets, got %q", result)
	}
}

// TestRunProgressUpdate verifies milestone tracking.
func TestRunProgressUpdate(t *testing.T) {
	t.Parallel()
	p := NewRunProgress()

	if got := p.Percent(); got != 0 {
		t.Errorf("initial Percent() = %f, want 0", got)
	}

	p.Update(40, "Step 2/3: Predicting program costs...")
	if got := p.Percent(); got != 0.4 {
		t.Errorf("Percent() = %f, want 0.4", got)
	}
	if got := p.Message(); got != "Step 2/3: Predicting program costs..." {
		t.Errorf("Message() = %q", got)
	}

	// Milestones never move backwards.
	p.Update(10, "stale")
	if got := p.Percent(); got != 0.4 {
		t.Errorf("Percent() after stale update = %f, want 0.4", got)
	}

	// Out-of-range values are clamped.
	p.Update(150, "done")
	if got := p.Percent(); got != 1.0 {
		t.Errorf("Percent() after clamp = %f, want 1.0", got)
	}
}

// TestRunProgressETA verifies ETA estimation boundaries.
func TestRunProgressETA(t *testing.T) {
	t.Parallel()
	p := NewRunProgress()

	// No data yet.
	if eta := p.ETA(); eta != 0 {
		t.Errorf("initial ETA = %v, want 0", eta)
	}

	// Completed runs report no remaining time.
	p.Update(100, "complete")
	if eta := p.ETA(); eta != 0 {
		t.Errorf("completed ETA = %v, want 0", eta)
	}
}

// TestRunProgressETACapping verifies that ETA is capped at reasonable values.
func TestRunProgressETACapping(t *testing.T) {
	t.Parallel()
	p := &RunProgress{startTime: time.Now().Add(-48 * time.Hour)}
	p.Update(1, "barely started")

	if eta := p.ETA(); eta > 24*time.Hour {
		t.Errorf("ETA = %v, should be capped at 24h", eta)
	}
}

// TestRunProgressStatusLine verifies the combined status line.
func TestRunProgressStatusLine(t *testing.T) {
	t.Parallel()
	p := NewRunProgress()
	p.Update(70, "Step 3/3: Scoring programs...")

	line := p.StatusLine(10)
	if !strings.Contains(line, "70%") {
		t.Errorf("StatusLine() = %q, want percentage", line)
	}
}
