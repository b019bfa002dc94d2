// Package format provides display helpers shared by the CLI and TUI:
// duration formatting, currency and number formatting, and textual
// progress bars with ETA estimation.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
// This approach provides a more human-readable output for short durations.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatNumberString inserts thousand separators into a decimal number string.
// A leading minus sign is preserved. Non-numeric input is returned with
// separators applied to whatever digits it contains.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	sign := ""
	if s[0] == '-' {
		sign = "-"
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	var b strings.Builder
	rem := n % 3
	if rem > 0 {
		b.WriteString(s[:rem])
	}
	for i := rem; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

// FormatCurrency renders a dollar amount with thousand separators and no
// cents, e.g. 185000 -> "$185,000". Negative amounts keep the sign before
// the dollar symbol.
func FormatCurrency(amount float64) string {
	rounded := int64(amount + 0.5)
	if amount < 0 {
		rounded = int64(amount - 0.5)
		return "-$" + FormatNumberString(strconv.FormatInt(-rounded, 10))
	}
	return "$" + FormatNumberString(strconv.FormatInt(rounded, 10))
}
