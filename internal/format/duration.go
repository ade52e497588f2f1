// Package format holds display helpers shared by the CLI and the TUI.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a run duration for the summary table.
// Sub-microsecond runs print in nanoseconds, sub-millisecond runs in
// microseconds, sub-second runs in milliseconds; anything longer uses
// time.Duration's own representation.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// Plural returns "1 line", "2 lines" and so on.
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
