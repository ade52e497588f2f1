// # Naming Conventions
//
// Functions in this package follow consistent naming patterns:
//
//   - Display* and Print* functions write formatted output to an [io.Writer].
//     Examples: [DisplayProgress], [DisplayList], [PrintExecutionConfig].
//
//   - Format* functions return a formatted string without performing I/O.
//     Example: [FormatTranscript].
//
//   - Write* functions write data to files on the filesystem.
//     Example: [WriteTranscript].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/agbru/snippets/internal/errors"
	"github.com/agbru/snippets/internal/orchestration"
	"github.com/agbru/snippets/internal/snippets"
	"github.com/agbru/snippets/internal/ui"
)

// FormatTranscript renders a run as a commented header followed by every
// snippet's output, suitable for saving to disk.
func FormatTranscript(results []orchestration.RunResult, generated time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Snippet run transcript\n")
	fmt.Fprintf(&b, "# Generated: %s\n", generated.Format(time.RFC3339))
	fmt.Fprintf(&b, "# Snippets: %d\n", len(results))
	for _, res := range results {
		status := "ok"
		if res.Err != nil {
			status = "failed: " + res.Err.Error()
		}
		fmt.Fprintf(&b, "\n## %s (%d lines, %s, %s)\n", res.Name, res.Lines, res.Duration, status)
		b.Write(res.Output)
	}
	return b.String()
}

// WriteTranscript writes the transcript of results to path, creating parent
// directories as needed. An empty path is a no-op.
func WriteTranscript(path string, results []orchestration.RunResult) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "failed to create directory")
		}
	}
	if err := os.WriteFile(path, []byte(FormatTranscript(results, time.Now())), 0o644); err != nil {
		return apperrors.WrapError(err, "failed to write transcript")
	}
	return nil
}

// DisplayList prints every snippet name with its description.
func DisplayList(all []snippets.Snippet, out io.Writer) {
	theme := ui.GetCurrentTheme()
	width := 0
	for _, s := range all {
		width = max(width, len(s.Name()))
	}
	for _, s := range all {
		fmt.Fprintf(out, "%s  %s\n", theme.Header(padRight(s.Name(), width)), s.Description())
	}
}
