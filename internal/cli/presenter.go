package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/snippets/internal/errors"
	"github.com/agbru/snippets/internal/format"
	"github.com/agbru/snippets/internal/metrics"
	"github.com/agbru/snippets/internal/orchestration"
	"github.com/agbru/snippets/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// terminal spinner.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar while snippets run.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numSnippets int, out io.Writer) {
	DisplayProgress(wg, progressChan, numSnippets, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for terminal
// output.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentOutput writes the snippet lines. Outside quiet mode they are
// preceded by a "--- name ---" header. A failed write stops the block so
// no footer follows truncated output.
func (CLIResultPresenter) PresentOutput(result orchestration.RunResult, opts orchestration.PresentationOptions, out io.Writer) {
	if !opts.Quiet {
		theme := ui.GetCurrentTheme()
		if _, err := fmt.Fprintf(out, "%s\n", theme.Header(fmt.Sprintf("--- %s ---", result.Name))); err != nil {
			return
		}
	}
	if _, err := fmt.Fprint(out, string(result.Output)); err != nil {
		return
	}
	if opts.Verbose && !opts.Quiet {
		fmt.Fprintf(out, "%s\n", ui.GetCurrentTheme().Muted(fmt.Sprintf("(%s in %s)",
			format.Plural(result.Lines, "line"), format.FormatExecutionDuration(result.Duration))))
	}
}

// PresentSummary displays one row per snippet with its duration, line count
// and status. Padding is computed on the raw text so that color codes do not
// break alignment.
func (CLIResultPresenter) PresentSummary(results []orchestration.RunResult, out io.Writer) {
	theme := ui.GetCurrentTheme()
	fmt.Fprintf(out, "\n%s\n", theme.Header("--- Summary ---"))

	nameWidth, durWidth := len("Snippet"), len("Duration")
	for _, res := range results {
		nameWidth = max(nameWidth, len(res.Name))
		durWidth = max(durWidth, len(displayDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%s   %s   %s   %s\n",
		padRight("Snippet", nameWidth), padRight("Duration", durWidth), padRight("Lines", 5), "Status")
	for _, res := range results {
		var status string
		switch {
		case res.Err == nil:
			status = theme.OK("OK")
		case apperrors.IsContextError(res.Err):
			status = theme.Warn(fmt.Sprintf("Interrupted (%v)", res.Err))
		default:
			status = theme.Fail(fmt.Sprintf("Failure (%v)", res.Err))
		}
		fmt.Fprintf(out, "%s   %s   %s   %s\n",
			padRight(res.Name, nameWidth),
			theme.Muted(padRight(displayDuration(res.Duration), durWidth)),
			padRight(fmt.Sprint(res.Lines), 5),
			status)
	}
}

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// padRight pads s with spaces up to width runes.
func padRight(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}

// FormatDuration formats a duration for display.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError reports a run error and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleSnippetError(err, duration, out)
}

// DisplayMemoryStats shows what the runtime did while the snippets ran.
func DisplayMemoryStats(delta metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Live heap:      %d bytes\n", delta.HeapAllocAfter)
	fmt.Fprintf(out, "  Allocations:    %d\n", delta.Mallocs)
	fmt.Fprintf(out, "  GC cycles:      %d\n", delta.NumGC)
	fmt.Fprintf(out, "  GC pause total: %.3fms\n", float64(delta.PauseTotalNs)/1e6)
}
