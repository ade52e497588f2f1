package orchestration

import (
	"io"
	"sync"
	"time"
)

// RunResult encapsulates the outcome of a single snippet run.
// It serves as the shared domain type between orchestration and presentation layers.
type RunResult struct {
	// Name is the registry name of the snippet (e.g., "loop").
	Name string
	// Output holds every line the snippet wrote, in order.
	Output []byte
	// Lines is the number of newline-terminated lines in Output.
	Lines int
	// Duration is the time taken to complete the run.
	Duration time.Duration
	// Err contains any error that occurred during the run.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	// Quiet suppresses headers and the summary; only snippet lines are written.
	Quiet bool
	// Verbose adds per-snippet statistics.
	Verbose bool
}

// ProgressUpdate reports how far a snippet has progressed.
type ProgressUpdate struct {
	// SnippetIndex is the position of the snippet in the run.
	SnippetIndex int
	// Value is the normalized progress (0.0 to 1.0).
	Value float64
}

// ProgressReporter defines the interface for displaying run progress.
// This interface decouples the orchestration layer from the presentation layer.
//
// Implementations handle the visual representation of progress (spinners,
// status lines, etc.) while the orchestration layer focuses on coordinating
// the runs.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from the runs.
	//   - numSnippets: The number of snippets being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numSnippets int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
// This allows passing a function directly where a ProgressReporter is expected.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numSnippets int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numSnippets int, out io.Writer) {
	f(wg, progressChan, numSnippets, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting run results.
// This interface decouples the orchestration layer from presentation concerns,
// allowing different output formats without modifying the orchestration logic.
type ResultPresenter interface {
	// PresentOutput writes the lines produced by one snippet.
	PresentOutput(result RunResult, opts PresentationOptions, out io.Writer)

	// PresentSummary displays the summary table of all runs.
	PresentSummary(results []RunResult, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles run errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// Recorder receives one observation per finished run. metrics.Recorder
// implements it.
type Recorder interface {
	ObserveRun(name string, duration time.Duration, lines int, err error)
}
