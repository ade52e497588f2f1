package orchestration

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/snippets/internal/errors"
	"github.com/agbru/snippets/internal/logging"
	"github.com/agbru/snippets/internal/snippets"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking run goroutines
// when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

const tracerName = "github.com/agbru/snippets/internal/orchestration"

// ExecOptions configures ExecuteSnippets and RunSnippet.
type ExecOptions struct {
	// Parallelism bounds how many snippets run at once. Values below 1 are
	// treated as 1.
	Parallelism int
	// Recorder, if set, observes every finished run.
	Recorder Recorder
	// Logger, if set, receives a debug entry per run.
	Logger logging.Logger
}

// RunSnippet executes one snippet into a private buffer, traces it and
// records the observation.
func RunSnippet(ctx context.Context, s snippets.Snippet, opts ExecOptions) RunResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "snippet.run",
		trace.WithAttributes(attribute.String("snippet.name", s.Name())))
	defer span.End()

	var buf bytes.Buffer
	startTime := time.Now()
	err := s.Run(ctx, &buf)
	duration := time.Since(startTime)
	lines := bytes.Count(buf.Bytes(), []byte{'\n'})

	span.SetAttributes(attribute.Int("snippet.lines", lines))
	if err != nil {
		err = apperrors.SnippetError{Snippet: s.Name(), Cause: err}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if opts.Recorder != nil {
		opts.Recorder.ObserveRun(s.Name(), duration, lines, err)
	}
	if opts.Logger != nil {
		if err != nil {
			opts.Logger.Error("snippet failed", err, logging.String("snippet", s.Name()), logging.Duration("duration", duration))
		} else {
			opts.Logger.Debug("snippet finished", logging.String("snippet", s.Name()),
				logging.Int("lines", lines), logging.Duration("duration", duration))
		}
	}

	return RunResult{Name: s.Name(), Output: buf.Bytes(), Lines: lines, Duration: duration, Err: err}
}

// ExecuteSnippets orchestrates the execution of one or more snippets.
//
// Each snippet writes into its own buffer and results are stored by index,
// so the returned slice follows the order of snippetsToRun whatever the
// parallelism. With Parallelism 1 the snippets run one after another.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - snippetsToRun: The snippets to execute.
//   - opts: Parallelism, recorder and logger.
//   - progressReporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []RunResult: One result per snippet, in input order.
func ExecuteSnippets(ctx context.Context, snippetsToRun []snippets.Snippet, opts ExecOptions, progressReporter ProgressReporter, out io.Writer) []RunResult {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Parallelism, 1))
	results := make([]RunResult, len(snippetsToRun))
	progressChan := make(chan ProgressUpdate, len(snippetsToRun)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(snippetsToRun), out)

	for i, s := range snippetsToRun {
		g.Go(func() error {
			progressChan <- ProgressUpdate{SnippetIndex: i, Value: 0}
			results[i] = RunSnippet(ctx, s, opts)
			progressChan <- ProgressUpdate{SnippetIndex: i, Value: 1}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeResults presents every result in order, then the summary table, and
// returns the exit code of the run.
//
// Parameters:
//   - results: The results to present, in run order.
//   - opts: Presentation options.
//   - presenter: The result presenter for display formatting.
//   - handler: Maps the first failure to an exit code.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: ExitSuccess when every snippet succeeded, otherwise the exit code
//     of the first failure.
func AnalyzeResults(results []RunResult, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	var firstFailure *RunResult
	for i := range results {
		presenter.PresentOutput(results[i], opts, out)
		if results[i].Err != nil && firstFailure == nil {
			firstFailure = &results[i]
		}
	}

	if opts.Quiet {
		if firstFailure != nil {
			return handler.HandleError(firstFailure.Err, firstFailure.Duration, io.Discard)
		}
		return apperrors.ExitSuccess
	}

	presenter.PresentSummary(results, out)

	if firstFailure == nil {
		fmt.Fprintf(out, "\nGlobal Status: Success. %d snippet(s) completed.\n", len(results))
		return apperrors.ExitSuccess
	}
	fmt.Fprintf(out, "\nGlobal Status: Failure in %q.\n", firstFailure.Name)
	return handler.HandleError(firstFailure.Err, firstFailure.Duration, out)
}
