package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/snippets/internal/cli"
	apperrors "github.com/agbru/snippets/internal/errors"
	"github.com/agbru/snippets/internal/logging"
	"github.com/agbru/snippets/internal/metrics"
	"github.com/agbru/snippets/internal/orchestration"
	"github.com/agbru/snippets/internal/sysmon"
	"github.com/agbru/snippets/internal/ui"
)

// runSnippets runs the selected snippets and reports on out.
func (a *Application) runSnippets(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	selected := orchestration.GetSnippetsToRun(a.Config.Snippet, a.Registry)

	if !a.Config.Quiet {
		var sample *sysmon.Stats
		if a.Config.Verbose {
			s := sysmon.NewSampler().Sample(ctx)
			sample = &s
			a.Logger.Debug("system sampled", logging.Float64("cpu_percent", s.CPUPercent),
				logging.Float64("mem_percent", s.MemPercent), logging.Uint64("mem_total", s.MemTotal))
		}
		cli.PrintExecutionConfig(a.Config, sample, out)
		cli.PrintExecutionMode(selected, out)
	}

	// The spinner goes to stderr, and only when a person is watching.
	var progressReporter orchestration.ProgressReporter = orchestration.NullProgressReporter{}
	progressOut := io.Discard
	if !a.Config.Quiet && cli.IsTerminal(a.ErrWriter) {
		progressReporter = cli.CLIProgressReporter{}
		progressOut = a.ErrWriter
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	results := orchestration.ExecuteSnippets(ctx, selected, a.execOptions(), progressReporter, progressOut)
	after := collector.Snapshot()
	markTimeouts(results, a.Config.Timeout)
	for _, res := range results {
		var timeoutErr apperrors.TimeoutError
		if errors.As(res.Err, &timeoutErr) {
			a.Logger.Warn("snippet timed out", logging.String("snippet", res.Name), logging.Err(res.Err))
		}
	}
	delta := metrics.Delta(before, after)
	a.Logger.Debug("run finished", logging.Int("snippets", len(results)),
		logging.Uint64("mallocs", delta.Mallocs), logging.Uint64("heap_alloc", delta.HeapAllocAfter))

	presenter := cli.CLIResultPresenter{}
	presOpts := orchestration.PresentationOptions{Quiet: a.Config.Quiet, Verbose: a.Config.Verbose}
	exitCode := orchestration.AnalyzeResults(results, presOpts, presenter, presenter, out)

	if a.Config.Verbose && !a.Config.Quiet {
		cli.DisplayMemoryStats(delta, out)
	}

	if a.Config.OutputFile != "" {
		if err := cli.WriteTranscript(a.Config.OutputFile, results); err != nil {
			a.Logger.Error("cannot save transcript", err, logging.String("path", a.Config.OutputFile))
			if exitCode == apperrors.ExitSuccess {
				exitCode = apperrors.ExitErrorGeneric
			}
		} else if !a.Config.Quiet {
			fmt.Fprintf(out, "\n%s\n", ui.GetCurrentTheme().OK("Transcript saved to: "+a.Config.OutputFile))
		}
	}

	if !a.writeMetrics() && exitCode == apperrors.ExitSuccess {
		exitCode = apperrors.ExitErrorGeneric
	}
	return exitCode
}

// markTimeouts replaces the deadline error of every snippet the --timeout
// cut short with a TimeoutError naming that snippet and the limit.
func markTimeouts(results []orchestration.RunResult, limit time.Duration) {
	for i := range results {
		if !errors.Is(results[i].Err, context.DeadlineExceeded) {
			continue
		}
		var timeoutErr apperrors.TimeoutError
		if errors.As(results[i].Err, &timeoutErr) {
			continue
		}
		results[i].Err = apperrors.TimeoutError{Operation: results[i].Name, Limit: limit}
	}
}

// writeMetrics writes the Prometheus textfile when --metrics-file is set.
// It reports whether the write succeeded (or was not requested).
func (a *Application) writeMetrics() bool {
	if a.Config.MetricsFile == "" {
		return true
	}
	if err := a.Recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
		a.Logger.Error("cannot write metrics file", err, logging.String("path", a.Config.MetricsFile))
		return false
	}
	a.Logger.Debug("metrics written", logging.String("path", a.Config.MetricsFile))
	return true
}
