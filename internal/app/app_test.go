package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/snippets/internal/errors"
	"github.com/agbru/snippets/internal/logging"
	"github.com/agbru/snippets/internal/orchestration"
	"github.com/agbru/snippets/internal/ui"
)

func newApp(t *testing.T, args ...string) *Application {
	t.Helper()
	var errBuf bytes.Buffer
	a, err := New(append([]string{"snippets", "--no-color"}, args...), &errBuf)
	if err != nil {
		t.Fatalf("New(%v): %v\nstderr: %s", args, err, errBuf.String())
	}
	return a
}

func TestMain(m *testing.M) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	os.Exit(m.Run())
}

func TestQuietOutput(t *testing.T) {
	tests := []struct {
		snippet string
		args    []string
		want    string
	}{
		{"fibonacci", nil, "55\n"},
		{"fibonacci", []string{"-n", "1"}, "1\n"},
		{"fibonacci", []string{"-n", "0"}, "0\n"},
		{"factorial", nil, "120\n"},
		{"factorial", []string{"-k", "0"}, "1\n"},
		{"loop", nil, "Iteration: 0\nSquare of 0 is: 0\n0 is even\n" +
			"Iteration: 1\nSquare of 1 is: 1\n1 is odd\n" +
			"Iteration: 2\nSquare of 2 is: 4\n2 is even\n" +
			"Iteration: 3\nSquare of 3 is: 9\n3 is odd\n" +
			"Iteration: 4\nSquare of 4 is: 16\n4 is even\n"},
		{"showcase", nil, "a is less than 10\n" +
			"Iteration: 0\nIteration: 1\nIteration: 2\nIteration: 3\nIteration: 4\n" +
			"a is 5\na is 4\na is 3\na is 2\na is 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.snippet+strings.Join(tt.args, ""), func(t *testing.T) {
			a := newApp(t, append([]string{"-q", "-s", tt.snippet}, tt.args...)...)
			var out bytes.Buffer
			if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
				t.Fatalf("exit code %d", code)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestRunAll_ReportsSummary(t *testing.T) {
	a := newApp(t, "-parallel", "4")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d\n%s", code, out.String())
	}
	s := out.String()
	order := []string{"--- factorial ---", "--- fibonacci ---", "--- loop ---", "--- showcase ---", "--- tokens ---", "--- Summary ---", "Global Status: Success"}
	last := -1
	for _, want := range order {
		idx := strings.Index(s, want)
		if idx < 0 {
			t.Fatalf("output missing %q:\n%s", want, s)
		}
		if idx < last {
			t.Errorf("%q appears out of order", want)
		}
		last = idx
	}
}

func TestList(t *testing.T) {
	a := newApp(t, "--list")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d", code)
	}
	for _, name := range []string{"factorial", "fibonacci", "loop", "showcase", "tokens"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("list missing %q", name)
		}
	}
}

func TestNew_MissingCollaborator(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"snippets"}, &errBuf, WithExample(nil))
	if err == nil {
		t.Fatal("expected resolution error")
	}
	var resErr apperrors.ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected ResolutionError, got %T: %v", err, err)
	}
	if apperrors.ExitCodeFor(err) != apperrors.ExitErrorResolution {
		t.Errorf("exit code = %d, want %d", apperrors.ExitCodeFor(err), apperrors.ExitErrorResolution)
	}
	if !strings.Contains(errBuf.String(), "exampleFunction") {
		t.Errorf("stderr should name the symbol: %q", errBuf.String())
	}
}

func TestNew_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown snippet", []string{"-s", "quicksort"}},
		{"fibonacci index too large", []string{"-n", "93"}},
		{"negative factorial", []string{"-k", "-1"}},
		{"bad flag value", []string{"-n", "ten"}},
		{"unknown flag", []string{"--bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(append([]string{"snippets"}, tt.args...), &bytes.Buffer{})
			if err == nil {
				t.Fatal("expected error")
			}
			if code := apperrors.ExitCodeFor(err); code != apperrors.ExitErrorConfig {
				t.Errorf("exit code = %d, want %d (%v)", code, apperrors.ExitErrorConfig, err)
			}
		})
	}
}

func TestNew_Help(t *testing.T) {
	_, err := New([]string{"snippets", "-h"}, &bytes.Buffer{})
	if !IsHelpError(err) {
		t.Errorf("expected help error, got %v", err)
	}
}

func TestRun_Timeout(t *testing.T) {
	a := newApp(t, "-q", "-s", "loop")
	a.Config.Timeout = time.Nanosecond
	time.Sleep(time.Millisecond)

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
	if out.Len() != 0 {
		t.Errorf("a timed-out snippet must not print, got %q", out.String())
	}
}

func TestRun_TimeoutNamesSnippetAndLimit(t *testing.T) {
	var logs bytes.Buffer
	a, err := New([]string{"snippets", "--no-color", "-s", "loop"}, &bytes.Buffer{},
		WithLogger(logging.NewStdLoggerAdapter(newLog(&logs))))
	if err != nil {
		t.Fatal(err)
	}
	a.Config.Timeout = time.Nanosecond
	time.Sleep(time.Millisecond)

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
	for _, want := range []string{
		`Interrupted (operation "loop" timed out after 1ns)`,
		"Status: Timeout.",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	if !strings.Contains(logs.String(), "[WARN] snippet timed out snippet=loop") {
		t.Errorf("expected a timeout warning, got %q", logs.String())
	}
}

func TestMarkTimeouts(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	results := []orchestration.RunResult{
		{Name: "loop", Err: context.DeadlineExceeded},
		{Name: "fibonacci"},
		{Name: "factorial", Err: boom},
		{Name: "showcase", Err: context.Canceled},
		{Name: "tokens", Err: apperrors.TimeoutError{Operation: "tokens", Limit: time.Minute}},
	}
	markTimeouts(results, 2*time.Second)

	var timeoutErr apperrors.TimeoutError
	if !errors.As(results[0].Err, &timeoutErr) {
		t.Fatalf("deadline error should become a TimeoutError, got %T", results[0].Err)
	}
	if timeoutErr.Operation != "loop" || timeoutErr.Limit != 2*time.Second {
		t.Errorf("TimeoutError = %+v, want loop after 2s", timeoutErr)
	}
	if results[1].Err != nil {
		t.Errorf("successful result gained an error: %v", results[1].Err)
	}
	if results[2].Err != boom {
		t.Errorf("plain failure should be left alone, got %v", results[2].Err)
	}
	if results[3].Err != context.Canceled {
		t.Errorf("cancellation should be left alone, got %v", results[3].Err)
	}
	if !errors.As(results[4].Err, &timeoutErr) || timeoutErr.Limit != time.Minute {
		t.Errorf("existing TimeoutError should be kept, got %+v", timeoutErr)
	}
}

func TestRun_Canceled(t *testing.T) {
	a := newApp(t, "-q")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if code := a.Run(ctx, &bytes.Buffer{}); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestRun_OutputAndMetricsFiles(t *testing.T) {
	dir := t.TempDir()
	transcript := filepath.Join(dir, "out", "run.txt")
	metricsFile := filepath.Join(dir, "snippets.prom")

	a := newApp(t, "-s", "fibonacci", "-o", transcript, "--metrics-file", metricsFile)
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(out.String(), "Transcript saved to: "+transcript) {
		t.Errorf("missing save notice:\n%s", out.String())
	}

	data, err := os.ReadFile(transcript)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "## fibonacci") || !strings.Contains(string(data), "55") {
		t.Errorf("unexpected transcript:\n%s", data)
	}

	prom, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(prom), `snippets_runs_total{snippet="fibonacci",status="success"} 1`) {
		t.Errorf("unexpected metrics:\n%s", prom)
	}
}

func TestRun_MetricsFileError(t *testing.T) {
	var logs bytes.Buffer
	a, err := New([]string{"snippets", "-q", "-s", "loop", "--metrics-file", filepath.Join(t.TempDir(), "missing", "m.prom")},
		&bytes.Buffer{}, WithLogger(logging.NewStdLoggerAdapter(newLog(&logs))))
	if err != nil {
		t.Fatal(err)
	}
	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorGeneric {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
	if !strings.Contains(logs.String(), "cannot write metrics file") {
		t.Errorf("expected error log, got %q", logs.String())
	}
}

func TestNew_LogFormat(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", `"message":"cannot write metrics file"`},
		{"console", "cannot write metrics file"},
		{"text", "snippets: "},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var stderr bytes.Buffer
			a, err := New([]string{"snippets", "-q", "-s", "loop", "--log-format", tt.format,
				"--metrics-file", filepath.Join(t.TempDir(), "missing", "m.prom")}, &stderr)
			if err != nil {
				t.Fatal(err)
			}
			a.Run(context.Background(), &bytes.Buffer{})
			if !strings.Contains(stderr.String(), tt.want) {
				t.Errorf("%s log missing %q: %q", tt.format, tt.want, stderr.String())
			}
			if tt.format == "text" && !strings.Contains(stderr.String(), "[ERROR] cannot write metrics file") {
				t.Errorf("text log should use the std adapter: %q", stderr.String())
			}
		})
	}
}

func TestRun_Verbose(t *testing.T) {
	a := newApp(t, "-v", "-s", "factorial")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d", code)
	}
	for _, want := range []string{"System: CPU", "Memory Stats:", "(1 line in"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("verbose output missing %q:\n%s", want, out.String())
		}
	}
}

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-q", "-V"}, true},
		{[]string{"-v"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	PrintVersion(&out)
	if !strings.HasPrefix(out.String(), "snippets "+Version) {
		t.Errorf("unexpected version line %q", out.String())
	}
}
