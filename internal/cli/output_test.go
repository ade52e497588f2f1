package cli

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/snippets/internal/orchestration"
	"github.com/agbru/snippets/internal/snippets"
)

func TestFormatTranscript(t *testing.T) {
	t.Parallel()
	generated := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	results := []orchestration.RunResult{
		{Name: "fibonacci", Output: []byte("55\n"), Lines: 1},
		{Name: "factorial", Err: errors.New("bad")},
	}
	got := FormatTranscript(results, generated)

	for _, want := range []string{
		"# Generated: 2024-01-02T03:04:05Z",
		"# Snippets: 2",
		"## fibonacci (1 lines",
		"ok)\n55\n",
		"failed: bad",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("transcript missing %q:\n%s", want, got)
		}
	}
}

func TestWriteTranscript(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	results := []orchestration.RunResult{{Name: "loop", Output: []byte("Iteration: 0\n"), Lines: 1}}

	testCases := []struct {
		name string
		path string
	}{
		{"flat file", filepath.Join(tmpDir, "run.txt")},
		{"nested directory", filepath.Join(tmpDir, "nested", "dir", "run.txt")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := WriteTranscript(tc.path, results); err != nil {
				t.Fatalf("WriteTranscript: %v", err)
			}
			content, err := os.ReadFile(tc.path)
			if err != nil {
				t.Fatalf("Failed to read output file: %v", err)
			}
			if !strings.Contains(string(content), "Iteration: 0") {
				t.Errorf("transcript missing snippet output:\n%s", content)
			}
		})
	}

	t.Run("parent is a file", func(t *testing.T) {
		t.Parallel()
		blocker := filepath.Join(tmpDir, "blocker")
		if err := os.WriteFile(blocker, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		err := WriteTranscript(filepath.Join(blocker, "run.txt"), results)
		if err == nil {
			t.Fatal("expected an error when the parent path is a file")
		}
		if !strings.HasPrefix(err.Error(), "failed to create directory: ") {
			t.Errorf("error = %q, want the directory context", err)
		}
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			t.Errorf("error should wrap the *fs.PathError, got %T", errors.Unwrap(err))
		}
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		t.Parallel()
		if err := WriteTranscript("", results); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestDisplayList(t *testing.T) {
	useNoColor(t)
	registry, err := snippets.NewDefaultRegistry(snippets.DefaultInputs(func() {}))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	DisplayList(registry.GetAll(), &buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "factorial ") {
		t.Errorf("list should be sorted, first line %q", lines[0])
	}
}
