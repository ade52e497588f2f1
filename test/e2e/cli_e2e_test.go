package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildBinary compiles cmd/snippets into a temporary directory.
func buildBinary(t *testing.T) string {
	t.Helper()
	binName := "snippets"
	if runtime.GOOS == "windows" {
		binName = "snippets.exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	// go test runs with the package directory as CWD.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/snippets")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build snippets: %v", err)
	}
	return binPath
}

// TestCLI_E2E verifies the built binary end to end.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}
	binPath := buildBinary(t)

	tests := []struct {
		name       string
		args       []string
		env        []string
		wantStdout string // exact stdout; empty means "don't check"
		wantOut    string // substring of combined output (case-insensitive)
		wantCode   int
	}{
		{
			name:       "Fibonacci quiet",
			args:       []string{"-q", "-s", "fibonacci"},
			wantStdout: "55\n",
		},
		{
			name:       "Factorial quiet",
			args:       []string{"-q", "-s", "factorial"},
			wantStdout: "120\n",
		},
		{
			name:       "Fibonacci from environment",
			args:       []string{"-q", "-s", "fibonacci"},
			env:        []string{"SNIPPETS_N=20"},
			wantStdout: "6765\n",
		},
		{
			name:    "All snippets",
			args:    nil,
			wantOut: "global status: success",
		},
		{
			name:    "List",
			args:    []string{"--list"},
			wantOut: "showcase",
		},
		{
			name:    "Tokens",
			args:    []string{"-q", "-s", "tokens"},
			wantOut: "lextoken(while,'while',26,455)",
		},
		{
			name:    "Help",
			args:    []string{"--help"},
			wantOut: "usage",
		},
		{
			name:    "Version Flag",
			args:    []string{"--version"},
			wantOut: "snippets",
		},
		{
			name:     "Unknown snippet",
			args:     []string{"-s", "quicksort"},
			wantOut:  "unknown snippet",
			wantCode: 4,
		},
		{
			name:     "Fibonacci index out of range",
			args:     []string{"-n", "100"},
			wantCode: 4,
		},
		{
			name:     "Very Short Timeout",
			args:     []string{"-q", "--timeout", "1ns"},
			wantCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(append(os.Environ(), "NO_COLOR=1"), tt.env...)
			var stdout, stderr strings.Builder
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr
			err := cmd.Run()
			combined := stdout.String() + stderr.String()

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("Failed to run command: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("Expected exit code %d, got %d\nOutput: %s", tt.wantCode, code, combined)
			}
			if tt.wantStdout != "" && stdout.String() != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantOut != "" && !strings.Contains(strings.ToLower(combined), tt.wantOut) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.wantOut, combined)
			}
		})
	}
}
