package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/agbru/snippets/internal/errors"
)

var testSnippets = []string{"factorial", "fibonacci", "loop", "showcase", "tokens"}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snippets.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("snippets", nil, io.Discard, testSnippets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Defaults() {
		t.Errorf("expected defaults %+v, got %+v", Defaults(), cfg)
	}
	if cfg.N != 10 || cfg.Factorial != 5 || cfg.Snippet != AllSnippets || cfg.Parallelism != 1 {
		t.Errorf("unexpected default values: %+v", cfg)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(AppConfig) bool
	}{
		{"snippet long", []string{"-snippet", "loop"}, func(c AppConfig) bool { return c.Snippet == "loop" }},
		{"snippet short", []string{"-s", "showcase"}, func(c AppConfig) bool { return c.Snippet == "showcase" }},
		{"fibonacci index", []string{"-n", "20"}, func(c AppConfig) bool { return c.N == 20 }},
		{"factorial short", []string{"-k", "7"}, func(c AppConfig) bool { return c.Factorial == 7 }},
		{"timeout", []string{"-timeout", "2s"}, func(c AppConfig) bool { return c.Timeout == 2*time.Second }},
		{"parallel", []string{"-j", "4"}, func(c AppConfig) bool { return c.Parallelism == 4 }},
		{"quiet", []string{"-q"}, func(c AppConfig) bool { return c.Quiet }},
		{"verbose", []string{"-verbose"}, func(c AppConfig) bool { return c.Verbose }},
		{"list", []string{"-list"}, func(c AppConfig) bool { return c.List }},
		{"output", []string{"-o", "out.txt"}, func(c AppConfig) bool { return c.OutputFile == "out.txt" }},
		{"log level", []string{"-log-level", "debug"}, func(c AppConfig) bool { return c.LogLevel == "debug" }},
		{"log format", []string{"-log-format", "text"}, func(c AppConfig) bool { return c.LogFormat == "text" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig("snippets", tt.args, io.Discard, testSnippets)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("flags %v not applied: %+v", tt.args, cfg)
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	_, err := ParseConfig("snippets", []string{"-h"}, io.Discard, testSnippets)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
}

func TestParseConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown snippet", []string{"-s", "quicksort"}},
		{"negative fibonacci index", []string{"-n", "-1"}},
		{"fibonacci index overflow", []string{"-n", "93"}},
		{"negative factorial", []string{"-k", "-3"}},
		{"factorial overflow", []string{"-k", "21"}},
		{"zero parallelism", []string{"-j", "0"}},
		{"zero timeout", []string{"-timeout", "0s"}},
		{"unknown log level", []string{"-log-level", "chatty"}},
		{"unknown log format", []string{"-log-format", "xml"}},
		{"quiet tui", []string{"-q", "-tui"}},
		{"positional argument", []string{"loop"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("snippets", tt.args, io.Discard, testSnippets)
			var configErr apperrors.ConfigError
			if !errors.As(err, &configErr) {
				t.Errorf("expected ConfigError for %v, got %v", tt.args, err)
			}
		})
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"SNIPPET", "fibonacci")
	t.Setenv(EnvPrefix+"N", "30")
	t.Setenv(EnvPrefix+"QUIET", "yes")
	t.Setenv(EnvPrefix+"TIMEOUT", "5s")
	t.Setenv(EnvPrefix+"LOG_FORMAT", "console")

	cfg, err := ParseConfig("snippets", nil, io.Discard, testSnippets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Snippet != "fibonacci" || cfg.N != 30 || !cfg.Quiet || cfg.Timeout != 5*time.Second ||
		cfg.LogFormat != "console" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestParseConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"N", "30")
	t.Setenv(EnvPrefix+"FACTORIAL", "8")

	cfg, err := ParseConfig("snippets", []string{"-n", "12", "-factorial", "3"}, io.Discard, testSnippets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.N != 12 {
		t.Errorf("flag should win over env, got N=%d", cfg.N)
	}
	if cfg.Factorial != 3 {
		t.Errorf("flag should win over env, got Factorial=%d", cfg.Factorial)
	}
}

func TestParseConfig_InvalidEnvIgnored(t *testing.T) {
	t.Setenv(EnvPrefix+"N", "not-a-number")
	t.Setenv(EnvPrefix+"VERBOSE", "maybe")

	cfg, err := ParseConfig("snippets", nil, io.Discard, testSnippets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.N != Defaults().N || cfg.Verbose {
		t.Errorf("unparseable env values should be ignored: %+v", cfg)
	}
}

func TestParseConfig_File(t *testing.T) {
	path := writeConfigFile(t, `
snippet: factorial
factorial: 6
timeout: 3s
parallel: 2
logLevel: info
logFormat: text
`)

	cfg, err := ParseConfig("snippets", []string{"-config", path}, io.Discard, testSnippets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Snippet != "factorial" || cfg.Factorial != 6 || cfg.Timeout != 3*time.Second ||
		cfg.Parallelism != 2 || cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.N != Defaults().N {
		t.Errorf("absent file keys should keep defaults, got N=%d", cfg.N)
	}
}

func TestParseConfig_Priority(t *testing.T) {
	path := writeConfigFile(t, "n: 15\nfactorial: 9\nsnippet: loop\n")
	t.Setenv(EnvPrefix+"CONFIG", path)
	t.Setenv(EnvPrefix+"N", "25")

	cfg, err := ParseConfig("snippets", []string{"-s", "showcase"}, io.Discard, testSnippets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Snippet != "showcase" {
		t.Errorf("flag should beat file, got snippet %q", cfg.Snippet)
	}
	if cfg.N != 25 {
		t.Errorf("env should beat file, got N=%d", cfg.N)
	}
	if cfg.Factorial != 9 {
		t.Errorf("file should beat default, got Factorial=%d", cfg.Factorial)
	}
}

func TestParseConfig_FileErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.yaml") }},
		{"malformed yaml", func(t *testing.T) string { return writeConfigFile(t, "n: [1, 2\n") }},
		{"bad timeout", func(t *testing.T) string { return writeConfigFile(t, "timeout: soon\n") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("snippets", []string{"-config", tt.path(t)}, io.Discard, testSnippets)
			var configErr apperrors.ConfigError
			if !errors.As(err, &configErr) {
				t.Errorf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in       string
		def      bool
		expected bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"false", true, false},
		{"no", true, false},
		{"0", true, false},
		{"perhaps", true, true},
		{"perhaps", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.expected {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.expected)
		}
	}
}
