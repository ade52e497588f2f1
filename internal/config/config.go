// Package config defines the application configuration and the parsing of
// command-line flags, environment variables and an optional YAML file.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"time"

	apperrors "github.com/agbru/snippets/internal/errors"
	"github.com/agbru/snippets/internal/logging"
	"github.com/agbru/snippets/internal/snippets"
)

const (
	// EnvPrefix is prepended to every environment variable the application reads.
	EnvPrefix = "SNIPPETS_"

	// AllSnippets selects every registered snippet.
	AllSnippets = "all"

	// DefaultTimeout bounds a whole run.
	DefaultTimeout = 30 * time.Second

	// DefaultLogLevel keeps stderr quiet unless something goes wrong.
	DefaultLogLevel = "warn"
)

// AppConfig aggregates the application's configuration parameters.
//
// Resolution chain (highest priority first):
//  1. CLI flags
//  2. Environment variables (SNIPPETS_*)
//  3. YAML config file (--config or SNIPPETS_CONFIG)
//  4. Defaults
type AppConfig struct {
	// Snippet is the name of the snippet to run, or "all".
	Snippet string
	// N is the Fibonacci index the fibonacci snippet computes.
	N int
	// Factorial is the input of the factorial snippet.
	Factorial int
	// Timeout is the maximum duration of the whole run.
	Timeout time.Duration
	// Parallelism is how many snippets may run at once. 1 runs them in order
	// on a single goroutine.
	Parallelism int
	// Quiet prints only the snippet lines.
	Quiet bool
	// Verbose adds memory and system statistics.
	Verbose bool
	// NoColor disables ANSI colors.
	NoColor bool
	// List prints the registered snippets and exits.
	List bool
	// TUI launches the interactive snippet browser.
	TUI bool
	// OutputFile, when set, receives a transcript of the run.
	OutputFile string
	// MetricsFile, when set, receives the Prometheus metrics of the run.
	MetricsFile string
	// LogLevel is the minimum level written to stderr.
	LogLevel string
	// LogFormat selects json, console or text log lines on stderr.
	LogFormat string
	// ConfigFile is the YAML file the configuration was read from.
	ConfigFile string
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() AppConfig {
	return AppConfig{
		Snippet:     AllSnippets,
		N:           snippets.DefaultFibonacciN,
		Factorial:   snippets.DefaultFactorialInput,
		Timeout:     DefaultTimeout,
		Parallelism: 1,
		LogLevel:    DefaultLogLevel,
		LogFormat:   logging.FormatJSON,
	}
}

// ParseConfig parses the command-line arguments and layers environment
// variables and the YAML config file beneath them.
//
// Parameters:
//   - programName: The name shown in usage output.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: Where usage and parse errors are written.
//   - availableSnippets: The registered snippet names, for validation.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when -h was given, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableSnippets []string) (AppConfig, error) {
	cfg := Defaults()
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	fs.StringVar(&cfg.Snippet, "snippet", cfg.Snippet, fmt.Sprintf("Snippet to run: %s or one of %v.", AllSnippets, availableSnippets))
	fs.StringVar(&cfg.Snippet, "s", cfg.Snippet, "Shorthand for -snippet.")
	fs.IntVar(&cfg.N, "n", cfg.N, "Fibonacci index computed by the fibonacci snippet.")
	fs.IntVar(&cfg.Factorial, "factorial", cfg.Factorial, "Input of the factorial snippet.")
	fs.IntVar(&cfg.Factorial, "k", cfg.Factorial, "Shorthand for -factorial.")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Maximum duration of the run (e.g. 10s, 1m).")
	fs.IntVar(&cfg.Parallelism, "parallel", cfg.Parallelism, "Number of snippets allowed to run at once.")
	fs.IntVar(&cfg.Parallelism, "j", cfg.Parallelism, "Shorthand for -parallel.")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "Print only the snippet output.")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "Shorthand for -quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Show memory and system statistics.")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Shorthand for -verbose.")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output.")
	fs.BoolVar(&cfg.List, "list", cfg.List, "List the available snippets and exit.")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "Browse and run snippets interactively.")
	fs.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "Write a transcript of the run to this file.")
	fs.StringVar(&cfg.OutputFile, "o", cfg.OutputFile, "Shorthand for -output.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Write Prometheus metrics in textfile format to this file.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Minimum log level on stderr (debug, info, warn, error).")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log line format on stderr (json, console, text).")
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML configuration file.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
	}

	if !isFlagSet(fs, "config") {
		cfg.ConfigFile = getEnvString("CONFIG", cfg.ConfigFile)
	}
	if cfg.ConfigFile != "" {
		fileCfg, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return AppConfig{}, err
		}
		if err := applyFileConfig(&cfg, fileCfg, fs); err != nil {
			return AppConfig{}, err
		}
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(availableSnippets); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate(availableSnippets []string) error {
	if c.Snippet != AllSnippets && !slices.Contains(availableSnippets, c.Snippet) {
		return apperrors.NewConfigError("unknown snippet %q (available: %s, %v)", c.Snippet, AllSnippets, availableSnippets)
	}
	if c.N < 0 || c.N > snippets.MaxFibonacciIndex {
		return apperrors.NewConfigError("-n must be between 0 and %d, got %d", snippets.MaxFibonacciIndex, c.N)
	}
	if c.Factorial < 0 || c.Factorial > snippets.MaxFactorialInput {
		return apperrors.NewConfigError("-factorial must be between 0 and %d, got %d", snippets.MaxFactorialInput, c.Factorial)
	}
	if c.Parallelism < 1 {
		return apperrors.NewConfigError("-parallel must be at least 1, got %d", c.Parallelism)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("-timeout must be positive, got %s", c.Timeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.Quiet && c.TUI {
		return apperrors.NewConfigError("-quiet and -tui cannot be combined")
	}
	return nil
}
