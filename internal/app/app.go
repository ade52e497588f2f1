package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/snippets/internal/cli"
	"github.com/agbru/snippets/internal/config"
	apperrors "github.com/agbru/snippets/internal/errors"
	"github.com/agbru/snippets/internal/examplemodule"
	"github.com/agbru/snippets/internal/logging"
	"github.com/agbru/snippets/internal/metrics"
	"github.com/agbru/snippets/internal/orchestration"
	"github.com/agbru/snippets/internal/snippets"
	"github.com/agbru/snippets/internal/tui"
	"github.com/agbru/snippets/internal/ui"
)

// Application represents the snippets application instance.
type Application struct {
	Config    config.AppConfig
	Registry  *snippets.Registry
	Recorder  *metrics.Recorder
	Logger    logging.Logger
	ErrWriter io.Writer

	example snippets.ExampleFunc
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithExample replaces the collaborator injected into the showcase snippet.
// A nil function makes New fail with a resolution error.
func WithExample(fn snippets.ExampleFunc) AppOption {
	return func(a *Application) { a.example = fn }
}

// WithLogger sets the logger instead of the zerolog logger on ErrWriter.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments
// and building the snippet registry with the configured inputs.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, example: examplemodule.ExampleFunction}
	for _, opt := range opts {
		opt(app)
	}

	programName := "snippets"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, snippets.DefaultNames())
	if err != nil {
		if IsHelpError(err) || apperrors.ExitCodeFor(err) != apperrors.ExitErrorGeneric {
			return nil, err
		}
		// flag package errors are already printed with the usage.
		return nil, apperrors.NewConfigError("%v", err)
	}

	registry, err := snippets.NewDefaultRegistry(snippets.Inputs{
		FibonacciN:     cfg.N,
		FactorialInput: cfg.Factorial,
		Example:        app.example,
	})
	if err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return nil, err
	}

	if app.Logger == nil {
		// Validate has already accepted the level and the format.
		level, _ := logging.ParseLevel(cfg.LogLevel)
		logger, err := logging.New(errWriter, "snippets", cfg.LogFormat, level)
		if err != nil {
			return nil, apperrors.NewConfigError("%v", err)
		}
		app.Logger = logger
	}

	app.Config = cfg
	app.Registry = registry
	app.Recorder = metrics.NewRecorder()
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	switch {
	case a.Config.List:
		cli.DisplayList(a.Registry.GetAll(), out)
		return apperrors.ExitSuccess
	case a.Config.TUI:
		return a.runTUI(ctx)
	}
	return a.runSnippets(ctx, out)
}

// runTUI launches the interactive snippet browser.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	selected := orchestration.GetSnippetsToRun(a.Config.Snippet, a.Registry)
	code := tui.Run(ctx, selected, a.execOptions(), Version)
	a.writeMetrics()
	return code
}

func (a *Application) execOptions() orchestration.ExecOptions {
	return orchestration.ExecOptions{
		Parallelism: a.Config.Parallelism,
		Recorder:    a.Recorder,
		Logger:      a.Logger,
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
