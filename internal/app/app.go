// Package app wires configuration, collaborators, and run modes into the
// pbbdash application. It owns mode dispatch: one-shot tool calls, the HTTP
// server, the terminal dashboard, and the default CLI workflow run.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/abenson/pbbdash/internal/cli"
	"github.com/abenson/pbbdash/internal/config"
	apperrors "github.com/abenson/pbbdash/internal/errors"
	"github.com/abenson/pbbdash/internal/fallback"
	"github.com/abenson/pbbdash/internal/logging"
	"github.com/abenson/pbbdash/internal/services"
	"github.com/abenson/pbbdash/internal/session"
	"github.com/abenson/pbbdash/internal/ui"
)

// Application represents the pbbdash application instance.
type Application struct {
	Config    config.AppConfig
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithAppLogger sets a custom logger for the application.
func WithAppLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "pbbdash"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	if app.Logger == nil {
		app.Logger = logging.NewDefaultLogger()
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	switch {
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(false)

	if a.Config.Serve {
		return a.runServe(ctx)
	}

	if a.Config.TUI {
		return a.runTUI(ctx)
	}

	if a.Config.Tool != "" {
		return a.runTool(ctx, out)
	}

	return a.runAnalyze(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, cli.ToolNames()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// collaborators builds the shared service-layer dependencies for one run.
func (a *Application) collaborators() (*services.Client, *fallback.Provider, *session.Store) {
	caller := services.NewClient(services.WithLogger(a.Logger))
	provider := fallback.NewProvider(a.Logger)
	store := session.NewStore()
	return caller, provider, store
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
