// Package app wires configuration, puzzles and solvers into the puzzlebook
// command: one-shot solving, the REPL, the TUI dashboard and the HTTP API.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/puzzlebook/internal/cli"
	"github.com/agbru/puzzlebook/internal/config"
	apperrors "github.com/agbru/puzzlebook/internal/errors"
	"github.com/agbru/puzzlebook/internal/logging"
	"github.com/agbru/puzzlebook/internal/puzzle"
	"github.com/agbru/puzzlebook/internal/server"
	"github.com/agbru/puzzlebook/internal/tui"
	"github.com/agbru/puzzlebook/internal/ui"
)

// Application represents the puzzlebook application instance.
type Application struct {
	Config    config.AppConfig
	Catalog   *puzzle.Catalog
	Factory   puzzle.SolverFactory
	ErrWriter io.Writer
	// In feeds the REPL. It defaults to os.Stdin.
	In io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom SolverFactory for the application.
func WithFactory(f puzzle.SolverFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithCatalog sets a custom puzzle catalog.
func WithCatalog(c *puzzle.Catalog) AppOption {
	return func(a *Application) { a.Catalog = c }
}

// WithInput sets the reader used by the REPL.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = puzzle.NewDefaultFactory()
	}
	if app.Catalog == nil {
		app.Catalog = puzzle.DefaultCatalog()
	}

	programName := "puzzlebook"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	if _, err := app.Catalog.Get(cfg.Puzzle); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	logging.SetGlobalLevel(a.Config.LogLevel)
	a.initTheme(out)

	switch {
	case a.Config.Serve != "":
		return a.runServer(ctx)
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.Interactive:
		return a.runREPL(ctx, out)
	}
	return a.runSolve(ctx, out)
}

// initTheme selects the configured theme, falling back to plain output when
// colors are disabled or out is not a terminal.
func (a *Application) initTheme(out io.Writer) {
	_, envNoColor := os.LookupEnv("NO_COLOR")
	if a.Config.NoColor || a.Config.Theme == "none" || envNoColor || !isTerminal(out) {
		ui.InitTheme(true)
		return
	}
	ui.SetTheme(a.Config.Theme)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsTerminal(f.Fd())
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive session on a.In.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	repl := cli.NewREPL(cli.REPLConfig{
		Catalog: a.Catalog,
		Factory: a.Factory,
		Puzzle:  a.Config.Puzzle,
		Params:  a.Config.Params(),
		Solver:  a.Config.Solver,
		Timeout: a.Config.Timeout,
		Options: a.Config.ToPuzzleOptions(),
		Verbose: a.Config.Verbose,
		Details: a.Config.Details,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// runTUI launches the interactive TUI dashboard. The configured timeout
// bounds each computation, not the session.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, a.Catalog, a.Factory, a.Config, Version)
}

// runServer serves the HTTP API until a signal arrives.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	var logger logging.Logger
	if isTerminal(a.ErrWriter) {
		logger = logging.NewConsoleLogger(a.ErrWriter, "server")
	} else {
		logger = logging.NewLogger(a.ErrWriter, "server")
	}

	srv := server.New(a.Config.Serve, a.Catalog, a.Factory,
		server.WithLogger(logger),
		server.WithPuzzleOptions(a.Config.ToPuzzleOptions()),
		server.WithVersion(Version),
	)
	if err := srv.Start(ctx); err != nil {
		logger.Error("server stopped", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
