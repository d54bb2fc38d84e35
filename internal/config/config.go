// Package config parses the command line, environment and optional config
// file into an AppConfig.
//
// Resolution order, highest priority first:
//  1. CLI flags
//  2. Environment variables (PUZZLEBOOK_*)
//  3. Config file (--config or PUZZLEBOOK_CONFIG, TOML by default)
//  4. Built-in defaults
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/puzzlebook/internal/errors"
	"github.com/agbru/puzzlebook/internal/puzzle"
	"github.com/agbru/puzzlebook/internal/ui"
)

// EnvPrefix is the prefix of every environment variable read by the
// application.
const EnvPrefix = "PUZZLEBOOK_"

// Defaults.
const (
	DefaultPuzzle   = "multiples"
	DefaultSolver   = "all"
	DefaultBound    = 1000
	DefaultTimeout  = time.Minute
	DefaultTheme    = "dark"
	DefaultLogLevel = "info"
)

// Themes lists the accepted --theme values.
var Themes = ui.ThemeNames()

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Puzzle is the catalog key of the selected puzzle.
	Puzzle string
	// Divisors and Bound are the puzzle params.
	Divisors []int64
	Bound    int64
	// Solver is a factory key or "all" to cross-check every solver.
	Solver string
	// Timeout is the maximum duration of a one-shot run.
	Timeout time.Duration

	Verbose bool
	Details bool
	Quiet   bool
	// OutputFile receives the rendered explanation when set.
	OutputFile string

	Interactive bool
	TUI         bool
	// Serve is the listen address of the HTTP API; empty disables it.
	Serve string
	// Completion is the shell to print a completion script for.
	Completion string

	NoColor    bool
	Theme      string
	LogLevel   string
	ConfigFile string

	// Limits forwarded to puzzle.Options.
	MaxTallyRows      int
	MaxPeriod         int64
	MaxIterativeBound int64
}

// Params returns the puzzle params described by the configuration.
func (c AppConfig) Params() puzzle.Params {
	return puzzle.Params{Divisors: slices.Clone(c.Divisors), Bound: c.Bound}
}

// ToPuzzleOptions converts the configured limits into puzzle.Options.
func (c AppConfig) ToPuzzleOptions() puzzle.Options {
	opts := puzzle.DefaultOptions()
	if c.MaxTallyRows > 0 {
		opts.MaxTallyRows = c.MaxTallyRows
	}
	if c.MaxPeriod > 0 {
		opts.MaxPeriod = c.MaxPeriod
	}
	if c.MaxIterativeBound > 0 {
		opts.MaxIterativeBound = c.MaxIterativeBound
	}
	return opts
}

// divisorList is a flag.Value accepting "3,5" or "3 5".
type divisorList struct {
	target *[]int64
}

func (d divisorList) String() string {
	if d.target == nil {
		return ""
	}
	return puzzle.Params{Divisors: *d.target}.DivisorString()
}

func (d divisorList) Set(s string) error {
	divs, err := puzzle.ParseDivisors(s)
	if err != nil {
		return err
	}
	*d.target = divs
	return nil
}

// DefineFlags registers every command-line flag on fs, binding them to c.
// Short and long spellings share a destination.
func DefineFlags(fs *flag.FlagSet, c *AppConfig, availableSolvers []string) {
	fs.StringVar(&c.Puzzle, "puzzle", DefaultPuzzle, "Puzzle to solve.")
	fs.StringVar(&c.Puzzle, "p", DefaultPuzzle, "Puzzle to solve (shorthand).")
	fs.Var(divisorList{&c.Divisors}, "divisors", "Divisors, separated by commas (e.g. 3,5).")
	fs.Int64Var(&c.Bound, "bound", DefaultBound, "Exclusive upper bound.")
	fs.Int64Var(&c.Bound, "b", DefaultBound, "Exclusive upper bound (shorthand).")
	fs.StringVar(&c.Solver, "solver", DefaultSolver, fmt.Sprintf("Solver to use: 'all' or one of [%s].", strings.Join(availableSolvers, ", ")))
	fs.StringVar(&c.Solver, "s", DefaultSolver, "Solver to use (shorthand).")
	fs.DurationVar(&c.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&c.Verbose, "v", false, "Show every derivation step.")
	fs.BoolVar(&c.Verbose, "verbose", false, "Show every derivation step.")
	fs.BoolVar(&c.Details, "d", false, "Show the running-tally table and memory statistics.")
	fs.BoolVar(&c.Details, "details", false, "Show the running-tally table and memory statistics.")
	fs.BoolVar(&c.Quiet, "q", false, "Print only the answer.")
	fs.BoolVar(&c.Quiet, "quiet", false, "Print only the answer.")
	fs.StringVar(&c.OutputFile, "o", "", "Write the explanation to this file.")
	fs.StringVar(&c.OutputFile, "output", "", "Write the explanation to this file.")
	fs.BoolVar(&c.Interactive, "i", false, "Start the interactive REPL.")
	fs.BoolVar(&c.Interactive, "interactive", false, "Start the interactive REPL.")
	fs.BoolVar(&c.TUI, "tui", false, "Start the terminal dashboard.")
	fs.StringVar(&c.Serve, "serve", "", "Serve the HTTP API on this address (e.g. :8080).")
	fs.StringVar(&c.Completion, "completion", "", "Print a completion script for bash, zsh, fish or powershell.")
	fs.BoolVar(&c.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&c.Theme, "theme", DefaultTheme, "Color theme: dark, light, orange or none.")
	fs.StringVar(&c.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn or error.")
	fs.StringVar(&c.ConfigFile, "config", "", "Path to a TOML config file.")
	fs.IntVar(&c.MaxTallyRows, "tally-rows", puzzle.DefaultMaxTallyRows, "Maximum rows in the running-tally table.")
	fs.Int64Var(&c.MaxPeriod, "max-period", puzzle.DefaultMaxPeriod, "Largest period walked by the periodic solver.")
	fs.Int64Var(&c.MaxIterativeBound, "max-iterative-bound", puzzle.DefaultMaxIterativeBound, "Largest bound accepted by the iterative solver.")
}

// ParseConfig parses the command-line arguments, applies the config file and
// environment overrides for flags that were not set, and validates the
// result. availableSolvers lists the factory keys accepted by --solver.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableSolvers []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{Divisors: []int64{3, 5}}
	DefineFlags(fs, &config, availableSolvers)

	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errorWriter, "Sums the natural numbers below a bound that are multiples of any divisor,\n")
		fmt.Fprintf(errorWriter, "cross-checking several solvers and explaining the derivation.\n\n")
		fmt.Fprintf(errorWriter, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errorWriter, "\nEnvironment variables use the %s prefix (e.g. %sBOUND=1000000).\n", EnvPrefix, EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if err := applyFileConfig(&config, fs); err != nil {
		return AppConfig{}, err
	}
	if err := applyEnvOverrides(&config, fs); err != nil {
		return AppConfig{}, err
	}

	if err := config.Validate(availableSolvers); err != nil {
		fmt.Fprintln(errorWriter, "Error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate(availableSolvers []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be strictly positive")
	}
	if c.Solver != DefaultSolver && !slices.Contains(availableSolvers, c.Solver) {
		hint := ""
		if s := puzzle.Suggest(c.Solver, availableSolvers); s != "" {
			hint = fmt.Sprintf(" (did you mean %q?)", s)
		}
		return apperrors.NewConfigError("unrecognized solver: %q%s", c.Solver, hint)
	}
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if !slices.Contains(Themes, c.Theme) {
		return apperrors.NewConfigError("unknown theme %q (choose from %s)", c.Theme, strings.Join(Themes, ", "))
	}
	modes := 0
	for _, on := range []bool{c.Interactive, c.TUI, c.Serve != ""} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("--interactive, --tui and --serve are mutually exclusive")
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose cannot be combined")
	}
	return nil
}
