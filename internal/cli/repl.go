// Package cli provides the terminal front end: progress display, result
// presentation, explanation rendering, shell completion and the interactive
// REPL.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/puzzlebook/internal/orchestration"
	"github.com/agbru/puzzlebook/internal/puzzle"
	"github.com/agbru/puzzlebook/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Catalog lists the puzzles that can be selected.
	Catalog *puzzle.Catalog
	// Factory provides the solvers used by "compare".
	Factory puzzle.SolverFactory
	// Puzzle is the key of the initially selected puzzle. Empty selects
	// the first catalog entry.
	Puzzle string
	// Params are the initial params. Zero divisors selects the puzzle defaults.
	Params puzzle.Params
	// Solver is "all" or a single solver name.
	Solver string
	// Timeout bounds each render and each comparison.
	Timeout time.Duration
	// Options are forwarded to the puzzle and solvers.
	Options puzzle.Options
	// Verbose shows every derivation step.
	Verbose bool
	// Details shows the running tally.
	Details bool
}

// paneKey identifies a rendered explanation.
type paneKey struct {
	puzzle string
	params string
}

// REPL is an interactive puzzle session. Rendered explanations are kept per
// puzzle and params so switching back and forth does not recompute them.
type REPL struct {
	config  REPLConfig
	current int
	params  puzzle.Params
	solver  string
	panes   map[paneKey]*puzzle.Explanation
	hits    int
	in      io.Reader
	out     io.Writer
}

// replCommands lists the command names offered as suggestions.
var replCommands = []string{"list", "select", "divisors", "bound", "solver", "compare", "show", "details", "verbose", "status", "help", "exit"}

// NewREPL creates a new REPL instance.
func NewREPL(config REPLConfig) *REPL {
	if config.Catalog == nil {
		config.Catalog = puzzle.DefaultCatalog()
	}
	if config.Factory == nil {
		config.Factory = puzzle.NewDefaultFactory()
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	if config.Solver == "" {
		config.Solver = orchestration.AllSolvers
	}

	current := 0
	if config.Puzzle != "" {
		if idx := config.Catalog.IndexOf(config.Puzzle); idx >= 0 {
			current = idx
		}
	}

	r := &REPL{
		config:  config,
		current: current,
		params:  config.Params.Clone(),
		solver:  config.Solver,
		panes:   make(map[paneKey]*puzzle.Explanation),
		in:      os.Stdin,
		out:     os.Stdout,
	}
	if len(r.params.Divisors) == 0 {
		if p, err := config.Catalog.At(current); err == nil {
			r.params = p.Defaults()
		}
	}
	return r
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start runs the session until "exit", EOF or ctx cancellation.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	r.render(ctx)

	reader := bufio.NewReader(r.in)

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		fmt.Fprint(r.out, ui.ColorGreen()+"puzzle> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && strings.TrimSpace(input) != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(ctx, input) {
			return
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s🧩 Puzzle Book - Interactive Mode%s                    %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	y, rs := ui.ColorYellow(), ui.ColorReset()
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), rs)
	fmt.Fprintf(r.out, "  %slist%s              - List the puzzles\n", y, rs)
	fmt.Fprintf(r.out, "  %sselect <n|key>%s    - Select a puzzle by number or key\n", y, rs)
	fmt.Fprintf(r.out, "  %sdivisors <d...>%s   - Set the divisors (e.g. divisors 3 5)\n", y, rs)
	fmt.Fprintf(r.out, "  %sbound <n>%s         - Set the exclusive upper bound\n", y, rs)
	fmt.Fprintf(r.out, "  %ssolver <name>%s     - Solver for compare (all, %s)\n", y, rs, strings.Join(r.config.Factory.List(), ", "))
	fmt.Fprintf(r.out, "  %scompare%s           - Run the solvers and cross-check their answers\n", y, rs)
	fmt.Fprintf(r.out, "  %sshow%s              - Show the current puzzle again\n", y, rs)
	fmt.Fprintf(r.out, "  %sdetails%s           - Toggle the running-tally table\n", y, rs)
	fmt.Fprintf(r.out, "  %sverbose%s           - Toggle the full derivation\n", y, rs)
	fmt.Fprintf(r.out, "  %sstatus%s            - Display the current settings\n", y, rs)
	fmt.Fprintf(r.out, "  %shelp%s              - Display this help\n", y, rs)
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s       - Leave interactive mode\n", y, rs, y, rs)
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "list", "ls":
		r.cmdList()
	case "select", "sel":
		r.cmdSelect(ctx, args)
	case "divisors", "div":
		r.cmdDivisors(ctx, args)
	case "bound", "b":
		r.cmdBound(ctx, args)
	case "solver", "s":
		r.cmdSolver(args)
	case "compare", "cmp":
		r.cmdCompare(ctx)
	case "show":
		r.render(ctx)
	case "details", "d":
		r.config.Details = !r.config.Details
		fmt.Fprintf(r.out, "Running tally: %s%s%s\n", ui.ColorGreen(), onOff(r.config.Details), ui.ColorReset())
	case "verbose", "v":
		r.config.Verbose = !r.config.Verbose
		fmt.Fprintf(r.out, "Full derivation: %s%s%s\n", ui.ColorGreen(), onOff(r.config.Verbose), ui.ColorReset())
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		// A bare number is a shortcut for "bound <n>".
		if _, err := puzzle.ParseBound(cmd); err == nil {
			r.cmdBound(ctx, []string{cmd})
			return true
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s", ui.ColorRed(), cmd, ui.ColorReset())
		if s := puzzle.Suggest(cmd, replCommands); s != "" {
			fmt.Fprintf(r.out, " (did you mean %s%s%s?)", ui.ColorYellow(), s, ui.ColorReset())
		}
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}

	return true
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (r *REPL) printError(err error) {
	fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
}

// currentPuzzle returns the selected catalog entry.
func (r *REPL) currentPuzzle() puzzle.Puzzle {
	p, err := r.config.Catalog.At(r.current)
	if err != nil {
		// current is only ever set from a valid index
		panic(err)
	}
	return p
}

// explain returns the cached explanation for the current selection,
// computing and caching it on a miss.
func (r *REPL) explain(ctx context.Context) (*puzzle.Explanation, bool, error) {
	p := r.currentPuzzle()
	key := paneKey{puzzle: p.Key(), params: r.params.CacheKey()}
	if e, ok := r.panes[key]; ok {
		r.hits++
		return e, true, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()
	e, err := p.Explain(ctx, r.params, r.config.Options)
	if err != nil {
		return nil, false, err
	}
	r.panes[key] = e
	return e, false, nil
}

// render displays the current puzzle pane.
func (r *REPL) render(ctx context.Context) {
	e, _, err := r.explain(ctx)
	if err != nil {
		r.printError(err)
		return
	}
	DisplayExplanation(r.out, r.current+1, e, OutputConfig{Verbose: r.config.Verbose, Details: r.config.Details})
	fmt.Fprintln(r.out)
}

// cmdList handles the "list" command.
func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sPuzzles:%s\n", ui.ColorBold(), ui.ColorReset())
	for i, p := range r.config.Catalog.List() {
		marker := "  "
		params := p.Defaults()
		if i == r.current {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
			params = r.params
		}
		fmt.Fprintf(r.out, "%s%s%2d%s  %-12s %s\n", marker, ui.ColorYellow(), i+1, ui.ColorReset(), p.Key(), p.Title(params))
	}
	fmt.Fprintln(r.out)
}

// cmdSelect handles the "select" command.
func (r *REPL) cmdSelect(ctx context.Context, args []string) {
	if len(args) == 0 {
		r.cmdList()
		return
	}

	var (
		p   puzzle.Puzzle
		err error
	)
	if n, convErr := strconv.Atoi(args[0]); convErr == nil {
		p, err = r.config.Catalog.At(n - 1)
	} else {
		p, err = r.config.Catalog.Get(strings.ToLower(args[0]))
	}
	if err != nil {
		r.printError(err)
		return
	}

	idx := r.config.Catalog.IndexOf(p.Key())
	if idx != r.current {
		r.current = idx
		r.params = p.Defaults()
	}
	r.render(ctx)
}

// cmdDivisors handles the "divisors" command.
func (r *REPL) cmdDivisors(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: divisors <d...>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	divisors, err := puzzle.ParseDivisors(strings.Join(args, " "))
	if err != nil {
		r.printError(err)
		return
	}
	next := puzzle.Params{Divisors: divisors, Bound: r.params.Bound}
	if err := next.Validate(); err != nil {
		r.printError(err)
		return
	}
	r.params = next
	r.render(ctx)
}

// cmdBound handles the "bound" command.
func (r *REPL) cmdBound(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: bound <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	bound, err := puzzle.ParseBound(args[0])
	if err != nil {
		r.printError(err)
		return
	}
	next := r.params.Clone()
	next.Bound = bound
	if err := next.Validate(); err != nil {
		r.printError(err)
		return
	}
	r.params = next
	r.render(ctx)
}

// cmdSolver handles the "solver" command.
func (r *REPL) cmdSolver(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: solver <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available solvers: all, %s\n", strings.Join(r.config.Factory.List(), ", "))
		return
	}

	name := strings.ToLower(args[0])
	if name != orchestration.AllSolvers {
		if _, err := r.config.Factory.Get(name); err != nil {
			r.printError(err)
			return
		}
	}
	r.solver = name
	fmt.Fprintf(r.out, "Solver changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

// cmdCompare runs the selected solvers concurrently on the current params
// and prints the comparison table.
func (r *REPL) cmdCompare(ctx context.Context) {
	solvers := orchestration.GetSolversToRun(r.solver, r.config.Factory)
	if len(solvers) == 0 {
		r.printError(fmt.Errorf("no solver matches %q", r.solver))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "\n%sComparison for divisors %s below %d:%s\n",
		ui.ColorBold(), r.params.DivisorString(), r.params.Bound, ui.ColorReset())
	results := orchestration.ExecuteSolvers(ctx, solvers, r.params, r.config.Options, CLIProgressReporter{}, r.out)
	presenter := CLIResultPresenter{}
	opts := orchestration.PresentationOptions{Params: r.params, Verbose: r.config.Verbose, Details: r.config.Details}
	orchestration.AnalyzeComparisonResults(results, opts, presenter, presenter, r.out)
	fmt.Fprintln(r.out)
}

// cmdStatus displays the current session settings.
func (r *REPL) cmdStatus() {
	p := r.currentPuzzle()
	c, rs := ui.ColorCyan(), ui.ColorReset()
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), rs)
	fmt.Fprintf(r.out, "  Puzzle:        %s%d (%s)%s\n", c, r.current+1, p.Key(), rs)
	fmt.Fprintf(r.out, "  Divisors:      %s%s%s\n", c, r.params.DivisorString(), rs)
	fmt.Fprintf(r.out, "  Bound:         %s%d%s\n", c, r.params.Bound, rs)
	fmt.Fprintf(r.out, "  Solver:        %s%s%s\n", c, r.solver, rs)
	fmt.Fprintf(r.out, "  Timeout:       %s%s%s\n", c, r.config.Timeout, rs)
	fmt.Fprintf(r.out, "  Running tally: %s%s%s\n", c, onOff(r.config.Details), rs)
	derivation := "summary"
	if r.config.Verbose {
		derivation = "full"
	}
	fmt.Fprintf(r.out, "  Derivation:    %s%s%s\n", c, derivation, rs)
	fmt.Fprintf(r.out, "  Cached panes:  %s%d%s (%d hits)\n", c, len(r.panes), rs, r.hits)
	fmt.Fprintln(r.out)
}
