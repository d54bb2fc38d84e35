package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/puzzlebook/internal/config"
	"github.com/agbru/puzzlebook/internal/format"
	"github.com/agbru/puzzlebook/internal/orchestration"
	"github.com/agbru/puzzlebook/internal/ui"
)

// PrintExecutionConfig displays the puzzle parameters, timeout, environment
// and solver limits.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	p := cfg.Params()
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Summing multiples of %s%s%s below %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), p.DivisorString(), ui.ColorReset(),
		ui.ColorMagenta(), format.FormatNumberString(fmt.Sprint(p.Bound)), ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	opts := cfg.ToPuzzleOptions()
	fmt.Fprintf(out, "Solver limits: period=%s%d%s, iterative bound=%s%d%s.\n",
		ui.ColorCyan(), opts.MaxPeriod, ui.ColorReset(), ui.ColorCyan(), opts.MaxIterativeBound, ui.ColorReset())
}

// PrintExecutionMode displays whether a single solver runs or all of them
// are compared.
func PrintExecutionMode(solvers []orchestration.NamedSolver, out io.Writer) {
	var modeDesc string
	switch len(solvers) {
	case 0:
		modeDesc = "No solver selected"
	case 1:
		modeDesc = fmt.Sprintf("Single run with the %s%s%s solver",
			ui.ColorGreen(), solvers[0].Solver.Name(), ui.ColorReset())
	default:
		modeDesc = fmt.Sprintf("Parallel comparison of %d solvers", len(solvers))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
