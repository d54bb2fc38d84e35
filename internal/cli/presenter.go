package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/puzzlebook/internal/errors"
	"github.com/agbru/puzzlebook/internal/format"
	"github.com/agbru/puzzlebook/internal/metrics"
	"github.com/agbru/puzzlebook/internal/orchestration"
	"github.com/agbru/puzzlebook/internal/progress"
	"github.com/agbru/puzzlebook/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for running solvers.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numSolvers int, out io.Writer) {
	DisplayProgress(wg, progressChan, numSolvers, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output for solver results.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable displays solver names, durations and status in a
// table. Padding is computed on the plain text so ANSI codes do not skew it.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.SolveResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	maxNameLen := len("Solver")
	maxDurationLen := len("Duration")
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxDurationLen = max(maxDurationLen, len(displayDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%sSolver%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Solver")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration := displayDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the retained answer.
func (CLIResultPresenter) PresentResult(result orchestration.SolveResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, opts, out)
}

// FormatDuration formats a duration for display.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError handles solver errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleSolveError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider feeds the active theme's colors to apperrors.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// DisplayResult prints the answer of a single solver run.
func DisplayResult(result orchestration.SolveResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\n%sAnswer%s for divisors %s below %s: %s%s%s\n",
		ui.ColorBold(), ui.ColorReset(),
		opts.Params.DivisorString(), format.FormatNumberString(fmt.Sprint(opts.Params.Bound)),
		ui.ColorGreen(), format.FormatNumberString(result.Answer.String()), ui.ColorReset())
	if opts.Verbose {
		fmt.Fprintf(out, "Raw value: %s (%d digits)\n", result.Answer.String(), len(result.Answer.String()))
	}
	if opts.Details {
		fmt.Fprintf(out, "Solved by %s%s%s in %s%s%s.\n",
			ui.ColorBlue(), result.Name, ui.ColorReset(),
			ui.ColorYellow(), displayDuration(result.Duration), ui.ColorReset())
	}
}

// DisplayMemoryStats reports the heap at the end of a run and the garbage
// collection that happened since before was sampled.
func DisplayMemoryStats(before, after metrics.MemorySnapshot, out io.Writer) {
	cycles, pause := after.GCSince(before)
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(after.HeapAlloc))
	fmt.Fprintf(out, "  Heap reserved:   %s\n", format.FormatBytes(after.HeapSys))
	fmt.Fprintf(out, "  Heap objects:    %d\n", after.HeapObjects)
	fmt.Fprintf(out, "  GC during run:   %d cycles, %s paused\n", cycles, format.FormatExecutionDuration(pause))
}
