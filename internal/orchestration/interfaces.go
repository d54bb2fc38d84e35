package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/agbru/puzzlebook/internal/progress"
	"github.com/agbru/puzzlebook/internal/puzzle"
)

// SolveResult encapsulates the outcome of a single solver run.
// It is the shared domain type between orchestration and presentation layers.
type SolveResult struct {
	// Key is the factory name of the solver (e.g., "periodic").
	Key string
	// Name is the display name of the solver.
	Name string
	// Answer is the computed sum. It is nil if an error occurred.
	Answer *big.Int
	// Duration is the time taken by the solver.
	Duration time.Duration
	// Err contains any error that occurred during the run.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Params  puzzle.Params
	Verbose bool
	Details bool
}

// ProgressReporter defines the interface for displaying solver progress.
// Implementations handle the visual representation (spinners, progress
// bars) while the orchestration layer coordinates the solvers.
type ProgressReporter interface {
	// DisplayProgress consumes progressChan until it is closed and then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numSolvers int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numSolvers int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numSolvers int, out io.Writer) {
	f(wg, progressChan, numSolvers, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode, by the HTTP server and in tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting solver results.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []SolveResult, out io.Writer)

	// PresentResult displays the retained answer.
	PresentResult(result SolveResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles solver errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
