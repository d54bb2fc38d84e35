package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/puzzlebook/internal/cli"
	apperrors "github.com/agbru/puzzlebook/internal/errors"
	"github.com/agbru/puzzlebook/internal/metrics"
	"github.com/agbru/puzzlebook/internal/orchestration"
)

// runSolve orchestrates a one-shot run: every selected solver computes the
// answer, the results are cross-checked and the explanation is printed.
func (a *Application) runSolve(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	p, err := a.Catalog.Get(a.Config.Puzzle)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	params := a.Config.Params()
	opts := a.Config.ToPuzzleOptions()
	solvers := orchestration.GetSolversToRun(a.Config.Solver, a.Factory)

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(solvers, out)
	}

	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	memBefore := metrics.ReadMemory()
	results := orchestration.ExecuteSolvers(ctx, solvers, params, opts, progressReporter, progressOut)

	if code := a.analyzeResults(results, out); code != apperrors.ExitSuccess {
		return code
	}
	best := orchestration.Summarize(results).Best

	e, err := p.Explain(ctx, params, opts)
	if err != nil {
		return apperrors.HandleSolveError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	if e.Answer.Cmp(best.Answer) != 0 {
		fmt.Fprintf(a.ErrWriter, "Error: explanation answer %s disagrees with %s (%s)\n",
			e.Answer, best.Name, best.Answer)
		return apperrors.ExitErrorMismatch
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
	}
	number := a.Catalog.IndexOf(p.Key()) + 1
	if err := cli.DisplayResultWithConfig(out, number, e, best.Name, best.Duration, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving explanation: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	if a.Config.Details && !a.Config.Quiet {
		cli.DisplayMemoryStats(memBefore, metrics.ReadMemory(), out)
	}
	return apperrors.ExitSuccess
}

// analyzeResults cross-checks the solver results. Quiet mode reports
// failures on ErrWriter only, leaving out for the bare answer.
func (a *Application) analyzeResults(results []orchestration.SolveResult, out io.Writer) int {
	if !a.Config.Quiet {
		presOpts := orchestration.PresentationOptions{
			Params:  a.Config.Params(),
			Verbose: a.Config.Verbose,
			Details: a.Config.Details,
		}
		return orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)
	}

	s := orchestration.Summarize(results)
	switch {
	case s.Successes == 0:
		return apperrors.HandleSolveError(s.FirstErr, 0, a.ErrWriter, nil)
	case s.Mismatch:
		fmt.Fprintln(a.ErrWriter, "Error: the solvers disagree on the answer.")
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}
