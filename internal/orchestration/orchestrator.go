package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/puzzlebook/internal/errors"
	"github.com/agbru/puzzlebook/internal/progress"
	"github.com/agbru/puzzlebook/internal/puzzle"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of dropped updates when the
// UI is slow to consume them.
const ProgressBufferMultiplier = 5

const tracerName = "github.com/agbru/puzzlebook/internal/orchestration"

// NamedSolver pairs a solver with the factory key it was resolved from.
type NamedSolver struct {
	Key    string
	Solver puzzle.Solver
}

// ExecuteSolvers runs every solver concurrently on the same params and
// collects one SolveResult per solver, in input order.
//
// A failing solver does not cancel the others; its error is recorded in its
// result. Each run is traced as a "puzzle.solve" span.
func ExecuteSolvers(ctx context.Context, solvers []NamedSolver, p puzzle.Params, opts puzzle.Options, progressReporter ProgressReporter, out io.Writer) []SolveResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]SolveResult, len(solvers))
	progressChan := make(chan progress.ProgressUpdate, len(solvers)*ProgressBufferMultiplier)
	tracer := otel.Tracer(tracerName)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(solvers), out)

	for i, ns := range solvers {
		g.Go(func() error {
			spanCtx, span := tracer.Start(ctx, "puzzle.solve")
			defer span.End()
			span.SetAttributes(
				attribute.String("solver", ns.Key),
				attribute.String("divisors", p.DivisorString()),
				attribute.Int64("bound", p.Bound),
			)

			start := time.Now()
			answer, err := ns.Solver.Solve(spanCtx, progressChan, i, p, opts)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				err = apperrors.SolveError{Solver: ns.Solver.Name(), Cause: err}
			}
			results[i] = SolveResult{
				Key: ns.Key, Name: ns.Solver.Name(), Answer: answer, Duration: time.Since(start), Err: err,
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// Summary is the cross-check of a set of results.
type Summary struct {
	// Best is the fastest successful result, or nil.
	Best *SolveResult
	// Successes counts results without error.
	Successes int
	// FirstErr is the first error in result order, or nil.
	FirstErr error
	// Mismatch is set when two successful solvers disagree.
	Mismatch bool
}

// Summarize sorts results (successes first, then by duration) and
// cross-checks the successful answers.
func Summarize(results []SolveResult) Summary {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var s Summary
	for i := range results {
		if results[i].Err != nil {
			if s.FirstErr == nil {
				s.FirstErr = results[i].Err
			}
			continue
		}
		s.Successes++
		if s.Best == nil {
			s.Best = &results[i]
		} else if results[i].Answer.Cmp(s.Best.Answer) != 0 {
			s.Mismatch = true
		}
	}
	return s
}

// AnalyzeComparisonResults presents the results and derives the exit code.
//
// It displays the comparison table, fails when no solver succeeded, reports
// ExitErrorMismatch when successful solvers disagree and otherwise presents
// the fastest answer.
func AnalyzeComparisonResults(results []SolveResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	s := Summarize(results)
	presenter.PresentComparisonTable(results, out)

	if s.Successes == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No solver could compute the answer.\n")
		return errHandler.HandleError(s.FirstErr, 0, out)
	}
	if s.Mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The solvers disagree on the answer.\n")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*s.Best, opts, out)
	return apperrors.ExitSuccess
}
