package puzzle

import (
	"context"
	"errors"
	"math/big"

	apperrors "github.com/agbru/puzzlebook/internal/errors"
	"github.com/agbru/puzzlebook/internal/progress"
)

// PeriodicSolver sums one period of length P = product(divisors) and scales
// it to the bound with the closed form. Its cost is linear in P and
// independent of the bound.
type PeriodicSolver struct{}

// Name implements Solver.
func (PeriodicSolver) Name() string { return "Periodic (closed form)" }

// Solve implements Solver.
func (PeriodicSolver) Solve(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, p Params, opts Options) (*big.Int, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	period, err := p.Period()
	if errors.Is(err, ErrPeriodOverflow) {
		return nil, apperrors.NewValidationError("divisors", "%v", err)
	}
	if period > opts.MaxPeriod {
		return nil, apperrors.NewValidationError("divisors", "period %d exceeds the periodic solver limit of %d", period, opts.MaxPeriod)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := progress.ChannelCallback(progressChan, index)
	report(0)
	t := decompose(p, period)
	report(1)
	return t.answer, nil
}
