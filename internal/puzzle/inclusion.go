package puzzle

import (
	"context"
	"math/big"

	"github.com/agbru/puzzlebook/internal/progress"
)

// InclusionSolver applies inclusion-exclusion over the divisor subsets. Its
// cost depends only on the number of divisors, so it handles any bound and
// any period.
type InclusionSolver struct{}

// Name implements Solver.
func (InclusionSolver) Name() string { return "Inclusion-Exclusion" }

// Solve implements Solver.
func (InclusionSolver) Solve(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, p Params, _ Options) (*big.Int, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	total, _, err := inclusionExclusion(ctx, p, progress.ChannelCallback(progressChan, index))
	if err != nil {
		return nil, err
	}
	return total, nil
}
