package puzzle

import (
	"context"
	"math/big"

	apperrors "github.com/agbru/puzzlebook/internal/errors"
	"github.com/agbru/puzzlebook/internal/progress"
	"github.com/agbru/puzzlebook/internal/seq"
)

// IterativeSolver walks every number below the bound, filtering and summing
// it chunk by chunk. It is the direct reading of the puzzle and the
// reference the other solvers are checked against.
type IterativeSolver struct{}

// Name implements Solver.
func (IterativeSolver) Name() string { return "Iterative (filter + sum)" }

// Solve implements Solver.
func (IterativeSolver) Solve(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, p Params, opts Options) (*big.Int, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	if p.Bound > opts.MaxIterativeBound {
		return nil, apperrors.NewValidationError("bound", "%d exceeds the iterative solver limit of %d", p.Bound, opts.MaxIterativeBound)
	}

	report := progress.ChannelCallback(progressChan, index)
	total := new(big.Int)
	last := p.Last()
	for lo := int64(1); lo <= last; lo += opts.ChunkSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hi := min(lo+opts.ChunkSize, p.Bound)
		total.Add(total, big.NewInt(seq.Sum(seq.Filter(seq.RangeFrom(lo, hi), p.Matches))))
		report(float64(hi-1) / float64(last))
	}
	report(1)
	return total, nil
}
