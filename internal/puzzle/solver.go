package puzzle

import (
	"context"
	"math/big"

	"github.com/agbru/puzzlebook/internal/progress"
)

//go:generate mockgen -destination=mocks/mock_solver.go -package=mocks github.com/agbru/puzzlebook/internal/puzzle Solver

// Solver computes the answer to the multiples puzzle for a set of params.
// Different solvers must agree on every input they accept.
type Solver interface {
	// Name is the human readable name shown in comparison tables.
	Name() string
	// Solve returns the sum of the multiples in [1, p.Bound). Progress
	// updates tagged with index are sent on progressChan without blocking;
	// a nil channel disables reporting.
	Solve(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, p Params, opts Options) (*big.Int, error)
}
