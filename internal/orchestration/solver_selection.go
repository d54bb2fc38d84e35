package orchestration

import (
	"github.com/agbru/puzzlebook/internal/puzzle"
)

// AllSolvers is the solver selection that runs every registered solver.
const AllSolvers = "all"

// GetSolversToRun resolves a solver selection against the factory. "all"
// returns every registered solver in sorted key order; any other name
// returns that solver alone, or nil when it is unknown.
func GetSolversToRun(selection string, factory puzzle.SolverFactory) []NamedSolver {
	if selection == AllSolvers {
		keys := factory.List()
		solvers := make([]NamedSolver, 0, len(keys))
		for _, k := range keys {
			if s, err := factory.Get(k); err == nil {
				solvers = append(solvers, NamedSolver{Key: k, Solver: s})
			}
		}
		return solvers
	}
	if s, err := factory.Get(selection); err == nil {
		return []NamedSolver{{Key: selection, Solver: s}}
	}
	return nil
}
