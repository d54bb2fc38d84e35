package puzzle

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestSolvers_AgreeWithBruteForce cross-checks every solver, and the
// explanation, against a plain loop on random small inputs.
func TestSolvers_AgreeWithBruteForce(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	build := func(a, b, c int64, k int, bound int64) Params {
		return Params{Divisors: []int64{a, b, c}[:k], Bound: bound}
	}
	gens := []gopter.Gen{
		gen.Int64Range(1, 30),
		gen.Int64Range(1, 30),
		gen.Int64Range(1, 30),
		gen.IntRange(1, 3),
		gen.Int64Range(0, 5000),
	}

	for _, solver := range allSolvers() {
		properties.Property(solver.Name()+" matches brute force", prop.ForAll(
			func(a, b, c int64, k int, bound int64) bool {
				p := build(a, b, c, k, bound)
				got, err := solver.Solve(context.Background(), nil, 0, p, DefaultOptions())
				if err != nil {
					t.Logf("Solve(%+v): %v", p, err)
					return false
				}
				return got.Cmp(bruteForce(p)) == 0
			},
			gens...,
		))
	}

	properties.Property("explanation answer matches its tally", prop.ForAll(
		func(a, b, c int64, k int, bound int64) bool {
			p := build(a, b, c, k, bound)
			e, err := Multiples{}.Explain(context.Background(), p, Options{MaxTallyRows: 10_000})
			if err != nil {
				return false
			}
			if len(e.Tally) == 0 {
				return e.Answer.Sign() == 0
			}
			return e.Tally[len(e.Tally)-1].Tally.Cmp(e.Answer) == 0
		},
		gens...,
	))

	properties.TestingRun(t)
}

// TestInclusion_MatchesPeriodicOnWideBounds compares the two closed forms on
// bounds far beyond what a brute-force loop could check.
func TestInclusion_MatchesPeriodicOnWideBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("periodic equals inclusion-exclusion", prop.ForAll(
		func(a, b int64, bound int64) bool {
			p := Params{Divisors: []int64{a, b}, Bound: bound}
			x, err1 := PeriodicSolver{}.Solve(context.Background(), nil, 0, p, DefaultOptions())
			y, err2 := InclusionSolver{}.Solve(context.Background(), nil, 0, p, DefaultOptions())
			return err1 == nil && err2 == nil && x.Cmp(y) == 0
		},
		gen.Int64Range(1, 999),
		gen.Int64Range(1, 999),
		gen.Int64Range(0, 1<<60),
	))

	properties.TestingRun(t)
}
