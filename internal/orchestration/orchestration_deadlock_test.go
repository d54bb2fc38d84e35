package orchestration

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/agbru/puzzlebook/internal/progress"
	"github.com/agbru/puzzlebook/internal/puzzle"
)

// scriptedSolver simulates various solver behaviors for deadlock testing.
type scriptedSolver struct {
	name     string
	behavior string // "instant", "slow", "error", "progress_flood"
	delay    time.Duration
}

func (m *scriptedSolver) Solve(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, _ puzzle.Params, _ puzzle.Options) (*big.Int, error) {
	switch m.behavior {
	case "slow":
		for i := 0; i < 100; i++ {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case progressChan <- progress.ProgressUpdate{SolverIndex: index, Value: float64(i) / 100.0}:
			default: // non-blocking
			}
			time.Sleep(m.delay)
		}
	case "error":
		return nil, fmt.Errorf("simulated error")
	case "progress_flood":
		for i := 0; i < 10000; i++ {
			select {
			case progressChan <- progress.ProgressUpdate{SolverIndex: index, Value: float64(i) / 10000.0}:
			default:
			}
		}
	}
	return big.NewInt(1), nil
}

func (m *scriptedSolver) Name() string { return m.name }

// drainingReporter just drains the channel.
type drainingReporter struct{}

func (drainingReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	} // drain until closed
}

func named(solvers ...*scriptedSolver) []NamedSolver {
	out := make([]NamedSolver, len(solvers))
	for i, s := range solvers {
		out[i] = NamedSolver{Key: s.name, Solver: s}
	}
	return out
}

// TestOrchestrationNoDeadlock_MixedBehaviors verifies that ExecuteSolvers
// completes without deadlocking under various solver behavior combinations.
func TestOrchestrationNoDeadlock_MixedBehaviors(t *testing.T) {
	testCases := []struct {
		name    string
		solvers []NamedSolver
	}{
		{
			name: "all_instant",
			solvers: named(
				&scriptedSolver{name: "s1", behavior: "instant"},
				&scriptedSolver{name: "s2", behavior: "instant"},
				&scriptedSolver{name: "s3", behavior: "instant"},
			),
		},
		{
			name: "mixed_instant_and_slow",
			solvers: named(
				&scriptedSolver{name: "fast", behavior: "instant"},
				&scriptedSolver{name: "slow", behavior: "slow", delay: time.Millisecond},
			),
		},
		{
			name: "mixed_with_errors",
			solvers: named(
				&scriptedSolver{name: "ok", behavior: "instant"},
				&scriptedSolver{name: "err", behavior: "error"},
			),
		},
		{
			name: "progress_flood",
			solvers: named(
				&scriptedSolver{name: "flood1", behavior: "progress_flood"},
				&scriptedSolver{name: "flood2", behavior: "progress_flood"},
			),
		},
		{
			name:    "single_solver",
			solvers: named(&scriptedSolver{name: "solo", behavior: "instant"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			p := puzzle.Params{Divisors: []int64{3, 5}, Bound: 100}
			done := make(chan struct{})
			go func() {
				defer close(done)
				ExecuteSolvers(ctx, tc.solvers, p, puzzle.Options{}, drainingReporter{}, io.Discard)
			}()

			select {
			case <-done:
			case <-time.After(10 * time.Second):
				t.Fatal("DEADLOCK: ExecuteSolvers did not complete within timeout")
			}
		})
	}
}

// TestOrchestrationNoDeadlock_ContextCancellation verifies that cancelling
// the context during execution does not cause a deadlock.
func TestOrchestrationNoDeadlock_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	solvers := named(
		&scriptedSolver{name: "slow1", behavior: "slow", delay: 100 * time.Millisecond},
		&scriptedSolver{name: "slow2", behavior: "slow", delay: 100 * time.Millisecond},
	)

	var results []SolveResult
	done := make(chan struct{})
	go func() {
		defer close(done)
		results = ExecuteSolvers(ctx, solvers, puzzle.Params{Divisors: []int64{3}, Bound: 10}, puzzle.Options{}, drainingReporter{}, io.Discard)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("DEADLOCK after context cancellation")
	}
	for _, r := range results {
		if r.Err == nil {
			t.Errorf("%s: expected a cancellation error", r.Name)
		}
	}
}
