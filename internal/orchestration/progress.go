package orchestration

import (
	"time"

	"github.com/agbru/puzzlebook/internal/format"
	"github.com/agbru/puzzlebook/internal/progress"
)

// ProgressAggregator folds the per-solver updates of one run into a single
// completion ratio and ETA. The CLI spinner and the dashboard both read it.
type ProgressAggregator struct {
	state   *format.ProgressWithETA
	solvers int
}

// AggregatedProgress is the state after an update. Value is the ratio
// reported by SolverIndex itself; AverageProgress covers every solver.
type AggregatedProgress struct {
	SolverIndex     int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// NewProgressAggregator returns nil when there is nothing to track.
func NewProgressAggregator(solvers int) *ProgressAggregator {
	if solvers <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewProgressWithETA(solvers), solvers: solvers}
}

// Update records u and returns the new aggregate.
func (a *ProgressAggregator) Update(u progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(u.SolverIndex, u.Value)
	return AggregatedProgress{SolverIndex: u.SolverIndex, Value: u.Value, AverageProgress: avg, ETA: eta}
}

// Current returns the aggregate without recording anything, for redraws
// between updates. SolverIndex is -1.
func (a *ProgressAggregator) Current() AggregatedProgress {
	return AggregatedProgress{SolverIndex: -1, AverageProgress: a.state.CalculateAverage(), ETA: a.state.GetETA()}
}

func (a *ProgressAggregator) NumSolvers() int { return a.solvers }

// IsMultiSolver reports whether the run compares solvers.
func (a *ProgressAggregator) IsMultiSolver() bool { return a.solvers > 1 }

// DrainChannel discards updates until progressChan is closed, so senders
// never block when nobody displays progress.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
