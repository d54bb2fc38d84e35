package tui

import (
	"time"

	"github.com/agbru/puzzlebook/internal/metrics"
	"github.com/agbru/puzzlebook/internal/orchestration"
	"github.com/agbru/puzzlebook/internal/puzzle"
)

// ExplanationMsg carries the result of an asynchronous render.
type ExplanationMsg struct {
	Generation  uint64
	Explanation *puzzle.Explanation
	Err         error
	Duration    time.Duration
}

// ProgressMsg is an aggregated solver progress update.
type ProgressMsg struct {
	Generation      uint64
	SolverIndex     int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct {
	Generation uint64
}

// ComparisonResultsMsg carries every solver result of a comparison run.
type ComparisonResultsMsg struct {
	Generation uint64
	Results    []orchestration.SolveResult
}

// ComparisonErrorMsg reports that no solver succeeded.
type ComparisonErrorMsg struct {
	Generation uint64
	Err        error
	Duration   time.Duration
}

// ComparisonCompleteMsg ends a comparison run with its exit code.
type ComparisonCompleteMsg struct {
	Generation uint64
	ExitCode   int
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg is a runtime memory sample.
type MemStatsMsg metrics.MemorySnapshot

// SysStatsMsg is a host-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// ContextCancelledMsg is sent when the session context ends.
type ContextCancelledMsg struct {
	Err error
}
