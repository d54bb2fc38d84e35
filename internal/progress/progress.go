// Package progress defines the progress messages exchanged between solvers
// and the presentation layers (CLI spinner, TUI dashboard).
package progress

// ProgressUpdate reports the completion ratio of one solver.
type ProgressUpdate struct {
	// SolverIndex identifies the solver within the current run.
	SolverIndex int
	// Value is the completion ratio, from 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives completion ratios from a running solver.
type ProgressCallback func(value float64)

// ChannelCallback returns a ProgressCallback that forwards values to ch,
// tagged with index. A nil channel yields a no-op callback. Updates are
// dropped rather than blocking when the channel is full.
func ChannelCallback(ch chan<- ProgressUpdate, index int) ProgressCallback {
	if ch == nil {
		return func(float64) {}
	}
	return func(value float64) {
		select {
		case ch <- ProgressUpdate{SolverIndex: index, Value: value}:
		default:
		}
	}
}
