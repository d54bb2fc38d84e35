package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/puzzlebook/internal/format"
	"github.com/agbru/puzzlebook/internal/orchestration"
	"github.com/agbru/puzzlebook/internal/progress"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
	// TallyPreviewRows is the number of running-tally rows shown at each end
	// of the table before the middle is elided.
	TallyPreviewRows = 10
)

// Spinner abstracts a terminal spinner so DisplayProgress can be tested
// without a real terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Same interval as ProgressRefreshRate so frames and bar updates line up.
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress renders a spinner with an aggregated progress bar and ETA
// until progressChan is closed. It always calls wg.Done before returning.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numSolvers int, out io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numSolvers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	label := "Solving"
	if agg.IsMultiSolver() {
		label = fmt.Sprintf("Solving with %d solvers", agg.NumSolvers())
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(progressSuffix(label, 0, 0))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				fmt.Fprintf(out, "%s %s\n", label, format.FormatProgressBarWithETA(1, 0, ProgressBarWidth))
				return
			}
			agg.Update(update)
		case <-ticker.C:
			cur := agg.Current()
			s.UpdateSuffix(progressSuffix(label, cur.AverageProgress, cur.ETA))
		}
	}
}

func progressSuffix(label string, avg float64, eta time.Duration) string {
	return " " + label + " " + format.FormatProgressBarWithETA(avg, eta, ProgressBarWidth)
}
