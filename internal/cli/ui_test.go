package cli

import (
	"bytes"
	"io"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/puzzlebook/internal/orchestration"
	"github.com/agbru/puzzlebook/internal/progress"
	"github.com/agbru/puzzlebook/internal/puzzle"
	"github.com/agbru/puzzlebook/internal/ui"
)

// MockSpinner records the calls made by DisplayProgress.
type MockSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffix = suffix
}

func TestDisplayResult(t *testing.T) {
	t.Parallel()
	result := orchestration.SolveResult{
		Name:     "Periodic (closed form)",
		Answer:   big.NewInt(233168),
		Duration: time.Millisecond,
	}
	params := puzzle.Params{Divisors: []int64{3, 5}, Bound: 1000}

	tests := []struct {
		name        string
		verbose     bool
		details     bool
		contains    []string
		notContains []string
	}{
		{
			name:        "Plain",
			contains:    []string{"Answer", "3,5", "1,000", "233,168"},
			notContains: []string{"Raw value", "Solved by"},
		},
		{
			name:     "Verbose",
			verbose:  true,
			contains: []string{"Raw value: 233168 (6 digits)"},
		},
		{
			name:     "Details",
			details:  true,
			contains: []string{"Solved by Periodic (closed form) in 1.00ms"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			opts := orchestration.PresentationOptions{Params: params, Verbose: tt.verbose, Details: tt.details}
			DisplayResult(result, opts, &buf)
			output := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(output, s) {
					t.Errorf("Expected output to contain %q, but got:\n%s", s, output)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(output, s) {
					t.Errorf("Output should not contain %q, got:\n%s", s, output)
				}
			}
		})
	}
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	// Just verify these methods don't panic
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestColors(t *testing.T) {
	t.Parallel()
	// The test binary runs with colors disabled.
	for name, got := range map[string]string{
		"reset": ui.ColorReset(),
		"red":   ui.ColorRed(),
		"green": ui.ColorGreen(),
		"bold":  ui.ColorBold(),
	} {
		if got != "" {
			t.Errorf("%s = %q, want empty with NoColor theme", name, got)
		}
	}
	if (CLIColorProvider{}).Red() != ui.ColorRed() {
		t.Error("CLIColorProvider.Red should follow the active theme")
	}
}

// TestDisplayProgress must not run in parallel: it swaps newSpinner.
func TestDisplayProgress(t *testing.T) {
	prevNewSpinner := newSpinner
	defer func() { newSpinner = prevNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	var wg sync.WaitGroup
	wg.Add(1)

	progressChan := make(chan progress.ProgressUpdate)
	var out bytes.Buffer

	go func() {
		progressChan <- progress.ProgressUpdate{SolverIndex: 0, Value: 0.5}
		time.Sleep(ProgressRefreshRate + 50*time.Millisecond)
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 1, &out)
	wg.Wait()

	mockS.mu.Lock()
	defer mockS.mu.Unlock()
	if !mockS.started {
		t.Error("Spinner should have started")
	}
	if !mockS.stopped {
		t.Error("Spinner should have stopped")
	}
	if !strings.Contains(mockS.suffix, "Solving") {
		t.Errorf("suffix = %q, want a Solving label", mockS.suffix)
	}
	if !strings.Contains(out.String(), "100.00%") {
		t.Errorf("final line should show completion, got %q", out.String())
	}
}

func TestDisplayProgress_ZeroSolvers(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.ProgressUpdate, 1)
	progressChan <- progress.ProgressUpdate{Value: 1}
	close(progressChan)

	var out bytes.Buffer
	DisplayProgress(&wg, progressChan, 0, &out)
	wg.Wait()
	if out.Len() != 0 {
		t.Errorf("no output expected without solvers, got %q", out.String())
	}
}
