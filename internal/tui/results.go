package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/puzzlebook/internal/format"
	"github.com/agbru/puzzlebook/internal/orchestration"
)

// ComparisonModel is the solver comparison panel. It shows live progress
// while solvers run and the result table once they finish.
type ComparisonModel struct {
	results  []orchestration.SolveResult
	progress float64
	eta      time.Duration
	running  bool
	err      error
	exitCode int
	width    int
	height   int
}

// NewComparisonModel creates an empty comparison panel.
func NewComparisonModel() ComparisonModel {
	return ComparisonModel{}
}

// SetSize updates dimensions.
func (c *ComparisonModel) SetSize(w, h int) {
	c.width = w
	c.height = h
}

// Start clears the previous run.
func (c *ComparisonModel) Start() {
	*c = ComparisonModel{running: true, width: c.width, height: c.height}
}

// UpdateProgress records the aggregated progress of the running solvers.
func (c *ComparisonModel) UpdateProgress(avg float64, eta time.Duration) {
	c.progress = avg
	c.eta = eta
}

// SetResults stores the finished results.
func (c *ComparisonModel) SetResults(results []orchestration.SolveResult) {
	c.results = results
}

// SetError records that no solver succeeded.
func (c *ComparisonModel) SetError(err error) {
	c.err = err
}

// Finish ends the run with its exit code.
func (c *ComparisonModel) Finish(exitCode int) {
	c.running = false
	c.progress = 1
	c.exitCode = exitCode
}

// Cancel discards a run whose params are no longer displayed.
func (c *ComparisonModel) Cancel() {
	c.running = false
	c.results = nil
	c.err = nil
}

// Running reports whether a comparison is in flight.
func (c ComparisonModel) Running() bool { return c.running }

// ExitCode returns the exit code of the last finished run.
func (c ComparisonModel) ExitCode() int { return c.exitCode }

// View renders the panel.
func (c ComparisonModel) View() string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("Solvers"))

	switch {
	case c.running:
		fmt.Fprintf(&b, "\n %s", format.FormatProgressBarWithETA(c.progress, c.eta, max(c.width-30, 10)))
	case len(c.results) == 0 && c.err == nil:
		b.WriteString("\n " + dimStyle.Render("press c to compare every solver"))
	default:
		c.writeTable(&b)
	}

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}

func (c ComparisonModel) writeTable(b *strings.Builder) {
	nameWidth := len("Solver")
	for _, r := range c.results {
		nameWidth = max(nameWidth, len(r.Name))
	}

	var reference string
	for _, r := range c.results {
		fmt.Fprintf(b, "\n %s  %10s  ",
			solverStyle.Render(fmt.Sprintf("%-*s", nameWidth, r.Name)),
			format.FormatExecutionDuration(r.Duration))
		switch {
		case r.Err != nil:
			b.WriteString(errorStyle.Render("failed: " + r.Err.Error()))
		case reference != "" && r.Answer.String() != reference:
			b.WriteString(errorStyle.Render("mismatch " + format.FormatNumberString(r.Answer.String())))
		default:
			if reference == "" {
				reference = r.Answer.String()
			}
			b.WriteString(successStyle.Render(format.FormatNumberString(r.Answer.String())))
		}
	}
	if c.err != nil && len(c.results) == 0 {
		b.WriteString("\n " + errorStyle.Render(c.err.Error()))
	}
}
