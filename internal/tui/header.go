package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/puzzlebook/internal/format"
)

// Header run states.
const (
	statusIdle = iota
	statusRunning
	statusDone
	statusError
)

// HeaderModel renders the top bar: title, version, last render time and
// the state of the current computation.
type HeaderModel struct {
	version  string
	status   int
	lastRun  time.Duration
	width    int
	puzzleNo int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version}
}

// SetRunning marks a computation as in flight.
func (h *HeaderModel) SetRunning() {
	h.status = statusRunning
}

// SetDone records the duration of the finished computation.
func (h *HeaderModel) SetDone(d time.Duration, failed bool) {
	h.lastRun = d
	h.status = statusDone
	if failed {
		h.status = statusError
	}
}

// SetPuzzle sets the 1-based number of the displayed puzzle.
func (h *HeaderModel) SetPuzzle(n int) {
	h.puzzleNo = n
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Puzzle Book"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	title := titleStyle.Render(titleText)
	pipe := versionStyle.Render(" | ")

	left := title
	if h.puzzleNo > 0 {
		left += pipe + elapsedStyle.Render(fmt.Sprintf("Problem %d", h.puzzleNo))
	}

	var status string
	switch h.status {
	case statusRunning:
		status = statusRunningStyle.Render("Computing...")
	case statusDone:
		status = statusDoneStyle.Render("Ready") +
			versionStyle.Render(" ("+format.FormatExecutionDuration(h.lastRun)+")")
	case statusError:
		status = statusErrorStyle.Render("Error")
	}

	innerWidth := max(h.width-2, 0)
	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(status), 1)

	return headerStyle.Width(h.width).Render(left + spaces(gap) + status)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
