package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/puzzlebook/internal/format"
	"github.com/agbru/puzzlebook/internal/puzzle"
)

// tallyEdgeRows is the number of tally rows shown at each end of the table.
const tallyEdgeRows = 10

// renderExplanation lays out a puzzle pane for the viewport, wrapping
// paragraphs to width.
func renderExplanation(number int, e *puzzle.Explanation, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width, 20))

	var b strings.Builder
	b.WriteString(paneTitleStyle.Render(fmt.Sprintf("Problem %d: %s", number, e.Title)))
	b.WriteString("\n")
	for _, para := range e.Description {
		b.WriteString("\n")
		b.WriteString(wrap.Render(para))
		b.WriteString("\n")
	}

	b.WriteString("\nAnswer: ")
	b.WriteString(answerStyle.Render(format.FormatNumberString(e.Answer.String())))
	b.WriteString("\n\n")
	b.WriteString(paneTitleStyle.Render("Derivation"))
	b.WriteString(dimStyle.Render(" (" + e.Method + ")"))
	b.WriteString("\n")
	for i, step := range e.Steps {
		b.WriteString(wrap.Render(stepStyle.Render(fmt.Sprintf("%d. %s", i+1, step))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(paneTitleStyle.Render("Running tally"))
	b.WriteString("\n")
	writeTally(&b, e)
	return b.String()
}

func writeTally(b *strings.Builder, e *puzzle.Explanation) {
	if len(e.Tally) == 0 {
		fmt.Fprintf(b, "(no multiples below %d)\n", e.Params.Bound)
		return
	}

	multWidth := len("Multiple")
	for _, row := range e.Tally {
		multWidth = max(multWidth, len(strconv.FormatInt(row.Multiple, 10)))
	}
	fmt.Fprintf(b, "%*s  %s\n", multWidth, "Multiple", "Tally")

	rows := e.Tally
	omitted := 0
	if len(rows) > 2*tallyEdgeRows {
		omitted = len(rows) - 2*tallyEdgeRows
	}
	for i, row := range rows {
		if omitted > 0 && i == tallyEdgeRows {
			b.WriteString(dimStyle.Render(fmt.Sprintf("... %d rows omitted ...", omitted)))
			b.WriteString("\n")
		}
		if omitted > 0 && i >= tallyEdgeRows && i < len(rows)-tallyEdgeRows {
			continue
		}
		fmt.Fprintf(b, "%*d  %s\n", multWidth, row.Multiple, row.Tally.String())
	}
	if e.TallyTruncated {
		b.WriteString(dimStyle.Render(fmt.Sprintf("(table truncated after %d rows)", len(rows))))
		b.WriteString("\n")
	}
}
