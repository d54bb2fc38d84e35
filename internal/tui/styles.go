package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/puzzlebook/internal/ui"
)

// Dashboard styles, derived from the active ui theme by initTUIStyles.
var (
	panelStyle        lipgloss.Style
	focusedPanelStyle lipgloss.Style
	headerStyle       lipgloss.Style

	titleStyle, versionStyle, elapsedStyle lipgloss.Style

	paneTitleStyle, answerStyle, stepStyle, dimStyle lipgloss.Style

	solverStyle, successStyle, errorStyle lipgloss.Style

	metricLabelStyle, metricValueStyle, sparklineStyle lipgloss.Style

	statusRunningStyle, statusDoneStyle, statusErrorStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

func fg(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// initTUIStyles rebuilds the styles. Run calls it again once the theme
// from the configuration has been applied.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = fg(t.Text).Border(lipgloss.RoundedBorder()).BorderForeground(t.Border)
	focusedPanelStyle = panelStyle.BorderForeground(t.Accent)
	headerStyle = fg(t.Accent).Bold(true).Padding(0, 1)

	titleStyle = fg(t.Accent).Bold(true)
	versionStyle = fg(t.Dim)
	elapsedStyle = fg(t.Accent)

	paneTitleStyle = titleStyle
	answerStyle = fg(t.Success).Bold(true)
	stepStyle = fg(t.Text)
	dimStyle = fg(t.Dim)

	solverStyle = fg(t.Info)
	successStyle = fg(t.Success)
	errorStyle = fg(t.Error)

	metricLabelStyle = dimStyle
	metricValueStyle = fg(t.Accent).Bold(true)
	sparklineStyle = fg(t.Warning)

	statusRunningStyle = fg(t.Warning).Bold(true)
	statusDoneStyle = answerStyle
	statusErrorStyle = fg(t.Error).Bold(true)
}
