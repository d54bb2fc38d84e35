package ui

import (
	"os"
	"slices"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named color scheme. The ANSI fields color line-oriented
// output; TUI colors the dashboard.
type Theme struct {
	Name string

	Primary   string // solver names, tally multiples
	Secondary string // environment details, dimmed notes
	Success   string // answers, consistent results
	Warning   string // durations, timeouts
	Error     string // failures, mismatches
	Info      string // puzzle titles, params
	Bold      string
	Underline string
	Reset     string

	TUI TUITheme
}

// TUITheme is the lipgloss palette of the dashboard.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

const (
	bold      = "\033[1m"
	underline = "\033[4m"
	reset     = "\033[0m"
)

func ansi256(code string) string { return "\033[38;5;" + code + "m" }

var (
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   ansi256("39"),
		Secondary: ansi256("245"),
		Success:   ansi256("82"),
		Warning:   ansi256("220"),
		Error:     ansi256("196"),
		Info:      ansi256("141"),
		Bold:      bold,
		Underline: underline,
		Reset:     reset,
		TUI: TUITheme{
			Bg:      lipgloss.Color("#101418"),
			Text:    lipgloss.Color("#D8DEE9"),
			Border:  lipgloss.Color("#4C566A"),
			Accent:  lipgloss.Color("#88C0D0"),
			Success: lipgloss.Color("#A3BE8C"),
			Warning: lipgloss.Color("#EBCB8B"),
			Error:   lipgloss.Color("#BF616A"),
			Dim:     lipgloss.Color("#616E88"),
			Info:    lipgloss.Color("#B48EAD"),
		},
	}

	LightTheme = Theme{
		Name:      "light",
		Primary:   ansi256("27"),
		Secondary: ansi256("240"),
		Success:   ansi256("28"),
		Warning:   ansi256("130"),
		Error:     ansi256("124"),
		Info:      ansi256("54"),
		Bold:      bold,
		Underline: underline,
		Reset:     reset,
		TUI: TUITheme{
			Bg:      lipgloss.Color("#FAFAFA"),
			Text:    lipgloss.Color("#2E3440"),
			Border:  lipgloss.Color("#A0A8B8"),
			Accent:  lipgloss.Color("#005F87"),
			Success: lipgloss.Color("#2E7D32"),
			Warning: lipgloss.Color("#AF5F00"),
			Error:   lipgloss.Color("#AF0000"),
			Dim:     lipgloss.Color("#8A8A8A"),
			Info:    lipgloss.Color("#5F00AF"),
		},
	}

	OrangeTheme = Theme{
		Name:      "orange",
		Primary:   ansi256("208"),
		Secondary: ansi256("245"),
		Success:   ansi256("82"),
		Warning:   ansi256("214"),
		Error:     ansi256("196"),
		Info:      ansi256("69"),
		Bold:      bold,
		Underline: underline,
		Reset:     reset,
		TUI: TUITheme{
			Bg:      lipgloss.Color("#000000"),
			Text:    lipgloss.Color("#E0E0E0"),
			Border:  lipgloss.Color("#FF6600"),
			Accent:  lipgloss.Color("#FF8C00"),
			Success: lipgloss.Color("#9ECE6A"),
			Warning: lipgloss.Color("#FFB347"),
			Error:   lipgloss.Color("#FF4444"),
			Dim:     lipgloss.Color("#666666"),
			Info:    lipgloss.Color("#4488FF"),
		},
	}

	// NoColorTheme is active under NO_COLOR, --no-color and non-terminal
	// output.
	NoColorTheme = Theme{Name: "none", TUI: NoColorTUITheme}

	// NoColorTUITheme renders the dashboard in the terminal's own colors.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}
)

var themes = []Theme{DarkTheme, LightTheme, OrangeTheme, NoColorTheme}

var (
	themeMutex   sync.RWMutex
	currentTheme = DarkTheme
)

// ThemeNames lists the selectable theme names, default first.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// LookupTheme returns the theme called name.
func LookupTheme(name string) (Theme, bool) {
	i := slices.IndexFunc(themes, func(t Theme) bool { return t.Name == name })
	if i < 0 {
		return Theme{}, false
	}
	return themes[i], true
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// GetCurrentTUITheme returns the dashboard palette of the active theme.
func GetCurrentTUITheme() TUITheme {
	return GetCurrentTheme().TUI
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates the theme called name, or DarkTheme for unknown names.
func SetTheme(name string) {
	t, ok := LookupTheme(name)
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// InitTheme disables colors when noColor is set or NO_COLOR is present in
// the environment (https://no-color.org/), and selects DarkTheme otherwise.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}
