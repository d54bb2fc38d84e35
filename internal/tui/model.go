package tui

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/puzzlebook/internal/config"
	apperrors "github.com/agbru/puzzlebook/internal/errors"
	"github.com/agbru/puzzlebook/internal/metrics"
	"github.com/agbru/puzzlebook/internal/orchestration"
	"github.com/agbru/puzzlebook/internal/puzzle"
	"github.com/agbru/puzzlebook/internal/sysmon"
)

// Layout constants for the TUI dashboard.
const (
	headerHeight          = 1
	footerHeight          = 1
	minBodyHeight         = 12
	ListPanelWidthPercent = 35
	InputPanelHeight      = 5
	MetricsPanelHeight    = 5
	ComparisonPanelHeight = 7
)

// focus identifies the pane receiving key input.
type focus int

const (
	focusList focus = iota
	focusDivisors
	focusBound
	focusViewport
	focusCount
)

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

func (l LayoutManager) leftWidth() int {
	return l.width * ListPanelWidthPercent / 100
}

func (l LayoutManager) rightWidth() int {
	return l.width - l.leftWidth()
}

func (l LayoutManager) listHeight() int {
	return l.bodyHeight() - InputPanelHeight
}

func (l LayoutManager) viewportHeight() int {
	return l.bodyHeight() - ComparisonPanelHeight - MetricsPanelHeight
}

// SessionState holds the puzzle being shown and the computations in flight.
type SessionState struct {
	current     int
	params      puzzle.Params
	explanation *puzzle.Explanation
	inputErr    error

	// generation tags explanation renders; runGeneration tags comparisons.
	generation    uint64
	runGeneration uint64
	runCancel     context.CancelFunc
}

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header   HeaderModel
	metrics  MetricsModel
	solvers  ComparisonModel
	list     list.Model
	divisors textinput.Model
	bound    textinput.Model
	viewport viewport.Model
	help     help.Model

	keymap KeyMap
	focus  focus

	SessionState
	LayoutManager

	parentCtx context.Context
	catalog   *puzzle.Catalog
	factory   puzzle.SolverFactory
	config    config.AppConfig
	opts      puzzle.Options
	ref       *programRef
}

// NewModel creates a new TUI model showing cfg's puzzle and params.
func NewModel(parentCtx context.Context, catalog *puzzle.Catalog, factory puzzle.SolverFactory, cfg config.AppConfig, version string) Model {
	current := max(catalog.IndexOf(cfg.Puzzle), 0)

	divisors := textinput.New()
	divisors.Prompt = "Divisors: "
	divisors.Placeholder = "3,5"
	divisors.CharLimit = 128

	bound := textinput.New()
	bound.Prompt = "Bound:    "
	bound.Placeholder = "1000"
	bound.CharLimit = 20

	m := Model{
		header:   NewHeaderModel(version),
		metrics:  NewMetricsModel(),
		solvers:  NewComparisonModel(),
		list:     newPuzzleList(catalog),
		divisors: divisors,
		bound:    bound,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		keymap:   DefaultKeyMap(),
		SessionState: SessionState{
			current: current,
			params:  cfg.Params(),
		},
		parentCtx: parentCtx,
		catalog:   catalog,
		factory:   factory,
		config:    cfg,
		opts:      cfg.ToPuzzleOptions(),
		ref:       &programRef{},
	}
	m.list.Select(current)
	m.syncInputs()
	m.header.SetPuzzle(current + 1)
	m.header.SetRunning()
	return m
}

// Init renders the initial puzzle and starts the samplers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		sampleMemStatsCmd(),
		m.explainCmd(),
		watchContextCmd(m.parentCtx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		m.refreshViewport()
		return m, nil

	case ExplanationMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.header.SetDone(msg.Duration, msg.Err != nil)
		if msg.Err != nil {
			m.inputErr = msg.Err
			return m, nil
		}
		m.explanation = msg.Explanation
		m.refreshViewport()
		m.viewport.GotoTop()
		return m, nil

	case ProgressMsg:
		if msg.Generation == m.runGeneration && m.solvers.Running() {
			m.solvers.UpdateProgress(msg.AverageProgress, msg.ETA)
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ComparisonResultsMsg:
		if msg.Generation == m.runGeneration {
			m.solvers.SetResults(msg.Results)
		}
		return m, nil

	case ComparisonErrorMsg:
		if msg.Generation == m.runGeneration {
			m.solvers.SetError(msg.Err)
		}
		return m, nil

	case ComparisonCompleteMsg:
		if msg.Generation != m.runGeneration {
			return m, nil
		}
		m.solvers.Finish(msg.ExitCode)
		m.stopRun()
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg)
		return m, nil

	case ContextCancelledMsg:
		m.stopRun()
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	editing := m.focus == focusDivisors || m.focus == focusBound

	switch {
	case msg.Type == tea.KeyCtrlC,
		!editing && key.Matches(msg, m.keymap.Quit):
		m.stopRun()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.NextPane):
		return m, m.setFocus((m.focus + 1) % focusCount)

	case key.Matches(msg, m.keymap.PrevPane):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)

	case editing && key.Matches(msg, m.keymap.Apply):
		return m, m.applyInputs()

	case editing:
		var cmd tea.Cmd
		if m.focus == focusDivisors {
			m.divisors, cmd = m.divisors.Update(msg)
		} else {
			m.bound, cmd = m.bound.Update(msg)
		}
		return m, cmd

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Compare):
		return m, m.startComparison()

	case key.Matches(msg, m.keymap.Reset):
		p, err := m.catalog.At(m.current)
		if err != nil {
			return m, nil
		}
		return m, m.setParams(p.Defaults())

	case m.focus == focusList && key.Matches(msg, m.keymap.Apply):
		return m, m.selectPuzzle(m.list.Index())

	case m.focus == focusList:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case m.focus == focusViewport:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// setFocus moves key input to f, focusing or blurring the text inputs.
func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.divisors.Blur()
	m.bound.Blur()
	switch f {
	case focusDivisors:
		return m.divisors.Focus()
	case focusBound:
		return m.bound.Focus()
	}
	return nil
}

// applyInputs parses the text inputs and re-renders when they are valid.
// Invalid input leaves the displayed explanation untouched.
func (m *Model) applyInputs() tea.Cmd {
	divisors, err := puzzle.ParseDivisors(m.divisors.Value())
	if err != nil {
		m.inputErr = err
		return nil
	}
	bound, err := puzzle.ParseBound(m.bound.Value())
	if err != nil {
		m.inputErr = err
		return nil
	}
	next := puzzle.Params{Divisors: divisors, Bound: bound}
	if err := next.Validate(); err != nil {
		m.inputErr = err
		return nil
	}
	return m.setParams(next)
}

// selectPuzzle shows the puzzle at index with its default params.
func (m *Model) selectPuzzle(index int) tea.Cmd {
	p, err := m.catalog.At(index)
	if err != nil {
		m.inputErr = err
		return nil
	}
	if index == m.current {
		return nil
	}
	m.current = index
	m.header.SetPuzzle(index + 1)
	return m.setParams(p.Defaults())
}

// setParams replaces the params, drops any comparison for the old ones and
// starts a new render.
func (m *Model) setParams(p puzzle.Params) tea.Cmd {
	m.params = p.Clone()
	m.inputErr = nil
	m.syncInputs()
	m.stopRun()
	m.solvers.Cancel()
	m.runGeneration++
	m.generation++
	return m.explainCmd()
}

func (m *Model) syncInputs() {
	m.divisors.SetValue(m.params.DivisorString())
	m.bound.SetValue(strconv.FormatInt(m.params.Bound, 10))
}

// startComparison runs the configured solvers on the current params.
func (m *Model) startComparison() tea.Cmd {
	if m.solvers.Running() {
		return nil
	}
	solvers := orchestration.GetSolversToRun(m.config.Solver, m.factory)
	if len(solvers) == 0 {
		return nil
	}
	m.runGeneration++
	ctx, cancel := context.WithTimeout(m.parentCtx, m.config.Timeout)
	m.runCancel = cancel
	m.solvers.Start()
	return compareCmd(m.ref, ctx, solvers, m.params.Clone(), m.opts, m.runGeneration)
}

// stopRun cancels the comparison in flight, if any.
func (m *Model) stopRun() {
	if m.runCancel != nil {
		m.runCancel()
		m.runCancel = nil
	}
}

func (m *Model) explainCmd() tea.Cmd {
	p, err := m.catalog.At(m.current)
	if err != nil {
		m.inputErr = err
		return nil
	}
	m.header.SetRunning()
	return explainCmd(m.parentCtx, p, m.params.Clone(), m.opts, m.config.Timeout, m.generation)
}

func (m *Model) refreshViewport() {
	if m.explanation == nil {
		m.viewport.SetContent(dimStyle.Render("Rendering..."))
		return
	}
	m.viewport.SetContent(renderExplanation(m.current+1, m.explanation, m.viewport.Width))
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.help.Width = m.width
	m.list.SetSize(m.leftWidth()-2, m.listHeight()-2)
	m.divisors.Width = max(m.leftWidth()-14, 4)
	m.bound.Width = max(m.leftWidth()-14, 4)
	m.viewport.Width = m.rightWidth() - 2
	m.viewport.Height = max(m.viewportHeight()-2, 1)
	m.solvers.SetSize(m.rightWidth(), ComparisonPanelHeight)
	m.metrics.SetSize(m.rightWidth(), MetricsPanelHeight)
}

// ExitCode is the exit code of the last finished comparison.
func (m Model) ExitCode() int {
	return m.solvers.ExitCode()
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	listPanel := m.panel(focusList).
		Width(m.leftWidth() - 2).
		Height(m.listHeight() - 2).
		Render(m.list.View())

	inputs := m.divisors.View() + "\n" + m.bound.View()
	if m.inputErr != nil {
		inputs += "\n" + errorStyle.Render(m.inputErr.Error())
	}
	inputStyle := panelStyle
	if m.focus == focusDivisors || m.focus == focusBound {
		inputStyle = focusedPanelStyle
	}
	inputPanel := inputStyle.
		Width(m.leftWidth() - 2).
		Height(InputPanelHeight - 2).
		Render(inputs)

	explanation := m.panel(focusViewport).
		Width(m.rightWidth() - 2).
		Height(max(m.viewportHeight()-2, 1)).
		Render(m.viewport.View())

	left := lipgloss.JoinVertical(lipgloss.Left, listPanel, inputPanel)
	right := lipgloss.JoinVertical(lipgloss.Left, explanation, m.solvers.View(), m.metrics.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.help.View(m.keymap))
}

func (m Model) panel(f focus) lipgloss.Style {
	if m.focus == f {
		return focusedPanelStyle
	}
	return panelStyle
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, catalog *puzzle.Catalog, factory puzzle.SolverFactory, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run).
	initTUIStyles()

	model := NewModel(ctx, catalog, factory, cfg, version)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if m, ok := finalModel.(Model); ok {
		m.stopRun()
		if err == nil {
			return m.ExitCode()
		}
	}
	if ctx.Err() != nil {
		return apperrors.ExitErrorCanceled
	}
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// explainCmd renders a puzzle off the UI goroutine.
func explainCmd(ctx context.Context, p puzzle.Puzzle, params puzzle.Params, opts puzzle.Options, timeout time.Duration, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		start := time.Now()
		e, err := p.Explain(ctx, params, opts)
		return ExplanationMsg{Generation: gen, Explanation: e, Err: err, Duration: time.Since(start)}
	}
}

// compareCmd returns a tea.Cmd that runs the solvers through the orchestrator.
func compareCmd(ref *programRef, ctx context.Context, solvers []orchestration.NamedSolver, params puzzle.Params, opts puzzle.Options, gen uint64) tea.Cmd {
	return func() tea.Msg {
		progressReporter := &TUIProgressReporter{ref: ref, generation: gen}
		presenter := &TUIResultPresenter{ref: ref, generation: gen}

		results := orchestration.ExecuteSolvers(ctx, solvers, params, opts, progressReporter, io.Discard)
		exitCode := orchestration.AnalyzeComparisonResults(results,
			orchestration.PresentationOptions{Params: params}, presenter, presenter, io.Discard)

		return ComparisonCompleteMsg{Generation: gen, ExitCode: exitCode}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg(metrics.ReadMemory())
	}
}

// sampleSysStatsCmd reads host-wide CPU and memory usage.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd waits for the session context to end.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
