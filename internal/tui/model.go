package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abenson/pbbdash/internal/cli"
	"github.com/abenson/pbbdash/internal/config"
	apperrors "github.com/abenson/pbbdash/internal/errors"
	"github.com/abenson/pbbdash/internal/fallback"
	"github.com/abenson/pbbdash/internal/logging"
	"github.com/abenson/pbbdash/internal/services"
	"github.com/abenson/pbbdash/internal/session"
	"github.com/abenson/pbbdash/internal/sysmon"
	"github.com/abenson/pbbdash/internal/workflow"
)

// Deps bundles the collaborators the dashboard drives.
type Deps struct {
	Caller   workflow.ServiceCaller
	Provider *fallback.Provider
	Store    *session.Store
	Logger   logging.Logger
}

// ExecutionState holds the run-related fields of a TUI session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation int
	done       bool
	exitCode   int
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	h := l.height - headerHeight - footerHeight
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

// leftWidth returns the width allocated to the pipeline column.
func (l LayoutManager) leftWidth() int {
	return l.width * PipelinePanelWidthPercent / 100
}

// rightWidth returns the width allocated to the results column.
func (l LayoutManager) rightWidth() int {
	return l.width - l.leftWidth()
}

// sysHeight returns the height allocated to the system stats panel.
func (l LayoutManager) sysHeight() int {
	body := l.bodyHeight()
	h := SysPanelHeight
	if h > body/2 {
		h = body / 2
	}
	return h
}

// stepsHeight returns the height allocated to the pipeline panel.
func (l LayoutManager) stepsHeight() int {
	return l.bodyHeight() - l.sysHeight()
}

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header  HeaderModel
	steps   StepsModel
	results ResultsModel
	sys     SysModel
	footer  FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	deps      Deps
	config    config.AppConfig
	inputs    workflow.Inputs
	ref       *programRef
	paused    bool
}

// NewModel creates a new TUI model.
func NewModel(parentCtx context.Context, deps Deps, in workflow.Inputs, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)

	return Model{
		header:  NewHeaderModel(version),
		steps:   NewStepsModel(cfg.Insights),
		results: NewResultsModel(),
		sys:     NewSysModel(),
		footer:  NewFooterModel(),
		keymap:  DefaultKeyMap(),
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		deps:      deps,
		config:    cfg,
		inputs:    in,
		ref:       &programRef{},
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startAnalysisCmd(m.ref, m.ctx, m.deps, m.config, m.inputs, m.generation),
		watchContextCmd(m.ctx, m.generation),
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
		return m, nil

	case ProgressMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous run
		}
		m.steps.UpdateProgress(msg.Percent, msg.Message)
		return m, nil

	case RunSuccessMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.steps.SetDone()
		m.results.SetSummary(msg.Summary)
		return m, nil

	case StepFailedMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.steps.SetFailed(msg.Step)
		m.results.SetFailure(msg.Step, msg.Message)
		m.footer.SetError(true)
		return m, nil

	case RunCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		m.footer.SetDone(true)
		if msg.ExitCode != apperrors.ExitSuccess {
			m.footer.SetError(true)
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleSysStatsCmd(), tickCmd())
		}
		return m, tickCmd()

	case SysStatsMsg:
		m.sys.AddSample(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		// Cancel the current run before starting a new one.
		if m.cancel != nil {
			m.cancel()
		}

		m.generation++
		ctx, cancel := context.WithCancel(m.parentCtx)
		m.ctx = ctx
		m.cancel = cancel

		m.header.Reset()
		m.steps.Reset()
		m.results.Reset()
		m.sys.Reset()
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.done = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess
		m.layoutPanels()

		return m, tea.Batch(
			tickCmd(),
			startAnalysisCmd(m.ref, m.ctx, m.deps, m.config, m.inputs, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)
	}

	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.header.View()
	footer := m.footer.View()

	// Left column: pipeline on top, system stats below.
	leftCol := lipgloss.JoinVertical(lipgloss.Left, m.steps.View(), m.sys.View())

	results := m.results.View()

	body := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, results)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Layout constants for the TUI dashboard.
const (
	headerHeight              = 1
	footerHeight              = 1
	minBodyHeight             = 4
	PipelinePanelWidthPercent = 45
	SysPanelHeight            = 6
)

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.steps.SetSize(m.leftWidth(), m.stepsHeight())
	m.sys.SetSize(m.leftWidth(), m.sysHeight())
	m.results.SetSize(m.rightWidth(), m.bodyHeight())
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, deps Deps, in workflow.Inputs, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, deps, in, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startAnalysisCmd returns a tea.Cmd that launches the workflow run.
func startAnalysisCmd(ref *programRef, ctx context.Context, deps Deps, cfg config.AppConfig, in workflow.Inputs, gen int) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		renderer := &TUIRenderer{ref: ref, generation: gen}

		opts := []workflow.SequencerOption{
			workflow.WithProgressReporter(reporter),
			workflow.WithInsights(cfg.Insights),
		}
		if deps.Store != nil {
			opts = append(opts, workflow.WithStore(deps.Store))
		}
		if deps.Logger != nil {
			opts = append(opts, workflow.WithSequencerLogger(deps.Logger))
		}
		if cfg.LiveScoring {
			opts = append(opts, workflow.WithScoringStrategy(workflow.LiveScoring{
				Caller:   deps.Caller,
				Endpoint: cfg.Endpoints[services.CapabilityEvaluation],
				Provider: deps.Provider,
			}))
		}

		seq := workflow.NewSequencer(deps.Caller, deps.Provider, cfg.Endpoints, renderer, opts...)

		runCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()

		_, err := seq.Run(runCtx, in)
		exitCode := apperrors.ExitSuccess
		if err != nil {
			exitCode = cli.HandleRunError(err, io.Discard)
		}

		return RunCompleteMsg{Generation: gen, ExitCode: exitCode}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen int) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
