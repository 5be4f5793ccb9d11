// Package app contains the root Bubble Tea model. It wires key input
// through the mapper and dispatcher, hands the resulting effects to the
// runner, and feeds completions back into dispatch.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mfell/lariat/internal/config"
	"github.com/mfell/lariat/internal/linear"
	"github.com/mfell/lariat/internal/log"
	"github.com/mfell/lariat/internal/pubsub"
	"github.com/mfell/lariat/internal/session"
	"github.com/mfell/lariat/internal/ui"
)

// tickMsg drives notification expiry and the auto-refresh timer.
type tickMsg time.Time

// Model is the root application state.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg        config.Config
	configPath string

	state    *session.State
	runner   *session.Runner
	mapper   session.Mapper
	renderer *ui.Renderer
	listener *pubsub.ContinuousListener[session.EffectDone]

	spinner spinner.Model

	width  int
	height int

	lastRefresh time.Time
}

// New builds the root model. configPath may be empty when no config file
// is in use; UI preference changes are then kept in memory only.
func New(cfg config.Config, configPath string, svc linear.Service) Model {
	ctx, cancel := context.WithCancel(context.Background())

	state := session.NewState()
	state.DefaultTeamKey = cfg.DefaultTeam
	state.HideDone = cfg.UI.HideDone
	state.GroupBy = session.GroupByFromString(cfg.UI.GroupBy)

	runner := session.NewRunner(svc, session.SystemClipboard{}, session.SystemBrowser{})

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:        ctx,
		cancel:     cancel,
		cfg:        cfg,
		configPath: configPath,
		state:      state,
		runner:     runner,
		mapper:     session.NewMapper(),
		renderer:   ui.NewRenderer(cfg.UI.MarkdownStyle),
		listener:   pubsub.NewContinuousListener(ctx, runner.Broker()),
		spinner:    sp,
	}
}

// State exposes the session state for tests.
func (m Model) State() *session.State { return m.state }

func (m Model) Init() tea.Cmd {
	m.runner.Dispatch(m.ctx, m.state.Bootstrap())

	return tea.Batch(
		m.listener.Listen(),
		m.spinner.Tick,
		tickCmd(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		action := m.mapper.Map(msg, m.state.Focus, m.state.Overlay)
		return m.apply(action)

	case pubsub.Event[session.EffectDone]:
		model, cmd := m.apply(msg.Payload)
		return model, tea.Batch(cmd, model.listener.Listen())

	case tickMsg:
		model, cmd := m.apply(session.Tick{Now: time.Time(msg)})
		model, refreshCmd := model.maybeAutoRefresh(time.Time(msg))
		return model, tea.Batch(cmd, refreshCmd, tickCmd())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.renderer.SetSpinnerFrame(m.spinner.View())
		return m, cmd
	}

	return m, nil
}

// apply runs one action through dispatch and starts the effects it
// produced. All state mutation funnels through here.
func (m Model) apply(action session.Action) (Model, tea.Cmd) {
	effects := session.Dispatch(m.state, action)
	m.runner.Dispatch(m.ctx, effects)

	if m.state.UIPrefsDirty {
		m.state.UIPrefsDirty = false
		m.persistUIPrefs()
	}

	if m.state.Quitting {
		m.Close()
		return m, tea.Quit
	}
	return m, nil
}

// maybeAutoRefresh issues a refresh when the configured interval elapsed
// and a team is loaded. Dedup in the state drops it if one is in flight.
func (m Model) maybeAutoRefresh(now time.Time) (Model, tea.Cmd) {
	if m.cfg.RefreshInterval <= 0 || m.state.TeamID() == "" {
		return m, nil
	}
	interval := time.Duration(m.cfg.RefreshInterval) * time.Second
	if m.lastRefresh.IsZero() {
		m.lastRefresh = now
		return m, nil
	}
	if now.Sub(m.lastRefresh) < interval {
		return m, nil
	}
	m.lastRefresh = now
	log.Debug(log.CatSession, "auto refresh", "interval", interval)
	return m.apply(session.Refresh{})
}

func (m Model) persistUIPrefs() {
	if m.configPath == "" {
		return
	}
	prefs := m.cfg.UI
	prefs.HideDone = m.state.HideDone
	prefs.GroupBy = m.state.GroupBy.String()
	if err := config.SaveUIPrefs(m.configPath, prefs); err != nil {
		log.Warn(log.CatConfig, "failed to save ui prefs", "error", err)
	}
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	return m.renderer.Render(m.state, m.width, m.height)
}

// Close releases the runner and cancels in-flight work. Safe to call more
// than once.
func (m Model) Close() {
	m.cancel()
	m.runner.Close()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var _ tea.Model = Model{}
