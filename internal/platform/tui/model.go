package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	queue     *core.ActionQueue // gameplay actions, one consumed per tick
	session   core.InputFrame   // pause/restart requests for the next tick
	gameState core.GameState
	keys      KeyMap
	help      help.Model
	logger    *log.Logger
	quitting  bool
}

// Options configures a Model.
type Options struct {
	QueueSize int         // pending gameplay actions kept between ticks
	Logger    *log.Logger // nil disables logging
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, core.Max(1, cfg.ScreenH-1)),
		config:  cfg,
		queue:   core.NewActionQueue(opts.QueueSize),
		session: core.NewInputFrame(),
		keys:    DefaultKeyMap(),
		help:    h,
		logger:  opts.Logger,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Initialize the game
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.config.ScreenW, core.Max(1, m.config.ScreenH-m.helpHeight()))
		return m, nil
	}

	action := m.keys.Action(msg)
	switch {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case action.IsGameplay():
		m.queue.Push(action)
	case action != core.ActionNone:
		m.session.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. World coordinates do not
// depend on the terminal size, so the game keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(1, msg.Height-m.helpHeight()))
	m.help.Width = msg.Width
	return m, nil
}

// helpHeight returns the rows taken by the help bar below the game.
func (m Model) helpHeight() int {
	if !m.help.ShowAll {
		return 1
	}
	rows := 1
	for _, col := range m.keys.FullHelp() {
		rows = core.Max(rows, len(col))
	}
	return rows
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.session.Has(core.ActionRestart) {
		if m.logger != nil {
			m.logger.Info("restarting", "game", m.game.ID(), "wave", m.gameState.Wave)
		}
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.queue.Reset()
		m.session.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	in := m.nextFrame()
	result := m.game.Step(in)
	m.gameState = result.State

	if result.Hits > 0 && m.logger != nil {
		m.logger.Debug("hit", "count", result.Hits, "live", m.gameState.Live)
	}

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// nextFrame builds the input for one tick: pending session actions plus at
// most one queued gameplay action.
func (m Model) nextFrame() core.InputFrame {
	in := core.NewInputFrame()
	for a, on := range m.session.Actions {
		if on {
			in.Set(a)
		}
	}
	m.session.Clear()
	if a := m.queue.Pop(); a != core.ActionNone {
		in.Set(a)
	}
	return in
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".shooter", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logWarn("cannot create screenshot dir", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logWarn("cannot save screenshot", err)
		return
	}
	if m.logger != nil {
		m.logger.Info("screenshot saved", "path", path)
	}
}

func (m *Model) logWarn(msg string, err error) {
	if m.logger != nil {
		m.logger.Warn(msg, "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + RenderHelp(m.help.View(m.keys))
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
