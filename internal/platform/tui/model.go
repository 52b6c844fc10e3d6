package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/chubes4/chubes-games/internal/core"
	"github.com/chubes4/chubes-games/internal/registry"
	"github.com/chubes4/chubes-games/internal/storage"
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	cues       core.CuePlayer
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	loop       uint64
	embedded   bool // runs inside a session; leaving does not quit the program
	quitting   bool
	backToMenu bool
	runSaved   bool // whether the current run has been recorded
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithCuePlayer plays the game's cues.
func WithCuePlayer(p core.CuePlayer) ModelOption {
	return func(m *Model) { m.cues = p }
}

// WithLogger logs recording failures.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		loop:       nextLoop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	// Reset here so the first tick and View see a running game.
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop || m.quitting || m.backToMenu {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.finishRun()
		m.quitting = true
		return m, m.leave()
	case action == core.ActionBack:
		m.finishRun()
		m.backToMenu = true
		return m, m.leave()
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if wasOver && !m.gameState.GameOver {
		m.runSaved = false
	}
	if m.gameState.GameOver {
		m.finishRun()
	}

	if m.cues != nil {
		for _, c := range result.Cues {
			m.cues.Play(c)
		}
	}
	return m, tickCmd(m.config.TickRate, m.loop)
}

func (m Model) leave() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// finishRun records the current run once: on game over, or as a quit
// when the player leaves mid-game.
func (m *Model) finishRun() {
	if m.runSaved || m.store == nil {
		return
	}
	m.runSaved = true

	var sum core.RunSummary
	if r, ok := m.game.(core.RunReporter); ok {
		sum = r.RunSummary()
	} else {
		sum = core.RunSummary{Seed: m.config.Seed, Score: m.gameState.Score, EndReason: "quit"}
		if m.gameState.GameOver {
			sum.EndReason = "destroyed"
		}
	}

	if _, err := m.store.RecordGame(m.game.ID(), sum); err != nil && m.logger != nil {
		m.logger.Warn("cannot record run", "game", m.game.ID(), "err", err)
	}
}

// saveScreenshot writes the current screen as plain text under
// ~/.arcade/screenshots.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// BackToMenu reports whether the player asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports whether the player asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run plays one game. Returns true if the player asked for the menu
// rather than quitting.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) (bool, error) {
	p := tea.NewProgram(
		NewModel(game, store, cfg, opts...),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	return ok && m.BackToMenu(), nil
}
