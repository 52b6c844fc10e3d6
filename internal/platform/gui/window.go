// Package gui runs the base builder in a desktop window with Ebitengine.
// It shares the game adapter with the terminal frontend and adds mouse
// selection.
package gui

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/chubes4/chubes-games/internal/core"
	"github.com/chubes4/chubes-games/internal/games/basebuilder"
	"github.com/chubes4/chubes-games/internal/games/basebuilder/sim"
	"github.com/chubes4/chubes-games/internal/storage"
)

// Default window size in pixels.
const (
	DefaultWidth  = 960
	DefaultHeight = 800
)

// Option configures a Window.
type Option func(*Window)

// WithCuePlayer plays the game's cues.
func WithCuePlayer(p core.CuePlayer) Option {
	return func(w *Window) { w.cues = p }
}

// WithLogger logs recording failures.
func WithLogger(l *log.Logger) Option {
	return func(w *Window) { w.logger = l }
}

// Window implements ebiten.Game for one base builder game.
type Window struct {
	game   *basebuilder.Game
	store  *storage.Store
	cues   core.CuePlayer
	logger *log.Logger
	config core.RuntimeConfig

	frame    core.InputFrame
	state    core.GameState
	runSaved bool
	width    int
	height   int
}

// New creates a window for game and resets it.
func New(game *basebuilder.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) *Window {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	w := &Window{
		game:   game,
		store:  store,
		config: cfg,
		frame:  core.NewInputFrame(),
		width:  DefaultWidth,
		height: DefaultHeight,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.game.Reset(cfg)
	w.state = w.game.State()
	return w
}

// Update runs one tick. Ebitengine calls it at the configured TPS.
func (w *Window) Update() error {
	collectKeys(&w.frame, inpututil.IsKeyJustPressed)
	w.collectMouse()

	if w.frame.Has(core.ActionQuit) || w.frame.Has(core.ActionBack) {
		w.finishRun()
		return ebiten.Termination
	}
	w.step()
	return nil
}

// step advances the game with the collected frame.
func (w *Window) step() {
	wasOver := w.state.GameOver

	res := w.game.Step(w.frame)
	w.state = res.State
	w.frame.Clear()

	if wasOver && !w.state.GameOver {
		w.runSaved = false
	}
	if w.state.GameOver {
		w.finishRun()
	}
	if w.cues != nil {
		for _, c := range res.Cues {
			w.cues.Play(c)
		}
	}
}

// collectMouse selects the clicked cell. Clicking the selected cell again
// runs its first option; a right click sells.
func (w *Window) collectMouse() {
	left := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	right := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return
	}
	x, y := ebiten.CursorPosition()
	w.click(x, y, right)
}

func (w *Window) click(x, y int, sell bool) {
	layout, ok := boardLayout(w.game.Snapshot().Grid, w.width, w.height)
	if !ok {
		return
	}
	cx, cy, ok := layout.FromScreen(x, y)
	if !ok {
		return
	}
	cell := sim.C(cx, cy)
	if sell {
		w.game.SetCursor(cell)
		w.frame.Set(core.ActionSell)
		return
	}
	if cell == w.game.Cursor() {
		w.frame.Set(core.ActionConfirm)
		return
	}
	w.game.SetCursor(cell)
}

// finishRun records the current run once.
func (w *Window) finishRun() {
	if w.runSaved || w.store == nil {
		return
	}
	w.runSaved = true
	if _, err := w.store.RecordGame(w.game.ID(), w.game.RunSummary()); err != nil && w.logger != nil {
		w.logger.Warn("cannot record run", "game", w.game.ID(), "err", err)
	}
}

// Layout follows the window size so the board scales with it.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	w.width, w.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(game *basebuilder.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	w := New(game, store, cfg, opts...)

	ebiten.SetWindowSize(DefaultWidth, DefaultHeight)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TickRate > 0 {
		ebiten.SetTPS(cfg.TickRate)
	}

	err := ebiten.RunGame(w)
	// Closing the window without Esc still counts as leaving the game.
	w.finishRun()
	return err
}
