// Package basebuilder is the arcade adapter for the base builder
// simulation: it maps platform input to build, upgrade and sell commands
// and draws the board into a core.Screen.
package basebuilder

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chubes4/chubes-games/internal/config"
	"github.com/chubes4/chubes-games/internal/core"
	"github.com/chubes4/chubes-games/internal/games/basebuilder/sim"
	"github.com/chubes4/chubes-games/internal/registry"
)

// Variant selects the game rules.
type Variant int

const (
	VariantStandard Variant = iota
	VariantRush             // short countdown, more funds, time-driven difficulty
)

// messageTicks is how long a command result stays on the status line.
const messageTicks = 180

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

// SetLogger sets the logger handed to new simulations.
func SetLogger(l *log.Logger) {
	logger = l
}

// LoadConfig resolves the config the next game will use: the configured
// file or defaults, the difficulty preset and the variant's rules.
func LoadConfig(v Variant) (config.BaseBuilderConfig, error) {
	cfg, err := config.LoadBaseBuilder(configPath)
	if err != nil {
		return config.DefaultBaseBuilderConfig(), err
	}
	if difficultyPreset != "" {
		config.ApplyBaseBuilderPreset(&cfg, difficultyPreset)
	}
	if v == VariantRush {
		config.ApplyRush(&cfg)
	}
	return cfg, nil
}

// Option configures a Game.
type Option func(*Game)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c sim.Clock) Option {
	return func(g *Game) { g.src = c }
}

// WithConfig uses cfg instead of loading one on Reset.
func WithConfig(cfg config.BaseBuilderConfig) Option {
	return func(g *Game) { g.fixedCfg = &cfg }
}

// Game implements registry.Game for the base builder.
type Game struct {
	variant  Variant
	src      sim.Clock
	fixedCfg *config.BaseBuilderConfig

	runtime    core.RuntimeConfig
	cfg        config.BaseBuilderConfig
	difficulty *config.DifficultyManager
	clock      *pausableClock
	sim        *sim.Sim

	cursor    sim.Cell
	paused    bool
	message   string
	messageOK bool
	msgTicks  int
	startedAt time.Time
	endedAt   time.Time
	endReason string
}

// New creates a standard game.
func New(opts ...Option) *Game {
	return newGame(VariantStandard, opts)
}

// NewRush creates a rush game.
func NewRush(opts ...Option) *Game {
	return newGame(VariantRush, opts)
}

func newGame(v Variant, opts []Option) *Game {
	g := &Game{variant: v, src: sim.SystemClock{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.variant == VariantRush {
		return "basebuilder_rush"
	}
	return "basebuilder"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.variant == VariantRush {
		return "Base Builder (Rush)"
	}
	return "Base Builder"
}

// Reset starts a new game with a fresh simulation.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	var cfg config.BaseBuilderConfig
	if g.fixedCfg != nil {
		cfg = *g.fixedCfg
	} else {
		var err error
		cfg, err = LoadConfig(g.variant)
		if err != nil && logger != nil {
			logger.Warn("using default config", "err", err)
		}
	}

	settings, err := SettingsFromConfig(cfg)
	if err != nil {
		if logger != nil {
			logger.Warn("config rejected, using defaults", "err", err)
		}
		cfg = config.DefaultBaseBuilderConfig()
		settings = sim.DefaultSettings()
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.clock = newPausableClock(g.src)
	opts := []sim.Option{sim.WithClock(g.clock), sim.WithSeed(runtime.Seed)}
	if logger != nil {
		opts = append(opts, sim.WithLogger(logger.WithPrefix(g.ID())))
	}
	s, err := sim.New(settings, opts...)
	if err != nil {
		// Default settings always validate.
		s, _ = sim.New(sim.DefaultSettings(), opts...)
	}
	g.sim = s

	g.cursor = settings.MainAnchor.Add(sim.C(3, 0))
	if !settings.Grid.InBounds(g.cursor) {
		g.cursor = sim.C(0, 0)
	}
	g.paused = false
	g.message = ""
	g.msgTicks = 0
	g.startedAt = g.clock.Now()
	g.endedAt = time.Time{}
	g.endReason = ""
}

// Step applies the frame's commands and advances the simulation one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var res core.StepResult

	if g.sim.Status() == sim.StatusGameOver {
		if in.Has(core.ActionRestart) {
			g.Reset(g.runtime)
			res.AddCue(core.CueStart)
		}
		res.State = g.State()
		return res
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		if g.paused {
			g.clock.Pause()
		} else {
			g.clock.Resume()
		}
	}
	if g.paused {
		res.State = g.State()
		return res
	}

	g.moveCursor(in)
	if slot := in.Slot(); slot > 0 {
		g.useSlot(slot, &res)
	} else if in.Has(core.ActionConfirm) {
		g.useSlot(1, &res)
	}
	if in.Has(core.ActionSell) {
		g.sell(&res)
	}

	tick := g.sim.Tick()
	g.collectCues(tick, &res)

	econ := g.sim.Economy()
	g.sim.SetSpawnInterval(g.difficulty.SpawnInterval(
		ms(g.cfg.Waves.SpawnIntervalMs),
		ms(g.cfg.Waves.MinSpawnIntervalMs),
		econ.Score,
		int(g.sim.TickCount()),
	))

	if tick.GameOver {
		g.endedAt = g.clock.Now()
		g.endReason = "destroyed"
	}

	if g.msgTicks > 0 {
		g.msgTicks--
		if g.msgTicks == 0 {
			g.message = ""
		}
	}

	res.State = g.State()
	return res
}

func (g *Game) collectCues(tick sim.TickResult, res *core.StepResult) {
	if tick.StatusChanged && tick.Status == sim.StatusPlaying {
		res.AddCue(core.CueStart)
	}
	if len(tick.Shots) > 0 {
		res.AddCue(core.CueShot)
	}
	if len(tick.Kills) > 0 {
		res.AddCue(core.CueKill)
	}
	if len(tick.Destroyed) > 0 {
		res.AddCue(core.CueDestroyed)
	}
	if tick.GameOver {
		res.AddCue(core.CueGameOver)
	}
}

func (g *Game) moveCursor(in core.InputFrame) {
	c := g.cursor
	switch {
	case in.Has(core.ActionUp):
		c.Y--
	case in.Has(core.ActionDown):
		c.Y++
	case in.Has(core.ActionLeft):
		c.X--
	case in.Has(core.ActionRight):
		c.X++
	}
	g.SetCursor(c)
}

// SetCursor moves the cursor, clamped to the grid.
func (g *Game) SetCursor(c sim.Cell) {
	grid := g.sim.Settings().Grid
	c.X = max(0, min(grid.W-1, c.X))
	c.Y = max(0, min(grid.H-1, c.Y))
	g.cursor = c
}

// Cursor returns the selected cell.
func (g *Game) Cursor() sim.Cell {
	return g.cursor
}

func (g *Game) setMessage(text string, ok bool) {
	g.message = text
	g.messageOK = ok
	g.msgTicks = messageTicks
}

// Message returns the last command result and whether it succeeded.
func (g *Game) Message() (string, bool) {
	return g.message, g.messageOK
}

// Paused reports whether the game is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Sim exposes the running simulation.
func (g *Game) Sim() *sim.Sim {
	return g.sim
}

// Snapshot returns the current simulation snapshot.
func (g *Game) Snapshot() sim.Snapshot {
	return g.sim.Snapshot()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.sim.Economy().Score,
		GameOver: g.sim.Status() == sim.StatusGameOver,
		Paused:   g.paused,
	}
}

// RunSummary describes the game so far. A game that has not ended is
// reported as quit.
func (g *Game) RunSummary() core.RunSummary {
	end := g.endedAt
	reason := g.endReason
	if reason == "" {
		end = g.clock.Now()
		reason = "quit"
	}
	stats := g.sim.Stats()
	return core.RunSummary{
		Seed:      g.sim.Seed(),
		Score:     g.sim.Economy().Score,
		Kills:     stats.Kills,
		Built:     stats.Built,
		Ticks:     int64(stats.Ticks),
		Duration:  end.Sub(g.startedAt),
		EndReason: reason,
	}
}

// HUD returns the one-line summary shown above the board.
func (g *Game) HUD() string {
	econ := g.sim.Economy()
	main := g.sim.Structure(sim.MainStructureID)
	hp := 0
	if main != nil {
		hp = main.Health
	}
	line := fmt.Sprintf("Nuggets: %d  Score: %d  Base: %d  Kills: %d",
		econ.Nuggets, econ.Score, hp, g.sim.Stats().Kills)
	if econ.SpikeBonus > 0 {
		line += fmt.Sprintf("  Spikes: +%d", econ.SpikeBonus)
	}
	return line
}

var (
	_ registry.Game    = (*Game)(nil)
	_ core.RunReporter = (*Game)(nil)
)

func init() {
	registry.Register("basebuilder", func() registry.Game {
		return New()
	})
	registry.Register("basebuilder_rush", func() registry.Game {
		return NewRush()
	})
}
