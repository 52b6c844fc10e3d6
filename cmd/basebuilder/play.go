package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chubes4/chubes-games/internal/core"
	"github.com/chubes4/chubes-games/internal/games/basebuilder"
	"github.com/chubes4/chubes-games/internal/platform/audio"
	"github.com/chubes4/chubes-games/internal/platform/gui"
	"github.com/chubes4/chubes-games/internal/platform/tui"
	"github.com/chubes4/chubes-games/internal/registry"
	"github.com/chubes4/chubes-games/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagGUI        bool
	flagSound      bool
	flagVolume     float64
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: basebuilder).

Controls:
  Arrows/WASD/HJKL  - Move cursor
  1-6               - Run the numbered build or upgrade option
  Enter/Space       - Run option 1
  X/Delete          - Sell the structure under the cursor
  P                 - Pause
  R                 - Restart (after game over)
  Esc               - Back to menu
  Q/Ctrl+C          - Quit

In the window (--gui) click a cell to select it, click it again to run
option 1 and right click to sell.

Difficulty options:
  easy   - More funds and a longer countdown
  normal - Default rules
  hard   - Fewer funds and faster waves from the start
  fixed  - No progression, spawn rate stays at the initial level

Examples:
  basebuilder play
  basebuilder play basebuilder_rush
  basebuilder play --difficulty hard
  basebuilder play --gui --sound
  basebuilder play --config ./my-base.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagGUI, "gui", false, "Play in a desktop window")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume from 0 to 1")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "basebuilder"
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'basebuilder list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog := newLogger(!flagGUI)
	basebuilder.SetConfigPath(flagConfig)
	basebuilder.SetDifficultyPreset(flagDifficulty)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	player := openSound(logger)

	if flagGUI {
		err = playWindow(gameID, store, cfg, player, logger)
	} else {
		err = playTerminal(gameID, store, cfg, player, logger)
	}

	if player != nil {
		player.Close()
	}
	if store != nil {
		store.Close()
	}
	closeLog()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// openSound returns nil when sound is off or no output device works.
func openSound(logger *log.Logger) *audio.Player {
	if !flagSound {
		return nil
	}
	player, err := audio.Open(flagVolume)
	if err != nil {
		logger.Warn("sound disabled", "err", err)
		return nil
	}
	return player
}

func playTerminal(gameID string, store *storage.Store, cfg core.RuntimeConfig, player *audio.Player, logger *log.Logger) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	opts := []tui.ModelOption{tui.WithLogger(logger)}
	if player != nil {
		opts = append(opts, tui.WithCuePlayer(player))
	}
	_, err = tui.Run(game, store, cfg, opts...)
	return err
}

func playWindow(gameID string, store *storage.Store, cfg core.RuntimeConfig, player *audio.Player, logger *log.Logger) error {
	game := basebuilder.New()
	if gameID == "basebuilder_rush" {
		game = basebuilder.NewRush()
	}
	opts := []gui.Option{gui.WithLogger(logger)}
	if player != nil {
		opts = append(opts, gui.WithCuePlayer(player))
	}
	return gui.Run(game, store, cfg, opts...)
}
