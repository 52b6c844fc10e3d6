// basebuilder is a tower defense game for the terminal, a desktop window
// or remote play over SSH.
//
// Usage:
//
//	basebuilder play [game]     - Play a game (basebuilder or basebuilder_rush)
//	basebuilder menu            - Pick a game and view scores interactively
//	basebuilder serve           - Start SSH server for remote play
//	basebuilder scores <game>   - Show high scores or recent runs
//	basebuilder list            - List available games
//	basebuilder sim             - Run a headless simulation and print a report
//	basebuilder config          - Print or validate a game config
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level>  - Set log level (debug, info, warn, error)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chubes4/chubes-games/internal/games/basebuilder"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "basebuilder",
	Short: "Base Builder - Defend your command center",
	Long: `Base Builder is a tower defense game. Build walls and towers around
your command center before the waves arrive, then keep it standing
as long as you can.

Available commands:
  play     - Play a game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs
  list     - Show all available games
  sim      - Run a headless simulation
  config   - Print or validate a config file

Examples:
  basebuilder play
  basebuilder play basebuilder_rush --difficulty hard
  basebuilder play --gui --sound
  basebuilder serve --ssh :2222
  basebuilder sim --ticks 3600 --seed 7`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. Full-screen modes log to
// ~/.arcade/basebuilder.log so output does not tear the display; the
// returned func closes the file.
func newLogger(toFile bool) (*log.Logger, func()) {
	var out io.Writer = os.Stderr
	closeFn := func() {}

	if toFile {
		out = io.Discard
		if home, err := os.UserHomeDir(); err == nil {
			dir := filepath.Join(home, ".arcade")
			if err := os.MkdirAll(dir, 0o755); err == nil {
				f, err := os.OpenFile(filepath.Join(dir, "basebuilder.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
				if err == nil {
					out = f
					closeFn = func() { f.Close() }
				}
			}
		}
	}

	logger := log.NewWithOptions(out, log.Options{ReportTimestamp: true})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	basebuilder.SetLogger(logger)
	return logger, closeFn
}
