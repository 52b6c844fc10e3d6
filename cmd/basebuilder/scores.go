package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/chubes4/chubes-games/internal/registry"
	"github.com/chubes4/chubes-games/internal/storage"
)

var (
	flagRuns  bool
	flagClear bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores or recent runs",
	Long: `Display the top high scores for the specified game, or a summary of
every game when none is given.

Examples:
  basebuilder scores
  basebuilder scores basebuilder
  basebuilder scores basebuilder_rush --runs
  basebuilder scores run <run-id>`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

var scoresRunCmd = &cobra.Command{
	Use:   "run <run-id>",
	Short: "Show one recorded run",
	Args:  cobra.ExactArgs(1),
	Run:   runScoresRun,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "List recent runs instead of high scores")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all high scores of the game")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
	scoresCmd.AddCommand(scoresRunCmd)
}

func openStoreOrExit() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runScores(_ *cobra.Command, args []string) {
	if len(args) == 0 {
		showAllStats()
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'basebuilder list' to see available games.")
		os.Exit(1)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store := openStoreOrExit()
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared high scores for %s.\n", title)
	case flagRuns:
		showRuns(store, gameID, title)
	default:
		showScores(store, gameID, title)
	}
}

func showScores(store *storage.Store, gameID, title string) {
	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'basebuilder play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.1f  Kills: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.TotalKills)
	}
}

func showRuns(store *storage.Store, gameID, title string) {
	runs, err := store.RecentRuns(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Recent Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-7s  %-5s  %-5s  %-6s  %-9s  %s\n", "Date", "Score", "Kills", "Built", "Time", "End", "Run")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-7d  %-5d  %-5d  %-6s  %-9s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Score, r.Kills, r.Built,
			r.Duration.Round(time.Second), r.EndReason, r.RunID)
	}
}

func showAllStats() {
	store := openStoreOrExit()
	defer store.Close()

	all, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	if len(all) == 0 {
		fmt.Println("No games played yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-18s  %-6s  %-6s  %-8s  %s\n", "Game", "Games", "Best", "Average", "Last played")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-18s  %-6d  %-6d  %-8.1f  %s\n",
			id, s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func runScoresRun(_ *cobra.Command, args []string) {
	store := openStoreOrExit()
	defer store.Close()

	r, err := store.RunByID(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		os.Exit(1)
	}
	if r == nil {
		fmt.Fprintf(os.Stderr, "Error: no run %q\n", args[0])
		os.Exit(1)
	}

	fmt.Printf("Run %s\n\n", r.RunID)
	fmt.Printf("  Game:     %s\n", r.GameID)
	fmt.Printf("  Played:   %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Seed:     %d\n", r.Seed)
	fmt.Printf("  Score:    %d\n", r.Score)
	fmt.Printf("  Kills:    %d\n", r.Kills)
	fmt.Printf("  Built:    %d\n", r.Built)
	fmt.Printf("  Ticks:    %d\n", r.Ticks)
	fmt.Printf("  Duration: %s\n", r.Duration.Round(time.Second))
	fmt.Printf("  Ended:    %s\n", r.EndReason)
}
