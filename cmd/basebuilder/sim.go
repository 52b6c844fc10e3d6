package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chubes4/chubes-games/internal/games/basebuilder"
)

var (
	flagTicks  int
	flagStepMs int
	flagRush   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Run the simulation without a display and print a YAML report.

The run places a fixed opening (two towers and four walls around the
command center) and then ticks on a simulated clock until --ticks have
passed or the base falls. The same seed, config and step always give
the same report.

Examples:
  basebuilder sim --ticks 3600 --seed 7
  basebuilder sim --rush --difficulty hard --seed 1
  basebuilder sim --config ./my-base.yaml --step-ms 50`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Number of ticks to run")
	simCmd.Flags().IntVar(&flagStepMs, "step-ms", 0, "Simulated milliseconds per tick (default: 1000/fps)")
	simCmd.Flags().BoolVar(&flagRush, "rush", false, "Use the rush rules")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSim(_ *cobra.Command, _ []string) {
	logger, _ := newLogger(false)
	basebuilder.SetConfigPath(flagConfig)
	basebuilder.SetDifficultyPreset(flagDifficulty)

	variant := basebuilder.VariantStandard
	if flagRush {
		variant = basebuilder.VariantRush
	}
	cfg, err := basebuilder.LoadConfig(variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	step := time.Duration(flagStepMs) * time.Millisecond
	if step <= 0 && flagFPS > 0 {
		step = time.Second / time.Duration(flagFPS)
	}

	report, err := basebuilder.RunHeadless(cfg, basebuilder.HeadlessOptions{
		Ticks:  flagTicks,
		Seed:   flagSeed,
		Step:   step,
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
	enc.Close()
}
