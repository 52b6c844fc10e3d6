package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chubes4/chubes-games/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default game config",
	Long: `Print the built-in game config as YAML. Save it to
~/.arcade/configs/basebuilder.yaml or ./configs/basebuilder.yaml to
override the defaults, or pass it with --config.

Examples:
  basebuilder config > my-base.yaml
  basebuilder config validate my-base.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		os.Stdout.Write(config.DefaultYAML())
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a config file",
	Args:  cobra.ExactArgs(1),
	Run:   runConfigValidate,
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}

func runConfigValidate(_ *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var cfg config.BaseBuilderConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid %s: %v\n", args[0], err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid %s: %v\n", args[0], err)
		os.Exit(1)
	}
	fmt.Printf("%s is valid: %dx%d grid, %d structures, %d unit types\n",
		args[0], cfg.Grid.Width, cfg.Grid.Height, len(cfg.Structures), len(cfg.Units))
}
