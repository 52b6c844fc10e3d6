package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const baseBuilderFile = "basebuilder.yaml"

// LoadBaseBuilder loads base builder configuration.
// Search order: customPath -> ~/.arcade/configs/basebuilder.yaml -> ./configs/basebuilder.yaml -> embedded default
func LoadBaseBuilder(customPath string) (BaseBuilderConfig, error) {
	var cfg BaseBuilderConfig

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(baseBuilderFile); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	if c, ok := tryLoad(filepath.Join("configs", baseBuilderFile)); ok {
		return c, nil
	}

	if err := yaml.Unmarshal(defaultBaseBuilderYAML, &cfg); err != nil {
		return DefaultBaseBuilderConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing, unparsable or invalid
// files are skipped so the next location in the search order is used.
func tryLoad(path string) (BaseBuilderConfig, bool) {
	var cfg BaseBuilderConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyBaseBuilderPreset modifies the config based on a difficulty preset.
func ApplyBaseBuilderPreset(cfg *BaseBuilderConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Economy.StartingNuggets += cfg.Economy.StartingNuggets / 2
		cfg.Clock.CountdownMs += 5000
	case DifficultyHard:
		cfg.Economy.StartingNuggets -= cfg.Economy.StartingNuggets / 4
	}
}

// ApplyRush turns a config into the rush variant: a short countdown, more
// starting funds and a spawn rate that ramps with play time.
func ApplyRush(cfg *BaseBuilderConfig) {
	cfg.Clock.CountdownMs = 3000
	cfg.Economy.StartingNuggets *= 2
	cfg.Waves.SpawnIntervalMs /= 2
	if cfg.Waves.MinSpawnIntervalMs > cfg.Waves.SpawnIntervalMs {
		cfg.Waves.MinSpawnIntervalMs = cfg.Waves.SpawnIntervalMs
	}
	cfg.Difficulty.Progression = ProgressionConfig{Type: "time", MaxAt: 60 * 60 * 3}
}

var knownEffects = map[string]bool{
	"damage":      true,
	"range":       true,
	"fire-rate":   true,
	"projectiles": true,
	"repair":      true,
	"max-health":  true,
	"spikes":      true,
}

var attackEffects = map[string]bool{
	"damage":      true,
	"range":       true,
	"fire-rate":   true,
	"projectiles": true,
}

// Validate reports every inconsistency in the config at once.
func (c BaseBuilderConfig) Validate() error {
	var errs []error

	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid: size must be positive, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Clock.CountdownMs < 0 {
		errs = append(errs, errors.New("clock: countdown_ms must not be negative"))
	}
	if c.Economy.StartingNuggets < 0 {
		errs = append(errs, errors.New("economy: starting_nuggets must not be negative"))
	}
	if c.Economy.CostMultiplier <= 0 {
		errs = append(errs, errors.New("economy: cost_multiplier must be positive"))
	}
	if c.Waves.SpawnIntervalMs <= 0 {
		errs = append(errs, errors.New("waves: spawn_interval_ms must be positive"))
	}
	if c.Waves.MinSpawnIntervalMs > c.Waves.SpawnIntervalMs {
		errs = append(errs, errors.New("waves: min_spawn_interval_ms exceeds spawn_interval_ms"))
	}
	if c.Projectiles.Speed <= 0 {
		errs = append(errs, errors.New("projectiles: speed must be positive"))
	}
	if c.Combat.WindupStep <= 0 {
		errs = append(errs, errors.New("combat: windup_step must be positive"))
	}

	seen := make(map[string]bool)
	for _, s := range c.Structures {
		if s.Kind == "" {
			errs = append(errs, errors.New("structures: kind is required"))
			continue
		}
		if seen[s.Kind] {
			errs = append(errs, fmt.Errorf("structures: duplicate kind %q", s.Kind))
		}
		seen[s.Kind] = true
		if s.MaxHealth <= 0 {
			errs = append(errs, fmt.Errorf("structures.%s: max_health must be positive", s.Kind))
		}
		for _, u := range s.Upgrades {
			switch {
			case !knownEffects[u.Effect]:
				errs = append(errs, fmt.Errorf("structures.%s: upgrade %q has unknown effect %q", s.Kind, u.Key, u.Effect))
			case attackEffects[u.Effect] && s.Attack == nil:
				errs = append(errs, fmt.Errorf("structures.%s: upgrade %q needs an attack", s.Kind, u.Key))
			}
		}
	}

	if main, ok := c.Structure(c.Main.Kind); !ok {
		errs = append(errs, fmt.Errorf("main: kind %q is not a structure", c.Main.Kind))
	} else if main.Buildable {
		errs = append(errs, fmt.Errorf("main: kind %q must not be buildable", c.Main.Kind))
	}

	if len(c.Units) == 0 {
		errs = append(errs, errors.New("units: at least one unit type is required"))
	}
	for _, u := range c.Units {
		if u.Health <= 0 || u.Speed <= 0 {
			errs = append(errs, fmt.Errorf("units.%s: health and speed must be positive", u.Type))
		}
	}

	return errors.Join(errs...)
}
