// Package config provides YAML-based game configuration loading and
// difficulty management for the base builder.
package config

// BaseBuilderConfig contains all configuration for the base builder game.
type BaseBuilderConfig struct {
	Grid        GridConfig        `yaml:"grid"`
	Clock       ClockConfig       `yaml:"clock"`
	Economy     EconomyConfig     `yaml:"economy"`
	Waves       WavesConfig       `yaml:"waves"`
	Movement    MovementConfig    `yaml:"movement"`
	Combat      CombatConfig      `yaml:"combat"`
	Projectiles ProjectileConfig  `yaml:"projectiles"`
	Main        MainConfig        `yaml:"main"`
	Structures  []StructureConfig `yaml:"structures"`
	Units       []UnitConfig      `yaml:"units"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
}

// GridConfig sets the board size in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ClockConfig defines the pre-game countdown.
type ClockConfig struct {
	CountdownMs int `yaml:"countdown_ms"`
}

// EconomyConfig defines starting funds and upgrade price growth.
type EconomyConfig struct {
	StartingNuggets int     `yaml:"starting_nuggets"`
	CostMultiplier  float64 `yaml:"cost_multiplier"` // price factor per upgrade level
}

// WavesConfig defines how often units arrive.
type WavesConfig struct {
	SpawnIntervalMs    int `yaml:"spawn_interval_ms"`
	MinSpawnIntervalMs int `yaml:"min_spawn_interval_ms"` // reached at max difficulty
}

// MovementConfig tunes unit steering and stuck detection.
type MovementConfig struct {
	AggroRange           float64 `yaml:"aggro_range"`
	AttackRange          float64 `yaml:"attack_range"`
	WaypointEpsilon      float64 `yaml:"waypoint_epsilon"`
	StuckDistanceEpsilon float64 `yaml:"stuck_distance_epsilon"`
	StuckFrameLimit      int     `yaml:"stuck_frame_limit"`
	CorridorAfterReplans int     `yaml:"corridor_after_replans"`
	AbandonAfterReplans  int     `yaml:"abandon_after_replans"`
}

// CombatConfig tunes unit attacks.
type CombatConfig struct {
	WindupStep float64 `yaml:"windup_step"`
}

// ProjectileConfig tunes tower projectiles.
type ProjectileConfig struct {
	Speed        float64 `yaml:"speed"` // cells per tick
	HitThreshold float64 `yaml:"hit_threshold"`
}

// MainConfig places the structure the player must defend.
type MainConfig struct {
	Kind    string `yaml:"kind"`
	AnchorX int    `yaml:"anchor_x"`
	AnchorY int    `yaml:"anchor_y"`
}

// Offset is a footprint cell relative to a structure's anchor.
type Offset struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// StructureConfig describes one structure kind.
type StructureConfig struct {
	Kind          string          `yaml:"kind"`
	Name          string          `yaml:"name"`
	MaxHealth     int             `yaml:"max_health"`
	BuildCost     int             `yaml:"build_cost,omitempty"`
	Buildable     bool            `yaml:"buildable,omitempty"`
	Footprint     []Offset        `yaml:"footprint"`
	Attack        *AttackConfig   `yaml:"attack,omitempty"`
	CounterDamage bool            `yaml:"counter_damage,omitempty"`
	Spike         int             `yaml:"spike,omitempty"`
	Upgrades      []UpgradeConfig `yaml:"upgrades"`
}

// AttackConfig holds the base attack of an armed structure.
type AttackConfig struct {
	Damage      int     `yaml:"damage"`
	Range       float64 `yaml:"range"`
	CooldownMs  int     `yaml:"cooldown_ms"`
	Projectiles int     `yaml:"projectiles"`
}

// UpgradeConfig describes a purchasable upgrade.
type UpgradeConfig struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Cost        int    `yaml:"cost"`
	Effect      string `yaml:"effect"`
	Amount      int    `yaml:"amount"`
	Floor       int    `yaml:"floor,omitempty"` // fire-rate only, in ms
	Global      bool   `yaml:"global,omitempty"`
}

// UnitConfig describes a hostile unit type.
type UnitConfig struct {
	Type       string  `yaml:"type"`
	Health     int     `yaml:"health"`
	Damage     int     `yaml:"damage"`
	Speed      float64 `yaml:"speed"` // cells per tick
	CooldownMs int     `yaml:"cooldown_ms"`
	Size       float64 `yaml:"size"`
	Reward     int     `yaml:"reward"`
	Weight     int     `yaml:"weight"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	// SpawnRate is the share of the gap between the base and minimum spawn
	// interval that is removed at max difficulty.
	SpawnRate float64 `yaml:"spawn_rate"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Structure returns the structure entry for kind.
func (c BaseBuilderConfig) Structure(kind string) (StructureConfig, bool) {
	for _, s := range c.Structures {
		if s.Kind == kind {
			return s, true
		}
	}
	return StructureConfig{}, false
}
