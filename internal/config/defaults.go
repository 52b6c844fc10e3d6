package config

import (
	_ "embed"
)

//go:embed defaults/basebuilder.yaml
var defaultBaseBuilderYAML []byte

// DefaultBaseBuilderConfig returns the default base builder configuration.
func DefaultBaseBuilderConfig() BaseBuilderConfig {
	return BaseBuilderConfig{
		Grid:    GridConfig{Width: 43, Height: 32},
		Clock:   ClockConfig{CountdownMs: 10000},
		Economy: EconomyConfig{StartingNuggets: 100, CostMultiplier: 1.5},
		Waves:   WavesConfig{SpawnIntervalMs: 2000, MinSpawnIntervalMs: 600},
		Movement: MovementConfig{
			AggroRange:           10,
			AttackRange:          1.5,
			WaypointEpsilon:      0.1,
			StuckDistanceEpsilon: 0.0025,
			StuckFrameLimit:      20,
			CorridorAfterReplans: 3,
			AbandonAfterReplans:  6,
		},
		Combat:      CombatConfig{WindupStep: 0.15},
		Projectiles: ProjectileConfig{Speed: 0.1, HitThreshold: 0.5},
		Main:        MainConfig{Kind: "command-center", AnchorX: 21, AnchorY: 16},
		Structures: []StructureConfig{
			{
				Kind:      "command-center",
				Name:      "Command Center",
				MaxHealth: 1000,
				Footprint: []Offset{{0, 0}, {0, -1}, {0, 1}, {-1, 0}, {1, 0}},
				Attack:    &AttackConfig{Damage: 20, Range: 8, CooldownMs: 1000, Projectiles: 1},
				Upgrades: []UpgradeConfig{
					{Key: "damage", Name: "Damage", Description: "+5 attack damage", Cost: 29, Effect: "damage", Amount: 5},
					{Key: "range", Name: "Range", Description: "+1 attack range", Cost: 29, Effect: "range", Amount: 1},
					{Key: "fire_rate", Name: "Fire Rate", Description: "-50ms cooldown", Cost: 48, Effect: "fire-rate", Amount: 50, Floor: 100},
					{Key: "projectiles", Name: "Multishot", Description: "+1 projectile per volley", Cost: 125, Effect: "projectiles", Amount: 1},
					{Key: "repair", Name: "Repair", Description: "Restore 250 health", Cost: 20, Effect: "repair", Amount: 250},
					{Key: "max_health", Name: "Fortify", Description: "+250 max health", Cost: 50, Effect: "max-health", Amount: 250},
				},
			},
			{
				Kind:          "wall",
				Name:          "Wall",
				MaxHealth:     300,
				BuildCost:     5,
				Buildable:     true,
				Footprint:     []Offset{{0, 0}},
				CounterDamage: true,
				Upgrades: []UpgradeConfig{
					{Key: "repair", Name: "Repair", Description: "Restore 150 health", Cost: 3, Effect: "repair", Amount: 150},
					{Key: "reinforce", Name: "Reinforce", Description: "+100 max health", Cost: 5, Effect: "max-health", Amount: 100},
				},
			},
			{
				Kind:      "tower",
				Name:      "Tower",
				MaxHealth: 150,
				BuildCost: 35,
				Buildable: true,
				Footprint: []Offset{{0, 0}},
				Attack:    &AttackConfig{Damage: 10, Range: 6, CooldownMs: 500, Projectiles: 1},
				Upgrades: []UpgradeConfig{
					{Key: "damage", Name: "Damage", Description: "+4 attack damage", Cost: 40, Effect: "damage", Amount: 4},
					{Key: "range", Name: "Range", Description: "+1 attack range", Cost: 30, Effect: "range", Amount: 1},
					{Key: "fire_rate", Name: "Fire Rate", Description: "-150ms cooldown", Cost: 45, Effect: "fire-rate", Amount: 150, Floor: 200},
					{Key: "projectiles", Name: "Multishot", Description: "+1 projectile per volley", Cost: 100, Effect: "projectiles", Amount: 1},
					{Key: "repair", Name: "Repair", Description: "Restore 75 health", Cost: 15, Effect: "repair", Amount: 75},
				},
			},
			{
				Kind:      "upgrade-center",
				Name:      "Upgrade Center",
				MaxHealth: 400,
				BuildCost: 60,
				Buildable: true,
				Footprint: []Offset{{0, 0}},
				Upgrades: []UpgradeConfig{
					{Key: "spikes", Name: "Wall Spikes", Description: "Walls deal +10 damage to attackers", Cost: 150, Effect: "spikes", Amount: 10, Global: true},
					{Key: "repair", Name: "Repair", Description: "Restore 100 health", Cost: 15, Effect: "repair", Amount: 100},
				},
			},
		},
		Units: []UnitConfig{
			{Type: "basic", Health: 100, Damage: 10, Speed: 0.02, CooldownMs: 1500, Size: 0.6, Reward: 1, Weight: 10},
			{Type: "fast", Health: 60, Damage: 8, Speed: 0.035, CooldownMs: 1200, Size: 0.5, Reward: 2, Weight: 3},
			{Type: "heavy", Health: 200, Damage: 20, Speed: 0.01, CooldownMs: 2000, Size: 0.8, Reward: 3, Weight: 2},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 300,
			},
			Scaling: ScalingConfig{
				SpawnRate: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBaseBuilderYAML
}
