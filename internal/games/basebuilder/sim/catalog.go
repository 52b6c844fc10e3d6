package sim

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Kind identifies a structure type.
type Kind string

// Structure kinds in the default catalog.
const (
	KindCommandCenter Kind = "command-center"
	KindWall          Kind = "wall"
	KindTower         Kind = "tower"
	KindUpgradeCenter Kind = "upgrade-center"
)

// UpgradeEffect describes what an upgrade changes.
type UpgradeEffect string

const (
	EffectDamage      UpgradeEffect = "damage"      // attack damage +Amount
	EffectRange       UpgradeEffect = "range"       // attack range +Amount
	EffectFireRate    UpgradeEffect = "fire-rate"   // cooldown -Amount ms, not below Floor ms
	EffectProjectiles UpgradeEffect = "projectiles" // projectiles per volley +Amount
	EffectRepair      UpgradeEffect = "repair"      // health +Amount, capped at max health
	EffectMaxHealth   UpgradeEffect = "max-health"  // max health and health +Amount
	EffectSpikes      UpgradeEffect = "spikes"      // global counter-damage bonus +Amount
)

// NeedsAttack reports whether the effect modifies attack stats.
func (e UpgradeEffect) NeedsAttack() bool {
	switch e {
	case EffectDamage, EffectRange, EffectFireRate, EffectProjectiles:
		return true
	}
	return false
}

// UpgradeSpec is one purchasable upgrade of a structure kind.
type UpgradeSpec struct {
	Key         string
	Name        string
	Description string
	Cost        int
	Effect      UpgradeEffect
	Amount      int
	Floor       int
	Global      bool
}

// Scales reports whether repeated purchases get more expensive.
// Repairs always cost their base amount.
func (u UpgradeSpec) Scales() bool {
	return u.Effect != EffectRepair
}

// AttackSpec holds the base attack stats of an armed structure.
type AttackSpec struct {
	Damage      int
	Range       float64
	Cooldown    time.Duration
	Projectiles int
}

// StructureSpec describes a structure kind.
type StructureSpec struct {
	Kind          Kind
	Name          string
	MaxHealth     int
	BuildCost     int
	Buildable     bool
	Footprint     Footprint
	Attack        *AttackSpec
	CounterDamage bool
	Spike         int
	Upgrades      []UpgradeSpec
}

// Upgrade looks up an upgrade by key.
func (s StructureSpec) Upgrade(key string) (UpgradeSpec, bool) {
	for _, u := range s.Upgrades {
		if u.Key == key {
			return u, true
		}
	}
	return UpgradeSpec{}, false
}

// UnitSpec describes a hostile unit type.
type UnitSpec struct {
	Type     string
	Health   int
	Damage   int
	Speed    float64 // cells per tick
	Cooldown time.Duration
	Size     float64
	Reward   int
	Weight   int
}

// Catalog is the table of structure and unit types a simulation uses.
type Catalog struct {
	Structures map[Kind]StructureSpec
	Units      []UnitSpec
}

// Structure returns the spec for a kind.
func (c Catalog) Structure(kind Kind) (StructureSpec, bool) {
	s, ok := c.Structures[kind]
	return s, ok
}

// BuildableKinds returns the kinds a player may place, cheapest first.
func (c Catalog) BuildableKinds() []Kind {
	var kinds []Kind
	for k, s := range c.Structures {
		if s.Buildable {
			kinds = append(kinds, k)
		}
	}
	sort.Slice(kinds, func(i, j int) bool {
		ci, cj := c.Structures[kinds[i]].BuildCost, c.Structures[kinds[j]].BuildCost
		if ci != cj {
			return ci < cj
		}
		return kinds[i] < kinds[j]
	})
	return kinds
}

// MovementSettings tunes unit movement and stuck handling.
type MovementSettings struct {
	AggroRange           float64
	AttackRange          float64
	WaypointEpsilon      float64
	StuckDistanceEpsilon float64
	StuckFrameLimit      int
	// Stuck-triggered re-plans before switching to BFS corridor search.
	CorridorAfterReplans int
	// Stuck-triggered re-plans before the sticky target is dropped.
	AbandonAfterReplans int
}

// CombatSettings tunes unit attacks.
type CombatSettings struct {
	WindupStep float64 // windup progress added per tick
}

// ProjectileSettings tunes projectiles.
type ProjectileSettings struct {
	Speed        float64 // cells per tick
	HitThreshold float64
}

// Settings is everything a simulation needs to run.
type Settings struct {
	Grid            Grid
	MainKind        Kind
	MainAnchor      Cell
	Countdown       time.Duration
	StartingNuggets int
	CostMultiplier  float64
	SpawnInterval   time.Duration
	Movement        MovementSettings
	Combat          CombatSettings
	Projectiles     ProjectileSettings
	Catalog         Catalog
}

// DefaultSettings returns the standard 43x32 game.
func DefaultSettings() Settings {
	grid := Grid{W: 43, H: 32}
	return Settings{
		Grid:            grid,
		MainKind:        KindCommandCenter,
		MainAnchor:      C(21, 16),
		Countdown:       10 * time.Second,
		StartingNuggets: 100,
		CostMultiplier:  1.5,
		SpawnInterval:   2 * time.Second,
		Movement: MovementSettings{
			AggroRange:           10,
			AttackRange:          1.5,
			WaypointEpsilon:      0.1,
			StuckDistanceEpsilon: 0.0025,
			StuckFrameLimit:      20,
			CorridorAfterReplans: 3,
			AbandonAfterReplans:  6,
		},
		Combat:      CombatSettings{WindupStep: 0.15},
		Projectiles: ProjectileSettings{Speed: 0.1, HitThreshold: 0.5},
		Catalog:     DefaultCatalog(),
	}
}

// DefaultCatalog returns the standard structures and units.
func DefaultCatalog() Catalog {
	return Catalog{
		Structures: map[Kind]StructureSpec{
			KindCommandCenter: {
				Kind:      KindCommandCenter,
				Name:      "Command Center",
				MaxHealth: 1000,
				Footprint: FootprintPlus,
				Attack:    &AttackSpec{Damage: 20, Range: 8, Cooldown: 1000 * time.Millisecond, Projectiles: 1},
				Upgrades: []UpgradeSpec{
					{Key: "damage", Name: "Damage", Description: "+5 attack damage", Cost: 29, Effect: EffectDamage, Amount: 5},
					{Key: "range", Name: "Range", Description: "+1 attack range", Cost: 29, Effect: EffectRange, Amount: 1},
					{Key: "fire_rate", Name: "Fire Rate", Description: "-50ms cooldown", Cost: 48, Effect: EffectFireRate, Amount: 50, Floor: 100},
					{Key: "projectiles", Name: "Multishot", Description: "+1 projectile per volley", Cost: 125, Effect: EffectProjectiles, Amount: 1},
					{Key: "repair", Name: "Repair", Description: "Restore 250 health", Cost: 20, Effect: EffectRepair, Amount: 250},
					{Key: "max_health", Name: "Fortify", Description: "+250 max health", Cost: 50, Effect: EffectMaxHealth, Amount: 250},
				},
			},
			KindWall: {
				Kind:          KindWall,
				Name:          "Wall",
				MaxHealth:     300,
				BuildCost:     5,
				Buildable:     true,
				Footprint:     FootprintSingle,
				CounterDamage: true,
				Upgrades: []UpgradeSpec{
					{Key: "repair", Name: "Repair", Description: "Restore 150 health", Cost: 3, Effect: EffectRepair, Amount: 150},
					{Key: "reinforce", Name: "Reinforce", Description: "+100 max health", Cost: 5, Effect: EffectMaxHealth, Amount: 100},
				},
			},
			KindTower: {
				Kind:      KindTower,
				Name:      "Tower",
				MaxHealth: 150,
				BuildCost: 35,
				Buildable: true,
				Footprint: FootprintSingle,
				Attack:    &AttackSpec{Damage: 10, Range: 6, Cooldown: 500 * time.Millisecond, Projectiles: 1},
				Upgrades: []UpgradeSpec{
					{Key: "damage", Name: "Damage", Description: "+4 attack damage", Cost: 40, Effect: EffectDamage, Amount: 4},
					{Key: "range", Name: "Range", Description: "+1 attack range", Cost: 30, Effect: EffectRange, Amount: 1},
					{Key: "fire_rate", Name: "Fire Rate", Description: "-150ms cooldown", Cost: 45, Effect: EffectFireRate, Amount: 150, Floor: 200},
					{Key: "projectiles", Name: "Multishot", Description: "+1 projectile per volley", Cost: 100, Effect: EffectProjectiles, Amount: 1},
					{Key: "repair", Name: "Repair", Description: "Restore 75 health", Cost: 15, Effect: EffectRepair, Amount: 75},
				},
			},
			KindUpgradeCenter: {
				Kind:      KindUpgradeCenter,
				Name:      "Upgrade Center",
				MaxHealth: 400,
				BuildCost: 60,
				Buildable: true,
				Footprint: FootprintSingle,
				Upgrades: []UpgradeSpec{
					{Key: "spikes", Name: "Wall Spikes", Description: "Walls deal +10 damage to attackers", Cost: 150, Effect: EffectSpikes, Amount: 10, Global: true},
					{Key: "repair", Name: "Repair", Description: "Restore 100 health", Cost: 15, Effect: EffectRepair, Amount: 100},
				},
			},
		},
		Units: []UnitSpec{
			{Type: "basic", Health: 100, Damage: 10, Speed: 0.02, Cooldown: 1500 * time.Millisecond, Size: 0.6, Reward: 1, Weight: 10},
			{Type: "fast", Health: 60, Damage: 8, Speed: 0.035, Cooldown: 1200 * time.Millisecond, Size: 0.5, Reward: 2, Weight: 3},
			{Type: "heavy", Health: 200, Damage: 20, Speed: 0.01, Cooldown: 2000 * time.Millisecond, Size: 0.8, Reward: 3, Weight: 2},
		},
	}
}

// Validate checks the settings for values the simulation cannot run with.
func (s Settings) Validate() error {
	var errs []error
	if s.Grid.W <= 0 || s.Grid.H <= 0 {
		errs = append(errs, fmt.Errorf("grid must be positive, got %dx%d", s.Grid.W, s.Grid.H))
	}
	if s.CostMultiplier <= 0 {
		errs = append(errs, fmt.Errorf("cost multiplier must be positive, got %v", s.CostMultiplier))
	}
	if s.StartingNuggets < 0 {
		errs = append(errs, fmt.Errorf("starting nuggets must not be negative, got %d", s.StartingNuggets))
	}
	if s.Projectiles.Speed <= 0 {
		errs = append(errs, errors.New("projectile speed must be positive"))
	}
	if s.Combat.WindupStep <= 0 {
		errs = append(errs, errors.New("windup step must be positive"))
	}

	main, ok := s.Catalog.Structure(s.MainKind)
	if !ok {
		errs = append(errs, fmt.Errorf("main structure kind %q not in catalog", s.MainKind))
	} else {
		for _, c := range main.Footprint.Cells(s.MainAnchor) {
			if !s.Grid.InBounds(c) {
				errs = append(errs, fmt.Errorf("main structure cell %v outside grid", c))
				break
			}
		}
	}

	for kind, spec := range s.Catalog.Structures {
		if spec.MaxHealth <= 0 {
			errs = append(errs, fmt.Errorf("structure %q: max health must be positive", kind))
		}
		for _, u := range spec.Upgrades {
			if u.Effect.NeedsAttack() && spec.Attack == nil {
				errs = append(errs, fmt.Errorf("structure %q: upgrade %q needs an attack", kind, u.Key))
			}
			if u.Cost < 0 {
				errs = append(errs, fmt.Errorf("structure %q: upgrade %q has negative cost", kind, u.Key))
			}
		}
	}

	if len(s.Catalog.Units) == 0 {
		errs = append(errs, errors.New("unit catalog is empty"))
	}
	for _, u := range s.Catalog.Units {
		if u.Health <= 0 || u.Speed <= 0 {
			errs = append(errs, fmt.Errorf("unit %q: health and speed must be positive", u.Type))
		}
		if u.Weight < 0 {
			errs = append(errs, fmt.Errorf("unit %q: weight must not be negative", u.Type))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("sim: invalid settings: %w", errors.Join(errs...))
	}
	return nil
}
