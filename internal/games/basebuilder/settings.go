package basebuilder

import (
	"fmt"
	"time"

	"github.com/chubes4/chubes-games/internal/config"
	"github.com/chubes4/chubes-games/internal/games/basebuilder/sim"
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// SettingsFromConfig converts a YAML config into simulation settings.
func SettingsFromConfig(cfg config.BaseBuilderConfig) (sim.Settings, error) {
	if err := cfg.Validate(); err != nil {
		return sim.Settings{}, fmt.Errorf("basebuilder: %w", err)
	}

	catalog := sim.Catalog{Structures: make(map[sim.Kind]sim.StructureSpec, len(cfg.Structures))}
	for _, sc := range cfg.Structures {
		spec := sim.StructureSpec{
			Kind:          sim.Kind(sc.Kind),
			Name:          sc.Name,
			MaxHealth:     sc.MaxHealth,
			BuildCost:     sc.BuildCost,
			Buildable:     sc.Buildable,
			CounterDamage: sc.CounterDamage,
			Spike:         sc.Spike,
		}
		for _, off := range sc.Footprint {
			spec.Footprint = append(spec.Footprint, sim.C(off.X, off.Y))
		}
		if sc.Attack != nil {
			spec.Attack = &sim.AttackSpec{
				Damage:      sc.Attack.Damage,
				Range:       sc.Attack.Range,
				Cooldown:    ms(sc.Attack.CooldownMs),
				Projectiles: sc.Attack.Projectiles,
			}
		}
		for _, uc := range sc.Upgrades {
			spec.Upgrades = append(spec.Upgrades, sim.UpgradeSpec{
				Key:         uc.Key,
				Name:        uc.Name,
				Description: uc.Description,
				Cost:        uc.Cost,
				Effect:      sim.UpgradeEffect(uc.Effect),
				Amount:      uc.Amount,
				Floor:       uc.Floor,
				Global:      uc.Global,
			})
		}
		catalog.Structures[spec.Kind] = spec
	}

	for _, uc := range cfg.Units {
		catalog.Units = append(catalog.Units, sim.UnitSpec{
			Type:     uc.Type,
			Health:   uc.Health,
			Damage:   uc.Damage,
			Speed:    uc.Speed,
			Cooldown: ms(uc.CooldownMs),
			Size:     uc.Size,
			Reward:   uc.Reward,
			Weight:   uc.Weight,
		})
	}

	settings := sim.Settings{
		Grid:            sim.Grid{W: cfg.Grid.Width, H: cfg.Grid.Height},
		MainKind:        sim.Kind(cfg.Main.Kind),
		MainAnchor:      sim.C(cfg.Main.AnchorX, cfg.Main.AnchorY),
		Countdown:       ms(cfg.Clock.CountdownMs),
		StartingNuggets: cfg.Economy.StartingNuggets,
		CostMultiplier:  cfg.Economy.CostMultiplier,
		SpawnInterval:   ms(cfg.Waves.SpawnIntervalMs),
		Movement: sim.MovementSettings{
			AggroRange:           cfg.Movement.AggroRange,
			AttackRange:          cfg.Movement.AttackRange,
			WaypointEpsilon:      cfg.Movement.WaypointEpsilon,
			StuckDistanceEpsilon: cfg.Movement.StuckDistanceEpsilon,
			StuckFrameLimit:      cfg.Movement.StuckFrameLimit,
			CorridorAfterReplans: cfg.Movement.CorridorAfterReplans,
			AbandonAfterReplans:  cfg.Movement.AbandonAfterReplans,
		},
		Combat:      sim.CombatSettings{WindupStep: cfg.Combat.WindupStep},
		Projectiles: sim.ProjectileSettings{Speed: cfg.Projectiles.Speed, HitThreshold: cfg.Projectiles.HitThreshold},
		Catalog:     catalog,
	}
	if err := settings.Validate(); err != nil {
		return sim.Settings{}, err
	}
	return settings, nil
}
