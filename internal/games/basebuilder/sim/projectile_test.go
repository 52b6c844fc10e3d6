package sim

import "testing"

func fire(s *Sim, from Point, u *Unit, damage int) *Projectile {
	var res TickResult
	s.applyEffects([]Effect{SpawnProjectile{Source: "test", From: from, Target: u.ID, TargetPos: u.Pos, Damage: damage}}, &res)
	return s.projectiles[len(s.projectiles)-1]
}

func TestProjectileHitKillsAndRewards(t *testing.T) {
	s, clock := playingSim(t, nil)
	u := addUnit(t, s, "basic", P(6, 5))
	p := fire(s, P(5, 5), u, 100)
	start := s.Economy()

	var kills []KillEvent
	for i := 0; i < 30; i++ {
		clock.Advance(frame)
		kills = append(kills, s.Tick().Kills...)
	}

	if p.Active {
		t.Error("projectile still active after reaching its target")
	}
	if len(kills) != 1 || kills[0].Unit != u.ID || kills[0].Cause != CauseProjectile {
		t.Fatalf("kills = %+v, expected unit %d by projectile", kills, u.ID)
	}
	if got := s.Economy().Nuggets; got != start.Nuggets+u.Reward {
		t.Errorf("Nuggets = %d, expected %d", got, start.Nuggets+u.Reward)
	}
	if len(s.units) != 0 || len(s.projectiles) != 0 {
		t.Errorf("units = %d, projectiles = %d, expected both swept", len(s.units), len(s.projectiles))
	}
}

func TestProjectileTracksMovingTarget(t *testing.T) {
	s, clock := playingSim(t, nil)
	u := addUnit(t, s, "fast", P(8, 5))
	p := fire(s, P(5, 5), u, 1)

	tickN(s, clock, 5)
	if p.TargetPos != u.Pos {
		t.Errorf("TargetPos = %v, expected unit position %v", p.TargetPos, u.Pos)
	}
}

func TestProjectileFizzlesWhenTargetDies(t *testing.T) {
	s, clock := playingSim(t, nil)
	u := addUnit(t, s, "basic", P(8, 5))
	p := fire(s, P(5, 5), u, 50)
	aim := u.Pos

	var res TickResult
	s.damageUnit(u.ID, u.Health, CauseSpike, &res)
	after := s.Economy()

	for i := 0; i < 60 && p.Active; i++ {
		tickN(s, clock, 1)
	}

	if p.Active {
		t.Fatal("projectile never fizzled")
	}
	if p.Pos.Dist(aim) >= s.settings.Projectiles.HitThreshold {
		t.Errorf("projectile stopped at %v, expected near last known position %v", p.Pos, aim)
	}
	if s.Economy() != after {
		t.Errorf("economy = %+v, expected unchanged %+v", s.Economy(), after)
	}
}
