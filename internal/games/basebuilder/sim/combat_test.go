package sim

import "testing"

// attackerAt places a unit already attacking target.
func attackerAt(t *testing.T, s *Sim, pos Point, target *Structure) *Unit {
	t.Helper()
	u := addUnit(t, s, "basic", pos)
	u.TargetID = target.ID
	u.State = UnitAttacking
	return u
}

func combatSim(t *testing.T) (*Sim, *ManualClock) {
	t.Helper()
	return playingSim(t, func(st *Settings) {
		smallGrid(st)
		unarmedMain(st)
	})
}

func TestSpikesHurtAttacker(t *testing.T) {
	s, clock := combatSim(t)
	s.economy.SpikeBonus = 10
	wall := addStructure(t, s, KindWall, C(1, 0))
	u := attackerAt(t, s, P(0, 0), wall)

	for i := 0; i < 50 && wall.Health == wall.MaxHealth; i++ {
		tickN(s, clock, 1)
	}

	if wall.Health != wall.MaxHealth-u.Damage {
		t.Fatalf("wall health = %d, expected %d", wall.Health, wall.MaxHealth-u.Damage)
	}
	if u.Health != u.MaxHealth-10 {
		t.Errorf("unit health = %d, expected %d", u.Health, u.MaxHealth-10)
	}
}

func TestNoSpikesWithoutBonus(t *testing.T) {
	s, clock := combatSim(t)
	wall := addStructure(t, s, KindWall, C(1, 0))
	u := attackerAt(t, s, P(0, 0), wall)

	tickN(s, clock, 50)

	if wall.Health == wall.MaxHealth {
		t.Fatal("wall was never hit")
	}
	if u.Health != u.MaxHealth {
		t.Errorf("unit health = %d, expected %d", u.Health, u.MaxHealth)
	}
}

func TestAttackCooldown(t *testing.T) {
	s, clock := combatSim(t)
	wall := addStructure(t, s, KindWall, C(1, 0))
	u := attackerAt(t, s, P(0, 0), wall)

	// The first windup starts on tick 1 and lands 7 ticks later; the next
	// one may only start once the 1.5s cooldown has passed.
	tickN(s, clock, 90)
	if expected := wall.MaxHealth - u.Damage; wall.Health != expected {
		t.Errorf("after 90 ticks wall health = %d, expected %d", wall.Health, expected)
	}

	tickN(s, clock, 60)
	if expected := wall.MaxHealth - 2*u.Damage; wall.Health != expected {
		t.Errorf("after 150 ticks wall health = %d, expected %d", wall.Health, expected)
	}
}

func TestWindupProgress(t *testing.T) {
	s, clock := combatSim(t)
	wall := addStructure(t, s, KindWall, C(1, 0))
	u := attackerAt(t, s, P(0, 0), wall)

	tickN(s, clock, 1)
	if !u.Winding || u.Windup != 0 {
		t.Fatalf("after first tick Winding = %v, Windup = %v, expected a fresh windup", u.Winding, u.Windup)
	}
	tickN(s, clock, 3)
	if u.Windup <= 0 || u.Windup >= 1 {
		t.Errorf("Windup = %v, expected between 0 and 1", u.Windup)
	}
	if wall.Health != wall.MaxHealth {
		t.Errorf("wall hit before windup completed")
	}
}

func TestDestroyedWallIsRemoved(t *testing.T) {
	s, clock := combatSim(t)
	wall := addStructure(t, s, KindWall, C(1, 0))
	wall.Health = 5
	attackerAt(t, s, P(0, 0), wall)

	var destroyed []DestroyedEvent
	for i := 0; i < 20; i++ {
		clock.Advance(frame)
		res := s.Tick()
		destroyed = append(destroyed, res.Destroyed...)
	}

	if len(destroyed) != 1 || destroyed[0].ID != wall.ID {
		t.Fatalf("destroyed = %v, expected only %q", destroyed, wall.ID)
	}
	if wall.Health != 0 {
		t.Errorf("wall health = %d, expected clamp to 0", wall.Health)
	}
	if s.Structure(wall.ID) != nil {
		t.Error("destroyed wall still listed")
	}
	if s.StructureAt(C(1, 0)) != nil {
		t.Error("destroyed wall still occupies its cell")
	}
}

func TestMainDestroyedEndsGame(t *testing.T) {
	s, clock := combatSim(t)
	s.main.Health = 5
	attackerAt(t, s, P(5, 3), s.main)

	gameOver := false
	for i := 0; i < 20 && !gameOver; i++ {
		clock.Advance(frame)
		res := s.Tick()
		gameOver = res.GameOver
		if gameOver && !res.StatusChanged {
			t.Error("StatusChanged = false on the game-over tick")
		}
	}

	if !gameOver || s.Status() != StatusGameOver {
		t.Fatalf("Status() = %v, expected %v", s.Status(), StatusGameOver)
	}
	snap := s.Snapshot()
	if snap.Main.ID != MainStructureID || snap.Main.Health != 0 {
		t.Errorf("snapshot main = %+v, expected the main structure at 0 health", snap.Main)
	}

	before := s.TickCount()
	res := s.Tick()
	if res.Status != StatusGameOver || res.GameOver {
		t.Errorf("Tick() after game over = %+v, expected a no-op", res)
	}
	if s.TickCount() != before+1 {
		t.Errorf("TickCount() = %d, expected %d", s.TickCount(), before+1)
	}
	if r := s.Place(KindWall, C(0, 9)); r.OK || r.Reason != ReasonGameOver {
		t.Errorf("Place() after game over = %+v, expected reason %q", r, ReasonGameOver)
	}
}

func TestKillRewardPaidOnce(t *testing.T) {
	s, _ := combatSim(t)
	u := addUnit(t, s, "heavy", P(0, 0))
	start := s.Economy()

	var res TickResult
	s.damageUnit(u.ID, u.Health+50, CauseProjectile, &res)
	s.damageUnit(u.ID, 10, CauseProjectile, &res)

	if u.Health != 0 {
		t.Errorf("unit health = %d, expected 0", u.Health)
	}
	econ := s.Economy()
	if econ.Nuggets != start.Nuggets+u.Reward || econ.Score != start.Score+u.Reward {
		t.Errorf("economy = %+v, expected one reward of %d on top of %+v", econ, u.Reward, start)
	}
	if len(res.Kills) != 1 || s.Stats().Kills != 1 {
		t.Errorf("kills = %d events, %d total, expected 1", len(res.Kills), s.Stats().Kills)
	}
}
