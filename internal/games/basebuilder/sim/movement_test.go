package sim

import "testing"

func TestUnitWalksToMainAndAttacks(t *testing.T) {
	s, clock := playingSim(t, func(st *Settings) {
		smallGrid(st)
		unarmedMain(st)
	})
	u := addUnit(t, s, "basic", P(0, 0))

	attacking := false
	for i := 0; i < 1500 && !attacking; i++ {
		tickN(s, clock, 1)
		attacking = u.State == UnitAttacking
	}
	if !attacking {
		t.Fatalf("unit never reached attack range, stuck at %v", u.Pos)
	}
	if u.TargetID != MainStructureID {
		t.Errorf("TargetID = %q, expected %q", u.TargetID, MainStructureID)
	}
	if d := s.main.DistanceTo(u.Pos); d > s.settings.Movement.AttackRange {
		t.Errorf("attacking from distance %v, expected at most %v", d, s.settings.Movement.AttackRange)
	}

	tickN(s, clock, 200)
	if s.main.Health >= s.main.MaxHealth {
		t.Errorf("main health = %d, expected damage", s.main.Health)
	}
}

func TestOffCentreUnitOnPerimeterAttacks(t *testing.T) {
	s, clock := playingSim(t, func(st *Settings) {
		smallGrid(st)
		unarmedMain(st)
	})
	u := addUnit(t, s, "basic", P(2.6, 3.6))

	for i := 0; i < 300 && s.main.Health == s.main.MaxHealth; i++ {
		tickN(s, clock, 1)
	}
	if s.main.Health >= s.main.MaxHealth {
		t.Fatalf("main never damaged; unit at %v state=%s path=%v", u.Pos, u.State, u.Path)
	}
	if d := s.main.DistanceTo(u.Pos); d > s.settings.Movement.AttackRange {
		t.Errorf("attacking from distance %.2f, expected at most %v", d, s.settings.Movement.AttackRange)
	}
}

func TestUnitsKeepMovingOrAttacking(t *testing.T) {
	starts := []Point{P(0, 0), P(2.6, 3.6), P(7.45, 6.55), P(3.52, 6.48), P(9, 2.3)}
	for _, start := range starts {
		s, clock := playingSim(t, func(st *Settings) {
			smallGrid(st)
			unarmedMain(st)
		})
		u := addUnit(t, s, "fast", start)

		attacked := false
		for i := 0; i < 1200 && !attacked; i++ {
			tickN(s, clock, 1)
			attacked = s.main.Health < s.main.MaxHealth
		}
		if !attacked {
			t.Errorf("unit from %v never attacked; at %v state=%s path=%v", start, u.Pos, u.State, u.Path)
		}
	}
}

func TestUnitNeverEntersOccupiedCell(t *testing.T) {
	s, clock := playingSim(t, func(st *Settings) {
		smallGrid(st)
		unarmedMain(st)
	})
	addStructure(t, s, KindWall, C(2, 2))
	addStructure(t, s, KindWall, C(2, 1))
	addStructure(t, s, KindWall, C(1, 2))
	u := addUnit(t, s, "fast", P(0, 0))

	occupied := occupiedCells(s.allStructures())
	for i := 0; i < 800; i++ {
		tickN(s, clock, 1)
		if occupied.Has(u.Pos.Cell()) {
			t.Fatalf("tick %d: unit at %v stands on an occupied cell", i, u.Pos)
		}
	}
}

func TestBlockedPathTriggersReplan(t *testing.T) {
	s, clock := playingSim(t, func(st *Settings) {
		smallGrid(st)
		unarmedMain(st)
	})
	u := addUnit(t, s, "basic", P(0, 0))

	tickN(s, clock, 1)
	if len(u.Path) < 3 {
		t.Fatalf("path = %v, expected a route of at least 3 cells", u.Path)
	}

	blocked := u.Path[len(u.Path)-2]
	addStructure(t, s, KindWall, blocked)
	tickN(s, clock, 1)

	for _, c := range u.Path[u.PathIndex:] {
		if c == blocked {
			t.Fatalf("path %v still crosses the new wall at %v", u.Path, blocked)
		}
	}
	if len(u.Path) == 0 {
		t.Error("path is empty after re-plan, expected a detour")
	}
}

func TestStuckUnitEscalatesAndAbandons(t *testing.T) {
	s, clock := playingSim(t, func(st *Settings) {
		smallGrid(st)
		unarmedMain(st)
	})
	for _, c := range s.main.Perimeter(s.settings.Grid) {
		addStructure(t, s, KindUpgradeCenter, c)
	}
	u := addUnit(t, s, "basic", P(0, 0))

	cfg := s.settings.Movement
	maxReplans := 0
	reset := false
	for i := 0; i < 10*(cfg.StuckFrameLimit+1); i++ {
		tickN(s, clock, 1)
		if u.Replans > maxReplans {
			maxReplans = u.Replans
		}
		if maxReplans == cfg.AbandonAfterReplans-1 && u.Replans == 0 {
			reset = true
		}
	}

	if maxReplans != cfg.AbandonAfterReplans-1 {
		t.Errorf("max replans = %d, expected %d", maxReplans, cfg.AbandonAfterReplans-1)
	}
	if !reset {
		t.Error("replan counter never reset after abandoning the target")
	}
	if u.TargetID != MainStructureID {
		t.Errorf("TargetID = %q, expected the main structure as the only choice", u.TargetID)
	}
	if u.Pos != P(0, 0) {
		t.Errorf("unit moved to %v, expected it to stay put", u.Pos)
	}
}

func TestUnitRetargetsNearbyTower(t *testing.T) {
	s, clock := playingSim(t, func(st *Settings) {
		smallGrid(st)
		unarmedMain(st)
	})
	u := addUnit(t, s, "basic", P(0, 0))

	tickN(s, clock, 1)
	if u.TargetID != MainStructureID {
		t.Fatalf("TargetID = %q, expected main before the tower exists", u.TargetID)
	}

	tower := addStructure(t, s, KindTower, C(0, 9))
	tickN(s, clock, 1)

	if u.TargetID != tower.ID {
		t.Errorf("TargetID = %q, expected %q after the tower came within aggro range", u.TargetID, tower.ID)
	}
}

func TestEnclosedUnitAttacksWall(t *testing.T) {
	s, clock := playingSim(t, func(st *Settings) {
		smallGrid(st)
		unarmedMain(st)
	})
	walls := []*Structure{
		addStructure(t, s, KindWall, C(1, 0)),
		addStructure(t, s, KindWall, C(0, 1)),
		addStructure(t, s, KindWall, C(1, 1)),
	}
	u := addUnit(t, s, "basic", P(0, 0))

	tickN(s, clock, 200)

	target := s.Structure(u.TargetID)
	if target == nil || target.Kind != KindWall {
		t.Fatalf("TargetID = %q, expected one of the surrounding walls", u.TargetID)
	}
	if u.State != UnitAttacking {
		t.Errorf("State = %v, expected %v", u.State, UnitAttacking)
	}
	damaged := 0
	for _, w := range walls {
		if w.Health < w.MaxHealth {
			damaged++
		}
	}
	if damaged != 1 {
		t.Errorf("%d walls damaged, expected exactly 1", damaged)
	}
}
