package sim

import "testing"

func TestPlanTargetsMainStructure(t *testing.T) {
	s, _ := newTestSim(t, smallGrid)
	u := addUnit(t, s, "basic", P(0, 0))

	plan := s.planner.Plan(u, s.allStructures(), PlanOptions{Sticky: true})

	if plan.Target == nil || plan.Target.ID != MainStructureID {
		t.Fatalf("Plan() target = %v, expected main structure", plan.Target)
	}
	if len(plan.Path) == 0 {
		t.Fatal("Plan() path is empty, expected a route")
	}

	perimeter := NewCellSet(plan.Target.Perimeter(s.settings.Grid)...)
	last := plan.Path[len(plan.Path)-1]
	if !perimeter.Has(last) {
		t.Errorf("path ends at %v, which is not on the perimeter", last)
	}
	assertLegalPath(t, C(0, 0), last, plan.Path, occupiedCells(s.allStructures()), true)
}

func TestPlanPrefersArmedStructure(t *testing.T) {
	s, _ := newTestSim(t, smallGrid)
	tower := addStructure(t, s, KindTower, C(1, 8))
	addStructure(t, s, KindWall, C(1, 1))
	u := addUnit(t, s, "basic", P(0, 0))

	plan := s.planner.Plan(u, s.allStructures(), PlanOptions{Sticky: true})

	if plan.Target != tower {
		t.Errorf("Plan() target = %v, expected tower", plan.Target.ID)
	}
}

func TestPlanStickyTarget(t *testing.T) {
	s, _ := newTestSim(t, smallGrid)
	tower := addStructure(t, s, KindTower, C(1, 8))
	wall := addStructure(t, s, KindWall, C(2, 2))
	u := addUnit(t, s, "basic", P(0, 0))
	u.TargetID = wall.ID

	if got := s.planner.ChooseTarget(u, s.allStructures(), true); got != wall {
		t.Errorf("ChooseTarget(sticky) = %v, expected wall", got.ID)
	}
	if got := s.planner.ChooseTarget(u, s.allStructures(), false); got != tower {
		t.Errorf("ChooseTarget(non-sticky) = %v, expected tower", got.ID)
	}

	wall.Active = false
	if got := s.planner.ChooseTarget(u, s.allStructures(), true); got != tower {
		t.Errorf("ChooseTarget() with dead sticky target = %v, expected tower", got.ID)
	}
}

func TestPlanAlreadyInPosition(t *testing.T) {
	s, _ := newTestSim(t, smallGrid)
	u := addUnit(t, s, "basic", P(5, 3))

	plan := s.planner.Plan(u, s.allStructures(), PlanOptions{Sticky: true})

	if plan.Target == nil || !plan.Target.Main {
		t.Fatalf("Plan() target = %v, expected main", plan.Target)
	}
	if len(plan.Path) != 0 {
		t.Errorf("Plan() path = %v, expected empty for a unit already adjacent", plan.Path)
	}
}

func TestPlanOffCentreOnStandingCell(t *testing.T) {
	s, _ := newTestSim(t, smallGrid)
	// Rounds to (3,4), a perimeter cell, but is 1.98 from the nearest
	// footprint cell (4,5).
	u := addUnit(t, s, "basic", P(2.6, 3.6))

	plan := s.planner.Plan(u, s.allStructures(), PlanOptions{Sticky: true})

	if plan.Target == nil || !plan.Target.Main {
		t.Fatalf("Plan() target = %v, expected main", plan.Target)
	}
	if len(plan.Path) != 1 || plan.Path[0] != C(3, 4) {
		t.Errorf("Plan() path = %v, expected [(3,4)] to centre on the cell", plan.Path)
	}
}

func TestPlanCentredOutOfRangeMovesOn(t *testing.T) {
	s, _ := newTestSim(t, func(st *Settings) {
		smallGrid(st)
		st.Movement.AttackRange = 1
	})
	// Diagonal to the footprint: centred but 1.41 away.
	u := addUnit(t, s, "basic", P(3, 4))

	plan := s.planner.Plan(u, s.allStructures(), PlanOptions{Sticky: true})

	if len(plan.Path) == 0 {
		t.Fatal("Plan() path is empty, expected a route to a closer cell")
	}
	last := plan.Path[len(plan.Path)-1]
	if d := plan.Target.DistanceTo(last.Point()); d > 1 {
		t.Errorf("path ends at %v, %.2f from the target, expected within 1", last, d)
	}
}

func TestPlanWalledInFallsBackToWall(t *testing.T) {
	s, _ := newTestSim(t, smallGrid)
	for _, c := range s.main.Perimeter(s.settings.Grid) {
		addStructure(t, s, KindWall, c)
	}
	u := addUnit(t, s, "basic", P(0, 0))

	plan := s.planner.Plan(u, s.allStructures(), PlanOptions{Sticky: true})

	if plan.Target == nil || plan.Target.Kind != KindWall {
		t.Fatalf("Plan() target = %v, expected a wall", plan.Target)
	}
	if len(plan.Path) == 0 {
		t.Fatal("Plan() path is empty, expected a route to the wall")
	}
	last := plan.Path[len(plan.Path)-1]
	if last.Manhattan(plan.Target.Anchor) != 1 {
		t.Errorf("path ends at %v, not orthogonally next to wall %v", last, plan.Target.Anchor)
	}
}

func TestPlanUnreachableHoldsTarget(t *testing.T) {
	s, _ := newTestSim(t, smallGrid)
	// Upgrade centers seal the main structure off and are not walls, so
	// there is nothing to breach.
	for _, c := range s.main.Perimeter(s.settings.Grid) {
		addStructure(t, s, KindUpgradeCenter, c)
	}
	u := addUnit(t, s, "basic", P(0, 0))

	plan := s.planner.Plan(u, s.allStructures(), PlanOptions{Sticky: true})

	if plan.Target == nil || !plan.Target.Main {
		t.Fatalf("Plan() target = %v, expected main", plan.Target)
	}
	if len(plan.Path) != 0 {
		t.Errorf("Plan() path = %v, expected empty", plan.Path)
	}
}

func TestPlanCorridorModeUsesOrthogonalSteps(t *testing.T) {
	s, _ := newTestSim(t, smallGrid)
	u := addUnit(t, s, "basic", P(0, 0))

	plan := s.planner.Plan(u, s.allStructures(), PlanOptions{Sticky: true, Corridor: true})
	if len(plan.Path) == 0 {
		t.Fatal("Plan(corridor) path is empty")
	}
	last := plan.Path[len(plan.Path)-1]
	assertLegalPath(t, C(0, 0), last, plan.Path, occupiedCells(s.allStructures()), false)
}
