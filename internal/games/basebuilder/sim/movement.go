package sim

// stepUnit advances one unit along its path for a single tick.
func (s *Sim) stepUnit(u *Unit, structures []*Structure, obstacles CellSet) {
	cfg := s.settings.Movement
	target := findActive(structures, u.TargetID)

	// An attacker next to a live target holds its ground.
	if u.State == UnitAttacking && target != nil && target.DistanceTo(u.Pos) <= cfg.AttackRange {
		return
	}

	if s.needsReplan(u, target, obstacles) {
		s.replan(u, structures)
		target = findActive(structures, u.TargetID)
	}

	if len(u.Path) == 0 || u.PathIndex >= len(u.Path) {
		if target != nil && target.DistanceTo(u.Pos) <= cfg.AttackRange {
			u.State = UnitAttacking
			return
		}
		u.State = UnitMoving
		u.StuckFrames++
		return
	}

	// Intermediate waypoints count as reached within the epsilon; the
	// last one must be reached exactly so the unit ends on its cell centre.
	waypoint := u.Path[u.PathIndex].Point()
	last := u.PathIndex == len(u.Path)-1
	if d := u.Pos.Dist(waypoint); d == 0 || (!last && d < cfg.WaypointEpsilon) {
		u.PathIndex++
		return
	}

	next, _ := u.Pos.Toward(waypoint, u.Speed)
	next = s.settings.Grid.Clamp(next)
	if obstacles.Has(next.Cell()) {
		u.StuckFrames++
		return
	}

	u.Pos = next
	if next.Dist(u.LastPos) < cfg.StuckDistanceEpsilon {
		u.StuckFrames++
	} else {
		u.StuckFrames = 0
		u.Replans = 0
		u.LastPos = next
	}

	if target != nil && target.DistanceTo(u.Pos) <= cfg.AttackRange {
		u.State = UnitAttacking
		return
	}
	u.State = UnitMoving

	if target != nil && target.Main && s.armedWithin(u.Pos, structures, cfg.AggroRange) {
		s.retarget(u, structures)
	}
}

// needsReplan reports whether the unit must ask the planner for a new
// route this tick.
func (s *Sim) needsReplan(u *Unit, target *Structure, obstacles CellSet) bool {
	switch {
	case u.StuckFrames > s.settings.Movement.StuckFrameLimit:
		return true
	case target == nil:
		return true
	case len(u.Path) == 0:
		// A failed plan is retried once the unit has waited out the
		// stuck limit.
		return u.StuckFrames == 0
	case u.PathIndex >= len(u.Path):
		return true
	}
	for _, c := range u.Path[u.PathIndex:] {
		if obstacles.Has(c) {
			return true
		}
	}
	return false
}

// replan asks the planner for a new route. Stuck-triggered re-plans
// escalate: first to BFS corridor search, then to dropping the current
// target so a fresh one is selected.
func (s *Sim) replan(u *Unit, structures []*Structure) {
	cfg := s.settings.Movement
	opts := PlanOptions{Sticky: true}

	if u.StuckFrames > cfg.StuckFrameLimit {
		u.Replans++
		u.StuckFrames = 0
		if cfg.CorridorAfterReplans > 0 && u.Replans >= cfg.CorridorAfterReplans {
			opts.Corridor = true
		}
		if cfg.AbandonAfterReplans > 0 && u.Replans >= cfg.AbandonAfterReplans {
			opts.Sticky = false
			s.logger.Debug("unit abandoning target", "unit", u.ID, "target", u.TargetID, "replans", u.Replans)
			u.Replans = 0
		}
	}

	s.applyPlan(u, s.planner.Plan(u, structures, opts))
}

// retarget re-plans without stickiness so a newly relevant structure can
// take over from the main structure.
func (s *Sim) retarget(u *Unit, structures []*Structure) {
	plan := s.planner.Plan(u, structures, PlanOptions{})
	if plan.Target == nil || plan.Target.ID == u.TargetID {
		return
	}
	s.applyPlan(u, plan)
}

func (s *Sim) applyPlan(u *Unit, plan Plan) {
	u.Path = plan.Path
	u.PathIndex = 0
	u.TargetID = ""
	if plan.Target != nil {
		u.TargetID = plan.Target.ID
	}
	if len(plan.Path) > 0 {
		u.StuckFrames = 0
		u.LastPos = u.Pos
	}
}

// armedWithin reports whether an active armed structure other than the
// main one is within radius of p.
func (s *Sim) armedWithin(p Point, structures []*Structure, radius float64) bool {
	for _, st := range structures {
		if !st.Active || st.Main || !st.HasAttack() {
			continue
		}
		if p.Dist(st.Anchor.Point()) <= radius {
			return true
		}
	}
	return false
}

func findActive(structures []*Structure, id StructureID) *Structure {
	if id == "" {
		return nil
	}
	for _, s := range structures {
		if s.ID == id && s.Active {
			return s
		}
	}
	return nil
}

