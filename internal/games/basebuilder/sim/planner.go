package sim

import "sort"

// Plan is a chosen target and the route to a cell next to it.
// An empty path with a target means "hold position": the unit is already
// within attack range of the target.
type Plan struct {
	Target *Structure
	Path   []Cell
}

// PlanOptions tweak target selection and routing.
type PlanOptions struct {
	// Sticky keeps the unit's current target while it is still active.
	Sticky bool
	// Corridor routes with the 4-directional BFS instead of A*.
	Corridor bool
}

// Planner picks targets for units and routes them next to it.
type Planner struct {
	grid        Grid
	attackRange float64
}

// NewPlanner creates a planner for the grid. attackRange is how close a
// unit must stand to a structure to hold position next to it.
func NewPlanner(g Grid, attackRange float64) *Planner {
	return &Planner{grid: g, attackRange: attackRange}
}

// ChooseTarget picks the unit's target:
//  1. its current target, when sticky and still active
//  2. the nearest active armed structure other than the main one
//  3. the main structure
func (p *Planner) ChooseTarget(u *Unit, structures []*Structure, sticky bool) *Structure {
	if sticky && u.TargetID != "" {
		for _, s := range structures {
			if s.ID == u.TargetID && s.Active {
				return s
			}
		}
	}

	from := u.Pos.Cell()
	var best *Structure
	bestDist := 0
	for _, s := range structures {
		if !s.Active || s.Main || !s.HasAttack() {
			continue
		}
		d := from.Manhattan(s.Anchor)
		if best == nil || d < bestDist {
			best, bestDist = s, d
		}
	}
	if best != nil {
		return best
	}

	for _, s := range structures {
		if s.Main && s.Active {
			return s
		}
	}
	return nil
}

// Plan chooses a target and routes the unit to the closest reachable free
// perimeter cell of it. When the target is sealed off the unit is sent to
// the nearest wall instead so it can break through.
func (p *Planner) Plan(u *Unit, structures []*Structure, opts PlanOptions) Plan {
	target := p.ChooseTarget(u, structures, opts.Sticky)
	if target == nil {
		return Plan{}
	}

	start := u.Pos.Cell()
	obstacles := occupiedCells(structures)
	obstacles.Remove(start)

	var standing []Cell
	for _, c := range target.Perimeter(p.grid) {
		if obstacles.Has(c) {
			continue
		}
		if c == start {
			if target.DistanceTo(u.Pos) <= p.attackRange {
				return Plan{Target: target}
			}
			// Off-centre on a standing cell: step to its centre first.
			if u.Pos != start.Point() {
				return Plan{Target: target, Path: []Cell{start}}
			}
			continue
		}
		standing = append(standing, c)
	}
	sort.SliceStable(standing, func(i, j int) bool {
		return standing[i].Manhattan(start) < standing[j].Manhattan(start)
	})

	for _, goal := range standing {
		if path := p.route(start, goal, obstacles, opts.Corridor); len(path) > 0 {
			return Plan{Target: target, Path: path}
		}
	}

	if wall, path, ok := p.breach(u.Pos, structures, obstacles, opts.Corridor); ok {
		return Plan{Target: wall, Path: path}
	}
	return Plan{Target: target}
}

// breach looks for the nearest wall with a reachable orthogonal neighbour.
func (p *Planner) breach(pos Point, structures []*Structure, obstacles CellSet, corridor bool) (*Structure, []Cell, bool) {
	start := pos.Cell()
	var walls []*Structure
	for _, s := range structures {
		if s.Active && s.Kind == KindWall {
			walls = append(walls, s)
		}
	}
	sort.SliceStable(walls, func(i, j int) bool {
		return walls[i].Anchor.Manhattan(start) < walls[j].Anchor.Manhattan(start)
	})

	for _, w := range walls {
		for _, c := range w.Cells() {
			for _, d := range dirs4 {
				goal := c.Add(d)
				if !p.grid.InBounds(goal) || obstacles.Has(goal) {
					continue
				}
				if goal == start {
					if w.DistanceTo(pos) <= p.attackRange {
						return w, nil, true
					}
					return w, []Cell{start}, true
				}
				if path := p.route(start, goal, obstacles, corridor); len(path) > 0 {
					return w, path, true
				}
			}
		}
	}
	return nil, nil, false
}

func (p *Planner) route(start, goal Cell, obstacles CellSet, corridor bool) []Cell {
	if corridor {
		return FindPathBFS(p.grid, start, goal, obstacles)
	}
	return Smooth(start, FindPath(p.grid, start, goal, obstacles), obstacles)
}

// occupiedCells returns every cell covered by an active structure.
func occupiedCells(structures []*Structure) CellSet {
	set := make(CellSet)
	for _, s := range structures {
		if s.Active {
			set.Add(s.Cells()...)
		}
	}
	return set
}
