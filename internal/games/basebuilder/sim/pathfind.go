package sim

// Neighbour offsets. Orthogonal directions come first so scan order
// prefers straight moves.
var (
	dirs4 = []Cell{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	dirs8 = []Cell{{0, -1}, {1, 0}, {0, 1}, {-1, 0}, {1, -1}, {1, 1}, {-1, 1}, {-1, -1}}
)

// openNode is an entry in the A* open list.
type openNode struct {
	cell Cell
	g    int
	f    int
}

// FindPath finds a route from start to goal using A* with a Manhattan
// heuristic and 8-directional movement. A diagonal step is rejected when
// both orthogonal neighbours it passes are obstacles.
//
// The returned path excludes start. It is empty when the goal is
// unreachable, when start or goal is blocked, or when start == goal.
func FindPath(g Grid, start, goal Cell, obstacles CellSet) []Cell {
	if !g.InBounds(start) || !g.InBounds(goal) {
		return nil
	}
	if obstacles.Has(start) || obstacles.Has(goal) || start == goal {
		return nil
	}

	open := []openNode{{cell: start, g: 0, f: start.Manhattan(goal)}}
	gScore := map[Cell]int{start: 0}
	cameFrom := make(map[Cell]Cell)
	closed := make(CellSet)

	for len(open) > 0 {
		// Linear scan for the lowest f-score; first one wins on ties.
		best := 0
		for i := 1; i < len(open); i++ {
			if open[i].f < open[best].f {
				best = i
			}
		}
		cur := open[best]
		open = append(open[:best], open[best+1:]...)

		if closed.Has(cur.cell) {
			continue
		}
		if cur.cell == goal {
			return reconstructPath(cameFrom, start, goal)
		}
		closed.Add(cur.cell)

		for _, d := range dirs8 {
			next := cur.cell.Add(d)
			if !g.InBounds(next) || obstacles.Has(next) || closed.Has(next) {
				continue
			}
			if d.X != 0 && d.Y != 0 && cornerBlocked(cur.cell, d, obstacles) {
				continue
			}
			tentative := cur.g + 1
			if old, ok := gScore[next]; ok && tentative >= old {
				continue
			}
			gScore[next] = tentative
			cameFrom[next] = cur.cell
			open = append(open, openNode{cell: next, g: tentative, f: tentative + next.Manhattan(goal)})
		}
	}
	return nil
}

// FindPathBFS finds a 4-directional route from start to goal with a
// breadth-first search. Same contract as FindPath.
func FindPathBFS(g Grid, start, goal Cell, obstacles CellSet) []Cell {
	if !g.InBounds(start) || !g.InBounds(goal) {
		return nil
	}
	if obstacles.Has(start) || obstacles.Has(goal) || start == goal {
		return nil
	}

	queue := []Cell{start}
	visited := NewCellSet(start)
	cameFrom := make(map[Cell]Cell)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			return reconstructPath(cameFrom, start, goal)
		}
		for _, d := range dirs4 {
			next := cur.Add(d)
			if !g.InBounds(next) || obstacles.Has(next) || visited.Has(next) {
				continue
			}
			visited.Add(next)
			cameFrom[next] = cur
			queue = append(queue, next)
		}
	}
	return nil
}

// Smooth drops the first waypoint when the second can be reached from
// start in a single clear step.
func Smooth(start Cell, path []Cell, obstacles CellSet) []Cell {
	if len(path) < 2 {
		return path
	}
	if IsStepClear(start, path[1], obstacles) {
		return path[1:]
	}
	return path
}

// IsStepClear reports whether moving from a to b is a legal single
// 8-directional step.
func IsStepClear(a, b Cell, obstacles CellSet) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	if abs(dx) > 1 || abs(dy) > 1 || (dx == 0 && dy == 0) {
		return false
	}
	if obstacles.Has(b) {
		return false
	}
	if dx != 0 && dy != 0 && cornerBlocked(a, Cell{dx, dy}, obstacles) {
		return false
	}
	return true
}

// cornerBlocked reports whether a diagonal step from c in direction d
// would squeeze between two obstacles.
func cornerBlocked(c, d Cell, obstacles CellSet) bool {
	return obstacles.Has(Cell{c.X + d.X, c.Y}) && obstacles.Has(Cell{c.X, c.Y + d.Y})
}

// reconstructPath walks cameFrom back from goal and returns the path
// without the start cell.
func reconstructPath(cameFrom map[Cell]Cell, start, goal Cell) []Cell {
	var rev []Cell
	for cur := goal; cur != start; cur = cameFrom[cur] {
		rev = append(rev, cur)
	}
	path := make([]Cell, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}
