// Package sim implements the Base Builder tower-defense simulation.
//
// The simulation is deterministic and frame-stepped: every call to Tick
// advances countdown, fire control, unit movement, combat and projectiles
// in that order and then exposes a snapshot for renderers. It has no
// knowledge of terminals or pixels.
package sim

import (
	"fmt"
	"math"
)

// Cell is an integer grid coordinate.
// X increases to the right, Y increases downward.
type Cell struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// C is a convenience constructor for Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the cell offset by another cell.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// Manhattan returns the Manhattan distance to another cell.
func (c Cell) Manhattan(o Cell) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// Point returns the cell's position in floating-point cell coordinates.
func (c Cell) Point() Point {
	return Point{X: float64(c.X), Y: float64(c.Y)}
}

// Point is a position in floating-point cell coordinates.
// A point at (3.0, 4.0) sits on cell (3,4).
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// P is a convenience constructor for Point.
func P(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Dist returns the Euclidean distance to another point.
func (p Point) Dist(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Cell returns the cell the point is standing on.
func (p Point) Cell() Cell {
	return Cell{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// Toward moves the point toward target by at most step and reports
// whether it arrived.
func (p Point) Toward(target Point, step float64) (Point, bool) {
	dx := target.X - p.X
	dy := target.Y - p.Y
	d := math.Hypot(dx, dy)
	if d <= step || d == 0 {
		return target, true
	}
	return Point{X: p.X + dx/d*step, Y: p.Y + dy/d*step}, false
}

// Grid is the fixed-size playing field.
type Grid struct {
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// InBounds reports whether the cell lies inside the grid.
func (g Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Clamp keeps a point inside the grid.
func (g Grid) Clamp(p Point) Point {
	return Point{
		X: math.Max(0, math.Min(float64(g.W-1), p.X)),
		Y: math.Max(0, math.Min(float64(g.H-1), p.Y)),
	}
}

// Center returns the middle cell of the grid.
func (g Grid) Center() Cell {
	return Cell{X: g.W / 2, Y: g.H / 2}
}

// EdgeCells returns the spawn ring: the top row, the bottom row, then the
// left and right columns without their corners.
func (g Grid) EdgeCells() []Cell {
	if g.W <= 0 || g.H <= 0 {
		return nil
	}
	cells := make([]Cell, 0, 2*g.W+2*g.H)
	for x := 0; x < g.W; x++ {
		cells = append(cells, C(x, 0))
		if g.H > 1 {
			cells = append(cells, C(x, g.H-1))
		}
	}
	for y := 1; y < g.H-1; y++ {
		cells = append(cells, C(0, y))
		if g.W > 1 {
			cells = append(cells, C(g.W-1, y))
		}
	}
	return cells
}

// CellSet is a set of grid cells.
type CellSet map[Cell]struct{}

// NewCellSet builds a set from the given cells.
func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether the cell is in the set.
func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Add inserts cells into the set.
func (s CellSet) Add(cells ...Cell) {
	for _, c := range cells {
		s[c] = struct{}{}
	}
}

// Remove deletes cells from the set.
func (s CellSet) Remove(cells ...Cell) {
	for _, c := range cells {
		delete(s, c)
	}
}

// Clone returns a copy of the set.
func (s CellSet) Clone() CellSet {
	out := make(CellSet, len(s))
	for c := range s {
		out[c] = struct{}{}
	}
	return out
}

// Footprint is the shape of a structure as offsets from its anchor.
type Footprint []Cell

// Common footprints.
var (
	FootprintSingle = Footprint{{0, 0}}
	FootprintPlus   = Footprint{{0, 0}, {0, -1}, {0, 1}, {-1, 0}, {1, 0}}
)

// Cells returns the absolute cells covered when anchored at anchor.
func (f Footprint) Cells(anchor Cell) []Cell {
	if len(f) == 0 {
		return []Cell{anchor}
	}
	cells := make([]Cell, len(f))
	for i, off := range f {
		cells[i] = anchor.Add(off)
	}
	return cells
}

// Perimeter returns the in-bounds cells adjacent (diagonals included) to
// any footprint cell, excluding the footprint itself. Order is stable.
func (f Footprint) Perimeter(anchor Cell, g Grid) []Cell {
	own := NewCellSet(f.Cells(anchor)...)
	seen := make(CellSet)
	var out []Cell
	for _, c := range f.Cells(anchor) {
		for _, d := range dirs8 {
			n := c.Add(d)
			if !g.InBounds(n) || own.Has(n) || seen.Has(n) {
				continue
			}
			seen.Add(n)
			out = append(out, n)
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
