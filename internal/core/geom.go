// Package core provides the frontend-neutral types shared by games and
// platforms: screen buffers, input frames and grid layout. It has no
// dependency on any terminal or window library.
package core

// Rect is an axis-aligned rectangle in screen units.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Layout maps a cols x rows board onto a screen area. Each board cell is
// CellW x CellH screen units and the board is centred in the area.
type Layout struct {
	Board        Rect
	CellW, CellH int
	Cols, Rows   int
}

// FitGrid computes the largest square-ish cell size that fits the board in
// area: size = min(area.W/(cols*aspect), area.H/rows). aspect is how many
// horizontal units make one vertical unit (2 for terminal glyphs, 1 for
// pixels). ok is false when the area cannot hold one unit per cell.
func FitGrid(area Rect, cols, rows, aspect int) (Layout, bool) {
	if cols <= 0 || rows <= 0 {
		return Layout{}, false
	}
	if aspect < 1 {
		aspect = 1
	}
	size := min(area.W/(cols*aspect), area.H/rows)
	if size < 1 {
		return Layout{Cols: cols, Rows: rows}, false
	}
	l := Layout{
		CellW: size * aspect,
		CellH: size,
		Cols:  cols,
		Rows:  rows,
	}
	w, h := l.CellW*cols, l.CellH*rows
	l.Board = NewRect(area.X+(area.W-w)/2, area.Y+(area.H-h)/2, w, h)
	return l, true
}

// ToScreen returns the top-left screen position of board cell (cx, cy).
func (l Layout) ToScreen(cx, cy int) (int, int) {
	return l.Board.X + cx*l.CellW, l.Board.Y + cy*l.CellH
}

// CellCenter returns the screen position at the middle of board cell
// (cx, cy).
func (l Layout) CellCenter(cx, cy int) (int, int) {
	x, y := l.ToScreen(cx, cy)
	return x + l.CellW/2, y + l.CellH/2
}

// PointToScreen maps a fractional board position, where integer
// coordinates are cell centres, to a screen position.
func (l Layout) PointToScreen(px, py float64) (int, int) {
	x := float64(l.Board.X) + (px+0.5)*float64(l.CellW)
	y := float64(l.Board.Y) + (py+0.5)*float64(l.CellH)
	return int(x), int(y)
}

// FromScreen returns the board cell under screen position (x, y).
func (l Layout) FromScreen(x, y int) (cx, cy int, ok bool) {
	if l.CellW == 0 || l.CellH == 0 || !l.Board.Contains(x, y) {
		return 0, 0, false
	}
	return (x - l.Board.X) / l.CellW, (y - l.Board.Y) / l.CellH, true
}
