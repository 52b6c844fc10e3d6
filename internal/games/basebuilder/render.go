package basebuilder

import (
	"fmt"
	"strings"

	"github.com/chubes4/chubes-games/internal/core"
	"github.com/chubes4/chubes-games/internal/games/basebuilder/sim"
)

// Glyph is how a board object looks in a terminal.
type Glyph struct {
	Rune  rune
	Color core.Color
}

// StructureGlyph returns the glyph for a structure kind. Damaged
// structures turn red below a third of their health.
func StructureGlyph(v sim.StructureView) Glyph {
	g := Glyph{Rune: '#', Color: core.ColorWhite}
	switch v.Kind {
	case sim.KindCommandCenter:
		g = Glyph{'█', core.ColorYellow}
	case sim.KindWall:
		g = Glyph{'▓', core.ColorGray}
	case sim.KindTower:
		g = Glyph{'T', core.ColorCyan}
	case sim.KindUpgradeCenter:
		g = Glyph{'U', core.ColorMagenta}
	}
	if v.MaxHealth > 0 && v.Health*3 < v.MaxHealth {
		g.Color = core.ColorRed
	}
	return g
}

// UnitGlyph returns the glyph for a unit.
func UnitGlyph(v sim.UnitView) Glyph {
	r := 'o'
	switch v.Type {
	case "fast":
		r = '>'
	case "heavy":
		r = 'O'
	}
	if v.State == sim.UnitAttacking {
		return Glyph{r, core.ColorBrightRed}
	}
	return Glyph{r, core.ColorRed}
}

// hudRows and footerRows frame the board.
const (
	hudRows    = 2
	footerRows = 2
)

// BoardLayout fits the grid into a terminal of w x h characters.
func BoardLayout(grid sim.Grid, w, h int) (core.Layout, bool) {
	area := core.NewRect(0, hudRows, w, h-hudRows-footerRows)
	return core.FitGrid(area, grid.W, grid.H, 2)
}

// Render draws the board, HUD and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	snap := g.sim.Snapshot()
	layout, ok := BoardLayout(snap.Grid, dst.Width(), dst.Height())
	if !ok {
		need := fmt.Sprintf("Need %dx%d", snap.Grid.W*2, snap.Grid.H+hudRows+footerRows)
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, need)
		return
	}

	g.renderHUD(dst, snap)
	renderBoard(dst, layout, snap)
	g.renderCursor(dst, layout)
	g.renderFooter(dst)
	g.renderOverlay(dst, snap)
}

func (g *Game) renderHUD(dst *core.Screen, snap sim.Snapshot) {
	dst.DrawTextColored(1, 0, g.HUD(), core.ColorWhite)

	var right string
	switch snap.Status {
	case sim.StatusCountdown:
		right = fmt.Sprintf("Waves in %ds", snap.Countdown)
	case sim.StatusPlaying:
		right = fmt.Sprintf("Units: %d  Next: %.1fs", len(snap.Units), g.sim.SpawnInterval().Seconds())
	}
	dst.DrawTextColored(dst.Width()-len(right)-1, 0, right, core.ColorGray)

	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', core.ColorDarkGray)
	}
}

func renderBoard(dst *core.Screen, l core.Layout, snap sim.Snapshot) {
	for cy := 0; cy < snap.Grid.H; cy++ {
		for cx := 0; cx < snap.Grid.W; cx++ {
			x, y := l.ToScreen(cx, cy)
			dst.SetColored(x, y, '·', core.ColorDarkGray)
		}
	}

	drawStructure := func(v sim.StructureView) {
		glyph := StructureGlyph(v)
		for _, c := range v.Cells {
			fillCell(dst, l, c, glyph)
		}
	}
	drawStructure(snap.Main)
	for _, st := range snap.Structures {
		drawStructure(st)
	}

	for _, u := range snap.Units {
		glyph := UnitGlyph(u)
		x, y := l.PointToScreen(u.Pos.X, u.Pos.Y)
		dst.SetColored(x, y, glyph.Rune, glyph.Color)
	}
	for _, p := range snap.Projectiles {
		x, y := l.PointToScreen(p.Pos.X, p.Pos.Y)
		dst.SetColored(x, y, '•', core.ColorBrightYellow)
	}
}

func fillCell(dst *core.Screen, l core.Layout, c sim.Cell, glyph Glyph) {
	x, y := l.ToScreen(c.X, c.Y)
	dst.DrawRect(core.NewRect(x, y, l.CellW, l.CellH), glyph.Rune, glyph.Color)
}

func (g *Game) renderCursor(dst *core.Screen, l core.Layout) {
	x, y := l.ToScreen(g.cursor.X, g.cursor.Y)
	under := dst.GetCell(x, y).Rune
	if under == '·' || under == ' ' {
		under = '+'
	}
	for dy := range l.CellH {
		for dx := range l.CellW {
			dst.SetColored(x+dx, y+dy, under, core.ColorBrightGreen)
		}
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	var parts []string
	for _, opt := range g.Options() {
		parts = append(parts, fmt.Sprintf("[%d] %s %d", opt.Slot, opt.Label, opt.Cost))
	}
	if g.sim.StructureAt(g.cursor) != nil {
		parts = append(parts, "[X] Sell")
	}
	dst.DrawTextColored(1, dst.Height()-2, strings.Join(parts, "  "), core.ColorWhite)

	if msg, ok := g.Message(); msg != "" {
		color := core.ColorRed
		if ok {
			color = core.ColorGreen
		}
		dst.DrawTextColored(1, dst.Height()-1, msg, color)
		return
	}
	dst.DrawTextColored(1, dst.Height()-1, "Arrows move  1-6 build/upgrade  X sell  P pause  Esc menu", core.ColorGray)
}

func (g *Game) renderOverlay(dst *core.Screen, snap sim.Snapshot) {
	switch {
	case snap.Status == sim.StatusGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", snap.Economy.Score)
		drawCenteredBox(dst, "BASE DESTROYED", subtitle)
	case g.paused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightRed)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
