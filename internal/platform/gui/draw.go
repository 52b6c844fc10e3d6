package gui

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/chubes4/chubes-games/internal/core"
	"github.com/chubes4/chubes-games/internal/games/basebuilder"
	"github.com/chubes4/chubes-games/internal/games/basebuilder/sim"
)

// Pixel heights of the bars around the board.
const (
	hudHeight    = 28
	footerHeight = 44
	lineHeight   = 16
)

var (
	backgroundColor = color.RGBA{16, 18, 24, 255}
	gridColor       = color.RGBA{32, 36, 46, 255}
	cursorColor     = color.RGBA{35, 209, 139, 255}
	rangeColor      = color.RGBA{17, 168, 205, 120}
	shadeColor      = color.RGBA{0, 0, 0, 170}
)

var face = basicfont.Face7x13

func rgba(c core.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{r, g, b, 255}
}

// boardLayout fits the grid between the HUD and the footer with square
// cells.
func boardLayout(grid sim.Grid, w, h int) (core.Layout, bool) {
	area := core.NewRect(8, hudHeight, w-16, h-hudHeight-footerHeight)
	return core.FitGrid(area, grid.W, grid.H, 1)
}

// Draw renders the current snapshot.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	snap := w.game.Snapshot()
	layout, ok := boardLayout(snap.Grid, w.width, w.height)
	if !ok {
		text.Draw(screen, "Window too small", face, 8, 20, rgba(core.ColorWhite))
		return
	}

	w.drawHUD(screen, snap)
	drawGrid(screen, layout)
	drawStructure(screen, layout, snap.Main)
	for _, st := range snap.Structures {
		drawStructure(screen, layout, st)
	}
	w.drawSelection(screen, layout, snap)
	for _, u := range snap.Units {
		drawUnit(screen, layout, u)
	}
	for _, p := range snap.Projectiles {
		x, y := layout.PointToScreen(p.Pos.X, p.Pos.Y)
		vector.DrawFilledCircle(screen, float32(x), float32(y), 2, rgba(core.ColorBrightYellow), true)
	}
	w.drawFooter(screen)
	w.drawOverlay(screen, snap)
}

func (w *Window) drawHUD(screen *ebiten.Image, snap sim.Snapshot) {
	text.Draw(screen, w.game.HUD(), face, 8, 18, rgba(core.ColorWhite))

	var right string
	switch snap.Status {
	case sim.StatusCountdown:
		right = fmt.Sprintf("Waves in %ds", snap.Countdown)
	case sim.StatusPlaying:
		right = fmt.Sprintf("Units: %d", len(snap.Units))
	}
	width := text.BoundString(face, right).Dx()
	text.Draw(screen, right, face, w.width-width-8, 18, rgba(core.ColorGray))
}

func drawGrid(screen *ebiten.Image, l core.Layout) {
	b := l.Board
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, gridColor, false)
	if l.CellW < 6 {
		return
	}
	for cx := 1; cx < l.Cols; cx++ {
		x := float32(b.X + cx*l.CellW)
		vector.StrokeLine(screen, x, float32(b.Y), x, float32(b.Bottom()), 1, gridColor, false)
	}
	for cy := 1; cy < l.Rows; cy++ {
		y := float32(b.Y + cy*l.CellH)
		vector.StrokeLine(screen, float32(b.X), y, float32(b.Right()), y, 1, gridColor, false)
	}
}

func drawStructure(screen *ebiten.Image, l core.Layout, v sim.StructureView) {
	fill := rgba(basebuilder.StructureGlyph(v).Color)
	for _, c := range v.Cells {
		x, y := l.ToScreen(c.X, c.Y)
		vector.DrawFilledRect(screen, float32(x+1), float32(y+1), float32(l.CellW-2), float32(l.CellH-2), fill, false)
	}

	cx, cy := l.CellCenter(v.Anchor.X, v.Anchor.Y)
	if v.Kind == sim.KindTower {
		// Barrel toward the last target.
		length := float64(l.CellW) * 0.7
		ex := float64(cx) + math.Cos(v.Angle)*length
		ey := float64(cy) + math.Sin(v.Angle)*length
		vector.StrokeLine(screen, float32(cx), float32(cy), float32(ex), float32(ey), 2, rgba(core.ColorWhite), true)
	}

	if v.Health < v.MaxHealth {
		x, y := l.ToScreen(v.Anchor.X, v.Anchor.Y)
		healthBar(screen, x, y-3, l.CellW, v.Health, v.MaxHealth)
	}
}

func drawUnit(screen *ebiten.Image, l core.Layout, u sim.UnitView) {
	x, y := l.PointToScreen(u.Pos.X, u.Pos.Y)
	r := float32(math.Max(2, u.Size*float64(l.CellW)/2))
	fill := rgba(basebuilder.UnitGlyph(u).Color)
	vector.DrawFilledCircle(screen, float32(x), float32(y), r, fill, true)
	if u.Health < u.MaxHealth {
		healthBar(screen, x-int(r), y-int(r)-4, int(2*r), u.Health, u.MaxHealth)
	}
}

func healthBar(screen *ebiten.Image, x, y, width, health, maxHealth int) {
	if maxHealth <= 0 || width <= 0 {
		return
	}
	frac := float32(max(0, health)) / float32(maxHealth)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), 2, rgba(core.ColorDarkGray), false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width)*frac, 2, rgba(core.ColorGreen), false)
}

// drawSelection outlines the cursor cell and shows the range of the armed
// structure under it.
func (w *Window) drawSelection(screen *ebiten.Image, l core.Layout, snap sim.Snapshot) {
	cur := w.game.Cursor()
	for _, v := range append([]sim.StructureView{snap.Main}, snap.Structures...) {
		if v.Range <= 0 || !occupies(v, cur) {
			continue
		}
		cx, cy := l.CellCenter(v.Anchor.X, v.Anchor.Y)
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(v.Range*float64(l.CellW)), 1, rangeColor, true)
	}

	x, y := l.ToScreen(cur.X, cur.Y)
	vector.StrokeRect(screen, float32(x), float32(y), float32(l.CellW), float32(l.CellH), 2, cursorColor, false)
}

func occupies(v sim.StructureView, c sim.Cell) bool {
	for _, have := range v.Cells {
		if have == c {
			return true
		}
	}
	return false
}

func (w *Window) drawFooter(screen *ebiten.Image) {
	y := w.height - footerHeight + 14

	var parts []string
	for _, opt := range w.game.Options() {
		parts = append(parts, fmt.Sprintf("[%d] %s %d", opt.Slot, opt.Label, opt.Cost))
	}
	text.Draw(screen, strings.Join(parts, "  "), face, 8, y, rgba(core.ColorWhite))

	line, c := "Click select  click again build  right click sell  P pause  Esc quit", core.ColorGray
	if msg, ok := w.game.Message(); msg != "" {
		line, c = msg, core.ColorRed
		if ok {
			c = core.ColorGreen
		}
	}
	text.Draw(screen, line, face, 8, y+lineHeight, rgba(c))
}

func (w *Window) drawOverlay(screen *ebiten.Image, snap sim.Snapshot) {
	var title, subtitle string
	switch {
	case snap.Status == sim.StatusGameOver:
		title = "BASE DESTROYED"
		subtitle = fmt.Sprintf("Score: %d  |  Press R to restart", snap.Economy.Score)
	case w.game.Paused():
		title, subtitle = "PAUSED", "Press P to resume"
	default:
		return
	}

	vector.DrawFilledRect(screen, 0, 0, float32(w.width), float32(w.height), shadeColor, false)
	tw := text.BoundString(face, title).Dx()
	sw := text.BoundString(face, subtitle).Dx()
	text.Draw(screen, title, face, (w.width-tw)/2, w.height/2-8, rgba(core.ColorBrightRed))
	text.Draw(screen, subtitle, face, (w.width-sw)/2, w.height/2+12, rgba(core.ColorWhite))
}
