package gui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/chubes4/chubes-games/internal/config"
	"github.com/chubes4/chubes-games/internal/core"
	"github.com/chubes4/chubes-games/internal/games/basebuilder"
	"github.com/chubes4/chubes-games/internal/games/basebuilder/sim"
	"github.com/chubes4/chubes-games/internal/storage"
)

func newTestWindow(t *testing.T, store *storage.Store) *Window {
	t.Helper()
	clock := sim.NewManualClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	game := basebuilder.New(basebuilder.WithClock(clock), basebuilder.WithConfig(config.DefaultBaseBuilderConfig()))
	return New(game, store, core.RuntimeConfig{TickRate: 60, Seed: 5})
}

func TestBoardLayoutDefaultWindow(t *testing.T) {
	l, ok := boardLayout(sim.Grid{W: 43, H: 32}, DefaultWidth, DefaultHeight)
	if !ok {
		t.Fatal("boardLayout() ok = false for the default window")
	}
	if l.CellW != 21 || l.CellH != 21 {
		t.Errorf("cell = %dx%d, expected 21x21", l.CellW, l.CellH)
	}
	if l.Board.X != 28 || l.Board.Y != 56 {
		t.Errorf("board origin = (%d, %d), expected (28, 56)", l.Board.X, l.Board.Y)
	}
}

func TestClickSelectsThenBuilds(t *testing.T) {
	w := newTestWindow(t, nil)
	l, _ := boardLayout(sim.Grid{W: 43, H: 32}, w.width, w.height)
	x, y := l.CellCenter(5, 5)

	w.click(x, y, false)
	if got := w.game.Cursor(); got != sim.C(5, 5) {
		t.Fatalf("Cursor() = %v after click, expected (5,5)", got)
	}
	if w.frame.Has(core.ActionConfirm) {
		t.Error("first click confirmed, expected selection only")
	}

	w.click(x, y, false)
	if !w.frame.Has(core.ActionConfirm) {
		t.Fatal("second click did not confirm")
	}
	w.step()

	st := w.game.Sim().StructureAt(sim.C(5, 5))
	if st == nil || st.Kind != sim.KindWall {
		t.Fatalf("StructureAt(5,5) = %v, expected a wall", st)
	}
	if got := w.game.Sim().Economy().Nuggets; got != 95 {
		t.Errorf("Nuggets = %d, expected 95", got)
	}

	w.click(x, y, true)
	w.step()
	if w.game.Sim().StructureAt(sim.C(5, 5)) != nil {
		t.Error("right click did not sell the wall")
	}
	if got := w.game.Sim().Economy().Nuggets; got != 100 {
		t.Errorf("Nuggets = %d after sell, expected 100", got)
	}
}

func TestClickOutsideBoardIgnored(t *testing.T) {
	w := newTestWindow(t, nil)
	before := w.game.Cursor()

	w.click(1, 1, false)
	if w.game.Cursor() != before || w.frame.Has(core.ActionConfirm) {
		t.Error("click outside the board changed the selection")
	}
}

func TestFinishRunRecordsOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "gui.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	w := newTestWindow(t, store)
	w.step()
	w.finishRun()
	w.finishRun()

	runs, err := store.RecentRuns("basebuilder", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].EndReason != "quit" || runs[0].Seed != 5 {
		t.Errorf("RecentRuns() = %+v, expected one quit run with seed 5", runs)
	}
}
