package sim

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestCountdownRunsOnWallClock(t *testing.T) {
	s, clock := newTestSim(t, nil)

	s.Tick()
	if s.Status() != StatusCountdown || s.Countdown() != 10 {
		t.Fatalf("after first tick: Status() = %v, Countdown() = %d, expected countdown 10", s.Status(), s.Countdown())
	}

	clock.Advance(3500 * time.Millisecond)
	s.Tick()
	if s.Countdown() != 7 {
		t.Errorf("Countdown() = %d, expected 7", s.Countdown())
	}

	clock.Advance(6499 * time.Millisecond)
	if res := s.Tick(); res.StatusChanged || s.Status() != StatusCountdown {
		t.Errorf("Status() = %v just before the countdown ends, expected %v", s.Status(), StatusCountdown)
	}

	clock.Advance(time.Millisecond)
	res := s.Tick()
	if !res.StatusChanged || s.Status() != StatusPlaying {
		t.Errorf("Status() = %v, StatusChanged = %v, expected a switch to %v", s.Status(), res.StatusChanged, StatusPlaying)
	}
	if s.Countdown() != 0 {
		t.Errorf("Countdown() = %d, expected 0", s.Countdown())
	}
}

func TestCountdownIgnoresTickRate(t *testing.T) {
	s, _ := newTestSim(t, nil)
	for i := 0; i < 5000; i++ {
		s.Tick()
	}
	if s.Status() != StatusCountdown {
		t.Errorf("Status() = %v, expected %v while the clock stands still", s.Status(), StatusCountdown)
	}
	if s.TickCount() != 5000 {
		t.Errorf("TickCount() = %d, expected 5000", s.TickCount())
	}
}

func TestFirstSpawnOnEdge(t *testing.T) {
	s, clock := playingSim(t, nil)
	s.spawnedOnce = false
	s.spawnInterval = s.settings.SpawnInterval

	clock.Advance(frame)
	res := s.Tick()
	if len(res.Spawned) != 1 {
		t.Fatalf("spawned = %d, expected 1", len(res.Spawned))
	}
	at := res.Spawned[0].At
	g := s.settings.Grid
	if at.X != 0 && at.Y != 0 && at.X != g.W-1 && at.Y != g.H-1 {
		t.Errorf("spawned at %v, expected an edge cell", at)
	}

	clock.Advance(frame)
	if res := s.Tick(); len(res.Spawned) != 0 {
		t.Errorf("spawned again after %v, expected to wait %v", frame, s.SpawnInterval())
	}

	clock.Advance(s.SpawnInterval())
	if res := s.Tick(); len(res.Spawned) != 1 {
		t.Errorf("spawned = %d after the interval, expected 1", len(res.Spawned))
	}
}

func TestResetClearsState(t *testing.T) {
	s, clock := newTestSim(t, nil)
	s.Place(KindTower, C(3, 3))
	clock.Advance(11 * time.Second)
	tickN(s, clock, 10)
	s.main.Health = 1

	s.Reset(9)

	if s.Status() != StatusCountdown || s.TickCount() != 0 || s.Seed() != 9 {
		t.Errorf("after Reset: Status() = %v, TickCount() = %d, Seed() = %d", s.Status(), s.TickCount(), s.Seed())
	}
	snap := s.Snapshot()
	if len(snap.Structures) != 0 || len(snap.Units) != 0 || len(snap.Projectiles) != 0 {
		t.Errorf("snapshot after Reset = %+v, expected an empty field", snap)
	}
	if snap.Main.Health != snap.Main.MaxHealth {
		t.Errorf("main health = %d, expected %d", snap.Main.Health, snap.Main.MaxHealth)
	}
	if snap.Economy != (Economy{Nuggets: 100}) {
		t.Errorf("Economy = %+v, expected fresh", snap.Economy)
	}
	if s.Stats() != (Stats{}) {
		t.Errorf("Stats() = %+v, expected zero", s.Stats())
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() Snapshot {
		s, clock := newTestSim(t, nil)
		s.Reset(7)
		s.Place(KindTower, C(18, 14))
		s.Place(KindWall, C(24, 16))
		tickN(s, clock, 2000)
		return s.Snapshot()
	}

	a, b := run(), run()
	if len(a.Units) == 0 {
		t.Fatal("no units spawned, replay is not exercising movement")
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs with the same seed and clock produced different snapshots")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s, _ := newTestSim(t, nil)
	s.economy.Nuggets = 1000
	id := s.Place(KindTower, C(3, 3)).StructureID
	s.Upgrade(id, "damage")

	snap := s.Snapshot()
	if len(snap.Structures) != 1 || snap.Structures[0].ID != id {
		t.Fatalf("Snapshot().Structures = %+v, expected only %s", snap.Structures, id)
	}
	snap.Structures[0].Levels["damage"] = 99
	snap.Structures[0].Cells[0] = C(0, 0)

	if got := s.Structure(id).Level("damage"); got != 1 {
		t.Errorf("Level(damage) = %d, expected 1", got)
	}
	if got := s.Structure(id).Anchor; got != C(3, 3) {
		t.Errorf("Anchor = %v, expected (3,3)", got)
	}
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Settings)
		contains string
	}{
		{"empty grid", func(s *Settings) { s.Grid = Grid{} }, "grid must be positive"},
		{"zero multiplier", func(s *Settings) { s.CostMultiplier = 0 }, "cost multiplier"},
		{"no units", func(s *Settings) { s.Catalog.Units = nil }, "unit catalog is empty"},
		{"main outside grid", func(s *Settings) { s.MainAnchor = C(0, 0) }, "outside grid"},
		{"unknown main kind", func(s *Settings) { s.MainKind = "bunker" }, "not in catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.mutate(&settings)
			_, err := New(settings)
			if err == nil {
				t.Fatal("New() = nil error, expected failure")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("New() error = %q, expected to contain %q", err, tt.contains)
			}
		})
	}
}
