package sim

import (
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// frame is the clock step used by tests, roughly 60 ticks per second.
const frame = 16 * time.Millisecond

func newTestSim(t *testing.T, mutate func(*Settings)) (*Sim, *ManualClock) {
	t.Helper()
	settings := DefaultSettings()
	if mutate != nil {
		mutate(&settings)
	}
	clock := NewManualClock(epoch)
	s, err := New(settings, WithClock(clock), WithSeed(1))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s, clock
}

// playingSim returns a simulation already past its countdown with
// automatic spawning pushed far into the future.
func playingSim(t *testing.T, mutate func(*Settings)) (*Sim, *ManualClock) {
	t.Helper()
	s, clock := newTestSim(t, mutate)
	s.started = true
	s.startedAt = clock.Now()
	s.status = StatusPlaying
	s.countdown = 0
	s.spawnedOnce = true
	s.lastSpawn = clock.Now()
	s.spawnInterval = 24 * time.Hour
	return s, clock
}

// unarmedMain strips the main structure's attack so units can approach.
func unarmedMain(settings *Settings) {
	structures := make(map[Kind]StructureSpec, len(settings.Catalog.Structures))
	for k, v := range settings.Catalog.Structures {
		structures[k] = v
	}
	spec := structures[settings.MainKind]
	spec.Attack = nil
	var ups []UpgradeSpec
	for _, u := range spec.Upgrades {
		if !u.Effect.NeedsAttack() {
			ups = append(ups, u)
		}
	}
	spec.Upgrades = ups
	structures[settings.MainKind] = spec
	settings.Catalog.Structures = structures
}

// smallGrid uses a 10x10 grid with the main structure anchored at (5,5).
func smallGrid(settings *Settings) {
	settings.Grid = Grid{W: 10, H: 10}
	settings.MainAnchor = C(5, 5)
}

func addUnit(t *testing.T, s *Sim, unitType string, pos Point) *Unit {
	t.Helper()
	for _, spec := range s.settings.Catalog.Units {
		if spec.Type == unitType {
			s.nextUnitID++
			u := newUnit(UnitID(s.nextUnitID), spec, pos.Cell())
			u.Pos = pos
			u.LastPos = pos
			s.units = append(s.units, u)
			return u
		}
	}
	t.Fatalf("unknown unit type %q", unitType)
	return nil
}

func addStructure(t *testing.T, s *Sim, kind Kind, at Cell) *Structure {
	t.Helper()
	spec, ok := s.settings.Catalog.Structure(kind)
	if !ok {
		t.Fatalf("unknown kind %q", kind)
	}
	s.nextStructureSeq++
	st := newStructure(StructureID(string(kind)+"-test-"+at.String()), spec, at)
	s.structures = append(s.structures, st)
	return st
}

func tickN(s *Sim, clock *ManualClock, n int) {
	for i := 0; i < n; i++ {
		clock.Advance(frame)
		s.Tick()
	}
}
