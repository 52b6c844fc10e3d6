package sim

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestPlaceAndSellTower(t *testing.T) {
	s, _ := newTestSim(t, nil)

	res := s.Place(KindTower, C(3, 3))
	if !res.OK {
		t.Fatalf("Place() = %+v, expected success", res)
	}
	if got := s.Economy().Nuggets; got != 65 {
		t.Errorf("Nuggets after build = %d, expected 65", got)
	}
	if st := s.StructureAt(C(3, 3)); st == nil || st.ID != res.StructureID {
		t.Errorf("StructureAt() = %v, expected %q", st, res.StructureID)
	}

	sold := s.Sell(res.StructureID)
	if !sold.OK || sold.Refund != 35 {
		t.Fatalf("Sell() = %+v, expected refund 35", sold)
	}
	if got := s.Economy().Nuggets; got != 100 {
		t.Errorf("Nuggets after sell = %d, expected 100", got)
	}

	again := s.Sell(res.StructureID)
	if again.OK || again.Reason != ReasonUnknownStructure {
		t.Errorf("second Sell() = %+v, expected reason %q", again, ReasonUnknownStructure)
	}
	if got := s.Economy().Nuggets; got != 100 {
		t.Errorf("Nuggets after second sell = %d, expected 100", got)
	}
}

func TestSellRefundScalesWithHealth(t *testing.T) {
	s, _ := newTestSim(t, nil)
	res := s.Place(KindTower, C(3, 3))
	s.Structure(res.StructureID).Health = 75

	sold := s.Sell(res.StructureID)
	if sold.Refund != 17 {
		t.Errorf("Refund = %d, expected 17", sold.Refund)
	}
	if got := s.Economy().Nuggets; got != 65+17 {
		t.Errorf("Nuggets = %d, expected %d", got, 65+17)
	}
}

func TestMainIsNotSellable(t *testing.T) {
	s, _ := newTestSim(t, nil)
	res := s.Sell(MainStructureID)
	if res.OK || res.Reason != ReasonNotSellable {
		t.Errorf("Sell(main) = %+v, expected reason %q", res, ReasonNotSellable)
	}
	if !errors.Is(res.Err(), ErrNotSellable) {
		t.Errorf("Err() = %v, expected ErrNotSellable", res.Err())
	}
}

func TestPlaceRejections(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*Sim)
		kind     Kind
		cell     Cell
		expected Reason
	}{
		{"out of bounds", nil, KindWall, C(-1, 0), ReasonInvalidLocation},
		{"past right edge", nil, KindWall, C(43, 5), ReasonInvalidLocation},
		{"on main structure", nil, KindWall, C(21, 15), ReasonInvalidLocation},
		{"on another structure", func(s *Sim) { s.Place(KindWall, C(2, 2)) }, KindTower, C(2, 2), ReasonInvalidLocation},
		{"under a unit", func(s *Sim) {
			s.nextUnitID++
			s.units = append(s.units, newUnit(UnitID(s.nextUnitID), s.settings.Catalog.Units[0], C(4, 4)))
		}, KindWall, C(4, 4), ReasonInvalidLocation},
		{"not enough nuggets", func(s *Sim) { s.economy.Nuggets = 4 }, KindWall, C(1, 1), ReasonNoFunds},
		{"main kind", nil, KindCommandCenter, C(1, 1), ReasonInvalidKind},
		{"unknown kind", nil, Kind("moat"), C(1, 1), ReasonInvalidKind},
		{"game over", func(s *Sim) { s.status = StatusGameOver }, KindWall, C(1, 1), ReasonGameOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSim(t, nil)
			if tt.setup != nil {
				tt.setup(s)
			}
			before := s.Economy()
			res := s.Place(tt.kind, tt.cell)
			if res.OK || res.Reason != tt.expected {
				t.Errorf("Place() = %+v, expected reason %q", res, tt.expected)
			}
			if s.Economy() != before {
				t.Errorf("economy changed on rejected place: %+v -> %+v", before, s.Economy())
			}
		})
	}
}

func TestUpgradeCostScales(t *testing.T) {
	s, _ := newTestSim(t, nil)
	s.economy.Nuggets = 1000
	id := s.Place(KindTower, C(3, 3)).StructureID

	expectedCosts := []int{40, 60, 90}
	for i, expected := range expectedCosts {
		cost, ok := s.UpgradeCost(id, "damage")
		if !ok || cost != expected {
			t.Fatalf("purchase %d: UpgradeCost() = %d, %v, expected %d", i+1, cost, ok, expected)
		}
		res := s.Upgrade(id, "damage")
		if !res.OK || res.Cost != expected {
			t.Fatalf("purchase %d: Upgrade() = %+v, expected cost %d", i+1, res, expected)
		}
	}

	st := s.Structure(id)
	if st.Attack.Damage != 10+3*4 {
		t.Errorf("Damage = %d, expected %d", st.Attack.Damage, 10+3*4)
	}
	if st.Level("damage") != 3 {
		t.Errorf("Level(damage) = %d, expected 3", st.Level("damage"))
	}
	if got := s.Economy().Nuggets; got != 1000-35-40-60-90 {
		t.Errorf("Nuggets = %d, expected %d", got, 1000-35-40-60-90)
	}
}

func TestRepairCostDoesNotScale(t *testing.T) {
	s, _ := newTestSim(t, nil)
	s.economy.Nuggets = 1000
	id := s.Place(KindTower, C(3, 3)).StructureID
	st := s.Structure(id)
	st.Health = 10

	for i := 0; i < 3; i++ {
		res := s.Upgrade(id, "repair")
		if !res.OK || res.Cost != 15 {
			t.Fatalf("repair %d: Upgrade() = %+v, expected cost 15", i+1, res)
		}
	}
	if st.Health != st.MaxHealth {
		t.Errorf("Health = %d, expected capped at %d", st.Health, st.MaxHealth)
	}
}

func TestFireRateFloor(t *testing.T) {
	s, _ := newTestSim(t, nil)
	s.economy.Nuggets = 1000
	id := s.Place(KindTower, C(3, 3)).StructureID
	st := s.Structure(id)

	expected := []time.Duration{350 * time.Millisecond, 200 * time.Millisecond, 200 * time.Millisecond}
	costs := []int{45, 68, 101}
	for i := range expected {
		res := s.Upgrade(id, "fire_rate")
		if !res.OK || res.Cost != costs[i] {
			t.Fatalf("purchase %d: Upgrade() = %+v, expected cost %d", i+1, res, costs[i])
		}
		if st.Attack.Cooldown != expected[i] {
			t.Errorf("purchase %d: Cooldown = %v, expected %v", i+1, st.Attack.Cooldown, expected[i])
		}
	}
}

func TestGlobalSpikesUpgrade(t *testing.T) {
	s, _ := newTestSim(t, nil)
	s.economy.Nuggets = 1000
	center := s.Place(KindUpgradeCenter, C(3, 3)).StructureID
	wall := s.Place(KindWall, C(4, 3)).StructureID

	res := s.Upgrade(center, "spikes")
	if !res.OK || res.Cost != 150 {
		t.Fatalf("Upgrade(spikes) = %+v, expected cost 150", res)
	}
	if got := s.Economy().SpikeBonus; got != 10 {
		t.Errorf("SpikeBonus = %d, expected 10", got)
	}
	if cost, _ := s.UpgradeCost(center, "spikes"); cost != 225 {
		t.Errorf("next spikes cost = %d, expected 225", cost)
	}

	for _, v := range s.Snapshot().Structures {
		if v.ID == wall && v.Spike != 10 {
			t.Errorf("wall spike = %d, expected 10", v.Spike)
		}
	}
}

func TestGlobalUpgradeCountsAcrossStructures(t *testing.T) {
	s, _ := newTestSim(t, nil)
	s.economy.Nuggets = 2000
	first := s.Place(KindUpgradeCenter, C(3, 3)).StructureID
	second := s.Place(KindUpgradeCenter, C(8, 3)).StructureID

	if res := s.Upgrade(first, "spikes"); !res.OK || res.Cost != 150 {
		t.Fatalf("first Upgrade(spikes) = %+v, expected cost 150", res)
	}
	if cost, _ := s.UpgradeCost(second, "spikes"); cost != 225 {
		t.Errorf("UpgradeCost(second, spikes) = %d, expected 225", cost)
	}
	if res := s.Upgrade(second, "spikes"); !res.OK || res.Cost != 225 {
		t.Fatalf("second Upgrade(spikes) = %+v, expected cost 225", res)
	}

	if got := s.Economy().SpikeBonus; got != 20 {
		t.Errorf("SpikeBonus = %d, expected 20", got)
	}
	if got := s.GlobalLevel("spikes"); got != 2 {
		t.Errorf("GlobalLevel(spikes) = %d, expected 2", got)
	}
	if got := s.Structure(first).Level("spikes"); got != 0 {
		t.Errorf("Level(spikes) on structure = %d, expected 0", got)
	}
	if got := s.Snapshot().GlobalLevels["spikes"]; got != 2 {
		t.Errorf("Snapshot().GlobalLevels[spikes] = %d, expected 2", got)
	}

	// Selling a center does not reset the shared price.
	s.Sell(first)
	if cost, _ := s.UpgradeCost(second, "spikes"); cost != 338 {
		t.Errorf("UpgradeCost(spikes) after sell = %d, expected 338", cost)
	}

	s.Reset(1)
	if got := s.GlobalLevel("spikes"); got != 0 {
		t.Errorf("GlobalLevel(spikes) after Reset = %d, expected 0", got)
	}
}

func TestUpgradeRejections(t *testing.T) {
	s, _ := newTestSim(t, nil)
	center := s.Place(KindUpgradeCenter, C(3, 3)).StructureID

	tests := []struct {
		name     string
		id       StructureID
		key      string
		expected Reason
		err      error
	}{
		{"unknown structure", "tower-99", "damage", ReasonUnknownStructure, ErrUnknownStructure},
		{"unknown upgrade", center, "damage", ReasonInvalidUpgrade, ErrInvalidUpgrade},
		{"cannot afford", center, "spikes", ReasonNoFunds, ErrNoFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := s.Economy()
			res := s.Upgrade(tt.id, tt.key)
			if res.OK || res.Reason != tt.expected {
				t.Errorf("Upgrade() = %+v, expected reason %q", res, tt.expected)
			}
			if !errors.Is(res.Err(), tt.err) {
				t.Errorf("Err() = %v, expected to wrap %v", res.Err(), tt.err)
			}
			if s.Economy() != before {
				t.Errorf("economy changed on rejected upgrade")
			}
		})
	}
}

func TestResultErr(t *testing.T) {
	if err := (Result{OK: true}).Err(); err != nil {
		t.Errorf("Err() = %v, expected nil on success", err)
	}
	if err := fail(ReasonNoFunds).Err(); !errors.Is(err, ErrNoFunds) {
		t.Errorf("Err() = %v, expected to wrap ErrNoFunds", err)
	}
}

func TestNuggetsNeverNegative(t *testing.T) {
	s, _ := newTestSim(t, nil)
	rng := rand.New(rand.NewSource(42))
	kinds := s.settings.Catalog.BuildableKinds()
	keys := []string{"damage", "range", "fire_rate", "projectiles", "repair", "reinforce", "spikes", "max_health"}

	expected := s.Economy().Nuggets
	var placed []StructureID
	for i := 0; i < 500; i++ {
		var res Result
		switch rng.Intn(4) {
		case 0, 1:
			cell := C(rng.Intn(s.settings.Grid.W), rng.Intn(s.settings.Grid.H))
			res = s.Place(kinds[rng.Intn(len(kinds))], cell)
			if res.OK {
				placed = append(placed, res.StructureID)
			}
		case 2:
			if len(placed) == 0 {
				continue
			}
			id := placed[rng.Intn(len(placed))]
			if rng.Intn(3) == 0 {
				id = MainStructureID
			}
			res = s.Upgrade(id, keys[rng.Intn(len(keys))])
		case 3:
			if len(placed) == 0 {
				continue
			}
			res = s.Sell(placed[rng.Intn(len(placed))])
		}

		expected += res.Refund - res.Cost
		got := s.Economy().Nuggets
		if got < 0 {
			t.Fatalf("step %d: Nuggets = %d, expected non-negative", i, got)
		}
		if got != expected {
			t.Fatalf("step %d: Nuggets = %d, expected %d after %+v", i, got, expected, res)
		}
		if rng.Intn(10) == 0 {
			s.economy.Credit(25)
			expected += 25
		}
	}
}
