package sim

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Reason is a machine-readable code explaining why a command failed.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonNoFunds          Reason = "no-funds"
	ReasonInvalidLocation  Reason = "invalid-location"
	ReasonInvalidUpgrade   Reason = "invalid-upgrade"
	ReasonSpendFailed      Reason = "spend-failed"
	ReasonInvalidKind      Reason = "invalid-kind"
	ReasonUnknownStructure Reason = "unknown-structure"
	ReasonNotSellable      Reason = "not-sellable"
	ReasonGameOver         Reason = "game-over"
)

// Sentinel errors matching the failure reasons.
var (
	ErrNoFunds          = errors.New("insufficient funds")
	ErrInvalidLocation  = errors.New("cannot build here")
	ErrInvalidUpgrade   = errors.New("invalid upgrade")
	ErrSpendFailed      = errors.New("spend failed")
	ErrInvalidKind      = errors.New("structure kind cannot be built")
	ErrUnknownStructure = errors.New("unknown structure")
	ErrNotSellable      = errors.New("structure cannot be sold")
	ErrGameOver         = errors.New("game is over")
)

var reasonErrors = map[Reason]error{
	ReasonNoFunds:          ErrNoFunds,
	ReasonInvalidLocation:  ErrInvalidLocation,
	ReasonInvalidUpgrade:   ErrInvalidUpgrade,
	ReasonSpendFailed:      ErrSpendFailed,
	ReasonInvalidKind:      ErrInvalidKind,
	ReasonUnknownStructure: ErrUnknownStructure,
	ReasonNotSellable:      ErrNotSellable,
	ReasonGameOver:         ErrGameOver,
}

// Result is the outcome of a place, upgrade or sell command.
type Result struct {
	OK          bool
	Reason      Reason
	StructureID StructureID
	Cost        int
	Refund      int
}

// Err returns nil on success, otherwise an error wrapping the sentinel for
// the failure reason.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	if err, ok := reasonErrors[r.Reason]; ok {
		return fmt.Errorf("sim: %s: %w", r.Reason, err)
	}
	return fmt.Errorf("sim: command failed: %s", r.Reason)
}

func fail(reason Reason) Result {
	return Result{Reason: reason}
}

// CanBuildAt reports whether a structure of the given kind fits at cell:
// every footprint cell inside the grid, free of active structures and not
// under an active unit.
func (s *Sim) CanBuildAt(kind Kind, cell Cell) bool {
	spec, ok := s.settings.Catalog.Structure(kind)
	if !ok {
		return false
	}
	occupied := occupiedCells(s.allStructures())
	for _, u := range s.units {
		if u.Alive() {
			occupied.Add(u.Pos.Cell())
		}
	}
	for _, c := range spec.Footprint.Cells(cell) {
		if !s.settings.Grid.InBounds(c) || occupied.Has(c) {
			return false
		}
	}
	return true
}

// Place builds a structure of the given kind anchored at cell.
func (s *Sim) Place(kind Kind, cell Cell) Result {
	res := s.place(kind, cell)
	if !res.OK {
		s.logger.Debug("place rejected", "kind", kind, "cell", cell, "reason", res.Reason)
	}
	return res
}

func (s *Sim) place(kind Kind, cell Cell) Result {
	if s.status == StatusGameOver {
		return fail(ReasonGameOver)
	}
	spec, ok := s.settings.Catalog.Structure(kind)
	if !ok || !spec.Buildable {
		return fail(ReasonInvalidKind)
	}
	if !s.economy.CanAfford(spec.BuildCost) {
		return fail(ReasonNoFunds)
	}
	if !s.CanBuildAt(kind, cell) {
		return fail(ReasonInvalidLocation)
	}
	if !s.economy.Spend(spec.BuildCost) {
		return fail(ReasonSpendFailed)
	}

	s.nextStructureSeq++
	id := StructureID(fmt.Sprintf("%s-%d", kind, s.nextStructureSeq))
	s.structures = append(s.structures, newStructure(id, spec, cell))
	s.stats.Built++
	s.stats.Spent += spec.BuildCost
	return Result{OK: true, StructureID: id, Cost: spec.BuildCost}
}

// UpgradeCost returns the current price of an upgrade:
// round(base * multiplier^level), or the base price for repairs.
func (s *Sim) UpgradeCost(id StructureID, key string) (int, bool) {
	st := s.structureByID(id)
	if st == nil || !st.Active {
		return 0, false
	}
	up, ok := s.upgradeSpec(st, key)
	if !ok {
		return 0, false
	}
	return scaledCost(up, s.upgradeLevel(st, up), s.settings.CostMultiplier), true
}

// upgradeLevel returns how often an upgrade was bought: across the whole
// base for global upgrades, on st otherwise.
func (s *Sim) upgradeLevel(st *Structure, up UpgradeSpec) int {
	if up.Global {
		return s.globalLevels[up.Key]
	}
	return st.Level(up.Key)
}

// GlobalLevel returns how often a global upgrade was bought.
func (s *Sim) GlobalLevel(key string) int {
	return s.globalLevels[key]
}

func scaledCost(up UpgradeSpec, level int, multiplier float64) int {
	if !up.Scales() {
		return up.Cost
	}
	return int(math.Round(float64(up.Cost) * math.Pow(multiplier, float64(level))))
}

// Upgrade buys an upgrade for a structure.
func (s *Sim) Upgrade(id StructureID, key string) Result {
	res := s.upgrade(id, key)
	if !res.OK {
		s.logger.Debug("upgrade rejected", "id", id, "upgrade", key, "reason", res.Reason)
	}
	return res
}

func (s *Sim) upgrade(id StructureID, key string) Result {
	if s.status == StatusGameOver {
		return fail(ReasonGameOver)
	}
	st := s.structureByID(id)
	if st == nil || !st.Active {
		return fail(ReasonUnknownStructure)
	}
	up, ok := s.upgradeSpec(st, key)
	if !ok || (up.Effect.NeedsAttack() && st.Attack == nil) {
		return fail(ReasonInvalidUpgrade)
	}

	cost := scaledCost(up, s.upgradeLevel(st, up), s.settings.CostMultiplier)
	if !s.economy.CanAfford(cost) {
		return fail(ReasonNoFunds)
	}
	if !s.economy.Spend(cost) {
		return fail(ReasonSpendFailed)
	}

	s.applyUpgrade(st, up)
	s.stats.Spent += cost
	return Result{OK: true, StructureID: st.ID, Cost: cost}
}

func (s *Sim) upgradeSpec(st *Structure, key string) (UpgradeSpec, bool) {
	spec, ok := s.settings.Catalog.Structure(st.Kind)
	if !ok {
		return UpgradeSpec{}, false
	}
	return spec.Upgrade(key)
}

// applyUpgrade applies the upgrade's effect and bumps its level.
func (s *Sim) applyUpgrade(st *Structure, up UpgradeSpec) {
	switch up.Effect {
	case EffectDamage:
		st.Attack.Damage += up.Amount
	case EffectRange:
		st.Attack.Range += float64(up.Amount)
	case EffectFireRate:
		cd := st.Attack.Cooldown - time.Duration(up.Amount)*time.Millisecond
		if floor := time.Duration(up.Floor) * time.Millisecond; cd < floor {
			cd = floor
		}
		st.Attack.Cooldown = cd
	case EffectProjectiles:
		st.Attack.Projectiles += up.Amount
	case EffectRepair:
		st.Health += up.Amount
		if st.Health > st.MaxHealth {
			st.Health = st.MaxHealth
		}
	case EffectMaxHealth:
		st.MaxHealth += up.Amount
		st.Health += up.Amount
	case EffectSpikes:
		s.economy.SpikeBonus += up.Amount
	}
	if up.Global {
		s.globalLevels[up.Key]++
		return
	}
	st.Levels[up.Key]++
}

// RefundFor returns what selling a structure would pay back:
// floor(health / maxHealth * buildCost).
func RefundFor(st *Structure) int {
	if st.MaxHealth <= 0 {
		return 0
	}
	return int(math.Floor(float64(st.Health) / float64(st.MaxHealth) * float64(st.BuildCost)))
}

// Sell removes a structure and refunds part of its build cost. Selling an
// id that no longer exists fails without paying anything.
func (s *Sim) Sell(id StructureID) Result {
	if s.status == StatusGameOver {
		return fail(ReasonGameOver)
	}
	st := s.structureByID(id)
	if st == nil || !st.Active {
		return fail(ReasonUnknownStructure)
	}
	if st.Main {
		return fail(ReasonNotSellable)
	}

	refund := RefundFor(st)
	s.economy.Refund(refund)

	kept := make([]*Structure, 0, len(s.structures))
	for _, other := range s.structures {
		if other.ID != id {
			kept = append(kept, other)
		}
	}
	s.structures = kept
	st.Active = false
	return Result{OK: true, StructureID: id, Refund: refund}
}
