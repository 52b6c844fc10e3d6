package sim

import (
	"math"
	"time"
)

// StructureID uniquely identifies a structure within a simulation.
type StructureID string

// MainStructureID is the id of the pre-placed main structure.
const MainStructureID StructureID = "main-command-center"

// Attack is the attack capability of a structure.
type Attack struct {
	Damage      int
	Range       float64
	Cooldown    time.Duration
	Projectiles int
	LastAttack  time.Time
	Fired       bool    // false until the first volley
	Angle       float64 // aim toward the last nearest target, radians
}

// Ready reports whether the cooldown has elapsed at now.
func (a *Attack) Ready(now time.Time) bool {
	return !a.Fired || now.Sub(a.LastAttack) >= a.Cooldown
}

// Structure is a placed entity with health. Capabilities are optional
// components: an armed structure carries an Attack, a structure that hurts
// its attackers has CounterDamage set.
type Structure struct {
	ID            StructureID
	Kind          Kind
	Anchor        Cell
	Footprint     Footprint
	Health        int
	MaxHealth     int
	BuildCost     int
	Attack        *Attack
	CounterDamage bool
	Spike         int
	Levels        map[string]int
	Main          bool
	Active        bool
}

// newStructure instantiates a structure from its catalog entry.
func newStructure(id StructureID, spec StructureSpec, anchor Cell) *Structure {
	s := &Structure{
		ID:            id,
		Kind:          spec.Kind,
		Anchor:        anchor,
		Footprint:     spec.Footprint,
		Health:        spec.MaxHealth,
		MaxHealth:     spec.MaxHealth,
		BuildCost:     spec.BuildCost,
		CounterDamage: spec.CounterDamage,
		Spike:         spec.Spike,
		Levels:        make(map[string]int),
		Active:        true,
	}
	if spec.Attack != nil {
		s.Attack = &Attack{
			Damage:      spec.Attack.Damage,
			Range:       spec.Attack.Range,
			Cooldown:    spec.Attack.Cooldown,
			Projectiles: spec.Attack.Projectiles,
		}
	}
	return s
}

// HasAttack reports whether the structure can shoot.
func (s *Structure) HasAttack() bool {
	return s.Attack != nil && s.Attack.Damage > 0
}

// HasCounterDamage reports whether attackers of this structure get hurt.
func (s *Structure) HasCounterDamage() bool {
	return s.CounterDamage
}

// Cells returns the cells the structure occupies.
func (s *Structure) Cells() []Cell {
	return s.Footprint.Cells(s.Anchor)
}

// Occupies reports whether the structure covers the cell.
func (s *Structure) Occupies(c Cell) bool {
	for _, fc := range s.Cells() {
		if fc == c {
			return true
		}
	}
	return false
}

// Perimeter returns the standing cells around the structure.
func (s *Structure) Perimeter(g Grid) []Cell {
	return s.Footprint.Perimeter(s.Anchor, g)
}

// DistanceTo returns the Euclidean distance from p to the nearest
// footprint cell.
func (s *Structure) DistanceTo(p Point) float64 {
	best := math.Inf(1)
	for _, c := range s.Cells() {
		if d := p.Dist(c.Point()); d < best {
			best = d
		}
	}
	return best
}

// Level returns how many times an upgrade was bought.
func (s *Structure) Level(key string) int {
	return s.Levels[key]
}

// UnitID uniquely identifies a unit within a simulation.
type UnitID int

// UnitState is the movement state of a unit.
type UnitState string

const (
	UnitMoving    UnitState = "moving"
	UnitAttacking UnitState = "attacking"
)

// Unit is a hostile mobile entity.
type Unit struct {
	ID        UnitID
	Type      string
	Pos       Point
	Health    int
	MaxHealth int
	Damage    int
	Speed     float64
	Cooldown  time.Duration
	Size      float64
	Reward    int

	State     UnitState
	Path      []Cell
	PathIndex int
	TargetID  StructureID

	Winding    bool
	Windup     float64
	LastAttack time.Time
	attacked   bool

	StuckFrames int
	LastPos     Point
	Replans     int

	Active bool
}

// newUnit spawns a unit of the given type at a cell.
func newUnit(id UnitID, spec UnitSpec, at Cell) *Unit {
	return &Unit{
		ID:        id,
		Type:      spec.Type,
		Pos:       at.Point(),
		Health:    spec.Health,
		MaxHealth: spec.Health,
		Damage:    spec.Damage,
		Speed:     spec.Speed,
		Cooldown:  spec.Cooldown,
		Size:      spec.Size,
		Reward:    spec.Reward,
		State:     UnitMoving,
		LastPos:   at.Point(),
		Active:    true,
	}
}

// Alive reports whether the unit is still in play.
func (u *Unit) Alive() bool {
	return u.Active && u.Health > 0
}

// Projectile is a seeking shot fired by a structure.
type Projectile struct {
	ID        int
	Source    StructureID
	Pos       Point
	TargetID  UnitID
	TargetPos Point
	Damage    int
	Speed     float64
	Active    bool
}
