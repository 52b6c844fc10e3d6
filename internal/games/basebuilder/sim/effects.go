package sim

// Effect is a state change requested by a tick phase. Phases never mutate
// other entities directly; the simulation applies effects centrally after
// each phase.
type Effect interface {
	isEffect()
}

// DamageStructure damages a structure.
type DamageStructure struct {
	Target StructureID
	Amount int
	Source UnitID
}

// DamageUnit damages a unit.
type DamageUnit struct {
	Target UnitID
	Amount int
	Cause  DamageCause
}

// SpawnProjectile fires a projectile.
type SpawnProjectile struct {
	Source    StructureID
	From      Point
	Target    UnitID
	TargetPos Point
	Damage    int
}

func (DamageStructure) isEffect() {}
func (DamageUnit) isEffect()      {}
func (SpawnProjectile) isEffect() {}

// DamageCause says what hurt a unit.
type DamageCause string

const (
	CauseProjectile DamageCause = "projectile"
	CauseSpike      DamageCause = "spike"
)

// ShotEvent records a projectile being fired.
type ShotEvent struct {
	Projectile int
	Source     StructureID
	Target     UnitID
}

// KillEvent records a unit dying.
type KillEvent struct {
	Unit   UnitID
	Type   string
	Reward int
	Cause  DamageCause
}

// DestroyedEvent records a structure reaching zero health.
type DestroyedEvent struct {
	ID   StructureID
	Kind Kind
	Main bool
}

// SpawnEvent records a unit entering the field.
type SpawnEvent struct {
	Unit UnitID
	Type string
	At   Cell
}

// TickResult describes what happened during one tick.
type TickResult struct {
	Tick          uint64
	Status        Status
	StatusChanged bool
	Spawned       []SpawnEvent
	Shots         []ShotEvent
	Kills         []KillEvent
	Destroyed     []DestroyedEvent
	GameOver      bool
}

// applyEffects applies queued effects in order and records their events.
func (s *Sim) applyEffects(effects []Effect, res *TickResult) {
	for _, e := range effects {
		switch e := e.(type) {
		case SpawnProjectile:
			s.spawnProjectile(e, res)
		case DamageStructure:
			s.damageStructure(e.Target, e.Amount, res)
		case DamageUnit:
			s.damageUnit(e.Target, e.Amount, e.Cause, res)
		}
	}
}

func (s *Sim) spawnProjectile(e SpawnProjectile, res *TickResult) {
	s.nextProjectileID++
	p := &Projectile{
		ID:        s.nextProjectileID,
		Source:    e.Source,
		Pos:       e.From,
		TargetID:  e.Target,
		TargetPos: e.TargetPos,
		Damage:    e.Damage,
		Speed:     s.settings.Projectiles.Speed,
		Active:    true,
	}
	s.projectiles = append(s.projectiles, p)
	res.Shots = append(res.Shots, ShotEvent{Projectile: p.ID, Source: e.Source, Target: e.Target})
}

// damageStructure lowers a structure's health, clamping at zero. A
// destroyed structure is deactivated and dropped in the removal pass,
// except the main structure, which ends the game instead.
func (s *Sim) damageStructure(id StructureID, amount int, res *TickResult) {
	st := s.structureByID(id)
	if st == nil || !st.Active || amount <= 0 {
		return
	}
	st.Health -= amount
	if st.Health > 0 {
		return
	}
	st.Health = 0

	if st.Main {
		if s.status != StatusGameOver {
			s.setStatus(StatusGameOver, res)
			res.GameOver = true
			res.Destroyed = append(res.Destroyed, DestroyedEvent{ID: st.ID, Kind: st.Kind, Main: true})
			s.logger.Info("main structure destroyed", "tick", s.tick, "score", s.economy.Score)
		}
		return
	}

	st.Active = false
	res.Destroyed = append(res.Destroyed, DestroyedEvent{ID: st.ID, Kind: st.Kind})
	s.logger.Debug("structure destroyed", "id", st.ID, "kind", st.Kind, "tick", s.tick)
}

// damageUnit lowers a unit's health, clamping at zero. The kill reward is
// paid exactly once, when health crosses from positive to zero.
func (s *Sim) damageUnit(id UnitID, amount int, cause DamageCause, res *TickResult) {
	u := s.unitByID(id)
	if u == nil || !u.Active || amount <= 0 {
		return
	}
	before := u.Health
	u.Health -= amount
	if u.Health < 0 {
		u.Health = 0
	}
	if before > 0 && u.Health <= 0 {
		u.Active = false
		s.economy.Credit(u.Reward)
		s.stats.Kills++
		res.Kills = append(res.Kills, KillEvent{Unit: u.ID, Type: u.Type, Reward: u.Reward, Cause: cause})
	}
}
