package sim

// Snapshot is a serializable view of the simulation for renderers.
// GlobalLevels counts purchases of upgrades shared by the whole base.
type Snapshot struct {
	Tick         uint64           `json:"tick" yaml:"tick"`
	Status       Status           `json:"status" yaml:"status"`
	Countdown    int              `json:"countdown" yaml:"countdown"`
	Grid         Grid             `json:"grid" yaml:"grid"`
	Main         StructureView    `json:"main" yaml:"main"`
	Structures   []StructureView  `json:"structures" yaml:"structures"`
	Units        []UnitView       `json:"units" yaml:"units"`
	Projectiles  []ProjectileView `json:"projectiles" yaml:"projectiles"`
	Economy      Economy          `json:"economy" yaml:"economy"`
	GlobalLevels map[string]int   `json:"global_levels,omitempty" yaml:"global_levels,omitempty"`
}

// StructureView is the render-facing state of a structure.
type StructureView struct {
	ID          StructureID    `json:"id" yaml:"id"`
	Kind        Kind           `json:"kind" yaml:"kind"`
	Anchor      Cell           `json:"anchor" yaml:"anchor"`
	Cells       []Cell         `json:"cells" yaml:"cells"`
	Health      int            `json:"health" yaml:"health"`
	MaxHealth   int            `json:"max_health" yaml:"max_health"`
	Damage      int            `json:"damage,omitempty" yaml:"damage,omitempty"`
	Range       float64        `json:"range,omitempty" yaml:"range,omitempty"`
	CooldownMs  int64          `json:"cooldown_ms,omitempty" yaml:"cooldown_ms,omitempty"`
	Projectiles int            `json:"projectiles,omitempty" yaml:"projectiles,omitempty"`
	Angle       float64        `json:"angle" yaml:"angle"`
	Spike       int            `json:"spike,omitempty" yaml:"spike,omitempty"`
	Levels      map[string]int `json:"levels,omitempty" yaml:"levels,omitempty"`
}

// UnitView is the render-facing state of a unit.
type UnitView struct {
	ID        UnitID      `json:"id" yaml:"id"`
	Type      string      `json:"type" yaml:"type"`
	Pos       Point       `json:"pos" yaml:"pos"`
	Health    int         `json:"health" yaml:"health"`
	MaxHealth int         `json:"max_health" yaml:"max_health"`
	State     UnitState   `json:"state" yaml:"state"`
	Windup    float64     `json:"windup" yaml:"windup"`
	Size      float64     `json:"size" yaml:"size"`
	Target    StructureID `json:"target,omitempty" yaml:"target,omitempty"`
}

// ProjectileView is the render-facing state of a projectile.
type ProjectileView struct {
	ID     int    `json:"id" yaml:"id"`
	Pos    Point  `json:"pos" yaml:"pos"`
	Target UnitID `json:"target" yaml:"target"`
}

// Snapshot captures the current state. The returned value shares nothing
// with the simulation.
func (s *Sim) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        s.tick,
		Status:      s.status,
		Countdown:   s.countdown,
		Grid:        s.settings.Grid,
		Main:        viewStructure(s.main, s.economy.SpikeBonus),
		Structures:  make([]StructureView, 0, len(s.structures)),
		Units:       make([]UnitView, 0, len(s.units)),
		Projectiles: make([]ProjectileView, 0, len(s.projectiles)),
		Economy:     s.economy,
	}
	if len(s.globalLevels) > 0 {
		snap.GlobalLevels = make(map[string]int, len(s.globalLevels))
		for k, n := range s.globalLevels {
			snap.GlobalLevels[k] = n
		}
	}
	for _, st := range s.structures {
		if st.Active {
			snap.Structures = append(snap.Structures, viewStructure(st, s.economy.SpikeBonus))
		}
	}
	for _, u := range s.units {
		if !u.Alive() {
			continue
		}
		snap.Units = append(snap.Units, UnitView{
			ID:        u.ID,
			Type:      u.Type,
			Pos:       u.Pos,
			Health:    u.Health,
			MaxHealth: u.MaxHealth,
			State:     u.State,
			Windup:    u.Windup,
			Size:      u.Size,
			Target:    u.TargetID,
		})
	}
	for _, p := range s.projectiles {
		if p.Active {
			snap.Projectiles = append(snap.Projectiles, ProjectileView{ID: p.ID, Pos: p.Pos, Target: p.TargetID})
		}
	}
	return snap
}

func viewStructure(st *Structure, spikeBonus int) StructureView {
	v := StructureView{
		ID:        st.ID,
		Kind:      st.Kind,
		Anchor:    st.Anchor,
		Cells:     st.Cells(),
		Health:    st.Health,
		MaxHealth: st.MaxHealth,
	}
	if st.Attack != nil {
		v.Damage = st.Attack.Damage
		v.Range = st.Attack.Range
		v.CooldownMs = st.Attack.Cooldown.Milliseconds()
		v.Projectiles = st.Attack.Projectiles
		v.Angle = st.Attack.Angle
	}
	if st.HasCounterDamage() {
		v.Spike = st.Spike + spikeBonus
	}
	if len(st.Levels) > 0 {
		v.Levels = make(map[string]int, len(st.Levels))
		for k, n := range st.Levels {
			v.Levels[k] = n
		}
	}
	return v
}
