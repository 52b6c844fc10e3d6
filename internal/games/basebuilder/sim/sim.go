package sim

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Status is the lifecycle state of a simulation.
type Status string

const (
	StatusCountdown Status = "countdown"
	StatusPlaying   Status = "playing"
	StatusGameOver  Status = "game-over"
)

// Stats are running totals for a game, used for run records.
type Stats struct {
	Kills int
	Built int
	Spent int
	Ticks uint64
}

// Sim owns all mutable game state. It is single-threaded: callers must
// not invoke Tick or commands concurrently.
type Sim struct {
	settings Settings
	clock    Clock
	logger   *log.Logger
	planner  *Planner
	rng      *rand.Rand
	seed     int64

	status    Status
	started   bool
	startedAt time.Time
	now       time.Time
	countdown int
	tick      uint64

	economy     Economy
	main        *Structure
	structures  []*Structure
	units       []*Unit
	projectiles []*Projectile

	// Purchase counts of global upgrades, shared by every structure
	// that offers them.
	globalLevels map[string]int

	spawnInterval time.Duration
	lastSpawn     time.Time
	spawnedOnce   bool

	nextStructureSeq int
	nextUnitID       int
	nextProjectileID int
	stats            Stats
}

// Option configures a Sim.
type Option func(*Sim)

// WithClock sets the time source. Defaults to SystemClock.
func WithClock(c Clock) Option {
	return func(s *Sim) { s.clock = c }
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Sim) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeed sets the RNG seed used for spawning.
func WithSeed(seed int64) Option {
	return func(s *Sim) { s.seed = seed }
}

// New creates a simulation ready to tick.
func New(settings Settings, opts ...Option) (*Sim, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	s := &Sim{
		settings: settings,
		clock:    SystemClock{},
		logger:   log.New(io.Discard),
		planner:  NewPlanner(settings.Grid, settings.Movement.AttackRange),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset(s.seed)
	return s, nil
}

// Reset reinitializes every piece of state: fresh economy, no structures
// besides a fresh main structure, no units or projectiles, countdown.
func (s *Sim) Reset(seed int64) {
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))

	s.status = StatusCountdown
	s.started = false
	s.countdown = int(s.settings.Countdown / time.Second)
	s.tick = 0

	s.economy = Economy{Nuggets: s.settings.StartingNuggets}
	s.globalLevels = make(map[string]int)
	mainSpec, _ := s.settings.Catalog.Structure(s.settings.MainKind)
	s.main = newStructure(MainStructureID, mainSpec, s.settings.MainAnchor)
	s.main.Main = true
	s.structures = nil
	s.units = nil
	s.projectiles = nil

	s.spawnInterval = s.settings.SpawnInterval
	s.spawnedOnce = false
	s.nextStructureSeq = 0
	s.nextUnitID = 0
	s.nextProjectileID = 0
	s.stats = Stats{}
}

// Tick advances the simulation by one frame: countdown, fire control,
// spawning and unit movement, combat, projectiles, then removal of
// everything that died.
func (s *Sim) Tick() TickResult {
	s.now = s.clock.Now()
	res := TickResult{Tick: s.tick}
	defer func() {
		s.tick++
		s.stats.Ticks = s.tick
	}()

	s.updateCountdown(&res)
	if s.status != StatusPlaying {
		res.Status = s.status
		return res
	}

	structures := s.allStructures()

	s.applyEffects(s.fireControl(structures), &res)

	s.spawnUnits(&res)
	obstacles := occupiedCells(structures)
	for _, u := range s.units {
		if u.Alive() {
			s.stepUnit(u, structures, obstacles)
		}
	}

	s.applyEffects(s.resolveCombat(structures), &res)
	if s.status == StatusPlaying {
		s.applyEffects(s.stepProjectiles(), &res)
	}

	s.sweep()
	res.Status = s.status
	return res
}

// updateCountdown runs the countdown on wall-clock time. The countdown
// starts at the first tick.
func (s *Sim) updateCountdown(res *TickResult) {
	if !s.started {
		s.started = true
		s.startedAt = s.now
	}
	if s.status != StatusCountdown {
		return
	}

	elapsed := s.now.Sub(s.startedAt)
	remaining := int(s.settings.Countdown/time.Second) - int(elapsed/time.Second)
	if remaining < 0 {
		remaining = 0
	}
	s.countdown = remaining

	if elapsed >= s.settings.Countdown {
		s.countdown = 0
		s.setStatus(StatusPlaying, res)
	}
}

func (s *Sim) setStatus(status Status, res *TickResult) {
	if s.status == status {
		return
	}
	s.logger.Debug("status changed", "from", s.status, "to", status, "tick", s.tick)
	s.status = status
	res.StatusChanged = true
}

// spawnUnits brings in a new unit once per spawn interval at a random
// free edge cell. The first unit arrives as soon as play starts.
func (s *Sim) spawnUnits(res *TickResult) {
	if s.spawnedOnce && s.now.Sub(s.lastSpawn) < s.spawnInterval {
		return
	}
	s.lastSpawn = s.now
	s.spawnedOnce = true

	spec := s.pickUnitSpec()
	cell, ok := s.pickSpawnCell()
	if !ok {
		return
	}

	s.nextUnitID++
	u := newUnit(UnitID(s.nextUnitID), spec, cell)
	s.units = append(s.units, u)
	res.Spawned = append(res.Spawned, SpawnEvent{Unit: u.ID, Type: u.Type, At: cell})
}

// pickUnitSpec draws a unit type by weight, falling back to "basic".
func (s *Sim) pickUnitSpec() UnitSpec {
	units := s.settings.Catalog.Units
	total := 0
	for _, u := range units {
		total += u.Weight
	}
	if total > 0 {
		r := s.rng.Intn(total)
		for _, u := range units {
			if r < u.Weight {
				return u
			}
			r -= u.Weight
		}
	}
	for _, u := range units {
		if u.Type == "basic" {
			return u
		}
	}
	return units[0]
}

// spawnAttempts bounds the search for a free edge cell.
const spawnAttempts = 8

func (s *Sim) pickSpawnCell() (Cell, bool) {
	edges := s.settings.Grid.EdgeCells()
	if len(edges) == 0 {
		return Cell{}, false
	}
	occupied := occupiedCells(s.allStructures())
	for i := 0; i < spawnAttempts; i++ {
		c := edges[s.rng.Intn(len(edges))]
		if !occupied.Has(c) {
			return c, true
		}
	}
	return Cell{}, false
}

// sweep drops dead units, spent projectiles and destroyed structures by
// building fresh slices after all phases have run.
func (s *Sim) sweep() {
	units := s.units[:0:0]
	for _, u := range s.units {
		if u.Alive() {
			units = append(units, u)
		}
	}
	s.units = units

	projectiles := s.projectiles[:0:0]
	for _, p := range s.projectiles {
		if p.Active {
			projectiles = append(projectiles, p)
		}
	}
	s.projectiles = projectiles

	structures := s.structures[:0:0]
	for _, st := range s.structures {
		if st.Active {
			structures = append(structures, st)
		}
	}
	s.structures = structures
}

// allStructures returns the main structure followed by all others.
func (s *Sim) allStructures() []*Structure {
	all := make([]*Structure, 0, len(s.structures)+1)
	all = append(all, s.main)
	return append(all, s.structures...)
}

func (s *Sim) structureByID(id StructureID) *Structure {
	if s.main != nil && s.main.ID == id {
		return s.main
	}
	for _, st := range s.structures {
		if st.ID == id {
			return st
		}
	}
	return nil
}

func (s *Sim) unitByID(id UnitID) *Unit {
	for _, u := range s.units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// Status returns the lifecycle state.
func (s *Sim) Status() Status { return s.status }

// Countdown returns the whole seconds left before play starts.
func (s *Sim) Countdown() int { return s.countdown }

// Economy returns a copy of the economy state.
func (s *Sim) Economy() Economy { return s.economy }

// Stats returns running totals.
func (s *Sim) Stats() Stats { return s.stats }

// Settings returns the settings the simulation was created with.
func (s *Sim) Settings() Settings { return s.settings }

// Seed returns the seed of the current game.
func (s *Sim) Seed() int64 { return s.seed }

// TickCount returns how many ticks have run since the last reset.
func (s *Sim) TickCount() uint64 { return s.tick }

// SetSpawnInterval changes the time between spawns, e.g. as difficulty
// rises. Non-positive values are ignored.
func (s *Sim) SetSpawnInterval(d time.Duration) {
	if d > 0 {
		s.spawnInterval = d
	}
}

// SpawnInterval returns the current time between spawns.
func (s *Sim) SpawnInterval() time.Duration { return s.spawnInterval }

// StructureAt returns the active structure covering cell, or nil.
func (s *Sim) StructureAt(c Cell) *Structure {
	for _, st := range s.allStructures() {
		if st.Active && st.Occupies(c) {
			return st
		}
	}
	return nil
}

// Structure returns a structure by id, or nil.
func (s *Sim) Structure(id StructureID) *Structure {
	return s.structureByID(id)
}
