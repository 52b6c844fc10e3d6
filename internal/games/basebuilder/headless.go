package basebuilder

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chubes4/chubes-games/internal/config"
	"github.com/chubes4/chubes-games/internal/games/basebuilder/sim"
)

// Placement is one build order of a scripted opening.
type Placement struct {
	Kind sim.Kind `yaml:"kind"`
	At   sim.Cell `yaml:"at"`
}

// PlacementResult is the outcome of a scripted build order.
type PlacementResult struct {
	Placement `yaml:",inline"`
	OK        bool       `yaml:"ok"`
	Reason    sim.Reason `yaml:"reason,omitempty"`
}

// HeadlessOptions control a run without a frontend.
type HeadlessOptions struct {
	Ticks   int
	Seed    int64
	Step    time.Duration // simulated time per tick; defaults to 1/60 s
	Opening []Placement   // nil uses DefaultOpening
	Logger  *log.Logger
}

// HeadlessReport is the result of a headless run.
type HeadlessReport struct {
	Seed      int64             `yaml:"seed"`
	Ticks     uint64            `yaml:"ticks"`
	ElapsedMs int64             `yaml:"elapsed_ms"`
	GameOver  bool              `yaml:"game_over"`
	Opening   []PlacementResult `yaml:"opening"`
	Stats     sim.Stats         `yaml:"stats"`
	Final     sim.Snapshot      `yaml:"final"`
}

// DefaultOpening places two towers flanking the main structure and walls
// closing its north and south approaches.
func DefaultOpening(anchor sim.Cell) []Placement {
	return []Placement{
		{Kind: sim.KindTower, At: anchor.Add(sim.C(-4, 0))},
		{Kind: sim.KindTower, At: anchor.Add(sim.C(4, 0))},
		{Kind: sim.KindWall, At: anchor.Add(sim.C(0, -3))},
		{Kind: sim.KindWall, At: anchor.Add(sim.C(0, 3))},
		{Kind: sim.KindWall, At: anchor.Add(sim.C(-1, -3))},
		{Kind: sim.KindWall, At: anchor.Add(sim.C(1, 3))},
	}
}

// RunHeadless plays the opening and then ticks a simulation on a stepping
// clock until Ticks have run or the base falls. The same config, seed and
// step always give the same report.
func RunHeadless(cfg config.BaseBuilderConfig, opts HeadlessOptions) (HeadlessReport, error) {
	if opts.Ticks <= 0 {
		return HeadlessReport{}, errors.New("basebuilder: ticks must be positive")
	}
	if opts.Step <= 0 {
		opts.Step = time.Second / 60
	}
	settings, err := SettingsFromConfig(cfg)
	if err != nil {
		return HeadlessReport{}, err
	}

	clock := sim.NewManualClock(time.Unix(0, 0).UTC())
	simOpts := []sim.Option{sim.WithClock(clock), sim.WithSeed(opts.Seed)}
	if opts.Logger != nil {
		simOpts = append(simOpts, sim.WithLogger(opts.Logger))
	}
	s, err := sim.New(settings, simOpts...)
	if err != nil {
		return HeadlessReport{}, err
	}

	opening := opts.Opening
	if opening == nil {
		opening = DefaultOpening(settings.MainAnchor)
	}
	report := HeadlessReport{Seed: opts.Seed}
	for _, p := range opening {
		res := s.Place(p.Kind, p.At)
		report.Opening = append(report.Opening, PlacementResult{Placement: p, OK: res.OK, Reason: res.Reason})
	}

	difficulty := config.NewDifficultyManager(cfg.Difficulty)
	for range opts.Ticks {
		tick := s.Tick()
		s.SetSpawnInterval(difficulty.SpawnInterval(
			ms(cfg.Waves.SpawnIntervalMs),
			ms(cfg.Waves.MinSpawnIntervalMs),
			s.Economy().Score,
			int(s.TickCount()),
		))
		if tick.GameOver {
			report.GameOver = true
			break
		}
		clock.Advance(opts.Step)
	}

	report.Ticks = s.TickCount()
	report.ElapsedMs = (time.Duration(report.Ticks) * opts.Step).Milliseconds()
	report.Stats = s.Stats()
	report.Final = s.Snapshot()
	return report, nil
}
