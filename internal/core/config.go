package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  100,
		ScreenH:  40,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// Cue names a moment a frontend may want to make audible.
type Cue string

const (
	CueShot      Cue = "shot"
	CueKill      Cue = "kill"
	CueDestroyed Cue = "destroyed"
	CueBuild     Cue = "build"
	CueDenied    Cue = "denied"
	CueStart     Cue = "start"
	CueGameOver  Cue = "game-over"
)

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Cues  []Cue // at most one of each per tick
}

// AddCue appends a cue once.
func (r *StepResult) AddCue(c Cue) {
	for _, have := range r.Cues {
		if have == c {
			return
		}
	}
	r.Cues = append(r.Cues, c)
}

// RunSummary describes a finished game for run history.
type RunSummary struct {
	Seed      int64
	Score     int
	Kills     int
	Built     int
	Ticks     int64
	Duration  time.Duration
	EndReason string
}

// RunReporter is implemented by games that can summarize a finished run.
type RunReporter interface {
	RunSummary() RunSummary
}

// CuePlayer makes cues audible. Play must not block the tick loop.
type CuePlayer interface {
	Play(c Cue)
}
