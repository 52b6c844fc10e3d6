package basebuilder

import (
	"time"

	"github.com/chubes4/chubes-games/internal/games/basebuilder/sim"
)

// pausableClock is a sim.Clock that stands still while paused, so
// countdowns, cooldowns and spawn timers do not run on during a pause.
type pausableClock struct {
	src      sim.Clock
	paused   bool
	pausedAt time.Time
	lost     time.Duration
}

func newPausableClock(src sim.Clock) *pausableClock {
	return &pausableClock{src: src}
}

func (c *pausableClock) Now() time.Time {
	if c.paused {
		return c.pausedAt.Add(-c.lost)
	}
	return c.src.Now().Add(-c.lost)
}

func (c *pausableClock) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = c.src.Now()
}

func (c *pausableClock) Resume() {
	if !c.paused {
		return
	}
	c.paused = false
	c.lost += c.src.Now().Sub(c.pausedAt)
}
