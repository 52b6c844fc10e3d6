package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/chubes4/chubes-games/internal/core"
)

// Player implements core.CuePlayer. Play never blocks on audio output.
type Player struct {
	mu     sync.Mutex
	volume float64
	muted  bool
	last   map[core.Cue]time.Time
	now    func() time.Time
	sink   func(beep.Streamer)
	close  func()
}

// Open initializes the speaker and returns a player at the given linear
// volume (1 is unchanged).
func Open(volume float64) (*Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	mixer := &beep.Mixer{}
	speaker.Play(mixer)

	p := newPlayer(volume, func(s beep.Streamer) {
		speaker.Lock()
		mixer.Add(s)
		speaker.Unlock()
	}, time.Now)
	p.close = speaker.Close
	return p, nil
}

func newPlayer(volume float64, sink func(beep.Streamer), now func() time.Time) *Player {
	return &Player{
		volume: volume,
		last:   make(map[core.Cue]time.Time),
		now:    now,
		sink:   sink,
	}
}

// Play starts the sound for c unless the same cue played too recently.
func (p *Player) Play(c core.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.muted || p.sink == nil {
		return
	}
	now := p.now()
	if gap, ok := minGap[c]; ok && now.Sub(p.last[c]) < gap {
		return
	}
	s, ok := CueSound(c, SampleRate)
	if !ok {
		return
	}
	p.last[c] = now
	p.sink(withVolume(s, p.volume))
}

// SetMuted silences or restores new cues.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// Close stops output. The player plays nothing afterwards.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sink = nil
	if p.close != nil {
		p.close()
		p.close = nil
	}
}

var _ core.CuePlayer = (*Player)(nil)
