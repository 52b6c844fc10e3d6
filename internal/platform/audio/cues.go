package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/chubes4/chubes-games/internal/core"
)

const ms = time.Millisecond

// cueNotes is the sound of each cue.
var cueNotes = map[core.Cue][]Note{
	core.CueShot: {
		{Wave: WaveSquare, From: 1200, To: 700, Duration: 35 * ms, Decay: 40, Gain: 0.08},
	},
	core.CueKill: {
		{Wave: WaveSine, From: 440, To: 880, Duration: 90 * ms, Decay: 12, Gain: 0.3},
	},
	core.CueDestroyed: {
		{Wave: WaveNoise, From: 200, To: 60, Duration: 260 * ms, Decay: 9, Gain: 0.35},
	},
	core.CueBuild: {
		{Wave: WaveSine, From: 523, To: 523, Duration: 60 * ms, Decay: 8, Gain: 0.25},
		{Wave: WaveSine, From: 784, To: 784, Duration: 90 * ms, Decay: 8, Gain: 0.25},
	},
	core.CueDenied: {
		{Wave: WaveSquare, From: 140, To: 110, Duration: 150 * ms, Decay: 4, Gain: 0.12},
	},
	core.CueStart: {
		{Wave: WaveSine, From: 392, To: 392, Duration: 80 * ms, Decay: 6, Gain: 0.25},
		{Wave: WaveSine, From: 523, To: 523, Duration: 80 * ms, Decay: 6, Gain: 0.25},
		{Wave: WaveSine, From: 659, To: 659, Duration: 140 * ms, Decay: 6, Gain: 0.25},
	},
	core.CueGameOver: {
		{Wave: WaveSquare, From: 440, To: 110, Duration: 700 * ms, Decay: 2, Gain: 0.2},
	},
}

// minGap throttles cues that can fire every tick.
var minGap = map[core.Cue]time.Duration{
	core.CueShot: 90 * ms,
	core.CueKill: 60 * ms,
}

// CueSound returns the streamer for a cue, or false for unknown cues.
func CueSound(c core.Cue, rate beep.SampleRate) (beep.Streamer, bool) {
	notes, ok := cueNotes[c]
	if !ok {
		return nil, false
	}
	return Melody(rate, notes...), true
}
