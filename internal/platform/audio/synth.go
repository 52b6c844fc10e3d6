// Package audio makes game cues audible with small synthesized sounds
// played through the system speaker.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate every cue is synthesized at.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

// Note is one synthesized sound: a frequency glide from From to To over
// Duration with an exponential decay.
type Note struct {
	Wave     Wave
	From     float64 // Hz
	To       float64 // Hz
	Duration time.Duration
	Decay    float64 // envelope falloff per second; 0 keeps full level
	Gain     float64 // 0..1
}

// tone streams one Note.
type tone struct {
	note   Note
	rate   beep.SampleRate
	total  int
	pos    int
	phase  float64
	random *rand.Rand
}

// NewTone returns a streamer that plays n once.
func NewTone(n Note, rate beep.SampleRate) beep.Streamer {
	return &tone{
		note:   n,
		rate:   rate,
		total:  rate.N(n.Duration),
		random: rand.New(rand.NewSource(int64(n.From*1000 + n.To))),
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		progress := float64(t.pos) / float64(t.total)
		freq := t.note.From + (t.note.To-t.note.From)*progress
		secs := float64(t.pos) / float64(t.rate)

		var v float64
		switch t.note.Wave {
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveNoise:
			v = t.random.Float64()*2 - 1
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}

		env := math.Exp(-t.note.Decay * secs)
		// Short fade-in against clicks.
		if attack := float64(t.pos) / (0.004 * float64(t.rate)); attack < 1 {
			env *= attack
		}
		v *= env * t.note.Gain

		samples[i][0] = v
		samples[i][1] = v

		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error {
	return nil
}

// withVolume scales s by a linear factor; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Melody plays notes one after another.
func Melody(rate beep.SampleRate, notes ...Note) beep.Streamer {
	streamers := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		streamers[i] = NewTone(n, rate)
	}
	return beep.Seq(streamers...)
}
