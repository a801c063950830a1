package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/vi-stacker/constant"
	"github.com/lixenwraith/vi-stacker/stack"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a new oscillator for wave generation
// Noise is seeded from freq and duration so a cue sounds the same every time
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(duration)
	return &oscillator{
		freq:     freq,
		duration: samples,
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewPCG(math.Float64bits(freq), uint64(samples))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		// Advance phase
		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope truncated at duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if remain := e.totalSamples - e.position; len(samples) > remain {
		samples = samples[:remain]
	}

	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0

		// Attack phase
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		// Release phase
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; zero or negative is silent
// math.Log2(0) is -Inf, so silence is a flag rather than a level
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateCutSound is a short square blip at the slab's pitch
func CreateCutSound(cfg Config, index int) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := constant.CutCueDuration

	osc := NewOscillator(Pitch(index), d, WaveSquare, rate)
	shaped := NewEnvelope(osc, d, constant.CueAttack, constant.CueRelease, rate)
	return newVolume(shaped, 0.4*CueVolume(index)*cfg.MasterVolume)
}

// CreatePerfectSound is a bell: the slab's pitch plus its octave
func CreatePerfectSound(cfg Config, index int) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := constant.PerfectCueDuration
	freq := Pitch(index)

	// SineTone only fails above Nyquist, which the pitch ceiling never reaches
	var fund beep.Streamer = NewOscillator(freq, d, WaveSine, rate)
	if tone, err := generators.SineTone(rate, freq); err == nil {
		fund = beep.Take(rate.N(d), tone)
	}
	fundShaped := NewEnvelope(fund, d, constant.CueAttack, d/2, rate)

	over := NewOscillator(2*freq, d, WaveSine, rate)
	overShaped := NewEnvelope(over, d, constant.CueAttack, d/4, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(beep.Take(rate.N(d), mixed), CueVolume(index)*cfg.MasterVolume)
}

// CreateMissSound is a falling crumble: noise over a rumble two octaves down
func CreateMissSound(cfg Config, index int) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := constant.MissCueDuration

	noise := NewOscillator(0, d, WaveNoise, rate)
	rumble := NewOscillator(Pitch(index)/4, d, WaveSaw, rate)
	mixed := beep.Mix(
		newVolume(noise, 0.35),
		newVolume(rumble, 0.5),
	)
	shaped := NewEnvelope(mixed, d, constant.CueAttack, d*2/3, rate)
	return newVolume(shaped, CueVolume(index)*cfg.MasterVolume)
}

// OutcomeSound returns the cue streamer for a commit outcome, nil if unknown
func OutcomeSound(outcome stack.Outcome, index int, cfg Config) beep.Streamer {
	switch outcome {
	case stack.OutcomeCut:
		return CreateCutSound(cfg, index)
	case stack.OutcomePerfect:
		return CreatePerfectSound(cfg, index)
	case stack.OutcomeMiss:
		return CreateMissSound(cfg, index)
	default:
		return nil
	}
}
