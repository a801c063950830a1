package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Pitch ladder: each placed slab raises the cue by one semitone until the ceiling
const (
	BasePitchHz      = 220.0
	PitchCeilingStep = 36
)

// Volume curve approaches 1.0 as the tower grows
const (
	BaseCueVolume    = 0.35
	CueVolumeHorizon = 20.0
	DefaultMasterVol = 0.8
)

// Cue envelopes
const (
	CutCueDuration     = 90 * time.Millisecond
	PerfectCueDuration = 160 * time.Millisecond
	MissCueDuration    = 450 * time.Millisecond
	CueAttack          = 5 * time.Millisecond
	CueRelease         = 40 * time.Millisecond
)
