package audio

import (
	"math"

	"github.com/lixenwraith/vi-stacker/constant"
)

// Pitch maps a slab index to a cue frequency, one semitone per slab above the base
// Monotonically non-decreasing in index, flat past PitchCeilingStep
func Pitch(index int) float64 {
	step := min(max(index-1, 0), constant.PitchCeilingStep)
	return constant.BasePitchHz * math.Pow(2, float64(step)/12)
}

// CueVolume maps a slab index to a gain in [BaseCueVolume, 1)
func CueVolume(index int) float64 {
	i := float64(max(index, 0))
	return constant.BaseCueVolume + (1-constant.BaseCueVolume)*(1-math.Exp(-i/constant.CueVolumeHorizon))
}
