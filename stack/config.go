package stack

import (
	"math/rand/v2"

	"github.com/lixenwraith/vi-stacker/constant"
)

// Config holds the engine tunables
type Config struct {
	SlabHeight        float64
	InitialWidth      float64
	InitialDepth      float64
	OscillationRange  float64
	OscillationPeriod float64 // seconds
	SnapTolerance     float64
	FragmentMass      float64
	FragmentPush      float64
	FragmentSpin      float64
}

// DefaultConfig returns the compiled-in tunables
func DefaultConfig() Config {
	return Config{
		SlabHeight:        constant.SlabHeight,
		InitialWidth:      constant.InitialWidth,
		InitialDepth:      constant.InitialDepth,
		OscillationRange:  constant.OscillationRange,
		OscillationPeriod: constant.OscillationPeriod.Seconds(),
		SnapTolerance:     constant.SnapTolerance,
		FragmentMass:      constant.FragmentMass,
		FragmentPush:      constant.FragmentPush,
		FragmentSpin:      constant.FragmentSpin,
	}
}

// SeedSource draws the per-run palette seed
type SeedSource func() uint32

// RandomSeed draws from the process-wide generator
func RandomSeed() uint32 {
	return rand.Uint32()
}

// FixedSeed returns a source that always yields seed
func FixedSeed(seed uint32) SeedSource {
	return func() uint32 { return seed }
}

// SequenceSeeds yields seeds in order, repeating the last one when exhausted
func SequenceSeeds(seeds ...uint32) SeedSource {
	i := 0
	return func() uint32 {
		if len(seeds) == 0 {
			return 0
		}
		s := seeds[i]
		if i < len(seeds)-1 {
			i++
		}
		return s
	}
}
