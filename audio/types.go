package audio

import (
	"errors"

	"github.com/lixenwraith/vi-stacker/constant"
)

// Config holds audio settings resolved by the config layer
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	SampleRate   int
}

// DefaultConfig returns audio enabled at the default master volume
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: constant.DefaultMasterVol,
		SampleRate:   constant.AudioSampleRate,
	}
}

// Sentinel errors
var (
	ErrAudioDisabled = errors.New("audio disabled by configuration")
)
