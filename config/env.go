package config

import (
	"fmt"
	"strconv"
)

// Environment variables read by ApplyEnv
const (
	EnvAudioEnabled = "VI_STACKER_AUDIO_ENABLED"
	EnvMasterVolume = "VI_STACKER_MASTER_VOLUME"
	EnvSeed         = "VI_STACKER_SEED"
	EnvFPS          = "VI_STACKER_FPS"
)

// LookupFunc matches os.LookupEnv
type LookupFunc func(key string) (string, bool)

// ApplyEnv overlays environment overrides
// Master volume is given as 0-100; out-of-range volumes are clamped, unparsable values are errors
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookup(EnvAudioEnabled); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvAudioEnabled, v)
		}
		c.Audio.Enabled = enabled
	}

	if v, ok := lookup(EnvMasterVolume); ok && v != "" {
		pct, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvMasterVolume, v)
		}
		c.Audio.MasterVolume = min(max(float64(pct)/100.0, 0), 1)
	}

	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseUint(v, 0, 32)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvSeed, v)
		}
		s := uint32(seed)
		c.Seed = &s
	}

	if v, ok := lookup(EnvFPS); ok && v != "" {
		fps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvFPS, v)
		}
		c.Render.FPS = fps
	}

	return nil
}
