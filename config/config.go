// Package config resolves game tunables from compiled defaults, an optional
// YAML file and VI_STACKER_* environment variables, in that order
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/vi-stacker/audio"
	"github.com/lixenwraith/vi-stacker/constant"
	"github.com/lixenwraith/vi-stacker/palette"
	"github.com/lixenwraith/vi-stacker/stack"
)

// ErrInvalidConfig reports an unreadable or out-of-range setting
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full set of tunables for one process
type Config struct {
	Stack   StackConfig   `yaml:"stack"`
	Physics PhysicsConfig `yaml:"physics"`
	Audio   AudioConfig   `yaml:"audio"`
	Render  RenderConfig  `yaml:"render"`

	// Keys rebinds input, key name to action name (commit, restart, toggle_mute, quit, none)
	Keys map[string]string `yaml:"keys,omitempty"`

	// Seed pins every run's palette; SeedPhrase is hashed when Seed is unset
	Seed       *uint32 `yaml:"seed,omitempty"`
	SeedPhrase string  `yaml:"seed_phrase,omitempty"`
}

// StackConfig mirrors stack.Config with YAML names
type StackConfig struct {
	SlabHeight        float64       `yaml:"slab_height"`
	InitialWidth      float64       `yaml:"initial_width"`
	InitialDepth      float64       `yaml:"initial_depth"`
	OscillationRange  float64       `yaml:"oscillation_range"`
	OscillationPeriod time.Duration `yaml:"oscillation_period"`
	SnapTolerance     float64       `yaml:"snap_tolerance"`
	FragmentMass      float64       `yaml:"fragment_mass"`
	FragmentPush      float64       `yaml:"fragment_push"`
	FragmentSpin      float64       `yaml:"fragment_spin"`
}

// PhysicsConfig tunes fragment integration
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	KillPlaneDepth float64 `yaml:"kill_plane_depth"`
}

// AudioConfig tunes the cue player
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"`
}

// RenderConfig tunes the frame loop
type RenderConfig struct {
	FPS int `yaml:"fps"`
}

// Default returns the compiled-in tunables
func Default() *Config {
	return &Config{
		Stack: StackConfig{
			SlabHeight:        constant.SlabHeight,
			InitialWidth:      constant.InitialWidth,
			InitialDepth:      constant.InitialDepth,
			OscillationRange:  constant.OscillationRange,
			OscillationPeriod: constant.OscillationPeriod,
			SnapTolerance:     constant.SnapTolerance,
			FragmentMass:      constant.FragmentMass,
			FragmentPush:      constant.FragmentPush,
			FragmentSpin:      constant.FragmentSpin,
		},
		Physics: PhysicsConfig{
			Gravity:        constant.Gravity,
			KillPlaneDepth: constant.KillPlaneDepth,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: constant.DefaultMasterVol,
		},
		Render: RenderConfig{
			FPS: constant.DefaultFPS,
		},
	}
}

// Load reads path over the defaults; an empty path returns the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := cfg.Decode(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays YAML onto c, rejecting unknown fields
func (c *Config) Decode(data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: failed to parse YAML: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Validate rejects values the engine cannot run with
func (c *Config) Validate() error {
	s := c.Stack
	switch {
	case s.SlabHeight <= 0:
		return fmt.Errorf("%w: stack.slab_height must be positive, got %g", ErrInvalidConfig, s.SlabHeight)
	case s.InitialWidth <= 0 || s.InitialDepth <= 0:
		return fmt.Errorf("%w: stack initial footprint must be positive, got %gx%g", ErrInvalidConfig, s.InitialWidth, s.InitialDepth)
	case s.OscillationRange <= 0:
		return fmt.Errorf("%w: stack.oscillation_range must be positive, got %g", ErrInvalidConfig, s.OscillationRange)
	case s.InitialWidth > s.OscillationRange || s.InitialDepth > s.OscillationRange:
		// A slab only misses once its offset reaches the top's size
		return fmt.Errorf("%w: stack initial footprint %gx%g exceeds oscillation_range %g, no drop could miss",
			ErrInvalidConfig, s.InitialWidth, s.InitialDepth, s.OscillationRange)
	case s.OscillationPeriod <= 0:
		return fmt.Errorf("%w: stack.oscillation_period must be positive, got %s", ErrInvalidConfig, s.OscillationPeriod)
	case s.SnapTolerance < 0 || s.SnapTolerance >= s.OscillationRange:
		return fmt.Errorf("%w: stack.snap_tolerance must be in [0, oscillation_range), got %g", ErrInvalidConfig, s.SnapTolerance)
	case s.FragmentMass <= 0:
		return fmt.Errorf("%w: stack.fragment_mass must be positive, got %g", ErrInvalidConfig, s.FragmentMass)
	case c.Physics.Gravity < 0:
		return fmt.Errorf("%w: physics.gravity must not be negative, got %g", ErrInvalidConfig, c.Physics.Gravity)
	case c.Physics.KillPlaneDepth <= 0:
		return fmt.Errorf("%w: physics.kill_plane_depth must be positive, got %g", ErrInvalidConfig, c.Physics.KillPlaneDepth)
	case c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1:
		return fmt.Errorf("%w: audio.master_volume must be in [0, 1], got %g", ErrInvalidConfig, c.Audio.MasterVolume)
	case c.Render.FPS < 1 || c.Render.FPS > 240:
		return fmt.Errorf("%w: render.fps must be in [1, 240], got %d", ErrInvalidConfig, c.Render.FPS)
	}
	return nil
}

// StackEngine returns the engine tunables
func (c *Config) StackEngine() stack.Config {
	s := c.Stack
	return stack.Config{
		SlabHeight:        s.SlabHeight,
		InitialWidth:      s.InitialWidth,
		InitialDepth:      s.InitialDepth,
		OscillationRange:  s.OscillationRange,
		OscillationPeriod: s.OscillationPeriod.Seconds(),
		SnapTolerance:     s.SnapTolerance,
		FragmentMass:      s.FragmentMass,
		FragmentPush:      s.FragmentPush,
		FragmentSpin:      s.FragmentSpin,
	}
}

// AudioSettings returns the cue player settings
func (c *Config) AudioSettings() audio.Config {
	return audio.Config{
		Enabled:      c.Audio.Enabled,
		MasterVolume: c.Audio.MasterVolume,
		SampleRate:   constant.AudioSampleRate,
	}
}

// FrameInterval converts FPS to a ticker period
func (c *Config) FrameInterval() time.Duration {
	if c.Render.FPS <= 0 {
		return constant.FrameUpdateInterval
	}
	return time.Second / time.Duration(c.Render.FPS)
}

// SeedSource pins the seed when one is configured, else draws a fresh seed per run
func (c *Config) SeedSource() stack.SeedSource {
	switch {
	case c.Seed != nil:
		return stack.FixedSeed(*c.Seed)
	case c.SeedPhrase != "":
		return stack.FixedSeed(palette.SeedFromString(c.SeedPhrase))
	default:
		return stack.RandomSeed
	}
}
