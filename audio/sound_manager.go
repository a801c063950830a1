package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-stacker/constant"
	"github.com/lixenwraith/vi-stacker/stack"
)

// SoundManager plays commit cues through the system speaker
// Every Play call is a no-op until Initialize succeeds, so the game runs silently without a device
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	ctrl        *beep.Ctrl
	initialized bool
	muted       atomic.Bool
	log         *slog.Logger

	// played counts cues handed to the mixer, including while muted
	played atomic.Int64
}

// NewSoundManager creates a new sound manager
func NewSoundManager(cfg Config, log *slog.Logger) *SoundManager {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = constant.AudioSampleRate
	}
	if log == nil {
		log = slog.Default()
	}
	mixer := &beep.Mixer{}
	return &SoundManager{
		cfg:   cfg,
		mixer: mixer,
		ctrl:  &beep.Ctrl{Streamer: mixer},
		log:   log,
	}
}

// Initialize opens the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		return ErrAudioDisabled
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(constant.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.ctrl)
	sm.initialized = true
	sm.log.Debug("audio initialized", "sample_rate", sm.cfg.SampleRate, "master_volume", sm.cfg.MasterVolume)
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.ctrl.Paused = true
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

// PlayOutcome queues the cue for a commit outcome at the slab's pitch
func (sm *SoundManager) PlayOutcome(outcome stack.Outcome, index int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	s := OutcomeSound(outcome, index, sm.cfg)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played.Add(1)
}

// ToggleMute pauses or resumes output and returns the new muted state
// Safe before Initialize; the paused state carries over
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	muted := !sm.muted.Load()
	sm.muted.Store(muted)

	if sm.initialized {
		speaker.Lock()
		sm.ctrl.Paused = muted
		speaker.Unlock()
	} else {
		sm.ctrl.Paused = muted
	}
	return muted
}

// Muted reports the mute flag
func (sm *SoundManager) Muted() bool {
	return sm.muted.Load()
}

// Played returns the number of cues handed to the mixer
func (sm *SoundManager) Played() int64 {
	return sm.played.Load()
}
