package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/vi-stacker/constant"
	"github.com/lixenwraith/vi-stacker/event"
	"github.com/lixenwraith/vi-stacker/phase"
	"github.com/lixenwraith/vi-stacker/physics"
)

// Renderer draws one frame after triggers, animation and physics have run
type Renderer interface {
	Render(ctrl *phase.Controller)
}

// Muter toggles audio output
type Muter interface {
	ToggleMute() bool
}

// Loop is the single writer of a play session
// Each frame drains queued triggers into the phase controller, animates the active slab,
// steps the physics ledger and renders, in that order; nothing else mutates the run
type Loop struct {
	ctrl   *phase.Controller
	ledger *physics.Ledger
	queue  *event.EventQueue

	render   Renderer
	muter    Muter
	clock    Clock
	interval time.Duration
	log      *slog.Logger

	frame atomic.Int64
	last  time.Time
}

// LoopOption configures a Loop
type LoopOption func(*Loop)

// WithRenderer sets the per-frame renderer
func WithRenderer(r Renderer) LoopOption {
	return func(l *Loop) { l.render = r }
}

// WithMuter receives EventToggleMute
func WithMuter(m Muter) LoopOption {
	return func(l *Loop) { l.muter = m }
}

// WithClock replaces the wall clock
func WithClock(c Clock) LoopOption {
	return func(l *Loop) { l.clock = c }
}

// WithFrameInterval sets the ticker period
func WithFrameInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithLoopLogger sets the loop logger
func WithLoopLogger(log *slog.Logger) LoopOption {
	return func(l *Loop) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLoop creates a loop over a started controller
func NewLoop(ctrl *phase.Controller, ledger *physics.Ledger, queue *event.EventQueue, opts ...LoopOption) *Loop {
	l := &Loop{
		ctrl:     ctrl,
		ledger:   ledger,
		queue:    queue,
		clock:    NewTimeProvider(),
		interval: constant.FrameUpdateInterval,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Frame returns the number of completed frames, safe from any goroutine
func (l *Loop) Frame() int64 {
	return l.frame.Load()
}

// Push queues a trigger stamped with the current frame, safe from any goroutine
func (l *Loop) Push(et event.EventType) {
	l.queue.Push(event.GameEvent{Type: et, Frame: l.frame.Load()})
}

// Run ticks frames until ctx is done or a Quit trigger arrives
// Returns nil on quit or cancellation, or the first phase error
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.last = l.clock.Now()
	l.renderFrame()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			now := l.clock.Now()
			dt := now.Sub(l.last)
			l.last = now

			quit, err := l.Step(dt)
			if err != nil || quit {
				return err
			}
		}
	}
}

// Step runs one frame of dt, capped at MaxFrameDelta
// Returns quit=true when a Quit trigger was consumed
func (l *Loop) Step(dt time.Duration) (bool, error) {
	dt = min(max(dt, 0), constant.MaxFrameDelta)

	for _, ev := range l.queue.Consume() {
		switch ev.Type {
		case event.EventQuit:
			l.log.Info("quit requested", "frame", ev.Frame)
			return true, nil
		case event.EventToggleMute:
			if l.muter != nil {
				muted := l.muter.ToggleMute()
				l.log.Debug("audio mute toggled", "muted", muted)
			}
		default:
			if _, err := l.ctrl.Fire(ev.Type); err != nil {
				return false, fmt.Errorf("frame %d: %w", l.frame.Load(), err)
			}
		}
	}

	secs := dt.Seconds()
	l.ctrl.Engine().Animate(secs)
	l.ledger.Step(secs)
	l.renderFrame()

	l.frame.Add(1)
	return false, nil
}

func (l *Loop) renderFrame() {
	if l.render != nil {
		l.render.Render(l.ctrl)
	}
}
