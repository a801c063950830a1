package cli

import (
	"log/slog"

	"github.com/lixenwraith/vi-stacker/config"
	"github.com/lixenwraith/vi-stacker/engine"
	"github.com/lixenwraith/vi-stacker/event"
	"github.com/lixenwraith/vi-stacker/phase"
	"github.com/lixenwraith/vi-stacker/physics"
	"github.com/lixenwraith/vi-stacker/stack"
	"github.com/lixenwraith/vi-stacker/status"
)

// game is one assembled session: ledger, engine, phase controller and frame loop
type game struct {
	session *status.Session
	ledger  *physics.Ledger
	engine  *stack.Engine
	ctrl    *phase.Controller
	loop    *engine.Loop
}

// newGame wires the core from cfg; phaseOpts and loopOpts attach collaborators
func newGame(cfg *config.Config, log *slog.Logger, session *status.Session, phaseOpts []phase.Option, loopOpts []engine.LoopOption) (*game, error) {
	g := &game{session: session}

	g.ledger = physics.NewLedger(physics.NewGravityStepper(cfg.Physics.Gravity, -cfg.Physics.KillPlaneDepth))
	g.engine = stack.New(g.ledger,
		stack.WithConfig(cfg.StackEngine()),
		stack.WithSeedSource(cfg.SeedSource()),
		stack.WithLogger(log),
	)

	opts := append([]phase.Option{
		phase.WithSession(g.session),
		phase.WithLogger(log),
	}, phaseOpts...)
	ctrl, err := phase.New(g.engine, opts...)
	if err != nil {
		return nil, err
	}
	if err := ctrl.Start(); err != nil {
		return nil, err
	}
	g.ctrl = ctrl

	lopts := append([]engine.LoopOption{
		engine.WithFrameInterval(cfg.FrameInterval()),
		engine.WithLoopLogger(log),
	}, loopOpts...)
	g.loop = engine.NewLoop(ctrl, g.ledger, event.NewEventQueue(), lopts...)

	return g, nil
}

// sessionMuter mirrors the audio mute flag into the HUD metrics
type sessionMuter struct {
	muter   engine.Muter
	session *status.Session
}

func (m *sessionMuter) ToggleMute() bool {
	muted := m.muter.ToggleMute()
	m.session.Muted.Store(muted)
	return muted
}
