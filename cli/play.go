package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-stacker/audio"
	"github.com/lixenwraith/vi-stacker/engine"
	"github.com/lixenwraith/vi-stacker/input"
	"github.com/lixenwraith/vi-stacker/phase"
	"github.com/lixenwraith/vi-stacker/render"
	"github.com/lixenwraith/vi-stacker/status"
)

// NewPlayCommand creates the interactive play command
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "play",
		Short:        "Play in the terminal (default)",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, rootOpts)
		},
	}
}

func runPlay(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := resolveConfig(cmd, opts, os.LookupEnv)
	if err != nil {
		return err
	}

	keys := input.DefaultKeyTable()
	if err := keys.Apply(cfg.Keys); err != nil {
		return err
	}

	// tcell owns the terminal, so logs never reach stderr
	log, logCloser, err := setupLogging(opts.LogFile, opts.Verbose, io.Discard)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	defer screen.Fini()

	// Panic recovery: restore the terminal before the trace is printed
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nVI-STACKER CRASHED: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	session := status.NewSession(status.NewRegistry())

	sound := audio.NewSoundManager(cfg.AudioSettings(), log)
	if err := sound.Initialize(); err != nil {
		log.Warn("audio unavailable, continuing without sound", "error", err)
	}
	defer sound.Cleanup()

	muter := &sessionMuter{muter: sound, session: session}
	if opts.Mute {
		muter.ToggleMute()
	}

	renderer := render.NewTerminalRenderer(screen, session)
	g, err := newGame(cfg, log, session,
		[]phase.Option{
			phase.WithScoreboard(renderer),
			phase.WithOverlay(renderer),
			phase.WithSounder(sound),
		},
		[]engine.LoopOption{
			engine.WithRenderer(renderer),
			engine.WithMuter(muter),
		},
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go pollInput(ctx, screen, input.NewMachine(keys), g, log)

	if err := g.loop.Run(ctx); err != nil {
		log.Error("frame loop stopped", "error", err)
		return err
	}
	return nil
}

// pollInput forwards translated terminal events to the loop until the screen closes
// The phase is read from the session metric since the controller belongs to the loop goroutine
func pollInput(ctx context.Context, screen tcell.Screen, keys *input.Machine, g *game, log *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\r\nEVENT POLLER CRASHED: %v\r\nStack Trace:\r\n%s\r\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		ev := screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			screen.Sync()
			continue
		}

		p := phase.ParsePhase(g.session.Phase.Load())
		if trigger, ok := keys.Translate(ev, p); ok {
			log.Debug("input", "trigger", trigger, "phase", p)
			g.loop.Push(trigger)
		}
	}
}
