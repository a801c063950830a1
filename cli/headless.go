package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math/rand/v2"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lixenwraith/vi-stacker/config"
	"github.com/lixenwraith/vi-stacker/event"
	"github.com/lixenwraith/vi-stacker/phase"
	"github.com/lixenwraith/vi-stacker/status"
)

// ErrAutoplayStalled reports a run that exceeded its frame budget
var ErrAutoplayStalled = errors.New("autoplay stalled")

// HeadlessOptions tunes the simulated player
type HeadlessOptions struct {
	Runs      int
	Jitter    float64
	MaxLayers int
	Metrics   bool
}

// NewHeadlessCommand creates the autoplay command
func NewHeadlessCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HeadlessOptions{}

	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Autoplay runs without a terminal and print a summary",
		Long: `Drive the phase machine with a seeded simulated player.

The player drops each slab at a uniformly random offset within ±jitter of
perfect. A player that reaches max-layers gives up with a deliberate miss,
so every run ends. The same seed and flags always produce the same summary.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, rootOpts, os.LookupEnv)
			if err != nil {
				return err
			}
			log, closer, err := setupLogging(rootOpts.LogFile, rootOpts.Verbose, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			return runHeadless(cmd.OutOrStdout(), cfg, opts, log)
		},
	}

	cmd.Flags().IntVarP(&opts.Runs, "runs", "n", 10, "number of runs")
	cmd.Flags().Float64VarP(&opts.Jitter, "jitter", "j", 4, "maximum drop error in world units")
	cmd.Flags().IntVar(&opts.MaxLayers, "max-layers", 500, "layers after which the player gives up")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "also print every session metric")

	return cmd
}

// Summary is the result of an autoplay session
type Summary struct {
	Seed      uint32
	Scores    []int
	Best      int64
	Placed    int64
	Cuts      int64
	Perfects  int64
	Misses    int64
	Fragments int64
	Frames    int64
}

// Mean returns the average score
func (s Summary) Mean() float64 {
	if len(s.Scores) == 0 {
		return 0
	}
	total := 0
	for _, v := range s.Scores {
		total += v
	}
	return float64(total) / float64(len(s.Scores))
}

// Autoplay plays opts.Runs runs through the frame loop with a simulated player
// The player's randomness is seeded from the configured seed, 0 when unset
func Autoplay(cfg *config.Config, opts *HeadlessOptions, log *slog.Logger) (Summary, *status.Registry, error) {
	if opts.Runs < 1 {
		return Summary{}, nil, fmt.Errorf("runs must be positive, got %d", opts.Runs)
	}
	if opts.Jitter < 0 {
		return Summary{}, nil, fmt.Errorf("jitter must not be negative, got %g", opts.Jitter)
	}
	if opts.MaxLayers < 2 {
		return Summary{}, nil, fmt.Errorf("max-layers must be at least 2, got %d", opts.MaxLayers)
	}
	if err := cfg.Validate(); err != nil {
		return Summary{}, nil, err
	}

	var playerSeed uint64
	if cfg.Seed != nil {
		playerSeed = uint64(*cfg.Seed)
	}
	rng := rand.New(rand.NewPCG(playerSeed, 0x5ac4))

	reg := status.NewRegistry()
	session := status.NewSession(reg)
	g, err := newGame(cfg, log, session, nil, nil)
	if err != nil {
		return Summary{}, nil, err
	}

	sum := Summary{}
	dt := cfg.FrameInterval()

	// Generous per-run budget: a few frames per layer plus restart overhead
	budget := int64(opts.MaxLayers+4) * 8 * int64(opts.Runs)

play:
	for {
		if g.loop.Frame() > budget {
			return sum, reg, fmt.Errorf("%w after %d frames", ErrAutoplayStalled, g.loop.Frame())
		}

		switch g.ctrl.Phase() {
		case phase.PhaseMenu:
			g.loop.Push(event.EventCommit)

		case phase.PhaseMove:
			offset := (rng.Float64()*2 - 1) * opts.Jitter
			if g.engine.CurrentSlabIndex() > opts.MaxLayers {
				// Give up: shift by the top's full size so nothing overlaps
				offset = g.engine.Top().Size(g.engine.Axis())
			}
			if err := g.engine.SetOffset(offset); err != nil {
				return sum, reg, err
			}
			g.loop.Push(event.EventCommit)

		case phase.PhaseLose:
			score := g.ctrl.Score()
			sum.Scores = append(sum.Scores, score)
			log.Debug("autoplay run finished", "run", len(sum.Scores), "seed", g.engine.Seed(), "score", score)
			if len(sum.Scores) == opts.Runs {
				break play
			}
			g.loop.Push(event.EventRestart)
		}

		if _, err := g.loop.Step(dt); err != nil {
			return sum, reg, err
		}
	}

	sum.Seed = g.engine.Seed()
	sum.Best = session.Best.Load()
	sum.Placed = session.Placed.Load()
	sum.Cuts = session.Cuts.Load()
	sum.Perfects = session.Perfects.Load()
	sum.Misses = session.Misses.Load()
	sum.Fragments = session.Fragments.Load()
	sum.Frames = g.loop.Frame()
	return sum, reg, nil
}

func runHeadless(w io.Writer, cfg *config.Config, opts *HeadlessOptions, log *slog.Logger) error {
	sum, reg, err := Autoplay(cfg, opts, log)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(w, "runs      %d\n", len(sum.Scores))
	p.Fprintf(w, "last seed %d\n", sum.Seed)
	p.Fprintf(w, "best      %d\n", sum.Best)
	p.Fprintf(w, "mean      %.2f\n", sum.Mean())
	p.Fprintf(w, "placed    %d\n", sum.Placed)
	p.Fprintf(w, "cuts      %d\n", sum.Cuts)
	p.Fprintf(w, "perfects  %d\n", sum.Perfects)
	p.Fprintf(w, "misses    %d\n", sum.Misses)
	p.Fprintf(w, "fragments %d\n", sum.Fragments)
	p.Fprintf(w, "frames    %d\n", sum.Frames)
	p.Fprintf(w, "scores    %v\n", sum.Scores)

	if opts.Metrics {
		snap := reg.Snapshot()
		for _, key := range slices.Sorted(maps.Keys(snap)) {
			fmt.Fprintf(w, "%-20s %s\n", key, snap[key])
		}
	}
	return nil
}
