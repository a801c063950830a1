// Package cli is the vi-stacker command tree: interactive play on the
// terminal, seeded headless autoplay and palette inspection
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-stacker/config"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	ConfigPath string
	Seed       uint32
	SeedPhrase string
	Mute       bool
	FPS        int
	LogFile    string
	Verbose    bool
}

// NewRootCommand creates the root command; with no subcommand it plays
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "vi-stacker",
		Short: "vi-stacker - stack the tower",
		Long: `A terminal tower-stacking game.

Each slab slides back and forth over the one below it. Drop it in time:
whatever overhangs is sliced off and falls, and the next slab is only as
large as the overlap. Miss completely and the run is over.`,
		SilenceUsage:  true,
		SilenceErrors: true, // Execute reports errors itself
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config file")
	flags.Uint32Var(&opts.Seed, "seed", 0, "palette seed for every run (random per run when unset)")
	flags.StringVar(&opts.SeedPhrase, "seed-phrase", "", "hash a phrase into the palette seed")
	flags.BoolVar(&opts.Mute, "mute", false, "start with audio muted")
	flags.IntVar(&opts.FPS, "fps", 0, "frame rate override")
	flags.StringVar(&opts.LogFile, "log-file", "", "write logs to this file")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewHeadlessCommand(opts))
	cmd.AddCommand(NewPaletteCommand(opts))

	return cmd
}

// Execute runs the command tree against os.Args
func Execute(ctx context.Context) int {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "vi-stacker: %v\n", err)
		return 1
	}
	return 0
}

// resolveConfig layers file, environment and explicit flags, then validates
func resolveConfig(cmd *cobra.Command, opts *RootOptions, lookup config.LookupFunc) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	if flagChanged(cmd, "seed") {
		seed := opts.Seed
		cfg.Seed = &seed
	}
	if flagChanged(cmd, "seed-phrase") {
		cfg.SeedPhrase = opts.SeedPhrase
		if !flagChanged(cmd, "seed") {
			cfg.Seed = nil
		}
	}
	if flagChanged(cmd, "fps") {
		cfg.Render.FPS = opts.FPS
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}
