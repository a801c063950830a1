package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-stacker/palette"
)

// NewPaletteCommand creates the palette inspection command
func NewPaletteCommand(rootOpts *RootOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Print the slab colors a seed produces",
		Long: `Print one line per slab index: index, hex color and RGB channels.

The seed comes from --seed or --seed-phrase, else VI_STACKER_SEED, else
the config file; with none of them a random seed is drawn.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, rootOpts, os.LookupEnv)
			if err != nil {
				return err
			}
			seed := cfg.SeedSource()()
			return writePalette(cmd.OutOrStdout(), seed, count)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "k", 16, "number of slab colors")

	return cmd
}

func writePalette(w io.Writer, seed uint32, count int) error {
	if count < 1 {
		return fmt.Errorf("%w: count must be positive, got %d", palette.ErrInvalidArgument, count)
	}

	p := palette.New(seed)
	params := p.Params()
	fmt.Fprintf(w, "seed %d  hue %.1f  step %+.2f  sat %.1f%%  light %.1f%%\n",
		seed, params.BaseHue, float64(params.Direction)*params.HueStep, params.BaseSaturation, params.BaseLightness)

	for i := 1; i <= count; i++ {
		c, err := p.Color(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%4d  #%06x  %3d %3d %3d\n", i, c.Hex(), c.R, c.G, c.B)
	}
	return nil
}
