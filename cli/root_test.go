package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-stacker/config"
	"github.com/lixenwraith/vi-stacker/palette"
)

func noEnv(string) (string, bool) { return "", false }

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "vi-stacker", cmd.Use)
	assert.Contains(t, cmd.Long, "overlap")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"play", "headless", "palette"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	for _, name := range []string{"config", "seed", "seed-phrase", "mute", "fps", "log-file"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

// parsed returns a subcommand with the global flags parsed from args
func parsed(t *testing.T, args ...string) (*cobra.Command, *RootOptions) {
	t.Helper()
	opts := &RootOptions{}
	root := &cobra.Command{Use: "root"}
	root.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "")
	root.PersistentFlags().Uint32Var(&opts.Seed, "seed", 0, "")
	root.PersistentFlags().StringVar(&opts.SeedPhrase, "seed-phrase", "", "")
	root.PersistentFlags().IntVar(&opts.FPS, "fps", 0, "")
	sub := &cobra.Command{Use: "sub", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(sub)

	root.SetArgs(append([]string{"sub"}, args...))
	require.NoError(t, root.Execute())
	return sub, opts
}

func TestResolveConfig_FlagsOverrideFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stacker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 1\nrender:\n  fps: 30\n"), 0o644))

	env := func(k string) (string, bool) {
		if k == config.EnvSeed {
			return "2", true
		}
		return "", false
	}

	cmd, opts := parsed(t, "--config", path)
	cfg, err := resolveConfig(cmd, opts, env)
	require.NoError(t, err)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint32(2), *cfg.Seed, "env beats file")
	assert.Equal(t, 30, cfg.Render.FPS)

	cmd, opts = parsed(t, "--config", path, "--seed", "3", "--fps", "20")
	cfg, err = resolveConfig(cmd, opts, env)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), *cfg.Seed, "flag beats env")
	assert.Equal(t, 20, cfg.Render.FPS)
}

func TestResolveConfig_SeedPhraseClearsInheritedSeed(t *testing.T) {
	cmd, opts := parsed(t, "--seed-phrase", "tower")
	env := func(k string) (string, bool) {
		if k == config.EnvSeed {
			return "9", true
		}
		return "", false
	}

	cfg, err := resolveConfig(cmd, opts, env)
	require.NoError(t, err)
	assert.Nil(t, cfg.Seed)
	assert.Equal(t, palette.SeedFromString("tower"), cfg.SeedSource()())
}

func TestResolveConfig_RejectsInvalid(t *testing.T) {
	cmd, opts := parsed(t, "--fps", "0")
	_, err := resolveConfig(cmd, opts, noEnv)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestPaletteCommand_PrintsSequence(t *testing.T) {
	t.Setenv(config.EnvSeed, "")

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"palette", "--seed", "42", "--count", "3"})
	require.NoError(t, cmd.Execute())

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Contains(t, string(lines[0]), "seed 42")

	first, err := palette.Color(42, 1)
	require.NoError(t, err)
	assert.Contains(t, string(lines[1]), first.String())
}

func TestWritePalette_RejectsCount(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, writePalette(&out, 1, 0), palette.ErrInvalidArgument)
}
