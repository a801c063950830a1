package cli

import (
	"bytes"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-stacker/config"
)

func quietLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seeded(seed uint32) *config.Config {
	cfg := config.Default()
	cfg.Seed = &seed
	return cfg
}

func TestAutoplay_PerfectPlayerGivesUpAtMaxLayers(t *testing.T) {
	sum, _, err := Autoplay(seeded(7), &HeadlessOptions{Runs: 3, Jitter: 0, MaxLayers: 20}, quietLog())
	require.NoError(t, err)

	assert.Equal(t, []int{20, 20, 20}, sum.Scores)
	assert.Equal(t, int64(20), sum.Best)
	assert.Equal(t, int64(57), sum.Perfects)
	assert.Equal(t, int64(57), sum.Placed)
	assert.Zero(t, sum.Cuts)
	assert.Equal(t, int64(3), sum.Misses)
	assert.Equal(t, int64(3), sum.Fragments, "one toppled slab per run")
	// menu commit + 20 drops per run, plus two restarts
	assert.Equal(t, int64(65), sum.Frames)
	assert.Equal(t, uint32(7), sum.Seed)
}

func TestAutoplay_GivesUpOnFootprintAsWideAsRange(t *testing.T) {
	cfg := seeded(3)
	cfg.Stack.InitialWidth = cfg.Stack.OscillationRange
	cfg.Stack.InitialDepth = cfg.Stack.OscillationRange

	sum, _, err := Autoplay(cfg, &HeadlessOptions{Runs: 2, Jitter: 0, MaxLayers: 5}, quietLog())
	require.NoError(t, err)
	assert.Equal(t, []int{5, 5}, sum.Scores)
	assert.Equal(t, int64(2), sum.Misses)
}

func TestAutoplay_RejectsUnlosableConfig(t *testing.T) {
	cfg := seeded(3)
	cfg.Stack.InitialWidth = 1.5 * cfg.Stack.OscillationRange

	_, _, err := Autoplay(cfg, &HeadlessOptions{Runs: 1, MaxLayers: 5}, quietLog())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.NotErrorIs(t, err, ErrAutoplayStalled)
}

func TestAutoplay_JitteredRunsAreConsistentAndReproducible(t *testing.T) {
	opts := &HeadlessOptions{Runs: 5, Jitter: 4, MaxLayers: 500}

	a, _, err := Autoplay(seeded(11), opts, quietLog())
	require.NoError(t, err)
	b, _, err := Autoplay(seeded(11), opts, quietLog())
	require.NoError(t, err)
	assert.Equal(t, a.Scores, b.Scores)

	require.Len(t, a.Scores, 5)
	assert.Equal(t, int64(5), a.Misses)

	placed := 0
	for _, s := range a.Scores {
		assert.GreaterOrEqual(t, s, 1)
		placed += s - 1
	}
	assert.Equal(t, int64(placed), a.Placed)
	assert.Equal(t, a.Placed, a.Cuts+a.Perfects)
	assert.Equal(t, int64(slices.Max(a.Scores)), a.Best)
	assert.GreaterOrEqual(t, a.Fragments, a.Cuts+a.Misses)
}

func TestAutoplay_RejectsOptions(t *testing.T) {
	tests := []struct {
		name string
		opts HeadlessOptions
	}{
		{"no runs", HeadlessOptions{Runs: 0, MaxLayers: 10}},
		{"negative jitter", HeadlessOptions{Runs: 1, Jitter: -1, MaxLayers: 10}},
		{"max layers", HeadlessOptions{Runs: 1, MaxLayers: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Autoplay(seeded(1), &tt.opts, quietLog())
			assert.Error(t, err)
		})
	}
}

func TestHeadlessCommand_PrintsSummary(t *testing.T) {
	t.Setenv(config.EnvSeed, "")

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"headless", "--seed", "7", "--runs", "2", "--jitter", "0", "--max-layers", "12", "--metrics"})
	require.NoError(t, cmd.Execute())

	text := out.String()
	assert.Contains(t, text, "runs      2\n")
	assert.Contains(t, text, "best      12\n")
	assert.Contains(t, text, "scores    [12 12]\n")
	assert.Contains(t, text, "session.perfects")
	assert.Contains(t, text, "run.phase")
}
