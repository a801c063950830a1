package palette

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColor_RejectsIndexBelowOne(t *testing.T) {
	for _, idx := range []int{0, -1, -1000} {
		_, err := Color(42, idx)
		require.Error(t, err, "index %d", idx)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestColor_Deterministic(t *testing.T) {
	seeds := []uint32{0, 1, 42, 0xDEADBEEF, 0xFFFFFFFF}
	for _, seed := range seeds {
		p := New(seed)
		for idx := 1; idx <= 64; idx++ {
			a, err := p.Color(idx)
			require.NoError(t, err)
			b, err := Color(seed, idx)
			require.NoError(t, err)
			assert.Equal(t, a, b, "seed %d index %d", seed, idx)
		}
	}
}

func TestNew_ParamsWithinBounds(t *testing.T) {
	for seed := uint32(0); seed < 2000; seed += 7 {
		p := New(seed).Params()
		assert.GreaterOrEqual(t, p.BaseHue, 0.0)
		assert.Less(t, p.BaseHue, 360.0)
		assert.GreaterOrEqual(t, p.HueStep, 6.0)
		assert.Less(t, p.HueStep, 24.0)
		assert.Contains(t, []int{1, -1}, p.Direction)
		assert.GreaterOrEqual(t, p.BaseSaturation, 45.0)
		assert.LessOrEqual(t, p.BaseSaturation, 65.0)
		assert.GreaterOrEqual(t, p.BaseLightness, 78.0)
		assert.LessOrEqual(t, p.BaseLightness, 88.0)
	}
}

func TestNew_KnownParams(t *testing.T) {
	p := New(42).Params()
	assert.Equal(t, 216.0, p.BaseHue)
	assert.Equal(t, 14.0, p.HueStep)
	assert.Equal(t, -1, p.Direction)
	assert.InDelta(t, 58.394680828787386, p.BaseSaturation, 1e-9)
	assert.InDelta(t, 79.74813898745924, p.BaseLightness, 1e-9)
}

func TestColor_ConsecutiveSlabsDiffer(t *testing.T) {
	p := New(7)
	prev, err := p.Color(1)
	require.NoError(t, err)
	for idx := 2; idx <= 40; idx++ {
		c, err := p.Color(idx)
		require.NoError(t, err)
		assert.NotEqual(t, prev, c, "index %d repeats previous color", idx)
		prev = c
	}
}

// Cross-process determinism: the sequence is pinned in a golden file
func TestColor_GoldenSequence(t *testing.T) {
	var buf bytes.Buffer
	p := New(42)
	for idx := 1; idx <= 16; idx++ {
		c, err := p.Color(idx)
		require.NoError(t, err)
		fmt.Fprintf(&buf, "%d %s\n", idx, c)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "seed-42", buf.Bytes())
}

func TestHSLToRGB_Primaries(t *testing.T) {
	tests := []struct {
		h, s, l float64
		want    RGB
	}{
		{0, 1, 0.5, RGB{255, 0, 0}},
		{120, 1, 0.5, RGB{0, 255, 0}},
		{240, 1, 0.5, RGB{0, 0, 255}},
		{60, 1, 0.5, RGB{255, 255, 0}},
		{0, 0, 1, RGB{255, 255, 255}},
		{0, 0, 0, RGB{0, 0, 0}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, hslToRGB(tt.h, tt.s, tt.l), "hsl(%v,%v,%v)", tt.h, tt.s, tt.l)
	}
}

func TestRGB_Hex(t *testing.T) {
	c := RGB{R: 0xb4, G: 0xca, B: 0xeb}
	assert.Equal(t, uint32(0xb4caeb), c.Hex())
	assert.Equal(t, "#b4caeb", c.String())
}

func TestSeedFromString(t *testing.T) {
	assert.Equal(t, uint32(0x811c9dc5), SeedFromString(""))
	assert.Equal(t, uint32(1422345314), SeedFromString("tower"))
	assert.Equal(t, SeedFromString("tower"), SeedFromString("tower"))
	assert.NotEqual(t, SeedFromString("tower"), SeedFromString("Tower"))
}
