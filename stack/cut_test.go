package stack

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

// commitAt spawns, places at offset, halts and commits
func commitAt(t *testing.T, e *Engine, offset float64) Cut {
	t.Helper()
	_, err := e.SpawnActiveSlab()
	require.NoError(t, err)
	require.NoError(t, e.SetOffset(offset))
	require.NoError(t, e.HaltActiveSlab())
	cut, err := e.CommitCut()
	require.NoError(t, err)
	return cut
}

func TestCommitCut_PartialOverlapRight(t *testing.T) {
	e, ledger := newTestEngine(t, 42)

	cut := commitAt(t, e, 3)

	require.True(t, cut.Landed())
	assert.Equal(t, OutcomeCut, cut.Outcome)
	assert.Equal(t, AxisX, cut.Axis)
	assert.InDelta(t, 22, cut.Footprint.Width, tol)
	assert.InDelta(t, 1.5, cut.Footprint.CenterX, tol)
	assert.InDelta(t, 25, cut.Footprint.Depth, tol, "orthogonal dimension unchanged")
	assert.Equal(t, cut.Footprint, e.Top())

	require.Len(t, cut.Fragments, 1)
	frag := cut.Fragments[0]
	assert.InDelta(t, 3, frag.Footprint.Width, tol)
	assert.InDelta(t, 14, frag.Footprint.CenterX, tol, "midpoint of [12.5, 15.5]")
	assert.InDelta(t, 25, frag.Footprint.Depth, tol)
	assert.Equal(t, KindFragment, frag.Slab.Kind)

	// base + settled + fragment
	assert.Equal(t, 3, ledger.Len())
	assert.Equal(t, 1, ledger.DynamicCount())
	_, ok := e.Active()
	assert.False(t, ok)
}

func TestCommitCut_PartialOverlapLeft(t *testing.T) {
	e, _ := newTestEngine(t, 42)

	cut := commitAt(t, e, -7)

	require.Equal(t, OutcomeCut, cut.Outcome)
	assert.InDelta(t, 18, cut.Footprint.Width, tol)
	assert.InDelta(t, -3.5, cut.Footprint.CenterX, tol)
	require.Len(t, cut.Fragments, 1)
	assert.InDelta(t, 7, cut.Fragments[0].Footprint.Width, tol)
	assert.InDelta(t, -16, cut.Fragments[0].Footprint.CenterX, tol)
	assert.Less(t, cut.Fragments[0].Slab.Position.X, cut.Footprint.CenterX)
}

func TestCommitCut_Miss(t *testing.T) {
	e, ledger := newTestEngine(t, 42)
	before := e.Top()

	cut := commitAt(t, e, 30)

	assert.False(t, cut.Landed())
	assert.Equal(t, OutcomeMiss, cut.Outcome)
	assert.Equal(t, before, e.Top(), "footprint unchanged on miss")
	assert.Equal(t, before, cut.Footprint)
	assert.Zero(t, cut.Overlap)

	require.Len(t, cut.Fragments, 1)
	frag := cut.Fragments[0]
	assert.InDelta(t, 25, frag.Footprint.Width, tol)
	assert.InDelta(t, 30, frag.Footprint.CenterX, tol)
	assert.Equal(t, KindFragment, frag.Slab.Kind)
	assert.Equal(t, 1, ledger.DynamicCount())
	assert.True(t, e.Over())
}

func TestCommitCut_TouchingIsMiss(t *testing.T) {
	for _, off := range []float64{25, -25} {
		e, _ := newTestEngine(t, 42)
		cut := commitAt(t, e, off)
		assert.Equal(t, OutcomeMiss, cut.Outcome, "offset %v", off)
		assert.Equal(t, Footprint{Width: 25, Depth: 25}, e.Top())
	}
}

func TestCommitCut_JustInsideTouchingSurvives(t *testing.T) {
	e, _ := newTestEngine(t, 42)
	cut := commitAt(t, e, 24.75)
	require.Equal(t, OutcomeCut, cut.Outcome)
	assert.InDelta(t, 0.25, cut.Footprint.Width, tol)
	assert.Greater(t, cut.Footprint.Width, 0.0)
}

// A top narrower than SnapTolerance must still miss when the slab clears it
func TestCommitCut_DisjointInsideSnapToleranceIsMiss(t *testing.T) {
	e, ledger := newTestEngine(t, 42)

	first := commitAt(t, e, 24.75)
	require.Equal(t, OutcomeCut, first.Outcome)
	require.InDelta(t, 0.25, e.Top().Width, tol)

	second := commitAt(t, e, 0)
	require.Equal(t, OutcomePerfect, second.Outcome)
	require.Equal(t, AxisZ, second.Axis)
	narrow := e.Top()

	// prev X interval [12.25, 12.5], slab at [12.65, 12.9]
	third := commitAt(t, e, 0.4)
	assert.Equal(t, AxisX, third.Axis)
	assert.Equal(t, OutcomeMiss, third.Outcome)
	assert.False(t, third.Landed())
	assert.Zero(t, third.Overlap)
	assert.Equal(t, narrow, e.Top(), "footprint unchanged on miss")
	require.Len(t, third.Fragments, 1)
	assert.InDelta(t, 0.25, third.Fragments[0].Footprint.Width, tol)
	assert.True(t, e.Over())
	assert.Equal(t, 2, ledger.DynamicCount(), "first cut overhang plus the toppled slab")
}

// Overlapping slabs inside the tolerance still snap on a narrow top
func TestCommitCut_NarrowTopOverlapInsideToleranceSnaps(t *testing.T) {
	e, _ := newTestEngine(t, 42)
	commitAt(t, e, 24.75)
	commitAt(t, e, 0)
	narrow := e.Top()

	cut := commitAt(t, e, 0.1)
	assert.Equal(t, OutcomePerfect, cut.Outcome)
	assert.Equal(t, narrow, e.Top())
	assert.Empty(t, cut.Fragments)
}

func TestCommitCut_PerfectSnap(t *testing.T) {
	for _, off := range []float64{0, 0.49, -0.49, 0.2} {
		e, ledger := newTestEngine(t, 42)
		before := e.Top()

		cut := commitAt(t, e, off)

		assert.Equal(t, OutcomePerfect, cut.Outcome, "offset %v", off)
		assert.True(t, cut.Landed())
		assert.Empty(t, cut.Fragments)
		assert.Equal(t, before, e.Top(), "perfect keeps the footprint exactly")
		assert.Equal(t, off, cut.Offset)
		assert.Equal(t, 0, ledger.DynamicCount())

		settled := e.Slabs()[len(e.Slabs())-1]
		assert.Equal(t, KindSettled, settled.Kind)
		assert.Equal(t, before.CenterX, settled.Position.X)
	}
}

func TestCommitCut_JustOutsideSnapCuts(t *testing.T) {
	e, _ := newTestEngine(t, 42)
	cut := commitAt(t, e, 0.5)
	assert.Equal(t, OutcomeCut, cut.Outcome)
	assert.InDelta(t, 24.5, cut.Footprint.Width, tol)
	assert.Len(t, cut.Fragments, 1)
}

func TestCommitCut_SecondLayerCutsOnZ(t *testing.T) {
	e, _ := newTestEngine(t, 42)
	first := commitAt(t, e, 3)
	require.Equal(t, AxisX, first.Axis)

	second := commitAt(t, e, -4)
	require.Equal(t, OutcomeCut, second.Outcome)
	assert.Equal(t, AxisZ, second.Axis)
	assert.InDelta(t, 21, second.Footprint.Depth, tol)
	assert.InDelta(t, -2, second.Footprint.CenterZ, tol)
	assert.InDelta(t, 22, second.Footprint.Width, tol, "x extent carried from the first cut")
	assert.InDelta(t, 1.5, second.Footprint.CenterX, tol)
	assert.Equal(t, 3, e.CurrentSlabIndex())
	assert.Equal(t, 10.0, e.TopY())
}

// Footprint shrinks monotonically, stays positive, and overlap + fragments conserve the slab
func TestCommitCut_RandomPlayProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for run := 0; run < 50; run++ {
		e, _ := newTestEngine(t, uint32(run))
		for step := 0; step < 40; step++ {
			prev := e.Top()
			sp, err := e.SpawnActiveSlab()
			require.NoError(t, err)

			width := prev.Size(sp.Axis)
			off := (rng.Float64()*2 - 1) * width * 0.6
			require.NoError(t, e.SetOffset(off))
			require.NoError(t, e.HaltActiveSlab())
			cut, err := e.CommitCut()
			require.NoError(t, err)

			if !cut.Landed() {
				assert.Equal(t, prev, e.Top())
				assert.GreaterOrEqual(t, math.Abs(off), width)
				break
			}

			next := e.Top()
			assert.LessOrEqual(t, next.Size(sp.Axis), prev.Size(sp.Axis)+tol)
			assert.Greater(t, next.Size(sp.Axis), 0.0)
			assert.Equal(t, prev.Size(sp.Axis.Other()), next.Size(sp.Axis.Other()))
			assert.LessOrEqual(t, len(cut.Fragments), 2)

			sum := cut.Overlap
			for _, f := range cut.Fragments {
				sum += f.Footprint.Size(sp.Axis)
				assert.Greater(t, f.Footprint.Size(sp.Axis), 0.0)
			}
			assert.InDelta(t, width, sum, 1e-6, "conservation on axis %s", sp.Axis)
		}
	}
}

func TestCommitCut_FragmentsFallUnderLedgerStep(t *testing.T) {
	e, ledger := newTestEngine(t, 42)
	cut := commitAt(t, e, 6)
	require.Len(t, cut.Fragments, 1)

	frag := cut.Fragments[0].Slab
	startY := frag.Position.Y
	startX := frag.Position.X
	settled := e.Slabs()[1]
	settledPos := settled.Position

	for i := 0; i < 30; i++ {
		ledger.Step(1.0 / 60)
	}

	assert.Less(t, frag.Position.Y, startY, "fragment falls")
	assert.Greater(t, frag.Position.X, startX, "pushed outward on the high side")
	assert.NotZero(t, frag.Rotation.Z, "fragment tumbles")
	assert.Equal(t, settledPos, settled.Position, "settled slab never moves")
}

func TestCut_OutcomeStrings(t *testing.T) {
	assert.Equal(t, "cut", OutcomeCut.String())
	assert.Equal(t, "perfect", OutcomePerfect.String())
	assert.Equal(t, "miss", OutcomeMiss.String())
	assert.Equal(t, "x", AxisX.String())
	assert.Equal(t, "z", AxisZ.String())
}
