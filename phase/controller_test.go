package phase

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-stacker/event"
	"github.com/lixenwraith/vi-stacker/physics"
	"github.com/lixenwraith/vi-stacker/stack"
	"github.com/lixenwraith/vi-stacker/status"
)

type fakeUI struct {
	scores   []int
	gameOver []int
	hides    int
}

func (f *fakeUI) ShowScore(score int)    { f.scores = append(f.scores, score) }
func (f *fakeUI) ShowGameOver(score int) { f.gameOver = append(f.gameOver, score) }
func (f *fakeUI) HideGameOver()          { f.hides++ }

type fakeSound struct {
	outcomes []stack.Outcome
	indices  []int
}

func (f *fakeSound) PlayOutcome(o stack.Outcome, index int) {
	f.outcomes = append(f.outcomes, o)
	f.indices = append(f.indices, index)
}

type harness struct {
	ctrl    *Controller
	engine  *stack.Engine
	ledger  *physics.Ledger
	ui      *fakeUI
	sound   *fakeSound
	session *status.Session
	phases  []Phase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		ui:      &fakeUI{},
		sound:   &fakeSound{},
		session: status.NewSession(status.NewRegistry()),
	}
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	h.ledger = physics.NewLedger(physics.NewGravityStepper(60, -400))
	h.engine = stack.New(h.ledger, stack.WithSeedSource(stack.FixedSeed(42)), stack.WithLogger(quiet))

	ctrl, err := New(h.engine,
		WithScoreboard(h.ui),
		WithOverlay(h.ui),
		WithSounder(h.sound),
		WithSession(h.session),
		WithLogger(quiet),
		WithObserver(func(p Phase) { h.phases = append(h.phases, p) }),
	)
	require.NoError(t, err)
	h.ctrl = ctrl
	require.NoError(t, ctrl.Start())
	return h
}

func (h *harness) fire(t *testing.T, trigger event.EventType) bool {
	t.Helper()
	fired, err := h.ctrl.Fire(trigger)
	require.NoError(t, err)
	return fired
}

func TestController_StartSettlesInMenu(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, []Phase{PhaseStart, PhaseMenu}, h.phases)
	assert.Equal(t, PhaseMenu, h.ctrl.Phase())
	assert.Equal(t, 1, h.engine.CurrentSlabIndex())
	assert.Equal(t, 1, h.ui.hides)
	assert.Equal(t, int64(1), h.session.Runs.Load())
	assert.Equal(t, "menu", h.session.Phase.Load())
}

func TestController_CommitCycle(t *testing.T) {
	h := newHarness(t)
	h.phases = nil

	assert.True(t, h.fire(t, event.EventCommit))
	assert.Equal(t, PhaseMove, h.ctrl.Phase())
	assert.Equal(t, 2, h.engine.CurrentSlabIndex())
	_, ok := h.engine.Active()
	assert.True(t, ok)

	require.NoError(t, h.engine.SetOffset(3))
	assert.True(t, h.fire(t, event.EventCommit))

	assert.Equal(t, []Phase{PhaseMove, PhaseStop, PhasePlace, PhaseMove}, h.phases)
	assert.Equal(t, 3, h.engine.CurrentSlabIndex())
	assert.Equal(t, []int{2, 3}, h.ui.scores)

	cut, ok := h.ctrl.LastCut()
	require.True(t, ok)
	assert.Equal(t, stack.OutcomeCut, cut.Outcome)
	assert.InDelta(t, 22.0, cut.Footprint.Width, 1e-9)
	assert.Equal(t, []stack.Outcome{stack.OutcomeCut}, h.sound.outcomes)
	assert.Equal(t, []int{2}, h.sound.indices)

	assert.Equal(t, int64(1), h.session.Cuts.Load())
	assert.Equal(t, int64(1), h.session.Placed.Load())
	assert.Equal(t, int64(1), h.session.Fragments.Load())
	assert.InDelta(t, 22.0/25.0, h.session.OverlapRatio.Get(), 1e-9)
}

func TestController_PerfectKeepsSize(t *testing.T) {
	h := newHarness(t)
	h.fire(t, event.EventCommit)
	require.NoError(t, h.engine.SetOffset(0.2))
	h.fire(t, event.EventCommit)

	assert.Equal(t, PhaseMove, h.ctrl.Phase())
	assert.Equal(t, []stack.Outcome{stack.OutcomePerfect}, h.sound.outcomes)
	assert.Equal(t, int64(1), h.session.Perfects.Load())
	assert.Equal(t, 25.0, h.engine.Top().Width)
}

func TestController_MissLosesAndRestarts(t *testing.T) {
	h := newHarness(t)
	h.fire(t, event.EventCommit)
	require.NoError(t, h.engine.SetOffset(3))
	h.fire(t, event.EventCommit)
	h.phases = nil

	// Slab 3 oscillates on Z; -50 is far off the 25-deep top
	require.NoError(t, h.engine.SetOffset(-50))
	h.fire(t, event.EventCommit)

	assert.Equal(t, []Phase{PhaseStop, PhasePlace, PhaseLose}, h.phases)
	assert.Equal(t, PhaseLose, h.ctrl.Phase())
	assert.True(t, h.engine.Over())
	assert.Equal(t, []int{2}, h.ui.gameOver)
	assert.Equal(t, []stack.Outcome{stack.OutcomeCut, stack.OutcomeMiss}, h.sound.outcomes)
	assert.Equal(t, int64(1), h.session.Misses.Load())
	assert.Equal(t, int64(2), h.session.Best.Load())

	// Commit is not a restart
	assert.False(t, h.fire(t, event.EventCommit))
	assert.Equal(t, PhaseLose, h.ctrl.Phase())

	runID := h.engine.RunID()
	assert.True(t, h.fire(t, event.EventRestart))
	assert.Equal(t, PhaseMenu, h.ctrl.Phase())
	assert.Equal(t, 2, h.ui.hides)
	assert.Equal(t, 1, h.engine.CurrentSlabIndex())
	assert.NotEqual(t, runID, h.engine.RunID())
	assert.Equal(t, 1, h.ledger.Len())
	_, ok := h.ctrl.LastCut()
	assert.False(t, ok)
	assert.Equal(t, int64(2), h.session.Runs.Load())
}

func TestController_IgnoresOffPhaseTriggers(t *testing.T) {
	h := newHarness(t)

	assert.False(t, h.fire(t, event.EventRestart))
	assert.Equal(t, PhaseMenu, h.ctrl.Phase())

	h.fire(t, event.EventCommit)
	assert.False(t, h.fire(t, event.EventRestart))
	assert.Equal(t, PhaseMove, h.ctrl.Phase())
	assert.Equal(t, 2, h.engine.CurrentSlabIndex())

	// Tick has nothing to settle in a waiting phase
	assert.False(t, h.fire(t, event.EventTick))
}

func TestController_RejectsBrokenGraph(t *testing.T) {
	engine := stack.New(physics.NewLedger(physics.NewGravityStepper(60, -400)))
	_, err := New(engine, WithGraph([]byte("initial: menu\nstates:\n  menu:\n    on_enter: [Launch]\n")))
	assert.Error(t, err)
}

func TestParsePhase(t *testing.T) {
	for p := PhaseStart; p <= PhaseLose; p++ {
		assert.Equal(t, p, ParsePhase(p.String()))
	}
	assert.Equal(t, PhaseNone, ParsePhase("pause"))
	assert.True(t, PhaseLose.Waiting())
	assert.False(t, PhasePlace.Waiting())
}
