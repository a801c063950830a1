package phase

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/lixenwraith/vi-stacker/constant"
	"github.com/lixenwraith/vi-stacker/engine/fsm"
	"github.com/lixenwraith/vi-stacker/event"
	"github.com/lixenwraith/vi-stacker/stack"
	"github.com/lixenwraith/vi-stacker/status"
)

//go:embed phases.yaml
var defaultGraph []byte

// Controller binds the phase graph to a stack engine and its collaborators
// Fire must be called from the single goroutine that also animates and steps the run
type Controller struct {
	engine  *stack.Engine
	machine *fsm.Machine[*Controller]

	score   Scoreboard
	overlay Overlay
	sound   Sounder
	session *status.Session
	log     *slog.Logger
	observe func(Phase)
	graph   []byte

	lastCut stack.Cut
	hasCut  bool
}

// Option configures a Controller
type Option func(*Controller)

// WithScoreboard sets the score display
func WithScoreboard(s Scoreboard) Option {
	return func(c *Controller) { c.score = s }
}

// WithOverlay sets the game-over overlay
func WithOverlay(o Overlay) Option {
	return func(c *Controller) { c.overlay = o }
}

// WithSounder sets the audio collaborator
func WithSounder(s Sounder) Option {
	return func(c *Controller) { c.sound = s }
}

// WithSession publishes run metrics into s
func WithSession(s *status.Session) Option {
	return func(c *Controller) { c.session = s }
}

// WithLogger sets the controller logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithObserver is called with every phase entered, in order
func WithObserver(fn func(Phase)) Option {
	return func(c *Controller) { c.observe = fn }
}

// WithGraph replaces the embedded phase graph
func WithGraph(yaml []byte) Option {
	return func(c *Controller) { c.graph = yaml }
}

// New compiles the phase graph against engine
// The machine is not started until Start
func New(engine *stack.Engine, opts ...Option) (*Controller, error) {
	c := &Controller{
		engine: engine,
		log:    slog.Default(),
		graph:  defaultGraph,
	}
	for _, opt := range opts {
		opt(c)
	}

	m := fsm.NewMachine[*Controller]()
	m.MaxSettleSteps = constant.MaxSettleSteps
	m.RegisterAction("StartRun", (*Controller).startRun)
	m.RegisterAction("HideGameOver", (*Controller).hideGameOver)
	m.RegisterAction("SpawnActiveSlab", (*Controller).spawnActiveSlab)
	m.RegisterAction("ShowScore", (*Controller).showScore)
	m.RegisterAction("HaltActiveSlab", (*Controller).haltActiveSlab)
	m.RegisterAction("CommitCut", (*Controller).commitCut)
	m.RegisterAction("ShowGameOver", (*Controller).showGameOver)
	m.RegisterGuard("Landed", (*Controller).landed)

	if err := m.LoadConfig(c.graph); err != nil {
		return nil, fmt.Errorf("phase graph: %w", err)
	}
	m.OnTransition(c.entered)
	c.machine = m

	return c, nil
}

// Start enters the initial phase and runs through to the first waiting phase
func (c *Controller) Start() error {
	return c.machine.Init(c)
}

// Fire delivers one trigger
// Triggers the current phase does not wait for are ignored and return false
func (c *Controller) Fire(trigger event.EventType) (bool, error) {
	fired, err := c.machine.HandleEvent(c, trigger)
	if err != nil {
		return fired, fmt.Errorf("phase %s on %s: %w", c.Phase(), trigger, err)
	}
	return fired, nil
}

// Phase returns the active phase
func (c *Controller) Phase() Phase {
	return ParsePhase(c.machine.StateName())
}

// Engine returns the driven stack engine
func (c *Controller) Engine() *stack.Engine {
	return c.engine
}

// LastCut returns the most recent commit result of the current run
func (c *Controller) LastCut() (stack.Cut, bool) {
	return c.lastCut, c.hasCut
}

// Score is the game-over score: layers settled in the current run
func (c *Controller) Score() int {
	if c.engine.Over() {
		return c.engine.CurrentSlabIndex() - 1
	}
	return c.engine.CurrentSlabIndex()
}

func (c *Controller) entered(_, to fsm.StateID) {
	p := ParsePhase(c.machine.NameOf(to))
	c.log.Debug("phase entered", "phase", p)
	if c.session != nil {
		c.session.Phase.Store(p.String())
	}
	if c.observe != nil {
		c.observe(p)
	}
}

func (c *Controller) startRun() error {
	c.engine.StartRun()
	c.lastCut, c.hasCut = stack.Cut{}, false
	if c.session != nil {
		c.session.BeginRun(c.engine.RunID())
	}
	return nil
}

func (c *Controller) hideGameOver() error {
	if c.overlay != nil {
		c.overlay.HideGameOver()
	}
	return nil
}

func (c *Controller) spawnActiveSlab() error {
	_, err := c.engine.SpawnActiveSlab()
	return err
}

func (c *Controller) showScore() error {
	score := c.engine.CurrentSlabIndex()
	if c.session != nil {
		c.session.SetScore(score)
	}
	if c.score != nil {
		c.score.ShowScore(score)
	}
	return nil
}

func (c *Controller) haltActiveSlab() error {
	return c.engine.HaltActiveSlab()
}

func (c *Controller) commitCut() error {
	cut, err := c.engine.CommitCut()
	if err != nil {
		return err
	}
	c.lastCut, c.hasCut = cut, true

	if s := c.session; s != nil {
		s.Fragments.Add(int64(len(cut.Fragments)))
		switch cut.Outcome {
		case stack.OutcomePerfect:
			s.Perfects.Add(1)
		case stack.OutcomeCut:
			s.Cuts.Add(1)
		case stack.OutcomeMiss:
			s.Misses.Add(1)
		}
		if cut.Landed() {
			s.Placed.Add(1)
			s.OverlapRatio.Set(cut.Overlap / cut.Previous.Size(cut.Axis))
			s.RaiseBest(cut.Index)
		}
	}
	if c.sound != nil {
		c.sound.PlayOutcome(cut.Outcome, cut.Index)
	}
	return nil
}

func (c *Controller) showGameOver() error {
	score := c.Score()
	c.log.Info("game over", "run_id", c.engine.RunID(), "seed", c.engine.Seed(), "score", score)
	if c.session != nil {
		c.session.SetScore(score)
	}
	if c.overlay != nil {
		c.overlay.ShowGameOver(score)
	}
	return nil
}

func (c *Controller) landed() bool {
	return c.hasCut && c.lastCut.Landed()
}
