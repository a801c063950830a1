// Package stack owns the live slab stack for one run: the settled top
// footprint, the oscillating active slab, axis alternation and the
// overlap/cut algorithm that shrinks the tower or ends the run
package stack

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/lixenwraith/vi-stacker/palette"
	"github.com/lixenwraith/vi-stacker/physics"
	"github.com/lixenwraith/vi-stacker/vmath"
)

// Engine is the stacking simulation
// Not safe for concurrent use: the frame loop serializes every call
type Engine struct {
	cfg    Config
	seeds  SeedSource
	ledger *physics.Ledger
	log    *slog.Logger

	// Run state, rebuilt by StartRun
	started bool
	over    bool
	runID   string
	seed    uint32
	palette *palette.Palette

	axis  Axis
	top   Footprint
	topY  float64
	index int

	active  *activeSlab
	slabs   []*Slab
	frags   []Fragment
	history []Cut
}

// activeSlab is the mutable oscillating slab
type activeSlab struct {
	slab    *Slab
	axis    Axis
	base    Footprint // top footprint at spawn, offset 0
	y       float64
	offset  float64
	elapsed float64
	halted  bool
}

// Option configures an Engine
type Option func(*Engine)

// WithConfig overrides the tunables
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithSeedSource overrides how StartRun draws the palette seed
func WithSeedSource(src SeedSource) Option {
	return func(e *Engine) {
		if src != nil {
			e.seeds = src
		}
	}
}

// WithLogger sets the engine logger
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an engine that hands every body to ledger
// The engine is idle until StartRun
func New(ledger *physics.Ledger, opts ...Option) *Engine {
	e := &Engine{
		cfg:    DefaultConfig(),
		seeds:  RandomSeed,
		ledger: ledger,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartRun resets the stack: new seed and palette, slab index 1, base slab at the
// full initial footprint with a static body; all previous slabs, fragments and bodies are discarded
func (e *Engine) StartRun() {
	e.ledger.Reset()
	clear(e.slabs)
	e.slabs = e.slabs[:0]
	e.frags = nil
	e.history = nil
	e.active = nil

	e.started = true
	e.over = false
	e.runID = uuid.Must(uuid.NewV7()).String()
	e.seed = e.seeds()
	e.palette = palette.New(e.seed)

	// First spawn flips to X
	e.axis = AxisZ
	e.index = 1
	e.topY = 0
	e.top = Footprint{Width: e.cfg.InitialWidth, Depth: e.cfg.InitialDepth}

	base := &Slab{
		Index:       e.index,
		Kind:        KindSettled,
		Color:       e.colorAt(e.index),
		HalfExtents: e.top.halfExtents(e.cfg.SlabHeight),
	}
	e.slabs = append(e.slabs, base)
	e.ledger.Add(base, physics.NewStatic(base.HalfExtents, e.top.position(e.topY)))

	e.log.Info("run started", "run_id", e.runID, "seed", e.seed)
}

// Spawn describes a freshly spawned active slab
type Spawn struct {
	Index     int
	Axis      Axis
	Footprint Footprint // at offset 0, i.e. the top footprint
	Y         float64
	Color     palette.RGB
	Range     float64
	Offset    float64 // starting offset
}

// SpawnActiveSlab flips the axis, increments the slab index and creates the
// active slab one layer above the top, sized and centered on the current footprint
// Oscillation runs along the new axis over [-Range, +Range] via Animate
func (e *Engine) SpawnActiveSlab() (Spawn, error) {
	if err := e.requireRun(); err != nil {
		return Spawn{}, err
	}
	if e.active != nil {
		return Spawn{}, fmt.Errorf("%w: active slab %d already exists", ErrInvalidState, e.active.slab.Index)
	}

	e.axis = e.axis.Other()
	e.index++

	// A quarter period into the wave the offset is 0 and rising
	a := &activeSlab{
		axis:    e.axis,
		base:    e.top,
		y:       e.topY + e.cfg.SlabHeight,
		elapsed: e.cfg.OscillationPeriod / 4,
	}
	a.offset = vmath.Oscillate(a.elapsed, e.cfg.OscillationRange, e.cfg.OscillationPeriod)
	a.slab = &Slab{
		Index:       e.index,
		Kind:        KindActive,
		Color:       e.colorAt(e.index),
		HalfExtents: e.top.halfExtents(e.cfg.SlabHeight),
	}
	a.place()

	e.active = a
	e.slabs = append(e.slabs, a.slab)

	e.log.Debug("slab spawned", "index", e.index, "axis", e.axis, "y", a.y)

	return Spawn{
		Index:     e.index,
		Axis:      e.axis,
		Footprint: e.top,
		Y:         a.y,
		Color:     a.slab.Color,
		Range:     e.cfg.OscillationRange,
		Offset:    a.offset,
	}, nil
}

// Animate advances the active slab's oscillation clock by dt seconds
// No-op without an active slab or once halted
func (e *Engine) Animate(dt float64) {
	a := e.active
	if a == nil || a.halted || dt <= 0 {
		return
	}
	a.elapsed += dt
	a.offset = vmath.Oscillate(a.elapsed, e.cfg.OscillationRange, e.cfg.OscillationPeriod)
	a.place()
}

// SetOffset places the active slab directly, clamped to the oscillation range
func (e *Engine) SetOffset(offset float64) error {
	a := e.active
	if a == nil {
		return fmt.Errorf("%w: no active slab", ErrInvalidState)
	}
	if a.halted {
		return fmt.Errorf("%w: active slab %d is halted", ErrInvalidState, a.slab.Index)
	}
	a.offset = vmath.Clamp(offset, -e.cfg.OscillationRange, e.cfg.OscillationRange)
	a.place()
	return nil
}

// HaltActiveSlab freezes the active slab at its current offset, fixing the commit position
func (e *Engine) HaltActiveSlab() error {
	a := e.active
	if a == nil {
		return fmt.Errorf("%w: no active slab to halt", ErrInvalidState)
	}
	if a.halted {
		return fmt.Errorf("%w: active slab %d already halted", ErrInvalidState, a.slab.Index)
	}
	a.halted = true
	e.log.Debug("slab halted", "index", a.slab.Index, "axis", a.axis, "offset", a.offset)
	return nil
}

// CurrentSlabIndex returns the 1-based count of slabs placed so far in this run
func (e *Engine) CurrentSlabIndex() int {
	return e.index
}

// Active returns a view of the active slab, if any
func (e *Engine) Active() (ActiveSlab, bool) {
	a := e.active
	if a == nil {
		return ActiveSlab{}, false
	}
	return ActiveSlab{
		Index:     a.slab.Index,
		Axis:      a.axis,
		Footprint: a.base.Shifted(a.axis, a.offset),
		Offset:    a.offset,
		Range:     e.cfg.OscillationRange,
		Halted:    a.halted,
	}, true
}

// Top returns the footprint of the topmost settled slab
func (e *Engine) Top() Footprint { return e.top }

// TopY returns the layer height of the topmost settled slab
func (e *Engine) TopY() float64 { return e.topY }

// Axis returns the axis of the most recent spawn
func (e *Engine) Axis() Axis { return e.axis }

// Seed returns the palette seed of the current run
func (e *Engine) Seed() uint32 { return e.seed }

// RunID returns the unique id of the current run
func (e *Engine) RunID() string { return e.runID }

// Over reports whether the current run ended in a miss
func (e *Engine) Over() bool { return e.over }

// Slabs returns every visual slab of the run in creation order; callers must not mutate
func (e *Engine) Slabs() []*Slab { return e.slabs }

// Fragments returns every fragment created this run
func (e *Engine) Fragments() []Fragment { return e.frags }

// History returns the outcome of every commit this run
func (e *Engine) History() []Cut { return e.history }

// Config returns the active tunables
func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) requireRun() error {
	if !e.started {
		return fmt.Errorf("%w: no run started", ErrInvalidState)
	}
	if e.over {
		return fmt.Errorf("%w: run is over", ErrInvalidState)
	}
	return nil
}

func (e *Engine) colorAt(index int) palette.RGB {
	c, err := e.palette.Color(index)
	if err != nil {
		// index is 1-based by construction
		panic(err)
	}
	return c
}

// place writes the active slab pose from its base footprint and offset
func (a *activeSlab) place() {
	fp := a.base.Shifted(a.axis, a.offset)
	a.slab.Position = fp.position(a.y)
}

// sign returns -1 for negative values, +1 otherwise
func sign(v float64) float64 {
	if math.Signbit(v) {
		return -1
	}
	return 1
}
