package stack

import (
	"fmt"
	"math"

	"github.com/lixenwraith/vi-stacker/physics"
	"github.com/lixenwraith/vi-stacker/vmath"
)

// Outcome classifies a commit
type Outcome int

const (
	OutcomeCut Outcome = iota
	OutcomePerfect
	OutcomeMiss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCut:
		return "cut"
	case OutcomePerfect:
		return "perfect"
	case OutcomeMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// Cut is the result of one commit
type Cut struct {
	Outcome Outcome
	Index   int
	Axis    Axis

	Previous  Footprint // top footprint before the commit
	Footprint Footprint // top footprint after; equals Previous on perfect and miss
	Offset    float64   // halted center offset from Previous on Axis
	Overlap   float64   // kept length on Axis, 0 on miss

	Fragments []Fragment
}

// Landed reports a non-losing commit (cut or perfect)
func (c Cut) Landed() bool {
	return c.Outcome != OutcomeMiss
}

// CommitCut cuts the halted active slab against the top footprint
//
// Closed-interval overlap on the active axis decides the outcome:
//   - no shared interior point (touching included): miss, the whole slab becomes a falling
//     fragment, the top footprint is unchanged and the run is over
//   - |offset| < SnapTolerance: perfect, the slab snaps onto the top with full size, no fragments
//   - otherwise each overhanging side becomes one falling fragment and the overlap becomes
//     the new top footprint with a static body
func (e *Engine) CommitCut() (Cut, error) {
	a := e.active
	if a == nil {
		return Cut{}, fmt.Errorf("%w: no active slab to commit", ErrInvalidState)
	}
	if !a.halted {
		return Cut{}, fmt.Errorf("%w: active slab %d not halted", ErrInvalidState, a.slab.Index)
	}

	prevFP := e.top
	cut := Cut{
		Index:     a.slab.Index,
		Axis:      a.axis,
		Previous:  prevFP,
		Footprint: prevFP,
		Offset:    a.offset,
	}

	prev := prevFP.Interval(a.axis)
	curr := vmath.Span(prev.Center()+a.offset, prev.Length())
	overlap, ok := vmath.Intersect(prev, curr)

	switch {
	case !ok:
		cut.Outcome = OutcomeMiss
		cut.Fragments = []Fragment{e.topple(a)}
		e.over = true

	case math.Abs(a.offset) < e.cfg.SnapTolerance:
		cut.Outcome = OutcomePerfect
		cut.Overlap = prevFP.Size(a.axis)
		a.offset = 0
		a.place()
		e.settle(a, prevFP)

	default:
		cut.Outcome = OutcomeCut
		cut.Overlap = overlap.Length()
		if curr.Lo < overlap.Lo {
			cut.Fragments = append(cut.Fragments, e.spawnFragment(a, prevFP, vmath.Interval{Lo: curr.Lo, Hi: overlap.Lo}, -1))
		}
		if curr.Hi > overlap.Hi {
			cut.Fragments = append(cut.Fragments, e.spawnFragment(a, prevFP, vmath.Interval{Lo: overlap.Hi, Hi: curr.Hi}, 1))
		}
		cut.Footprint = prevFP.WithInterval(a.axis, overlap)
		e.settle(a, cut.Footprint)
	}

	e.active = nil
	e.history = append(e.history, cut)

	e.log.Debug("slab committed",
		"index", cut.Index,
		"axis", cut.Axis,
		"outcome", cut.Outcome,
		"offset", cut.Offset,
		"overlap", cut.Overlap,
		"fragments", len(cut.Fragments),
	)
	return cut, nil
}

// settle turns the active slab into the new top at fp with a static body
func (e *Engine) settle(a *activeSlab, fp Footprint) {
	s := a.slab
	s.Kind = KindSettled
	s.HalfExtents = fp.halfExtents(e.cfg.SlabHeight)
	e.ledger.Add(s, physics.NewStatic(s.HalfExtents, fp.position(a.y)))

	e.top = fp
	e.topY = a.y
}

// spawnFragment creates the falling piece covering slice on the active axis
// dir is -1 for the low side and +1 for the high side
func (e *Engine) spawnFragment(a *activeSlab, prev Footprint, slice vmath.Interval, dir float64) Fragment {
	fp := prev.WithInterval(a.axis, slice)
	s := &Slab{
		Index:       a.slab.Index,
		Kind:        KindFragment,
		Color:       a.slab.Color,
		HalfExtents: fp.halfExtents(e.cfg.SlabHeight),
	}
	e.slabs = append(e.slabs, s)
	return e.addFragment(a, s, fp, dir)
}

// topple converts the whole active slab into a falling fragment
func (e *Engine) topple(a *activeSlab) Fragment {
	s := a.slab
	s.Kind = KindFragment
	fp := a.base.Shifted(a.axis, a.offset)
	return e.addFragment(a, s, fp, sign(a.offset))
}

func (e *Engine) addFragment(a *activeSlab, s *Slab, fp Footprint, dir float64) Fragment {
	vel := vmath.V3FScale(a.axis.unit(), dir*e.cfg.FragmentPush)

	// Tumble outward about the horizontal axis perpendicular to the cut
	var spin vmath.Vec3F
	if a.axis == AxisX {
		spin.Z = -dir * e.cfg.FragmentSpin
	} else {
		spin.X = dir * e.cfg.FragmentSpin
	}

	body := physics.NewDynamic(e.cfg.FragmentMass, s.HalfExtents, fp.position(a.y), vel, spin)
	id := e.ledger.Add(s, body)

	f := Fragment{
		Index:     s.Index,
		Axis:      a.axis,
		Footprint: fp,
		Y:         a.y,
		Slab:      s,
		BodyID:    id,
	}
	e.frags = append(e.frags, f)
	return f
}
