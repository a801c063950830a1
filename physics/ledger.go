package physics

import (
	"github.com/lixenwraith/vi-stacker/vmath"
)

// Visual receives the pose of its paired body
// The renderer reads visuals; the ledger is the only writer
type Visual interface {
	SetPose(pos, rot vmath.Vec3F)
}

// Pair binds one visual slab to one body
type Pair struct {
	Visual Visual
	Body   *Body
}

// Ledger is the ordered, append-only set of visual/body pairs for one run
// Not safe for concurrent use; the frame loop owns it
type Ledger struct {
	stepper Stepper
	pairs   []Pair
	bodies  []*Body // parallel to pairs, handed to the stepper without rebuilding
	nextID  int
}

// NewLedger creates an empty ledger stepping with s
func NewLedger(s Stepper) *Ledger {
	return &Ledger{
		stepper: s,
		pairs:   make([]Pair, 0, 64),
		bodies:  make([]*Body, 0, 64),
		nextID:  1,
	}
}

// Add appends a pair, assigns the body an id and syncs the visual once
// Static bodies are never synced again
func (l *Ledger) Add(v Visual, b *Body) int {
	b.ID = l.nextID
	l.nextID++
	l.pairs = append(l.pairs, Pair{Visual: v, Body: b})
	l.bodies = append(l.bodies, b)
	if v != nil {
		v.SetPose(b.Position, b.Rotation)
	}
	return b.ID
}

// Step advances all bodies by dt seconds and mirrors dynamic poses onto their visuals
func (l *Ledger) Step(dt float64) {
	if len(l.bodies) == 0 {
		return
	}
	l.stepper.Advance(l.bodies, dt)
	for _, p := range l.pairs {
		if p.Body.IsDynamic() && p.Visual != nil {
			p.Visual.SetPose(p.Body.Position, p.Body.Rotation)
		}
	}
}

// Reset discards every pair; used on run start only
func (l *Ledger) Reset() {
	clear(l.pairs)
	clear(l.bodies)
	l.pairs = l.pairs[:0]
	l.bodies = l.bodies[:0]
	l.nextID = 1
}

// Len returns the number of pairs
func (l *Ledger) Len() int {
	return len(l.pairs)
}

// DynamicCount returns how many bodies are dynamic
func (l *Ledger) DynamicCount() int {
	n := 0
	for _, b := range l.bodies {
		if b.IsDynamic() {
			n++
		}
	}
	return n
}
