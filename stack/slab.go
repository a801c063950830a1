package stack

import (
	"github.com/lixenwraith/vi-stacker/palette"
	"github.com/lixenwraith/vi-stacker/vmath"
)

// SlabKind classifies a visual slab for the renderer
type SlabKind int

const (
	KindSettled SlabKind = iota
	KindActive
	KindFragment
)

func (k SlabKind) String() string {
	switch k {
	case KindSettled:
		return "settled"
	case KindActive:
		return "active"
	case KindFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Slab is the visual representation of one box: what the renderer reads
// Poses are written by the engine (active slab) or the physics ledger (everything else)
type Slab struct {
	Index       int
	Kind        SlabKind
	Color       palette.RGB
	HalfExtents vmath.Vec3F
	Position    vmath.Vec3F
	Rotation    vmath.Vec3F
}

// SetPose implements physics.Visual
func (s *Slab) SetPose(pos, rot vmath.Vec3F) {
	s.Position = pos
	s.Rotation = rot
}

// Fragment is a cut-off piece handed to the physics ledger
// Immutable after creation; Body carries the live pose
type Fragment struct {
	Index     int
	Axis      Axis
	Footprint Footprint // at creation
	Y         float64
	Slab      *Slab
	BodyID    int
}

// ActiveSlab is a read-only view of the oscillating slab
type ActiveSlab struct {
	Index     int
	Axis      Axis
	Footprint Footprint // current position, including offset
	Offset    float64   // relative to the top footprint center on Axis
	Range     float64
	Halted    bool
}
