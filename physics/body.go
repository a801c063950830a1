package physics

import (
	"github.com/lixenwraith/vi-stacker/vmath"
)

// Body is a box rigid body
// Mass 0 anchors it (settled slabs); Mass > 0 makes it dynamic (fragments)
type Body struct {
	ID          int
	Mass        float64
	HalfExtents vmath.Vec3F

	Position vmath.Vec3F
	Rotation vmath.Vec3F // Euler angles, radians

	Velocity vmath.Vec3F
	Spin     vmath.Vec3F // Angular velocity, rad/s

	// Sleeping bodies are skipped by the stepper; set once a body leaves the play volume
	Sleeping bool
}

// IsDynamic reports whether the body moves under simulation
func (b *Body) IsDynamic() bool {
	return b.Mass > 0
}

// NewStatic creates an anchored body at pos
func NewStatic(halfExtents, pos vmath.Vec3F) *Body {
	return &Body{
		HalfExtents: halfExtents,
		Position:    pos,
	}
}

// NewDynamic creates a falling body with an initial push and tumble
func NewDynamic(mass float64, halfExtents, pos, vel, spin vmath.Vec3F) *Body {
	return &Body{
		Mass:        mass,
		HalfExtents: halfExtents,
		Position:    pos,
		Velocity:    vel,
		Spin:        spin,
	}
}
