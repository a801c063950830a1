package physics

import (
	"github.com/lixenwraith/vi-stacker/vmath"
)

// Stepper advances a set of bodies by one tick
// Implementations must leave static bodies untouched
type Stepper interface {
	Advance(bodies []*Body, dt float64)
}

// GravityStepper integrates dynamic bodies under constant downward gravity
// Semi-implicit Euler: v = v + g*dt; p = p + v*dt
type GravityStepper struct {
	Gravity float64
	// KillPlane is the Y below which a body is put to sleep
	KillPlane float64
}

// NewGravityStepper creates a stepper with gravity g (units/s², positive = down)
func NewGravityStepper(g, killPlane float64) *GravityStepper {
	return &GravityStepper{Gravity: g, KillPlane: killPlane}
}

// Advance implements Stepper
func (s *GravityStepper) Advance(bodies []*Body, dt float64) {
	if dt <= 0 {
		return
	}
	for _, b := range bodies {
		if !b.IsDynamic() || b.Sleeping {
			continue
		}
		b.Velocity.Y -= s.Gravity * dt
		b.Position = vmath.V3FAddScaled(b.Position, b.Velocity, dt)
		b.Rotation = vmath.V3FAddScaled(b.Rotation, b.Spin, dt)

		if b.Position.Y < s.KillPlane {
			b.Sleeping = true
			b.Velocity = vmath.Vec3F{}
			b.Spin = vmath.Vec3F{}
		}
	}
}
