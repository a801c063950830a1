package stack

import (
	"fmt"

	"github.com/lixenwraith/vi-stacker/vmath"
)

// Axis is one of the two horizontal axes a slab can travel along
type Axis int

const (
	AxisX Axis = iota
	AxisZ
)

// Other returns the perpendicular horizontal axis
func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisZ
	}
	return AxisX
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// unit returns the world direction of the axis
func (a Axis) unit() vmath.Vec3F {
	if a == AxisX {
		return vmath.Vec3F{X: 1}
	}
	return vmath.Vec3F{Z: 1}
}

// Footprint is the horizontal rectangle a slab occupies
type Footprint struct {
	CenterX, CenterZ float64
	Width, Depth     float64 // extents along X and Z
}

// Center returns the center coordinate on axis a
func (f Footprint) Center(a Axis) float64 {
	if a == AxisX {
		return f.CenterX
	}
	return f.CenterZ
}

// Size returns the extent on axis a
func (f Footprint) Size(a Axis) float64 {
	if a == AxisX {
		return f.Width
	}
	return f.Depth
}

// Interval returns the closed span the footprint covers on axis a
func (f Footprint) Interval(a Axis) vmath.Interval {
	return vmath.Span(f.Center(a), f.Size(a))
}

// WithInterval replaces the center and extent on axis a, keeping the orthogonal dimension
func (f Footprint) WithInterval(a Axis, iv vmath.Interval) Footprint {
	if a == AxisX {
		f.CenterX = iv.Center()
		f.Width = iv.Length()
	} else {
		f.CenterZ = iv.Center()
		f.Depth = iv.Length()
	}
	return f
}

// Shifted moves the footprint center by d along axis a
func (f Footprint) Shifted(a Axis, d float64) Footprint {
	if a == AxisX {
		f.CenterX += d
	} else {
		f.CenterZ += d
	}
	return f
}

// Valid reports strictly positive extents
func (f Footprint) Valid() bool {
	return f.Width > 0 && f.Depth > 0
}

// halfExtents returns the box half-extents for a slab of height h on this footprint
func (f Footprint) halfExtents(h float64) vmath.Vec3F {
	return vmath.Vec3F{X: f.Width / 2, Y: h / 2, Z: f.Depth / 2}
}

// position returns the box center for a slab resting at layer height y
func (f Footprint) position(y float64) vmath.Vec3F {
	return vmath.Vec3F{X: f.CenterX, Y: y, Z: f.CenterZ}
}

func (f Footprint) String() string {
	return fmt.Sprintf("{c=(%.3f,%.3f) w=%.3f d=%.3f}", f.CenterX, f.CenterZ, f.Width, f.Depth)
}
