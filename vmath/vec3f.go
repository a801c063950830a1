package vmath

import "math"

// Vec3F is a float64 3D vector for world-space positions, extents and velocities
// Y is up; X and Z are the two horizontal axes the stack alternates between
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

// V3FAddScaled returns a + b*s, the explicit Euler step shape
func V3FAddScaled(a, b Vec3F, s float64) Vec3F {
	return Vec3F{a.X + b.X*s, a.Y + b.Y*s, a.Z + b.Z*s}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}
