package vmath

import "math"

// TriangleWave maps phase x (in cycles) to [-1, 1]
// x=0 → -1, x=0.5 → +1, x=1 → -1; linear in between, periodic for any real x
func TriangleWave(x float64) float64 {
	return 4*math.Abs(x-math.Floor(x+0.5)) - 1
}

// Oscillate returns amplitude · TriangleWave(t/period)
// A non-positive period pins the output at -amplitude
func Oscillate(t, amplitude, period float64) float64 {
	if period <= 0 {
		return -amplitude
	}
	return amplitude * TriangleWave(t/period)
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
