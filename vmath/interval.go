package vmath

// Interval is a closed span [Lo, Hi] on one axis
type Interval struct {
	Lo, Hi float64
}

// Span returns the interval centered at center with the given length
func Span(center, length float64) Interval {
	half := length / 2
	return Interval{Lo: center - half, Hi: center + half}
}

func (iv Interval) Length() float64 { return iv.Hi - iv.Lo }

func (iv Interval) Center() float64 { return (iv.Lo + iv.Hi) / 2 }

// Intersect returns the overlap of two closed intervals
// ok is false when they share no interior point; touching endpoints (Lo == Hi) count as no overlap
func Intersect(a, b Interval) (Interval, bool) {
	lo := a.Lo
	if b.Lo > lo {
		lo = b.Lo
	}
	hi := a.Hi
	if b.Hi < hi {
		hi = b.Hi
	}
	if lo >= hi {
		return Interval{}, false
	}
	return Interval{Lo: lo, Hi: hi}, true
}
