// Package palette derives the per-run slab color sequence from a seed
//
// The same (seed, index) pair always yields the same color: the first five
// draws of a mulberry32 stream fix hue origin, hue step, direction, base
// saturation and base lightness; the slab index then walks the hue wheel and
// wobbles saturation/lightness slightly so neighbours never look identical
package palette

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument reports a slab index outside the 1-based domain
var ErrInvalidArgument = errors.New("invalid argument")

// RGB is an 8-bit per channel color
type RGB struct {
	R, G, B uint8
}

// Hex packs the color as 0xRRGGBB
func (c RGB) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c RGB) String() string {
	return fmt.Sprintf("#%06x", c.Hex())
}

// Params are the per-run palette parameters drawn from the seed
type Params struct {
	BaseHue        float64 // [0,360), whole degrees
	HueStep        float64 // [6,24), whole degrees
	Direction      int     // +1 or -1
	BaseSaturation float64 // [45,65] percent
	BaseLightness  float64 // [78,88] percent
}

// Palette holds the parameters for one seed; safe for concurrent reads
type Palette struct {
	seed   uint32
	params Params
}

// New draws the palette parameters for seed
func New(seed uint32) *Palette {
	rng := &mulberry32{state: seed}

	p := Params{}
	p.BaseHue = math.Floor(rng.next() * 360)
	p.HueStep = 6 + math.Floor(rng.next()*18)
	p.Direction = -1
	if rng.next() < 0.5 {
		p.Direction = 1
	}
	p.BaseSaturation = 45 + rng.next()*20
	p.BaseLightness = 78 + rng.next()*10

	return &Palette{seed: seed, params: p}
}

func (p *Palette) Seed() uint32 { return p.seed }

func (p *Palette) Params() Params { return p.params }

// Color returns the color of the 1-based slab index
func (p *Palette) Color(index int) (RGB, error) {
	if index < 1 {
		return RGB{}, fmt.Errorf("%w: slab index %d, must be >= 1", ErrInvalidArgument, index)
	}

	i := float64(index - 1)
	sat := clamp(p.params.BaseSaturation+wobble(i*0.35, 3), 40, 70)
	light := clamp(p.params.BaseLightness+wobble(i*0.3+0.7, 2.5), 72, 92)
	hue := mod(p.params.BaseHue+float64(p.params.Direction)*p.params.HueStep*i, 360)

	return hslToRGB(hue, sat/100, light/100), nil
}

// Color is the stateless form: palette for seed, color at index
func Color(seed uint32, index int) (RGB, error) {
	return New(seed).Color(index)
}

func wobble(t, amp float64) float64 {
	return amp * math.Sin(t)
}

func mod(n, m float64) float64 {
	return math.Mod(math.Mod(n, m)+m, m)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
