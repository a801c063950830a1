package palette

import "math"

// hslToRGB converts hue in degrees [0,360) and saturation/lightness in [0,1]
// using the six-sextant piecewise formula; channels round half up to 0..255
func hslToRGB(h, s, l float64) RGB {
	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r1, g1, b1 float64
	switch {
	case hp >= 0 && hp < 1:
		r1, g1, b1 = c, x, 0
	case hp >= 1 && hp < 2:
		r1, g1, b1 = x, c, 0
	case hp >= 2 && hp < 3:
		r1, g1, b1 = 0, c, x
	case hp >= 3 && hp < 4:
		r1, g1, b1 = 0, x, c
	case hp >= 4 && hp < 5:
		r1, g1, b1 = x, 0, c
	case hp >= 5 && hp < 6:
		r1, g1, b1 = c, 0, x
	}

	m := l - c/2
	return RGB{
		R: channel(r1 + m),
		G: channel(g1 + m),
		B: channel(b1 + m),
	}
}

func channel(v float64) uint8 {
	n := math.Floor(v*255 + 0.5)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}
