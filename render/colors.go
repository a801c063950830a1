package render

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/vi-stacker/palette"
	"github.com/lixenwraith/vi-stacker/stack"
)

// UI color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbStatusBar  = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbStatusText = tcell.NewRGBColor(0, 0, 0)       // Dark text for status
	RgbHint       = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbPerfect    = tcell.NewRGBColor(255, 255, 0)   // Bright yellow flash
	RgbGameOverBg = tcell.NewRGBColor(200, 50, 50)   // Red overlay
	RgbGameOverFg = tcell.NewRGBColor(255, 255, 255) // White
	RgbMutedBg    = tcell.NewRGBColor(128, 0, 128)   // Dark purple
)

// Shading amounts, blended in CIE-L*a*b*
const (
	activeLift    = 0.18 // toward white
	fragmentFade  = 0.45 // toward background
	sideFaceShade = 0.22 // toward black
)

var (
	white      = colorful.Color{R: 1, G: 1, B: 1}
	black      = colorful.Color{}
	background = colorful.Color{R: 26.0 / 255, G: 27.0 / 255, B: 38.0 / 255}
)

func toColorful(c palette.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// SlabColor returns the cell color for a slab on the front (side=false) or side panel
func SlabColor(c palette.RGB, kind stack.SlabKind, side bool) tcell.Color {
	base := toColorful(c)
	switch kind {
	case stack.KindActive:
		base = base.BlendLab(white, activeLift)
	case stack.KindFragment:
		base = base.BlendLab(background, fragmentFade)
	}
	if side {
		base = base.BlendLab(black, sideFaceShade)
	}
	return toTcell(base)
}
