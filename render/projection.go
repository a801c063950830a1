package render

import (
	"math"

	"github.com/lixenwraith/vi-stacker/constant"
)

// Projection maps one horizontal world axis and world Y onto a screen panel
// Columns grow right, rows grow down; the panel's bottom row is the camera floor
type Projection struct {
	Left, Top     int     // panel origin in cells
	Width, Height int     // panel size in cells
	UnitsPerCol   float64 // world units per column
	UnitsPerRow   float64 // world units per row
	Floor         float64 // world Y at the bottom edge of the panel
}

// NewProjection fits halfSpan world units either side of 0 into width columns
// and scrolls so the tower top sits CameraLead below the panel's upper edge
func NewProjection(left, top, width, height int, halfSpan, topY, slabHeight float64) Projection {
	p := Projection{
		Left:        left,
		Top:         top,
		Width:       width,
		Height:      height,
		UnitsPerCol: constant.CellWidth,
		UnitsPerRow: constant.CellHeight,
	}
	if width > 0 {
		p.UnitsPerCol = math.Max(constant.CellWidth, 2*halfSpan/float64(width))
	}
	p.Floor = CameraFloor(topY, slabHeight, float64(height)*p.UnitsPerRow)
	return p
}

// CameraFloor returns the lowest visible world Y for a tower whose top layer is at topY
// The base stays at the bottom until the tower climbs past (1-CameraLead) of the view
func CameraFloor(topY, slabHeight, viewUnits float64) float64 {
	base := -slabHeight / 2
	lifted := topY + slabHeight/2 - (1-constant.CameraLead)*viewUnits
	return math.Max(base, lifted)
}

// Col returns the screen column of world coordinate h, unclipped
func (p Projection) Col(h float64) int {
	return p.Left + p.Width/2 + int(math.Round(h/p.UnitsPerCol))
}

// Row returns the screen row holding world height y, unclipped
func (p Projection) Row(y float64) int {
	return p.Top + p.Height - 1 - int(math.Floor((y-p.Floor)/p.UnitsPerRow))
}

// Rect returns the clipped cell rectangle [c0,c1)x[r0,r1) covering a box
// centered at (h, y) with half-extents (hh, hy); ok is false when nothing is visible
func (p Projection) Rect(h, y, hh, hy float64) (c0, r0, c1, r1 int, ok bool) {
	c0 = p.Col(h - hh)
	c1 = max(p.Col(h+hh), c0+1)
	// Edges nudged inward so a box exactly on a row boundary does not bleed a row
	r0 = p.Row(y + hy - 1e-9)
	r1 = max(p.Row(y-hy+1e-9)+1, r0+1)

	c0 = max(c0, p.Left)
	c1 = min(c1, p.Left+p.Width)
	r0 = max(r0, p.Top)
	r1 = min(r1, p.Top+p.Height)
	return c0, r0, c1, r1, c0 < c1 && r0 < r1
}
