// Package render draws a run to a tcell screen: a front (X/Y) and a side (Z/Y)
// projection of the tower, a one-line HUD and the game-over overlay
package render

import (
	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lixenwraith/vi-stacker/constant"
	"github.com/lixenwraith/vi-stacker/phase"
	"github.com/lixenwraith/vi-stacker/stack"
	"github.com/lixenwraith/vi-stacker/status"
)

// hudRows is the status line at the top plus the hint line at the bottom
const hudRows = 2

// TerminalRenderer handles all terminal rendering
// All methods run on the frame loop goroutine
type TerminalRenderer struct {
	screen  tcell.Screen
	session *status.Session
	printer *message.Printer

	score    int
	gameOver bool
	final    int
}

// NewTerminalRenderer creates a renderer; session may be nil
func NewTerminalRenderer(screen tcell.Screen, session *status.Session) *TerminalRenderer {
	return &TerminalRenderer{
		screen:  screen,
		session: session,
		printer: message.NewPrinter(language.English),
	}
}

// ShowScore implements phase.Scoreboard
func (r *TerminalRenderer) ShowScore(score int) {
	r.score = score
}

// ShowGameOver implements phase.Overlay
func (r *TerminalRenderer) ShowGameOver(score int) {
	r.gameOver = true
	r.final = score
}

// HideGameOver implements phase.Overlay
func (r *TerminalRenderer) HideGameOver() {
	r.gameOver = false
	r.score = 0
}

// GameOverVisible reports the overlay state
func (r *TerminalRenderer) GameOverVisible() bool {
	return r.gameOver
}

// Render implements engine.Renderer
func (r *TerminalRenderer) Render(ctrl *phase.Controller) {
	bg := tcell.StyleDefault.Background(RgbBackground)
	r.screen.Fill(' ', bg)

	w, h := r.screen.Size()
	if w < 2*PanelMinWidth+constant.PanelGap || h < hudRows+2 {
		r.drawText(0, 0, "terminal too small", bg.Foreground(RgbHint))
		r.screen.Show()
		return
	}

	eng := ctrl.Engine()
	cfg := eng.Config()
	halfSpan := max(cfg.InitialWidth, cfg.InitialDepth)/2 + cfg.OscillationRange

	panelW := (w - constant.PanelGap) / 2
	panelH := h - hudRows
	front := NewProjection(0, 1, panelW, panelH, halfSpan, eng.TopY(), cfg.SlabHeight)
	side := NewProjection(panelW+constant.PanelGap, 1, panelW, panelH, halfSpan, eng.TopY(), cfg.SlabHeight)

	r.drawSlabs(eng.Slabs(), front, side)
	r.drawStatus(ctrl, w)
	r.drawHint(ctrl, h-1, bg.Foreground(RgbHint))
	if r.gameOver {
		r.drawGameOver(w, h)
	}

	r.screen.Show()
}

// PanelMinWidth is the narrowest usable projection panel
const PanelMinWidth = 16

// drawSlabs paints settled slabs first, then fragments, then the active slab on top
func (r *TerminalRenderer) drawSlabs(slabs []*stack.Slab, front, side Projection) {
	for _, kind := range [...]stack.SlabKind{stack.KindSettled, stack.KindFragment, stack.KindActive} {
		for _, s := range slabs {
			if s.Kind != kind {
				continue
			}
			r.drawBox(front, s.Position.X, s.Position.Y, s.HalfExtents.X, s.HalfExtents.Y, glyphFor(kind), SlabColor(s.Color, kind, false))
			r.drawBox(side, s.Position.Z, s.Position.Y, s.HalfExtents.Z, s.HalfExtents.Y, glyphFor(kind), SlabColor(s.Color, kind, true))
		}
	}
}

func (r *TerminalRenderer) drawBox(p Projection, h, y, hh, hy float64, glyph rune, color tcell.Color) {
	c0, r0, c1, r1, ok := p.Rect(h, y, hh, hy)
	if !ok {
		return
	}
	style := tcell.StyleDefault.Foreground(color).Background(RgbBackground)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			r.screen.SetContent(col, row, glyph, nil, style)
		}
	}
}

func glyphFor(kind stack.SlabKind) rune {
	switch kind {
	case stack.KindActive:
		return constant.GlyphActive
	case stack.KindFragment:
		return constant.GlyphFragment
	default:
		return constant.GlyphSlab
	}
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
