package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-stacker/phase"
	"github.com/lixenwraith/vi-stacker/stack"
)

// drawStatus renders the top status bar: score, best, last outcome, seed and run id
func (r *TerminalRenderer) drawStatus(ctrl *phase.Controller, width int) {
	bar := tcell.StyleDefault.Background(RgbStatusBar).Foreground(RgbStatusText)
	for x := 0; x < width; x++ {
		r.screen.SetContent(x, 0, ' ', nil, bar)
	}

	x := r.drawText(1, 0, r.printer.Sprintf("SCORE %d", r.score), bar.Bold(true))

	if r.session != nil {
		x = r.drawText(x+3, 0, r.printer.Sprintf("BEST %d", r.session.Best.Load()), bar)
		x = r.drawText(x+3, 0, r.printer.Sprintf("RUNS %d", r.session.Runs.Load()), bar)
	}

	if cut, ok := ctrl.LastCut(); ok && cut.Outcome == stack.OutcomePerfect {
		x = r.drawText(x+3, 0, "PERFECT", bar.Background(RgbPerfect))
	}

	eng := ctrl.Engine()
	right := r.printer.Sprintf("seed %d", eng.Seed())
	if id := eng.RunID(); len(id) >= 8 {
		right += "  run " + id[len(id)-8:]
	}
	if r.session != nil && r.session.Muted.Load() {
		r.drawText(x+3, 0, "MUTED", bar.Background(RgbMutedBg).Foreground(RgbGameOverFg))
	}
	if start := width - len(right) - 1; start > x+12 {
		r.drawText(start, 0, right, bar)
	}
}

// drawHint renders the phase-specific key help on the bottom row
// While a slab moves it also names the axis it slides along
func (r *TerminalRenderer) drawHint(ctrl *phase.Controller, row int, style tcell.Style) {
	var hint string
	switch ctrl.Phase() {
	case phase.PhaseMenu:
		hint = "space: start   m: mute   q: quit"
	case phase.PhaseMove:
		hint = "space: drop   axis " + ctrl.Engine().Axis().String() + "   m: mute   q: quit"
	case phase.PhaseLose:
		hint = "r: restart   q: quit"
	}
	r.drawText(1, row, hint, style)
}

// drawGameOver centers a boxed game-over message
func (r *TerminalRenderer) drawGameOver(width, height int) {
	lines := []string{
		"GAME OVER",
		r.printer.Sprintf("score %d", r.final),
		"press r to restart",
	}

	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len(l))
	}
	boxW += 4
	boxH := len(lines) + 2

	left := (width - boxW) / 2
	top := (height - boxH) / 2
	style := tcell.StyleDefault.Background(RgbGameOverBg).Foreground(RgbGameOverFg)

	for y := top; y < top+boxH; y++ {
		for x := left; x < left+boxW; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	for i, l := range lines {
		r.drawText(left+(boxW-len(l))/2, top+1+i, l, style.Bold(i == 0))
	}
}
