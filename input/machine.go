package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-stacker/event"
	"github.com/lixenwraith/vi-stacker/phase"
)

// Machine translates terminal events into triggers
// Stateless apart from the key table and the last mouse button mask
type Machine struct {
	keys    *KeyTable
	buttons tcell.ButtonMask
}

// NewMachine creates a translator over keys, nil for the defaults
func NewMachine(keys *KeyTable) *Machine {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Machine{keys: keys}
}

// Translate maps ev to a trigger given the phase last shown to the player
// A commit on the game-over screen restarts, so one key plays the whole loop
func (m *Machine) Translate(ev tcell.Event, p phase.Phase) (event.EventType, bool) {
	intent := IntentNone

	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyRune {
			intent = m.keys.Runes[ev.Rune()]
		} else {
			intent = m.keys.SpecialKeys[ev.Key()]
		}

	case *tcell.EventMouse:
		// Press edge only; drags and releases repeat the mask
		pressed := ev.Buttons() & tcell.Button1
		if pressed != 0 && m.buttons&tcell.Button1 == 0 {
			intent = IntentCommit
		}
		m.buttons = ev.Buttons()
	}

	if intent == IntentCommit && p == phase.PhaseLose {
		intent = IntentRestart
	}
	return intent.Event()
}
