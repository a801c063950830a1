package input

import "github.com/lixenwraith/vi-stacker/event"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit       // q, Esc, Ctrl+C
	IntentToggleMute // m
	IntentCommit     // space, Enter, left click
	IntentRestart    // r
)

// actionRegistry maps canonical action names to intents
// Used by the keymap config loader to resolve action strings
var actionRegistry = map[string]IntentType{
	"none":        IntentNone,
	"quit":        IntentQuit,
	"toggle_mute": IntentToggleMute,
	"commit":      IntentCommit,
	"restart":     IntentRestart,
}

// Event returns the trigger an intent raises, false for IntentNone
func (i IntentType) Event() (event.EventType, bool) {
	switch i {
	case IntentQuit:
		return event.EventQuit, true
	case IntentToggleMute:
		return event.EventToggleMute, true
	case IntentCommit:
		return event.EventCommit, true
	case IntentRestart:
		return event.EventRestart, true
	default:
		return event.EventTick, false
	}
}
