package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, Enter, Esc)
	SpecialKeys map[tcell.Key]IntentType

	// Printable rune bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the built-in bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyEnter:  IntentCommit,
		},
		Runes: map[rune]IntentType{
			' ': IntentCommit,
			'q': IntentQuit,
			'm': IntentToggleMute,
			'r': IntentRestart,
		},
	}
}

// Rune aliases for keys that can't be bare single-char config keys
var runeAliases = map[string]rune{
	"space": ' ',
}

// Named special keys accepted in config
var specialNames = map[string]tcell.Key{
	"enter":  tcell.KeyEnter,
	"esc":    tcell.KeyEscape,
	"tab":    tcell.KeyTab,
	"ctrl-c": tcell.KeyCtrlC,
	"ctrl-q": tcell.KeyCtrlQ,
}

// Apply overlays key → action overrides
// Returns error on unknown action names or invalid key names
func (kt *KeyTable) Apply(overrides map[string]string) error {
	for key, action := range overrides {
		intent, ok := actionRegistry[action]
		if !ok {
			return fmt.Errorf("keymap: unknown action '%s' for key '%s'", action, key)
		}

		name := strings.ToLower(key)
		if k, ok := specialNames[name]; ok {
			kt.SpecialKeys[k] = intent
			continue
		}
		if r, ok := runeAliases[name]; ok {
			kt.Runes[r] = intent
			continue
		}
		runes := []rune(key)
		if len(runes) != 1 {
			return fmt.Errorf("keymap: invalid key name '%s'", key)
		}
		kt.Runes[runes[0]] = intent
	}
	return nil
}
