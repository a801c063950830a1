package event

import "strings"

var (
	nameToType = map[string]EventType{
		"Commit":     EventCommit,
		"Restart":    EventRestart,
		"ToggleMute": EventToggleMute,
		"Quit":       EventQuit,
	}
	typeToName = map[EventType]string{
		EventTick:       "Tick",
		EventCommit:     "Commit",
		EventRestart:    "Restart",
		EventToggleMute: "ToggleMute",
		EventQuit:       "Quit",
	}
)

// Lookup returns the EventType for a configured trigger name
// "Tick" (any case) resolves to EventTick
func Lookup(name string) (EventType, bool) {
	if strings.EqualFold(name, "Tick") {
		return EventTick, true
	}
	et, ok := nameToType[name]
	return et, ok
}

// Name returns the configured name of et, empty if unknown
func Name(et EventType) string {
	return typeToName[et]
}
