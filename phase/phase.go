// Package phase sequences a play session over the stack engine:
// start, menu, move, stop, place, then move again or lose and back to menu
package phase

// Phase is one state of the session
type Phase int

const (
	PhaseNone Phase = iota
	PhaseStart
	PhaseMenu
	PhaseMove
	PhaseStop
	PhasePlace
	PhaseLose
)

var phaseNames = map[Phase]string{
	PhaseStart: "start",
	PhaseMenu:  "menu",
	PhaseMove:  "move",
	PhaseStop:  "stop",
	PhasePlace: "place",
	PhaseLose:  "lose",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "none"
}

// ParsePhase maps a graph state name to a Phase
func ParsePhase(name string) Phase {
	for p, n := range phaseNames {
		if n == name {
			return p
		}
	}
	return PhaseNone
}

// Waiting reports whether the phase suspends on an external trigger
func (p Phase) Waiting() bool {
	return p == PhaseMenu || p == PhaseMove || p == PhaseLose
}
