package event

// EventType identifies a trigger delivered to the game loop
// Zero is reserved for the FSM's automatic Tick transitions
type EventType int

const (
	// EventTick is never queued; it marks automatic FSM transitions
	EventTick EventType = iota

	// EventCommit is any discrete player action (key, tap, click)
	// Consumer: PhaseMachine (menu → move, move → stop)
	EventCommit

	// EventRestart dismisses the game-over overlay
	// Consumer: PhaseMachine (lose → menu)
	EventRestart

	// EventToggleMute flips audio mute
	// Consumer: Loop, forwarded to the audio collaborator
	EventToggleMute

	// EventQuit ends the loop
	// Consumer: Loop
	EventQuit
)

// GameEvent is one queued trigger
type GameEvent struct {
	Type EventType
	// Frame is the loop frame the producer observed when pushing, for tracing only
	Frame int64
}

func (et EventType) String() string {
	if name := Name(et); name != "" {
		return name
	}
	return "Unknown"
}
