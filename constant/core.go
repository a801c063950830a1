package constant

import "time"

// Game Loop Timing
const (
	// DefaultFPS is the target frame rate
	DefaultFPS = 60

	// FrameUpdateInterval is the rendering frame rate interval
	FrameUpdateInterval = time.Second / DefaultFPS

	// MaxFrameDelta caps a single physics/animation step after a stall (suspend, resize storm)
	MaxFrameDelta = 100 * time.Millisecond
)

// Event Plumbing
const (
	// EventQueueSize is the fixed capacity of the trigger ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255

	// MaxSettleSteps bounds automatic FSM transitions chained from one event
	MaxSettleSteps = 32
)
