package fsm

import "errors"

var (
	// ErrInvalidGraph reports a config or graph that cannot be compiled
	ErrInvalidGraph = errors.New("fsm: invalid graph")

	// ErrNotInitialized is returned when events arrive before Init
	ErrNotInitialized = errors.New("fsm: not initialized")

	// ErrSettleLimit is returned when Tick transitions keep firing past MaxSettleSteps
	ErrSettleLimit = errors.New("fsm: tick transitions did not settle")
)
