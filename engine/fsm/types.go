package fsm

import "github.com/lixenwraith/vi-stacker/event"

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Machine is the generic Hierarchical Finite State Machine runtime
// T is the context type passed to actions and guards (e.g., *phase.Controller)
// Exactly one leaf is active at a time; not safe for concurrent use
type Machine[T any] struct {
	// Graph Data (Immutable after load)
	nodes map[StateID]*Node[T]

	// Configuration
	InitialStateID StateID // Stored during load for reset/init
	MaxSettleSteps int     // Upper bound on chained Tick transitions per Settle

	// Runtime State
	activeStateID StateID   // The current leaf node
	activePath    []StateID // Stack of active states (Root -> Child -> Leaf)

	// Dependency Injection
	guardReg  map[string]GuardFunc[T]
	actionReg map[string]ActionFunc[T]

	// Observer, called after every completed transition
	onTransition func(from, to StateID)
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Pre-calculated path from Root to this node for LCA lookup
	Path []StateID

	// Lifecycle Actions
	OnEnter []Action[T]
	OnExit  []Action[T]

	// Transitions in evaluation order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType // 0 = Tick (auto-transition)
	Guard    GuardFunc[T]    // nil = Always true
	Negate   bool            // Invert guard result
}

// Action represents a side-effect
type Action[T any] struct {
	Name string
	Func ActionFunc[T]
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect; an error aborts the transition chain
type ActionFunc[T any] func(ctx T) error
