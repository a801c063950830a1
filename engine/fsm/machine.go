package fsm

import (
	"fmt"

	"github.com/lixenwraith/vi-stacker/event"
)

// DefaultMaxSettleSteps bounds chained Tick transitions when MaxSettleSteps is unset
const DefaultMaxSettleSteps = 32

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:          make(map[StateID]*Node[T]),
		MaxSettleSteps: DefaultMaxSettleSteps,
		guardReg:       make(map[string]GuardFunc[T]),
		actionReg:      make(map[string]ActionFunc[T]),
	}
}

// RegisterGuard adds a predicate function to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterAction adds a side-effect function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// OnTransition installs an observer called after each completed transition
func (m *Machine[T]) OnTransition(fn func(from, to StateID)) {
	m.onTransition = fn
}

// Init enters the initial state and settles any Tick transitions it enables
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok || m.InitialStateID == StateNone {
		return fmt.Errorf("%w: initial state ID %d not found", ErrInvalidGraph, m.InitialStateID)
	}

	m.activeStateID = m.InitialStateID
	m.activePath = append(m.activePath[:0], node.Path...)

	// Execute OnEnter for the entire chain from Root to Initial
	for _, id := range m.activePath {
		if err := m.runActions(ctx, m.nodes[id], m.nodes[id].OnEnter); err != nil {
			return err
		}
	}
	if m.onTransition != nil {
		m.onTransition(StateNone, m.activeStateID)
	}

	_, err := m.Settle(ctx)
	return err
}

// Settle follows Tick transitions (Event == 0) until none fires
// Returns the number of transitions taken
func (m *Machine[T]) Settle(ctx T) (int, error) {
	if m.activeStateID == StateNone {
		return 0, ErrNotInitialized
	}

	limit := m.MaxSettleSteps
	if limit <= 0 {
		limit = DefaultMaxSettleSteps
	}

	for steps := 0; steps < limit; steps++ {
		fired, err := m.dispatch(ctx, event.EventTick)
		if err != nil || !fired {
			return steps, err
		}
	}
	return limit, fmt.Errorf("%w: still leaving '%s' after %d steps", ErrSettleLimit, m.StateName(), limit)
}

// HandleEvent routes an external event, then settles Tick transitions
// Returns true if the event triggered a transition; unhandled events are ignored
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) (bool, error) {
	if m.activeStateID == StateNone {
		return false, ErrNotInitialized
	}
	if eventType == event.EventTick {
		n, err := m.Settle(ctx)
		return n > 0, err
	}

	fired, err := m.dispatch(ctx, eventType)
	if err != nil || !fired {
		return fired, err
	}
	_, err = m.Settle(ctx)
	return true, err
}

// dispatch takes the first enabled transition for eventType, bubbling Leaf -> Parent -> Root
func (m *Machine[T]) dispatch(ctx T, eventType event.EventType) (bool, error) {
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != eventType {
				continue
			}
			if trans.Guard != nil && trans.Guard(ctx) == trans.Negate {
				continue
			}
			return true, m.transition(ctx, trans.TargetID)
		}
		currID = node.ParentID
	}
	return false, nil
}

// transition performs the state change
// Self-transitions re-run the leaf's exit and enter actions
func (m *Machine[T]) transition(ctx T, targetID StateID) error {
	targetNode, ok := m.nodes[targetID]
	if !ok {
		return fmt.Errorf("%w: transition to unknown state ID %d", ErrInvalidGraph, targetID)
	}

	// Find LCA
	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path

	minLen := min(len(currentPath), len(targetPath))
	for i := 0; i < minLen; i++ {
		if currentPath[i] == targetPath[i] {
			lcaIndex = i
		} else {
			break
		}
	}
	if targetID == m.activeStateID {
		lcaIndex = len(targetPath) - 2
	}

	// Exit Phase: walk UP from current leaf to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		node := m.nodes[currentPath[i]]
		if err := m.runActions(ctx, node, node.OnExit); err != nil {
			return err
		}
	}

	from := m.activeStateID
	m.activeStateID = targetID
	m.activePath = append(m.activePath[:0], targetPath...)

	// Enter Phase: walk DOWN from LCA (exclusive) to target leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		node := m.nodes[targetPath[i]]
		if err := m.runActions(ctx, node, node.OnEnter); err != nil {
			return err
		}
	}

	if m.onTransition != nil {
		m.onTransition(from, targetID)
	}
	return nil
}

func (m *Machine[T]) runActions(ctx T, node *Node[T], actions []Action[T]) error {
	for _, action := range actions {
		if err := action.Func(ctx); err != nil {
			return fmt.Errorf("state '%s' action '%s': %w", node.Name, action.Name, err)
		}
	}
	return nil
}

// StateName returns the active leaf name, empty before Init
func (m *Machine[T]) StateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// NameOf resolves a state ID to its name
func (m *Machine[T]) NameOf(id StateID) string {
	if node, ok := m.nodes[id]; ok {
		return node.Name
	}
	return ""
}
