package fsm

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/vi-stacker/event"
)

// LoadConfig parses a YAML byte slice and populates the Machine
// Validates all references (states, guards, actions, events)
// Clears existing graph data before loading
func (m *Machine[T]) LoadConfig(data []byte) error {
	// 1. Decode YAML into intermediate config, rejecting unknown keys
	var config RootConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: failed to unmarshal FSM config: %v", ErrInvalidGraph, err)
	}
	if len(config.States) == 0 {
		return fmt.Errorf("%w: no states defined", ErrInvalidGraph)
	}

	// 2. Clear existing graph
	m.nodes = make(map[StateID]*Node[T])
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]

	// 3. First Pass: Root node and sorted IDs for deterministic numbering
	m.AddState(StateRoot, "Root", StateNone)
	if _, ok := config.States["Root"]; !ok {
		config.States["Root"] = &StateConfig{}
	}

	stateNames := make([]string, 0, len(config.States))
	for name := range config.States {
		if name != "Root" {
			stateNames = append(stateNames, name)
		}
	}
	sort.Strings(stateNames)

	ids := map[string]StateID{"Root": StateRoot}
	for i, name := range stateNames {
		ids[name] = StateID(i + 2)
	}

	// 4. Second Pass: Build Nodes and resolve relationships
	for _, name := range append([]string{"Root"}, stateNames...) {
		cfg := config.States[name]
		if cfg == nil {
			cfg = &StateConfig{}
		}

		node := m.nodes[StateRoot]
		if name != "Root" {
			pName := cfg.Parent
			if pName == "" {
				pName = "Root"
			}
			parentID, ok := ids[pName]
			if !ok {
				return fmt.Errorf("%w: state '%s' references unknown parent '%s'", ErrInvalidGraph, name, pName)
			}
			node = m.AddState(ids[name], name, parentID)
		}

		var err error
		if node.OnEnter, err = m.compileActions(cfg.OnEnter); err != nil {
			return fmt.Errorf("state '%s' on_enter: %w", name, err)
		}
		if node.OnExit, err = m.compileActions(cfg.OnExit); err != nil {
			return fmt.Errorf("state '%s' on_exit: %w", name, err)
		}
		if err := m.compileTransitions(node, cfg.Transitions, ids); err != nil {
			return fmt.Errorf("state '%s' transitions: %w", name, err)
		}
	}

	// 5. Finalize: Compile Paths for LCA
	if err := m.CompilePaths(); err != nil {
		return err
	}

	// 6. Validate Initial State
	initialID, ok := ids[config.InitialState]
	if !ok || initialID == StateRoot {
		return fmt.Errorf("%w: initial state '%s' not found", ErrInvalidGraph, config.InitialState)
	}
	m.InitialStateID = initialID

	return nil
}

func (m *Machine[T]) compileActions(names []string) ([]Action[T], error) {
	actions := make([]Action[T], 0, len(names))
	for _, name := range names {
		fn, ok := m.actionReg[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown action function '%s'", ErrInvalidGraph, name)
		}
		actions = append(actions, Action[T]{Name: name, Func: fn})
	}
	return actions, nil
}

func (m *Machine[T]) compileTransitions(node *Node[T], configs []TransitionConfig, ids map[string]StateID) error {
	for _, cfg := range configs {
		targetID, ok := ids[cfg.Target]
		if !ok || targetID == StateRoot {
			return fmt.Errorf("%w: transition references unknown target '%s'", ErrInvalidGraph, cfg.Target)
		}

		eventType, ok := event.Lookup(cfg.Trigger)
		if !ok {
			return fmt.Errorf("%w: unknown event type '%s'", ErrInvalidGraph, cfg.Trigger)
		}

		var guard GuardFunc[T]
		negate := false
		if cfg.Guard != "" {
			name := cfg.Guard
			if strings.HasPrefix(name, "!") {
				negate = true
				name = name[1:]
			}
			g, ok := m.guardReg[name]
			if !ok {
				return fmt.Errorf("%w: unknown guard '%s'", ErrInvalidGraph, name)
			}
			guard = g
		}

		node.Transitions = append(node.Transitions, Transition[T]{
			TargetID: targetID,
			Event:    eventType,
			Guard:    guard,
			Negate:   negate,
		})
	}
	return nil
}
