package fsm

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

// LoadConfig parses a TOML graph definition and populates the Machine
// Validates all references (states, guards, actions, events)
// Clears existing graph data before loading
// State IDs are assigned in sorted name order starting at 1
func (m *Machine[T]) LoadConfig(data []byte) error {
	var config RootConfig
	if _, err := toml.Decode(string(data), &config); err != nil {
		return fmt.Errorf("failed to unmarshal FSM config: %w", err)
	}

	if len(config.States) == 0 {
		return fmt.Errorf("FSM config defines no states")
	}

	m.nodes = make(map[StateID]*Node[T])
	m.stateByName = make(map[string]StateID)
	m.activeStateID = StateNone

	// Sort keys for deterministic ID generation
	names := make([]string, 0, len(config.States))
	for name := range config.States {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		m.AddState(StateID(i+1), name)
	}

	for _, name := range names {
		sc := config.States[name]
		if sc == nil {
			continue
		}
		node := m.nodes[m.stateByName[name]]

		for _, actionName := range sc.OnEnter {
			action, err := m.compileAction(actionName)
			if err != nil {
				return fmt.Errorf("state '%s' on_enter: %w", name, err)
			}
			node.OnEnter = append(node.OnEnter, action)
		}

		for _, actionName := range sc.OnExit {
			action, err := m.compileAction(actionName)
			if err != nil {
				return fmt.Errorf("state '%s' on_exit: %w", name, err)
			}
			node.OnExit = append(node.OnExit, action)
		}

		for _, tc := range sc.Transitions {
			t, err := m.compileTransition(tc)
			if err != nil {
				return fmt.Errorf("state '%s' transition: %w", name, err)
			}
			node.Transitions = append(node.Transitions, t)
		}
	}

	initial, ok := m.stateByName[config.InitialState]
	if !ok {
		return fmt.Errorf("initial state '%s' not defined", config.InitialState)
	}
	m.InitialStateID = initial

	return nil
}

func (m *Machine[T]) compileAction(name string) (Action[T], error) {
	fn, ok := m.actionReg[name]
	if !ok {
		return Action[T]{}, fmt.Errorf("unknown action '%s'", name)
	}
	return Action[T]{Name: name, Func: fn}, nil
}

func (m *Machine[T]) compileTransition(tc TransitionConfig) (Transition[T], error) {
	eventID, ok := m.eventReg[tc.Trigger]
	if !ok {
		return Transition[T]{}, fmt.Errorf("unknown trigger '%s'", tc.Trigger)
	}

	targetID, ok := m.stateByName[tc.Target]
	if !ok {
		return Transition[T]{}, fmt.Errorf("unknown target '%s'", tc.Target)
	}

	var guard GuardFunc[T]
	if tc.Guard != "" {
		guard, ok = m.guardReg[tc.Guard]
		if !ok {
			return Transition[T]{}, fmt.Errorf("unknown guard '%s'", tc.Guard)
		}
	}

	return Transition[T]{TargetID: targetID, Event: eventID, Guard: guard}, nil
}
