package fsm

import "fmt"

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:       make(map[StateID]*Node[T]),
		stateByName: make(map[string]StateID),
		eventReg:    make(map[string]EventID),
		guardReg:    make(map[string]GuardFunc[T]),
		actionReg:   make(map[string]ActionFunc[T]),
	}
}

// RegisterEvent binds a trigger name used in config to an event ID
func (m *Machine[T]) RegisterEvent(name string, id EventID) {
	m.eventReg[name] = id
}

// RegisterGuard adds a predicate function to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterAction adds a side-effect function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// Init enters the initial state, running its OnEnter actions
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", m.InitialStateID)
	}

	m.activeStateID = node.ID
	for _, action := range node.OnEnter {
		action.Func(ctx)
	}
	return nil
}

// HandleEvent routes an external event through the active state
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, event EventID) bool {
	if m.activeStateID == StateNone || event == EventNone {
		return false
	}

	node := m.nodes[m.activeStateID]
	for _, trans := range node.Transitions {
		if trans.Event != event {
			continue
		}
		if trans.Guard == nil || trans.Guard(ctx) {
			m.transition(ctx, trans.TargetID)
			return true
		}
	}
	return false
}

// transition performs state change, self-transitions re-run exit and enter
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}

	if current, ok := m.nodes[m.activeStateID]; ok {
		for _, action := range current.OnExit {
			action.Func(ctx)
		}
	}

	m.activeStateID = targetID

	for _, action := range targetNode.OnEnter {
		action.Func(ctx)
	}
}

// ActiveStateID returns the current state, StateNone before Init
func (m *Machine[T]) ActiveStateID() StateID {
	return m.activeStateID
}

// ActiveStateName returns the current state name, empty before Init
func (m *Machine[T]) ActiveStateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// StateIDByName resolves a configured state name
func (m *Machine[T]) StateIDByName(name string) (StateID, bool) {
	id, ok := m.stateByName[name]
	return id, ok
}
