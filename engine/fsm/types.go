package fsm

// StateID is a unique identifier for a node
type StateID int

// EventID identifies an external trigger routed through HandleEvent
type EventID int

const (
	StateNone StateID = 0
	EventNone EventID = 0
)

// Machine is a generic flat Finite State Machine runtime
// T is the context type passed to actions and guards (e.g., *engine.Session)
type Machine[T any] struct {
	// Graph Data (Immutable after load)
	nodes       map[StateID]*Node[T]
	stateByName map[string]StateID

	// Configuration
	InitialStateID StateID // Stored during load for Init

	// Runtime State
	activeStateID StateID

	// Dependency Injection
	eventReg  map[string]EventID
	guardReg  map[string]GuardFunc[T]
	actionReg map[string]ActionFunc[T]
}

// Node represents a state in the graph
type Node[T any] struct {
	ID   StateID
	Name string

	// Lifecycle Actions
	OnEnter []Action[T]
	OnExit  []Action[T]

	// Transitions sorted by evaluation priority
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    EventID
	Guard    GuardFunc[T] // nil = Always true
}

// Action represents a side-effect
type Action[T any] struct {
	Name string
	Func ActionFunc[T]
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)
