package fsm

import (
	"strings"
	"testing"
)

const (
	evGo EventID = iota + 1
	evStop
	evBlocked
)

type recorder struct {
	log   []string
	allow bool
}

const doorGraph = `
initial = "Closed"

[states.Closed]
on_enter = ["enter_closed"]
on_exit = ["exit_closed"]
transitions = [
	{ trigger = "Go", target = "Open" },
	{ trigger = "Blocked", target = "Open", guard = "allowed" },
]

[states.Open]
on_enter = ["enter_open"]
transitions = [
	{ trigger = "Stop", target = "Closed" },
	{ trigger = "Go", target = "Open" },
]
`

func newDoorMachine(t *testing.T) *Machine[*recorder] {
	t.Helper()
	m := NewMachine[*recorder]()
	m.RegisterEvent("Go", evGo)
	m.RegisterEvent("Stop", evStop)
	m.RegisterEvent("Blocked", evBlocked)
	m.RegisterGuard("allowed", func(r *recorder) bool { return r.allow })
	m.RegisterAction("enter_closed", func(r *recorder) { r.log = append(r.log, "+closed") })
	m.RegisterAction("exit_closed", func(r *recorder) { r.log = append(r.log, "-closed") })
	m.RegisterAction("enter_open", func(r *recorder) { r.log = append(r.log, "+open") })
	if err := m.LoadConfig([]byte(doorGraph)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	return m
}

func TestMachineInitRunsOnEnter(t *testing.T) {
	m := newDoorMachine(t)
	r := &recorder{}

	if m.ActiveStateID() != StateNone {
		t.Fatal("Expected no active state before Init")
	}
	if err := m.Init(r); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if got := m.ActiveStateName(); got != "Closed" {
		t.Errorf("Expected Closed, got %q", got)
	}
	if strings.Join(r.log, ",") != "+closed" {
		t.Errorf("Unexpected action log: %v", r.log)
	}
}

func TestMachineTransitions(t *testing.T) {
	m := newDoorMachine(t)
	r := &recorder{}
	_ = m.Init(r)

	if !m.HandleEvent(r, evGo) {
		t.Fatal("Go should transition from Closed")
	}
	if m.ActiveStateName() != "Open" {
		t.Errorf("Expected Open, got %q", m.ActiveStateName())
	}

	// Unhandled event in current state is ignored
	if m.HandleEvent(r, evBlocked) {
		t.Error("Blocked has no transition from Open")
	}

	if !m.HandleEvent(r, evStop) {
		t.Fatal("Stop should transition from Open")
	}

	want := "+closed,-closed,+open,+closed"
	if got := strings.Join(r.log, ","); got != want {
		t.Errorf("Action log = %q, want %q", got, want)
	}
}

func TestMachineSelfTransitionReentersState(t *testing.T) {
	m := newDoorMachine(t)
	r := &recorder{}
	_ = m.Init(r)
	m.HandleEvent(r, evGo)
	r.log = nil

	if !m.HandleEvent(r, evGo) {
		t.Fatal("Self transition should be reported")
	}
	if strings.Join(r.log, ",") != "+open" {
		t.Errorf("Expected re-entry of Open, got %v", r.log)
	}
}

func TestMachineGuard(t *testing.T) {
	m := newDoorMachine(t)
	r := &recorder{}
	_ = m.Init(r)

	if m.HandleEvent(r, evBlocked) {
		t.Error("Guard should reject while allow=false")
	}
	if m.ActiveStateName() != "Closed" {
		t.Error("Rejected guard must not change state")
	}

	r.allow = true
	if !m.HandleEvent(r, evBlocked) {
		t.Error("Guard should accept while allow=true")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		graph string
		want  string
	}{
		{"empty", ``, "no states"},
		{"bad toml", `initial = `, "unmarshal"},
		{"unknown initial", "initial = \"Nope\"\n[states.A]\n", "initial state"},
		{"unknown action", "initial = \"A\"\n[states.A]\non_enter = [\"missing\"]\n", "unknown action"},
		{"unknown trigger", "initial = \"A\"\n[states.A]\ntransitions = [{ trigger = \"Nope\", target = \"A\" }]\n", "unknown trigger"},
		{"unknown target", "initial = \"A\"\n[states.A]\ntransitions = [{ trigger = \"Go\", target = \"B\" }]\n", "unknown target"},
		{"unknown guard", "initial = \"A\"\n[states.A]\ntransitions = [{ trigger = \"Go\", target = \"A\", guard = \"g\" }]\n", "unknown guard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine[*recorder]()
			m.RegisterEvent("Go", evGo)
			err := m.LoadConfig([]byte(tt.graph))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Error %q does not mention %q", err, tt.want)
			}
		})
	}
}
