package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Machine parses tcell events into Intents
// Not safe for concurrent use; feed it from the event goroutine
type Machine struct {
	keyTable *KeyTable

	// Mouse buttons held at the previous mouse event, for press edge detection
	buttons tcell.ButtonMask
}

// NewMachine creates a new input machine with the default key table
func NewMachine() *Machine {
	return NewMachineWithTable(DefaultKeyTable())
}

// NewMachineWithTable creates an input machine with custom bindings
func NewMachineWithTable(table *KeyTable) *Machine {
	return &Machine{keyTable: table}
}

// Process maps one terminal event to an intent; unbound input yields IntentNone
func (m *Machine) Process(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return Intent{Type: m.processKey(ev.Key(), ev.Rune(), ev.Modifiers())}

	case *tcell.EventMouse:
		held := ev.Buttons()
		pressed := held &^ m.buttons
		m.buttons = held
		if pressed&tcell.Button1 != 0 {
			return Intent{Type: IntentFire}
		}

	case *tcell.EventResize:
		w, h := ev.Size()
		return Intent{Type: IntentResize, Width: w, Height: h}
	}

	return Intent{Type: IntentNone}
}

func (m *Machine) processKey(key tcell.Key, r rune, mod tcell.ModMask) IntentType {
	if key == tcell.KeyRune {
		r = unicode.ToLower(r)
		if mod&tcell.ModCtrl != 0 {
			return m.keyTable.CtrlRunes[r]
		}
		return m.keyTable.Runes[r]
	}
	return m.keyTable.SpecialKeys[key]
}
