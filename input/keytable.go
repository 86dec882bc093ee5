package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, Enter, Esc, function keys)
	SpecialKeys map[tcell.Key]IntentType

	// Printable rune bindings, matched case-insensitively
	Runes map[rune]IntentType

	// Runes reported with the Ctrl modifier instead of a dedicated control key
	CtrlRunes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
			tcell.KeyEscape: IntentQuit,
			tcell.KeyEnter:  IntentFire,
			tcell.KeyCtrlS:  IntentToggleMute,
			tcell.KeyF1:     IntentToggleMetrics,
		},
		Runes: map[rune]IntentType{
			' ': IntentFire,
			'j': IntentFire,
			'p': IntentTogglePause,
			'r': IntentRestart,
			'm': IntentToggleMute,
			'q': IntentQuit,
			'+': IntentVolumeUp,
			'=': IntentVolumeUp,
			'-': IntentVolumeDown,
		},
		CtrlRunes: map[rune]IntentType{
			'c': IntentQuit,
			'q': IntentQuit,
			's': IntentToggleMute,
		},
	}
}
