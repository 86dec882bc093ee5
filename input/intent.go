package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit          // q, Esc, Ctrl+C
	IntentFire          // Space, Enter, j, left click
	IntentTogglePause   // p
	IntentRestart       // r
	IntentToggleMute    // m, Ctrl+S
	IntentToggleMetrics // F1
	IntentResize        // Terminal resize event
	IntentVolumeUp      // +, =
	IntentVolumeDown    // -
)

var intentNames = [...]string{"none", "quit", "fire", "toggle_pause", "restart", "toggle_mute", "toggle_metrics", "resize", "volume_up", "volume_down"}

func (t IntentType) String() string {
	if int(t) < len(intentNames) {
		return intentNames[t]
	}
	return "unknown"
}

// Intent is a parsed player action
type Intent struct {
	Type          IntentType
	Width, Height int // Resize only
}
