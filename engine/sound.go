package engine

// SoundPlayer receives audio cues at defined transition points
// Implementations must not block; the session calls them on its own goroutine
type SoundPlayer interface {
	PlayLaunch()
	PlayHit()
	PlayGameOver()
	PlayLevelComplete()
}

// NopSound is a silent SoundPlayer
type NopSound struct{}

func (NopSound) PlayLaunch()        {}
func (NopSound) PlayHit()           {}
func (NopSound) PlayGameOver()      {}
func (NopSound) PlayLevelComplete() {}
