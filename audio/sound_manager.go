package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/needle-insert/constants"
	"github.com/lixenwraith/needle-insert/status"
)

// Config controls the sound manager
type Config struct {
	Enabled bool
	Volume  float64 // Linear master volume in [0, 1]
}

// DefaultConfig returns audio enabled at the default volume
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Volume:  constants.DefaultVolume,
	}
}

// SoundManager plays synthesized game effects through the speaker
// All Play methods are safe to call without a working audio device
type SoundManager struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	master      *effects.Volume
	volume      float64
	initialized bool

	enabled     atomic.Bool
	statEnabled *atomic.Bool
	statVolume  *status.AtomicFloat
}

// NewSoundManager creates a new sound manager; metrics may be nil
func NewSoundManager(cfg Config, metrics *status.Registry) *SoundManager {
	if metrics == nil {
		metrics = status.NewRegistry()
	}

	mixer := &beep.Mixer{}
	sm := &SoundManager{
		rate:        beep.SampleRate(constants.AudioSampleRate),
		mixer:       mixer,
		master:      newVolume(mixer, cfg.Volume),
		volume:      cfg.Volume,
		statEnabled: metrics.Bools.Get(status.KeyAudioEnabled),
		statVolume:  metrics.Floats.Get(status.KeyAudioVolume),
	}
	sm.SetEnabled(cfg.Enabled)
	sm.statVolume.Set(cfg.Volume)
	return sm
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(constants.SpeakerBufferDuration)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	speaker.Play(sm.master)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the audio system
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Clear()
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// SetEnabled mutes or unmutes effects
func (sm *SoundManager) SetEnabled(enabled bool) {
	sm.enabled.Store(enabled)
	sm.statEnabled.Store(enabled)
}

// ToggleEnabled flips mute and returns the new enabled state
func (sm *SoundManager) ToggleEnabled() bool {
	enabled := !sm.enabled.Load()
	sm.SetEnabled(enabled)
	return enabled
}

// Enabled reports whether effects are played
func (sm *SoundManager) Enabled() bool {
	return sm.enabled.Load()
}

// SetVolume sets the linear master volume, clamped to [0, 1]
func (sm *SoundManager) SetVolume(vol float64) {
	vol = max(0, min(vol, 1))

	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.volume = vol
	sm.statVolume.Set(vol)
	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	setVolume(sm.master, vol)
}

// Volume returns the linear master volume
func (sm *SoundManager) Volume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.volume
}

// AdjustVolume shifts the master volume by delta and returns the clamped result
func (sm *SoundManager) AdjustVolume(delta float64) float64 {
	sm.SetVolume(sm.Volume() + delta)
	return sm.Volume()
}

// PlayLaunch plays the fire chirp
func (sm *SoundManager) PlayLaunch() {
	sm.play(func() (beep.Streamer, error) { return CreateLaunchSound(sm.rate), nil })
}

// PlayHit plays the lodge thunk
func (sm *SoundManager) PlayHit() {
	sm.play(func() (beep.Streamer, error) { return CreateHitSound(sm.rate), nil })
}

// PlayGameOver plays the collision buzz
func (sm *SoundManager) PlayGameOver() {
	sm.play(func() (beep.Streamer, error) { return CreateGameOverSound(sm.rate), nil })
}

// PlayLevelComplete plays the level arpeggio
func (sm *SoundManager) PlayLevelComplete() {
	sm.play(func() (beep.Streamer, error) { return CreateLevelCompleteSound(sm.rate) })
}

// play builds the effect lazily so muted or uninitialized managers do no work
func (sm *SoundManager) play(build func() (beep.Streamer, error)) {
	if !sm.enabled.Load() {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	s, err := build()
	if err != nil {
		log.Printf("audio: failed to build effect: %v", err)
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
