package constants

import "time"

// Audio Output
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 48000

	// SpeakerBufferDuration is the speaker buffer length
	SpeakerBufferDuration = 100 * time.Millisecond

	// DefaultVolume is the linear master volume in [0, 1]
	DefaultVolume = 0.5

	// VolumeStep is the master volume change per key press
	VolumeStep = 0.1

	// Attack and release ramps applied to every effect to avoid clicks
	EffectAttack  = 5 * time.Millisecond
	EffectRelease = 20 * time.Millisecond
)

// Effect Durations
const (
	LaunchSoundDuration   = 90 * time.Millisecond
	HitSoundDuration      = 60 * time.Millisecond
	GameOverSoundDuration = 450 * time.Millisecond
	LevelNoteDuration     = 110 * time.Millisecond
)

// Effect Frequencies (Hz)
const (
	LaunchSweepFrom = 300.0
	LaunchSweepTo   = 900.0
	HitFrequency    = 180.0
	GameOverFrom    = 220.0
	GameOverTo      = 70.0
)

// LevelArpeggio is the rising major arpeggio played on level completion
var LevelArpeggio = []float64{523.25, 659.25, 783.99, 1046.50}
