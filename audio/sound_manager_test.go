package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
	"github.com/lixenwraith/needle-insert/engine"
	"github.com/lixenwraith/needle-insert/status"
)

var _ engine.SoundPlayer = (*SoundManager)(nil)

// TestSoundManagerGracefulDegradation verifies audio operations don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(DefaultConfig(), nil)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	sm.PlayLaunch()
	sm.PlayHit()
	sm.PlayGameOver()
	sm.PlayLevelComplete()
	sm.SetVolume(0.2)
	sm.Cleanup()
}

// TestSoundManagerInitialization verifies sound manager can be initialized and cleaned up
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(DefaultConfig(), nil)

	// Speaker initialization may fail in environments without audio devices
	if err := sm.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}

	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should succeed as no-op, got error: %v", err)
	}

	sm.PlayLaunch()
	sm.PlayLevelComplete()
	sm.Cleanup()

	// Operations after cleanup must be no-ops
	sm.PlayHit()
	sm.Cleanup()
}

func TestSoundManagerMute(t *testing.T) {
	metrics := status.NewRegistry()
	sm := NewSoundManager(Config{Enabled: false, Volume: 0.5}, metrics)

	if sm.Enabled() {
		t.Error("Expected manager to start muted")
	}
	if metrics.Bools.Get(status.KeyAudioEnabled).Load() {
		t.Error("Metric should report audio disabled")
	}

	if !sm.ToggleEnabled() || !sm.Enabled() {
		t.Error("Toggle should enable audio")
	}
	if !metrics.Bools.Get(status.KeyAudioEnabled).Load() {
		t.Error("Metric should report audio enabled")
	}
}

func TestSoundManagerVolumeClamp(t *testing.T) {
	sm := NewSoundManager(DefaultConfig(), nil)

	tests := []struct {
		in, want float64
		silent   bool
	}{
		{-1, 0, true},
		{0, 0, true},
		{0.25, 0.25, false},
		{4, 1, false},
	}

	for _, tt := range tests {
		sm.SetVolume(tt.in)
		if got := sm.Volume(); got != tt.want {
			t.Errorf("SetVolume(%v): Volume() = %v, want %v", tt.in, got, tt.want)
		}
		if sm.master.Silent != tt.silent {
			t.Errorf("SetVolume(%v): Silent = %v, want %v", tt.in, sm.master.Silent, tt.silent)
		}
	}
}

func TestAdjustVolumeStepsAndPublishes(t *testing.T) {
	metrics := status.NewRegistry()
	sm := NewSoundManager(Config{Enabled: true, Volume: 0.9}, metrics)
	vol := metrics.Floats.Get(status.KeyAudioVolume)

	if got := vol.Get(); got != 0.9 {
		t.Errorf("Initial volume metric = %v, want 0.9", got)
	}
	if got := sm.AdjustVolume(0.5); got != 1 {
		t.Errorf("AdjustVolume(+0.5) = %v, want clamp to 1", got)
	}
	for i := 0; i < 20; i++ {
		sm.AdjustVolume(-0.1)
	}
	if got := sm.Volume(); got != 0 {
		t.Errorf("Volume after stepping down = %v, want 0", got)
	}
	if !sm.master.Silent || vol.Get() != 0 {
		t.Errorf("Expected silent master and zero metric, got Silent=%v metric=%v", sm.master.Silent, vol.Get())
	}
}

// drain streams s to exhaustion and returns the sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0

	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			for _, v := range smp {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("Non-finite sample %v at %d", v, total)
				}
				peak = math.Max(peak, math.Abs(v))
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("Streamer never drained")
	return 0, 0
}

func TestEffectsTerminate(t *testing.T) {
	rate := beep.SampleRate(48000)

	arpeggio, err := CreateLevelCompleteSound(rate)
	if err != nil {
		t.Fatalf("CreateLevelCompleteSound failed: %v", err)
	}

	tests := []struct {
		name     string
		streamer beep.Streamer
	}{
		{"launch", CreateLaunchSound(rate)},
		{"hit", CreateHitSound(rate)},
		{"game_over", CreateGameOverSound(rate)},
		{"level_complete", arpeggio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, peak := drain(t, tt.streamer)
			if n == 0 {
				t.Error("Effect produced no samples")
			}
			if peak == 0 || peak > 1.0 {
				t.Errorf("Peak amplitude %v outside (0, 1]", peak)
			}
		})
	}
}

func TestEnvelopeLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := NewEnvelope(NewSweep(100, 100, 1e9, WaveSine, rate), 1e8, 1e7, 1e7, rate)

	n, _ := drain(t, s)
	if n != 100 {
		t.Errorf("Envelope length = %d samples, want 100", n)
	}
}
