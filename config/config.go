// Package config loads the game's TOML configuration file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lixenwraith/needle-insert/audio"
	"github.com/lixenwraith/needle-insert/constants"
	"github.com/lixenwraith/needle-insert/engine"
)

// DefaultPath is the config file looked up when no -config flag is given
const DefaultPath = "needle-insert.toml"

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Config is the on-disk configuration
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Audio   AudioConfig   `toml:"audio"`
	Display DisplayConfig `toml:"display"`
}

// EngineConfig tunes the game rules and timing
type EngineConfig struct {
	SafeMargin   float64 `toml:"safe_margin"` // Radians
	TickMS       int     `toml:"tick_ms"`
	LaunchMS     int     `toml:"launch_ms"`
	LaunchSteps  int     `toml:"launch_steps"`
	DiskRadius   float64 `toml:"disk_radius"`
	NeedleLength float64 `toml:"needle_length"`
	LaunchOffset float64 `toml:"launch_offset"`
	Seed         int64   `toml:"seed"` // Variable-speed levels; 0 picks a time-based seed
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

type DisplayConfig struct {
	Color       bool `toml:"color"`
	ShowMetrics bool `toml:"show_metrics"`
}

// Default returns the reference configuration
func Default() Config {
	return Config{
		Engine: EngineConfig{
			SafeMargin:   constants.SafeMargin,
			TickMS:       int(constants.TickInterval / time.Millisecond),
			LaunchMS:     int(constants.LaunchDuration / time.Millisecond),
			LaunchSteps:  constants.LaunchSteps,
			DiskRadius:   constants.DiskRadius,
			NeedleLength: constants.NeedleLength,
			LaunchOffset: constants.LaunchOffset,
			Seed:         1,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  constants.DefaultVolume,
		},
		Display: DisplayConfig{
			Color: true,
		},
	}
}

// Load reads path over the defaults
// A missing file is not an error; unknown keys are
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges of every field
func (c Config) Validate() error {
	e := c.Engine
	switch {
	case !(e.SafeMargin > 0 && e.SafeMargin < math.Pi):
		return fmt.Errorf("%w: engine.safe_margin %v must be in (0, π)", ErrInvalid, e.SafeMargin)
	case e.TickMS <= 0:
		return fmt.Errorf("%w: engine.tick_ms %d must be positive", ErrInvalid, e.TickMS)
	case e.LaunchSteps < 1:
		return fmt.Errorf("%w: engine.launch_steps %d must be at least 1", ErrInvalid, e.LaunchSteps)
	case e.LaunchMS < e.LaunchSteps:
		return fmt.Errorf("%w: engine.launch_ms %d must allow at least 1ms per step", ErrInvalid, e.LaunchMS)
	case e.DiskRadius <= 0:
		return fmt.Errorf("%w: engine.disk_radius %v must be positive", ErrInvalid, e.DiskRadius)
	case e.NeedleLength <= 0:
		return fmt.Errorf("%w: engine.needle_length %v must be positive", ErrInvalid, e.NeedleLength)
	case e.LaunchOffset <= 0:
		return fmt.Errorf("%w: engine.launch_offset %v must be positive", ErrInvalid, e.LaunchOffset)
	}

	if v := c.Audio.Volume; v < 0 || v > 1 {
		return fmt.Errorf("%w: audio.volume %v must be in [0, 1]", ErrInvalid, v)
	}
	return nil
}

// Write encodes c to path, creating parent directories
func (c Config) Write(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return f.Close()
}

// WriteDefault writes the reference configuration to path
func WriteDefault(path string) error {
	return Default().Write(path)
}

// TickInterval returns the rotation clock period
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.Engine.TickMS) * time.Millisecond
}

// LaunchDuration returns the total launch animation time
func (c Config) LaunchDuration() time.Duration {
	return time.Duration(c.Engine.LaunchMS) * time.Millisecond
}

// SessionOptions converts the engine section; sound and metrics are wired by the caller
func (c Config) SessionOptions() engine.Options {
	opts := engine.DefaultOptions()
	opts.SafeMargin = c.Engine.SafeMargin
	opts.TickInterval = c.TickInterval()
	opts.LaunchSteps = c.Engine.LaunchSteps
	opts.DiskRadius = c.Engine.DiskRadius
	opts.NeedleLength = c.Engine.NeedleLength
	opts.LaunchOffset = c.Engine.LaunchOffset
	opts.Seed = c.Engine.Seed
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return opts
}

// SchedulerConfig converts the timing fields
func (c Config) SchedulerConfig() engine.SchedulerConfig {
	sc := engine.DefaultSchedulerConfig()
	sc.TickInterval = c.TickInterval()
	sc.LaunchDuration = c.LaunchDuration()
	sc.LaunchSteps = c.Engine.LaunchSteps
	sc.PollInterval = 0
	return sc
}

// AudioSettings converts the audio section
func (c Config) AudioSettings() audio.Config {
	return audio.Config{
		Enabled: c.Audio.Enabled,
		Volume:  c.Audio.Volume,
	}
}
