// Package status holds lock-free game metrics
// The session goroutine caches metric pointers at construction and writes atomics directly;
// renderers read them from any goroutine
package status

import (
	"fmt"
	"sync/atomic"
)

// Metric keys written by the engine
const (
	KeyTicks          = "engine.ticks"
	KeyLaunchFired    = "launch.fired"
	KeyLaunchLanded   = "launch.landed"
	KeyLaunchCollided = "launch.collided"
	KeyLevel          = "level.current"
	KeyState          = "session.state"
	KeyRotation       = "disk.rotation"
	KeyRotationSpeed  = "disk.speed"
	KeyAudioEnabled   = "audio.enabled"
	KeyAudioVolume    = "audio.volume"
)

// Registry is the central metrics facade
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}

// Lines formats every metric as "key=value", ints first, then floats, then bools
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.TotalCount())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s=%d", key, v.Load()))
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		lines = append(lines, fmt.Sprintf("%s=%.3f", key, v.Get()))
	})
	r.Bools.Range(func(key string, v *atomic.Bool) {
		lines = append(lines, fmt.Sprintf("%s=%t", key, v.Load()))
	})
	return lines
}
