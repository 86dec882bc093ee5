package engine

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// LaunchPhase is the firing animation state
type LaunchPhase uint8

const (
	LaunchIdle      LaunchPhase = iota // Aiming, fire accepted
	LaunchLaunching                    // Needle in flight, fire ignored
	LaunchLanded                       // Lodged successfully
	LaunchCollided                     // Hit a lodged needle
)

var phaseNames = [...]string{"idle", "launching", "landed", "collided"}

func (p LaunchPhase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Launch interpolates a fired needle's radius toward the disk in fixed equal steps
// Time is measured in steps so callers decide the per-step delay
type Launch struct {
	tween  *gween.Tween
	start  float64
	target float64
	steps  int
	step   int
	radius float64
}

// NewLaunch starts an animation from start to target over steps steps
func NewLaunch(start, target float64, steps int) *Launch {
	if steps < 1 {
		steps = 1
	}
	return &Launch{
		tween:  gween.New(float32(start), float32(target), float32(steps), ease.Linear),
		start:  start,
		target: target,
		steps:  steps,
		radius: start,
	}
}

// Step advances one interpolation step; done is true once the needle reached target
func (l *Launch) Step() (radius float64, done bool) {
	if l.step >= l.steps {
		return l.target, true
	}

	l.step++
	val, finished := l.tween.Update(1)
	if finished || l.step >= l.steps {
		l.radius = l.target
		return l.radius, true
	}

	l.radius = float64(val)
	return l.radius, false
}

// Progress returns completed steps and total steps
func (l *Launch) Progress() (step, steps int) {
	return l.step, l.steps
}
