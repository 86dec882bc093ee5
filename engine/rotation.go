package engine

import (
	"math/rand"

	"github.com/lixenwraith/needle-insert/constants"
	"github.com/lixenwraith/needle-insert/vmath"
)

// RotationClock advances the disk one tick at a time and carries lodged needles with it
// The pending needle is never rotated by the clock
type RotationClock struct {
	rotation float64 // Accumulated disk rotation, [0, 2π)
	level    LevelSpec
	speed    float64 // Effective speed units for the current tick window
	ticks    int     // Ticks since the level started
	rng      *rand.Rand
}

// NewRotationClock creates a clock at zero rotation; seed drives variable-speed levels
func NewRotationClock(seed int64) *RotationClock {
	c := &RotationClock{
		rng: rand.New(rand.NewSource(seed)),
	}
	c.SetLevel(LevelFor(1))
	return c
}

// SetLevel switches movement parameters, keeping the accumulated rotation
func (c *RotationClock) SetLevel(level LevelSpec) {
	c.level = level
	c.speed = level.RotationSpeed
	c.ticks = 0
}

// Reset zeroes the accumulated rotation and restarts the level timers
func (c *RotationClock) Reset(level LevelSpec) {
	c.rotation = 0
	c.SetLevel(level)
}

// Rotation returns the accumulated disk rotation in [0, 2π)
func (c *RotationClock) Rotation() float64 {
	return c.rotation
}

// Speed returns the effective speed used by the most recent tick
func (c *RotationClock) Speed() float64 {
	return c.speed
}

// Tick advances one step and applies the same delta to every lodged needle
// Returns the signed delta in radians
func (c *RotationClock) Tick(placed *PlacedSet) float64 {
	c.ticks++

	switch c.level.Kind {
	case KindVariable:
		if c.ticks%constants.VariableSpeedPeriodTicks == 0 {
			span := constants.VariableSpeedMax - constants.VariableSpeedMin
			c.speed = c.level.RotationSpeed * (constants.VariableSpeedMin + c.rng.Float64()*span)
		}
	case KindIntermittent:
		if ((c.ticks-1)/constants.IntermittentPeriodTicks)%2 == 0 {
			c.speed = c.level.RotationSpeed
		} else {
			c.speed = 0
		}
	default:
		c.speed = c.level.RotationSpeed
	}

	delta := vmath.DegToRad(c.speed*constants.DegreesPerSpeedUnit) * c.level.Direction()
	if delta == 0 {
		return 0
	}

	c.rotation = vmath.WrapTurn(c.rotation + delta)
	if placed != nil {
		placed.Rotate(delta)
	}
	return delta
}
