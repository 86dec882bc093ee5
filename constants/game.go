package constants

import (
	"math"
	"time"
)

// Game Loop Timing Constants
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// TickInterval is the rotation clock interval (~60 ticks per second)
	TickInterval = 16 * time.Millisecond

	// MaxCatchUpTicks caps clock ticks processed in one scheduler pass after a stall
	MaxCatchUpTicks = 8
)

// Launch Animation Constants
const (
	// LaunchDuration is the wall-clock time a fired needle takes to reach the disk
	LaunchDuration = 300 * time.Millisecond

	// LaunchSteps is the number of discrete radius interpolation steps per launch
	LaunchSteps = 30
)

// Disk Geometry Constants (world units, center-relative)
const (
	DiskRadius   = 150.0
	NeedleLength = 80.0

	// LaunchOffset is the extra distance beyond the needle tail where a pending needle waits
	LaunchOffset = 100.0

	// FireAngle is the fixed launch direction, straight below the disk
	FireAngle = math.Pi / 2
)

// Placement Rule
const (
	// SafeMargin is the default minimum angular distance between lodged needles (~17°)
	SafeMargin = 0.3
)

// Rotation Constants
const (
	// DegreesPerSpeedUnit converts a level's rotation speed to degrees per tick
	DegreesPerSpeedUnit = 2.0

	// VariableSpeedPeriodTicks is how often a variable-speed level resamples its speed (~1s)
	VariableSpeedPeriodTicks = 60

	// VariableSpeedMin and VariableSpeedMax bound the speed multiplier on variable levels
	VariableSpeedMin = 0.5
	VariableSpeedMax = 2.0

	// IntermittentPeriodTicks is the move/stop half-period on intermittent levels (~500ms)
	IntermittentPeriodTicks = 30
)

// Scoring Constants
const (
	ScorePerNeedle = 10
	LevelBonus     = 50
)
