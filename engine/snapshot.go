package engine

import "time"

// Snapshot is an immutable per-frame view of a Session for hosts and renderers
type Snapshot struct {
	State       State
	Level       LevelSpec
	Score       int
	BestScore   int
	Placed      int
	Required    int
	Remaining   int
	Pending     Needle
	HasPending  bool
	Launching   bool
	LastOutcome LaunchPhase
	Rotation    float64
	Speed       float64 // Effective rotation speed of the latest tick, 0 while an intermittent level rests
	Needles     []Needle
	PlayTime    time.Duration

	// Geometry for projection
	CenterX      float64
	CenterY      float64
	DiskRadius   float64
	NeedleLength float64
	LaunchRadius float64 // Where a new pending needle waits
	SafeMargin   float64
}
