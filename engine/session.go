package engine

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/needle-insert/constants"
	"github.com/lixenwraith/needle-insert/engine/fsm"
	"github.com/lixenwraith/needle-insert/status"
)

// State is the top-level session state
type State uint8

const (
	StateReady State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

var stateNames = [...]string{"Ready", "Playing", "Paused", "GameOver"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// Session FSM triggers
const (
	EventStart fsm.EventID = iota + 1
	EventPause
	EventResume
	EventCollide
	EventRestart
)

// sessionGraph is the top-level state machine; restart is a self-transition from Playing
// Ready has no Restart edge, and Start waits for a usable viewport
const sessionGraph = `
initial = "Ready"

[states.Ready]
on_enter = ["publish_state"]
transitions = [
	{ trigger = "Start", target = "Playing", guard = "has_viewport" },
]

[states.Playing]
on_enter = ["publish_state"]
transitions = [
	{ trigger = "Pause", target = "Paused" },
	{ trigger = "Collide", target = "GameOver" },
	{ trigger = "Restart", target = "Playing" },
]

[states.Paused]
on_enter = ["publish_state", "log_pause"]
on_exit = ["log_resume"]
transitions = [
	{ trigger = "Resume", target = "Playing" },
	{ trigger = "Restart", target = "Playing" },
]

[states.GameOver]
on_enter = ["publish_state", "game_over"]
transitions = [
	{ trigger = "Restart", target = "Playing" },
]
`

// Options configures a Session; zero fields fall back to DefaultOptions
// A zero FireAngle means straight down; pass 2π to fire along angle 0
type Options struct {
	SafeMargin   float64
	TickInterval time.Duration
	LaunchSteps  int
	DiskRadius   float64
	NeedleLength float64
	LaunchOffset float64
	FireAngle    float64
	Seed         int64

	Sound   SoundPlayer
	Metrics *status.Registry
}

// DefaultOptions returns the reference tuning
func DefaultOptions() Options {
	return Options{
		SafeMargin:   constants.SafeMargin,
		TickInterval: constants.TickInterval,
		LaunchSteps:  constants.LaunchSteps,
		DiskRadius:   constants.DiskRadius,
		NeedleLength: constants.NeedleLength,
		LaunchOffset: constants.LaunchOffset,
		FireAngle:    constants.FireAngle,
		Seed:         1,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SafeMargin <= 0 {
		o.SafeMargin = d.SafeMargin
	}
	if o.TickInterval <= 0 {
		o.TickInterval = d.TickInterval
	}
	if o.LaunchSteps <= 0 {
		o.LaunchSteps = d.LaunchSteps
	}
	if o.DiskRadius <= 0 {
		o.DiskRadius = d.DiskRadius
	}
	if o.NeedleLength <= 0 {
		o.NeedleLength = d.NeedleLength
	}
	if o.LaunchOffset <= 0 {
		o.LaunchOffset = d.LaunchOffset
	}
	if o.FireAngle == 0 {
		o.FireAngle = d.FireAngle
	}
	if o.Sound == nil {
		o.Sound = NopSound{}
	}
	if o.Metrics == nil {
		o.Metrics = status.NewRegistry()
	}
	return o
}

// Session owns all game state: level, score, lodged needles, pending needle and launch
// Not safe for concurrent use; drive it from a single goroutine (see Scheduler)
type Session struct {
	opts    Options
	machine *fsm.Machine[*Session]
	state   State

	level       LevelSpec
	score       int
	best        int
	placedCount int
	placed      *PlacedSet
	pending     Needle
	hasPending  bool
	launch      *Launch
	lastOutcome LaunchPhase
	clock       *RotationClock
	nextID      int
	playTime    time.Duration

	centerX, centerY float64

	// Cached metric pointers
	statTicks    *atomic.Int64
	statFired    *atomic.Int64
	statLanded   *atomic.Int64
	statCollided *atomic.Int64
	statLevel    *atomic.Int64
	statState    *atomic.Int64
	statRotation *status.AtomicFloat
	statSpeed    *status.AtomicFloat

	// FSM node to typed state, resolved after the graph loads
	states map[fsm.StateID]State
}

// NewSession creates a session in the Ready state
func NewSession(opts Options) (*Session, error) {
	opts = opts.withDefaults()

	s := &Session{
		opts:   opts,
		level:  LevelFor(1),
		placed: NewPlacedSet(LevelFor(1).NeedleCount),
		clock:  NewRotationClock(opts.Seed),

		statTicks:    opts.Metrics.Ints.Get(status.KeyTicks),
		statFired:    opts.Metrics.Ints.Get(status.KeyLaunchFired),
		statLanded:   opts.Metrics.Ints.Get(status.KeyLaunchLanded),
		statCollided: opts.Metrics.Ints.Get(status.KeyLaunchCollided),
		statLevel:    opts.Metrics.Ints.Get(status.KeyLevel),
		statState:    opts.Metrics.Ints.Get(status.KeyState),
		statRotation: opts.Metrics.Floats.Get(status.KeyRotation),
		statSpeed:    opts.Metrics.Floats.Get(status.KeyRotationSpeed),
	}

	m := fsm.NewMachine[*Session]()
	m.RegisterEvent("Start", EventStart)
	m.RegisterEvent("Pause", EventPause)
	m.RegisterEvent("Resume", EventResume)
	m.RegisterEvent("Collide", EventCollide)
	m.RegisterEvent("Restart", EventRestart)
	m.RegisterGuard("has_viewport", func(s *Session) bool { return s.centerX > 0 && s.centerY > 0 })
	m.RegisterAction("publish_state", (*Session).publishState)
	m.RegisterAction("game_over", (*Session).enterGameOver)
	m.RegisterAction("log_pause", func(s *Session) { log.Printf("session paused at level %d", s.level.Number) })
	m.RegisterAction("log_resume", func(s *Session) { log.Printf("session resumed at level %d", s.level.Number) })

	if err := m.LoadConfig([]byte(sessionGraph)); err != nil {
		return nil, fmt.Errorf("failed to load session FSM: %w", err)
	}
	s.machine = m

	s.states = make(map[fsm.StateID]State, len(stateNames))
	for i, name := range stateNames {
		id, ok := m.StateIDByName(name)
		if !ok {
			return nil, fmt.Errorf("session FSM lacks state %q", name)
		}
		s.states[id] = State(i)
	}

	if err := m.Init(s); err != nil {
		return nil, fmt.Errorf("failed to init session FSM: %w", err)
	}

	return s, nil
}

// publishState mirrors the active FSM node into the typed state
func (s *Session) publishState() {
	s.state = s.states[s.machine.ActiveStateID()]
	s.statState.Store(int64(s.state))
}

func (s *Session) enterGameOver() {
	s.hasPending = false
	s.launch = nil
	if s.score > s.best {
		s.best = s.score
	}
	s.opts.Sound.PlayGameOver()
	log.Printf("game over: level %d, score %d, %d/%d needles", s.level.Number, s.score, s.placedCount, s.level.NeedleCount)
}

// Init computes the disk center from the viewport and starts level 1
// Only accepted in Ready; an empty viewport leaves the session in Ready so Init can be retried
// Later viewport changes go through Resize
func (s *Session) Init(width, height int) bool {
	if s.state != StateReady {
		return false
	}
	s.Resize(width, height)
	if !s.machine.HandleEvent(s, EventStart) {
		return false
	}
	s.resetRun()
	return true
}

// Resize recomputes the disk center without touching game state
func (s *Session) Resize(width, height int) {
	s.centerX = float64(width) / 2
	s.centerY = float64(height) / 2
}

// Fire launches the pending needle; ignored unless Playing and idle
// Returns true if a launch started
func (s *Session) Fire() bool {
	if s.state != StatePlaying || s.launch != nil || !s.hasPending {
		return false
	}

	s.launch = NewLaunch(s.pending.Radius, s.opts.DiskRadius, s.opts.LaunchSteps)
	s.lastOutcome = LaunchLaunching
	s.statFired.Add(1)
	s.opts.Sound.PlayLaunch()
	return true
}

// StepLaunch advances the in-flight needle by one interpolation step
// Frozen while paused; on the last step the frozen candidate angle is checked
// against the current, rotated, lodged set
func (s *Session) StepLaunch() LaunchPhase {
	if s.launch == nil {
		return LaunchIdle
	}
	if s.state != StatePlaying {
		return LaunchLaunching
	}

	radius, done := s.launch.Step()
	s.pending = s.pending.WithRadius(radius)
	if !done {
		return LaunchLaunching
	}

	s.launch = nil
	if !CanPlace(s.pending.Angle, s.placed.View(), s.opts.SafeMargin) {
		s.lastOutcome = LaunchCollided
		s.statCollided.Add(1)
		s.machine.HandleEvent(s, EventCollide)
		return LaunchCollided
	}

	s.placed.Add(s.pending.Lodged(s.opts.DiskRadius))
	s.hasPending = false
	s.placedCount++
	s.score += constants.ScorePerNeedle
	s.lastOutcome = LaunchLanded
	s.statLanded.Add(1)
	s.opts.Sound.PlayHit()

	if s.placedCount >= s.level.NeedleCount {
		s.completeLevel()
	} else {
		s.spawnPending()
	}
	return LaunchLanded
}

// Tick advances the rotation clock once; ignored unless Playing
// Returns the applied delta in radians
func (s *Session) Tick() float64 {
	if s.state != StatePlaying {
		return 0
	}

	delta := s.clock.Tick(s.placed)
	s.playTime += s.opts.TickInterval
	s.statTicks.Add(1)
	s.statRotation.Set(s.clock.Rotation())
	s.statSpeed.Set(s.clock.Speed())
	return delta
}

// Pause suspends rotation and any in-flight launch
func (s *Session) Pause() bool {
	return s.machine.HandleEvent(s, EventPause)
}

// Resume continues from the accumulated rotation and launch step
func (s *Session) Resume() bool {
	return s.machine.HandleEvent(s, EventResume)
}

// TogglePause flips between Playing and Paused
func (s *Session) TogglePause() bool {
	switch s.state {
	case StatePlaying:
		return s.Pause()
	case StatePaused:
		return s.Resume()
	}
	return false
}

// Restart resets score, level, needles and rotation, then re-enters Playing
// Ignored before Init
func (s *Session) Restart() bool {
	if !s.machine.HandleEvent(s, EventRestart) {
		return false
	}
	s.resetRun()
	log.Printf("session restarted")
	return true
}

func (s *Session) resetRun() {
	if s.score > s.best {
		s.best = s.score
	}
	s.level = LevelFor(1)
	s.score = 0
	s.placedCount = 0
	s.placed.Clear()
	s.launch = nil
	s.lastOutcome = LaunchIdle
	s.playTime = 0
	s.nextID = 0
	s.clock.Reset(s.level)
	s.statLevel.Store(int64(s.level.Number))
	s.statRotation.Set(0)
	s.statSpeed.Set(s.clock.Speed())
	s.spawnPending()
}

func (s *Session) completeLevel() {
	finished := s.level.Number
	s.opts.Sound.PlayLevelComplete()

	s.level = LevelFor(finished + 1)
	s.score += constants.LevelBonus
	s.placedCount = 0
	s.placed.Clear()
	s.nextID = 0
	s.clock.SetLevel(s.level)
	s.statLevel.Store(int64(s.level.Number))
	s.spawnPending()

	log.Printf("level %d complete, entering level %d (%d needles, speed %.1f, %s)",
		finished, s.level.Number, s.level.NeedleCount, s.level.RotationSpeed, s.level.Kind)
}

func (s *Session) spawnPending() {
	s.nextID++
	s.pending = Needle{
		ID:     s.nextID,
		Angle:  s.opts.FireAngle,
		Radius: s.launchRadius(),
	}
	s.hasPending = true
}

func (s *Session) launchRadius() float64 {
	return s.opts.DiskRadius + s.opts.NeedleLength + s.opts.LaunchOffset
}

// State returns the current session state
func (s *Session) State() State {
	return s.state
}

// Launching reports whether a needle is in flight
func (s *Session) Launching() bool {
	return s.launch != nil
}

// Score returns the current score
func (s *Session) Score() int {
	return s.score
}

// Level returns the current level spec
func (s *Session) Level() LevelSpec {
	return s.level
}

// Snapshot captures the observable state for a host frame
func (s *Session) Snapshot() Snapshot {
	best := s.best
	if s.score > best {
		best = s.score
	}
	return Snapshot{
		State:        s.state,
		Level:        s.level,
		Score:        s.score,
		BestScore:    best,
		Placed:       s.placedCount,
		Required:     s.level.NeedleCount,
		Remaining:    s.level.NeedleCount - s.placedCount,
		Pending:      s.pending,
		HasPending:   s.hasPending,
		Launching:    s.launch != nil,
		LastOutcome:  s.lastOutcome,
		Rotation:     s.clock.Rotation(),
		Speed:        s.clock.Speed(),
		Needles:      s.placed.Needles(),
		PlayTime:     s.playTime,
		CenterX:      s.centerX,
		CenterY:      s.centerY,
		DiskRadius:   s.opts.DiskRadius,
		NeedleLength: s.opts.NeedleLength,
		LaunchRadius: s.launchRadius(),
		SafeMargin:   s.opts.SafeMargin,
	}
}
