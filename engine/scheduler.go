package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/needle-insert/constants"
	"github.com/lixenwraith/needle-insert/core"
)

type commandKind uint8

const (
	cmdInit commandKind = iota + 1
	cmdFire
	cmdPause
	cmdResume
	cmdTogglePause
	cmdRestart
	cmdResize
)

type command struct {
	kind          commandKind
	width, height int
}

// mailboxSize bounds queued player input; overflow is dropped like any ignored input
const mailboxSize = 64

// SchedulerConfig sets the cadence of the two cooperative activities
type SchedulerConfig struct {
	TickInterval    time.Duration // Rotation clock period
	LaunchDuration  time.Duration // Total launch animation time
	LaunchSteps     int           // Interpolation steps per launch
	MaxCatchUpTicks int           // Tick debt cap after a stall
	PollInterval    time.Duration // Wake-up period of the run loop
}

// DefaultSchedulerConfig returns the reference cadence
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		TickInterval:    constants.TickInterval,
		LaunchDuration:  constants.LaunchDuration,
		LaunchSteps:     constants.LaunchSteps,
		MaxCatchUpTicks: constants.MaxCatchUpTicks,
		PollInterval:    constants.LaunchDuration / constants.LaunchSteps,
	}
}

// Scheduler is the single owner of a Session
// Player commands arrive through a mailbox and time is converted into rotation ticks and
// launch steps on one goroutine, so session state needs no locks
// Readers get immutable snapshots through an atomic pointer
type Scheduler struct {
	session *Session
	clock   TimeProvider

	// Cadence
	tickInterval time.Duration
	stepInterval time.Duration
	pollInterval time.Duration
	maxCatchUp   int

	// Time debt, owned by the loop goroutine
	tickDebt time.Duration
	stepDebt time.Duration
	lastTime time.Time

	mailbox  chan command
	snapshot atomic.Pointer[Snapshot]

	// Control
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewScheduler wraps a session; the scheduler must be its only caller from now on
func NewScheduler(session *Session, clock TimeProvider, cfg SchedulerConfig) *Scheduler {
	def := DefaultSchedulerConfig()
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = def.TickInterval
	}
	if cfg.LaunchDuration <= 0 {
		cfg.LaunchDuration = def.LaunchDuration
	}
	if cfg.LaunchSteps <= 0 {
		cfg.LaunchSteps = def.LaunchSteps
	}
	if cfg.MaxCatchUpTicks <= 0 {
		cfg.MaxCatchUpTicks = def.MaxCatchUpTicks
	}

	stepInterval := cfg.LaunchDuration / time.Duration(cfg.LaunchSteps)
	if stepInterval < time.Millisecond {
		stepInterval = time.Millisecond
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = min(stepInterval, cfg.TickInterval)
	}
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}

	s := &Scheduler{
		session:      session,
		clock:        clock,
		tickInterval: cfg.TickInterval,
		stepInterval: stepInterval,
		pollInterval: cfg.PollInterval,
		maxCatchUp:   cfg.MaxCatchUpTicks,
		mailbox:      make(chan command, mailboxSize),
		stopChan:     make(chan struct{}),
	}
	s.publish()
	return s
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		core.Go(s.loop)
	}
}

// Stop halts the scheduler loop and waits for it to exit
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			close(s.stopChan)
			s.wg.Wait()
		}
	})
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	s.lastTime = s.clock.Now()

	for {
		select {
		case <-s.stopChan:
			return

		case cmd := <-s.mailbox:
			s.handle(cmd)
			s.publish()

		case <-ticker.C:
			s.catchUp()
			s.publish()
		}
	}
}

// catchUp charges the time since the previous pass to the session
func (s *Scheduler) catchUp() {
	now := s.clock.Now()
	s.Advance(now.Sub(s.lastTime))
	s.lastTime = now
}

// handle settles elapsed time before applying cmd, so a launch measures its steps from the fire instant
func (s *Scheduler) handle(cmd command) {
	s.catchUp()
	s.apply(cmd)
}

// Init queues viewport setup and level 1 start
func (s *Scheduler) Init(width, height int) bool {
	return s.send(command{kind: cmdInit, width: width, height: height})
}

// Fire queues the player's fire input
func (s *Scheduler) Fire() bool { return s.send(command{kind: cmdFire}) }

// Pause queues a pause request
func (s *Scheduler) Pause() bool { return s.send(command{kind: cmdPause}) }

// Resume queues a resume request
func (s *Scheduler) Resume() bool { return s.send(command{kind: cmdResume}) }

// TogglePause queues a pause toggle
func (s *Scheduler) TogglePause() bool { return s.send(command{kind: cmdTogglePause}) }

// Restart queues a full session reset
func (s *Scheduler) Restart() bool { return s.send(command{kind: cmdRestart}) }

// Resize queues a viewport change
func (s *Scheduler) Resize(width, height int) bool {
	return s.send(command{kind: cmdResize, width: width, height: height})
}

// send enqueues without blocking; a full mailbox drops the command
func (s *Scheduler) send(cmd command) bool {
	select {
	case s.mailbox <- cmd:
		return true
	default:
		return false
	}
}

// Pump applies every queued command synchronously
// For hosts that drive the scheduler from their own frame callback instead of Start;
// such hosts call Advance with the time elapsed before Pump first
func (s *Scheduler) Pump() {
	for {
		select {
		case cmd := <-s.mailbox:
			s.apply(cmd)
		default:
			s.publish()
			return
		}
	}
}

func (s *Scheduler) apply(cmd command) {
	switch cmd.kind {
	case cmdInit:
		s.session.Init(cmd.width, cmd.height)
	case cmdFire:
		if s.session.Fire() {
			s.stepDebt = 0
		}
	case cmdPause:
		s.session.Pause()
	case cmdResume:
		s.session.Resume()
	case cmdTogglePause:
		s.session.TogglePause()
	case cmdRestart:
		s.session.Restart()
	case cmdResize:
		// A session still waiting for a usable viewport starts on the first real size
		if s.session.State() == StateReady {
			s.session.Init(cmd.width, cmd.height)
		} else {
			s.session.Resize(cmd.width, cmd.height)
		}
	}
}

// Advance converts elapsed game time into clock ticks and launch steps, oldest due first
// Time spent outside Playing is discarded, so pause contributes no rotation
// Must only be called by the owning goroutine
func (s *Scheduler) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if s.session.State() != StatePlaying {
		s.tickDebt, s.stepDebt = 0, 0
		return
	}

	s.tickDebt += dt
	if maxDebt := time.Duration(s.maxCatchUp) * s.tickInterval; s.tickDebt > maxDebt {
		s.tickDebt = maxDebt
	}
	if s.session.Launching() {
		s.stepDebt += dt
	} else {
		s.stepDebt = 0
	}

	for {
		stepDue := s.session.Launching() && s.stepDebt >= s.stepInterval
		tickDue := s.tickDebt >= s.tickInterval
		if !stepDue && !tickDue {
			return
		}

		// Larger remaining debt means the event fell due earlier
		if stepDue && (!tickDue || s.stepDebt >= s.tickDebt) {
			s.stepDebt -= s.stepInterval
			s.session.StepLaunch()
		} else {
			s.tickDebt -= s.tickInterval
			s.session.Tick()
		}

		if s.session.State() != StatePlaying {
			s.tickDebt, s.stepDebt = 0, 0
			return
		}
		if !s.session.Launching() {
			s.stepDebt = 0
		}
	}
}

func (s *Scheduler) publish() {
	snap := s.session.Snapshot()
	s.snapshot.Store(&snap)
}

// Snapshot returns the latest published state; safe from any goroutine
func (s *Scheduler) Snapshot() Snapshot {
	return *s.snapshot.Load()
}
