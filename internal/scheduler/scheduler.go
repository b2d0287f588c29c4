// Package scheduler drives an engine.Session in real time.
//
// A single goroutine (Run) owns the session. Fall ticks, player commands and
// resets are all funneled through it, so each one runs to completion before
// the next starts and the session needs no locking.
package scheduler

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/engine"
)

// requestBuffer is how many commands may queue before Send starts dropping.
const requestBuffer = 64

// Cause says what produced a frame.
type Cause int

const (
	CauseStart Cause = iota
	CauseTick
	CauseCommand
	CauseReset
)

// String returns the cause name.
func (c Cause) String() string {
	switch c {
	case CauseStart:
		return "start"
	case CauseTick:
		return "tick"
	case CauseCommand:
		return "command"
	case CauseReset:
		return "reset"
	}
	return "unknown"
}

// Frame is published after every state change.
type Frame struct {
	Snapshot engine.Snapshot
	Result   engine.StepResult
	Cause    Cause
}

// Hook observes everything the scheduler does to its sessions.
// Hooks run on the scheduler goroutine and must not block.
type Hook interface {
	SessionStarted(cfg config.BlockfallConfig, seed int64, at time.Time)
	Ticked(at time.Time, res engine.StepResult)
	Commanded(cmd engine.Command, at time.Time, res engine.StepResult)
	SessionEnded(snap engine.Snapshot, at time.Time)
}

type requestKind int

const (
	requestCommand requestKind = iota
	requestReset
)

type request struct {
	kind requestKind
	cmd  engine.Command
}

// Scheduler runs one session at a time on a timer.
type Scheduler struct {
	cfg    config.BlockfallConfig
	clock  clockwork.Clock
	logger *log.Logger
	hooks  []Hook
	seeds  func() int64

	firstSeed *int64 // Overrides seeds for the first session

	session *engine.Session
	timer   clockwork.Timer // nil while the session is terminal
	ended   bool            // SessionEnded already fired for the current session

	requests chan request
	frames   chan Frame
	done     chan struct{}
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the clock used for timers and timestamps.
func WithClock(c clockwork.Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithHook adds a hook. Hooks are called in the order they were added.
func WithHook(h Hook) Option {
	return func(s *Scheduler) { s.hooks = append(s.hooks, h) }
}

// WithSeeds sets the seed source used for every new session.
func WithSeeds(next func() int64) Option {
	return func(s *Scheduler) { s.seeds = next }
}

// WithSeed fixes the seed of the first session. Later sessions use the seed
// source. It combines with WithSeeds in either order.
func WithSeed(seed int64) Option {
	return func(s *Scheduler) { s.firstSeed = &seed }
}

// New creates a scheduler for the given rules. The first session is created
// immediately but does not tick until Run is called.
func New(cfg config.BlockfallConfig, opts ...Option) (*Scheduler, error) {
	s := &Scheduler{
		cfg:      cfg,
		clock:    clockwork.NewRealClock(),
		logger:   log.New(io.Discard),
		requests: make(chan request, requestBuffer),
		frames:   make(chan Frame, 1),
		done:     make(chan struct{}),
	}
	s.seeds = func() int64 { return s.clock.Now().UnixNano() }
	for _, opt := range opts {
		opt(s)
	}

	var seed int64
	if s.firstSeed != nil {
		seed = *s.firstSeed
	} else {
		seed = s.seeds()
	}
	session, err := engine.NewSession(cfg, seed, s.clock.Now())
	if err != nil {
		return nil, err
	}
	s.session = session

	if cfg.Speed.FloorAboveInitial() {
		s.logger.Info("speed floor is above the initial interval, the first ramp step slows play down",
			"initial", cfg.Speed.Initial(), "floor", cfg.Speed.Floor())
	}
	return s, nil
}

// Frames returns the frame channel. It holds only the latest frame: a slow
// reader skips intermediate states. The channel is closed when Run returns.
func (s *Scheduler) Frames() <-chan Frame {
	return s.frames
}

// Done is closed when Run returns.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// Send queues a player command. It never blocks; when the queue is full the
// command is dropped. Commands on a terminal session have no effect.
func (s *Scheduler) Send(cmd engine.Command) {
	select {
	case s.requests <- request{kind: requestCommand, cmd: cmd}:
	case <-s.done:
	default:
		s.logger.Warn("command queue full, dropping", "cmd", cmd)
	}
}

// Reset asks for a fresh session. It waits for queue space rather than
// dropping, and returns immediately once Run has exited.
func (s *Scheduler) Reset() {
	select {
	case s.requests <- request{kind: requestReset}:
	case <-s.done:
	}
}

// Run starts the first session and processes ticks and requests until ctx
// is cancelled. It returns ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	defer close(s.done)
	defer close(s.frames)
	defer s.stopTimer()

	// Restart the first session so its speed ramp counts from now.
	now := s.clock.Now()
	s.session.Reset(s.session.Seed(), now)
	s.started(now)
	s.arm()
	s.publish(engine.StepResult{}, CauseStart)

	for {
		var tick <-chan time.Time
		if s.timer != nil {
			tick = s.timer.Chan()
		}

		select {
		case <-ctx.Done():
			s.end(s.clock.Now())
			return ctx.Err()

		case <-tick:
			s.handleTick(s.clock.Now())

		case req := <-s.requests:
			switch req.kind {
			case requestCommand:
				s.handleCommand(req.cmd, s.clock.Now())
			case requestReset:
				s.handleReset(s.clock.Now())
			}
		}
	}
}

func (s *Scheduler) handleTick(now time.Time) {
	res := s.session.Tick(now)
	for _, h := range s.hooks {
		h.Ticked(now, res)
	}
	s.logStep("tick", res)

	if res.GameOver {
		s.timer = nil
		s.end(now)
	} else {
		s.arm()
	}
	s.publish(res, CauseTick)
}

func (s *Scheduler) handleCommand(cmd engine.Command, now time.Time) {
	if s.session.GameOver() {
		return
	}
	res := s.session.Apply(cmd)
	for _, h := range s.hooks {
		h.Commanded(cmd, now, res)
	}
	s.logStep(cmd.String(), res)

	if res.GameOver {
		s.stopTimer()
		s.end(now)
	}
	s.publish(res, CauseCommand)
}

// handleReset cancels the pending tick before anything else so the old and
// new sessions can never both have a live timer.
func (s *Scheduler) handleReset(now time.Time) {
	s.stopTimer()
	s.end(now)

	s.session.Reset(s.seeds(), now)
	s.started(now)
	s.arm()
	s.publish(engine.StepResult{}, CauseReset)
}

func (s *Scheduler) arm() {
	s.timer = s.clock.NewTimer(s.session.Interval())
}

func (s *Scheduler) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) started(now time.Time) {
	s.ended = false
	s.logger.Info("session started", "seed", s.session.Seed(), "interval", s.session.Interval())
	for _, h := range s.hooks {
		h.SessionStarted(s.cfg, s.session.Seed(), now)
	}
}

// end fires SessionEnded once per session, whether it ended by game over,
// reset or shutdown.
func (s *Scheduler) end(now time.Time) {
	if s.ended {
		return
	}
	s.ended = true
	snap := s.session.Snapshot()
	if snap.GameOver {
		s.logger.Info("game over", "score", snap.Score, "lines", snap.Lines, "ticks", snap.Ticks)
	}
	for _, h := range s.hooks {
		h.SessionEnded(snap, now)
	}
}

func (s *Scheduler) logStep(what string, res engine.StepResult) {
	if res.Locked {
		s.logger.Debug("piece locked", "by", what, "cleared", res.Cleared, "points", res.Points)
	}
	if res.SpeedUp {
		s.logger.Debug("speed up", "interval", s.session.Interval())
	}
}

// publish replaces any unread frame with the current state. Run is the only
// sender, so the send after draining cannot block.
func (s *Scheduler) publish(res engine.StepResult, cause Cause) {
	f := Frame{Snapshot: s.session.Snapshot(), Result: res, Cause: cause}
	select {
	case <-s.frames:
	default:
	}
	s.frames <- f
}
