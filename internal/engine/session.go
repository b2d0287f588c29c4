package engine

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
)

// StepResult describes what a command or tick did to the session.
type StepResult struct {
	Moved    bool // Piece translated or rotated
	Locked   bool // Piece merged into the grid
	Cleared  int  // Rows removed by the lock
	Points   int  // Score added by the lock
	SpeedUp  bool // Ramp shortened (or raised to the floor) the interval
	GameOver bool // Session is terminal after this step
}

// Session is one game from spawn to game over. It owns the grid, the live
// piece, the score and the speed ramp.
//
// Session is not safe for concurrent use; the scheduler serializes access.
type Session struct {
	cfg config.BlockfallConfig

	grid     *Grid
	piece    *Piece // nil once the session is terminal
	score    int
	lines    int
	ramp     Ramp
	gameOver bool
	ticks    int

	seed    int64
	rng     *rand.Rand
	pick    func() Kind
	started time.Time
}

// NewSession validates cfg and starts a session with the given seed.
func NewSession(cfg config.BlockfallConfig, seed int64, now time.Time) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{cfg: cfg}
	s.Reset(seed, now)
	return s, nil
}

// Reset discards all state and starts over: empty grid, zero score, initial
// interval, a new random source and a freshly spawned piece.
func (s *Session) Reset(seed int64, now time.Time) {
	s.grid = NewGrid(s.cfg.Board.Rows, s.cfg.Board.Cols)
	s.piece = nil
	s.score = 0
	s.lines = 0
	s.ticks = 0
	s.gameOver = false
	s.ramp = NewRamp(s.cfg.Speed, now)
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
	s.pick = func() Kind { return Kind(s.rng.Intn(int(kindCount))) }
	s.started = now
	s.spawn()
}

// spawn places a random piece at the spawn point. If it overlaps locked
// cells the session becomes terminal and holds no piece.
func (s *Session) spawn() {
	p := NewPiece(s.pick(), s.cfg.Board.SpawnX, s.cfg.Board.SpawnY)
	if HasCollision(p, s.grid, 0, 0) {
		s.gameOver = true
		s.piece = nil
		return
	}
	s.piece = &p
}

// MoveLeft shifts the piece one column left if nothing blocks it.
func (s *Session) MoveLeft() StepResult { return s.move(-1) }

// MoveRight shifts the piece one column right if nothing blocks it.
func (s *Session) MoveRight() StepResult { return s.move(1) }

func (s *Session) move(dx int) StepResult {
	if s.gameOver {
		return StepResult{GameOver: true}
	}
	if HasCollision(*s.piece, s.grid, dx, 0) {
		return StepResult{}
	}
	s.piece.X += dx
	return StepResult{Moved: true}
}

// Rotate turns the piece clockwise in place. There are no wall kicks: if the
// rotated shape does not fit at the current position the piece is unchanged.
func (s *Session) Rotate() StepResult {
	if s.gameOver {
		return StepResult{GameOver: true}
	}
	candidate := *s.piece
	candidate.Shape = s.piece.Shape.Rotate()
	if HasCollision(candidate, s.grid, 0, 0) {
		return StepResult{}
	}
	s.piece.Shape = candidate.Shape
	return StepResult{Moved: true}
}

// SoftDrop moves the piece down one row, locking it if it has landed.
func (s *Session) SoftDrop() StepResult {
	if s.gameOver {
		return StepResult{GameOver: true}
	}
	return s.fall()
}

// Apply dispatches a Command.
func (s *Session) Apply(cmd Command) StepResult {
	switch cmd {
	case CommandMoveLeft:
		return s.MoveLeft()
	case CommandMoveRight:
		return s.MoveRight()
	case CommandSoftDrop:
		return s.SoftDrop()
	case CommandRotate:
		return s.Rotate()
	}
	return StepResult{GameOver: s.gameOver}
}

// Tick advances the session by one scheduled fall step and then lets the
// speed ramp observe the elapsed time. Ticks on a terminal session do nothing.
func (s *Session) Tick(now time.Time) StepResult {
	if s.gameOver {
		return StepResult{GameOver: true}
	}
	s.ticks++
	res := s.fall()
	if !s.gameOver {
		res.SpeedUp = s.ramp.Observe(now)
	}
	return res
}

func (s *Session) fall() StepResult {
	if !HasCollision(*s.piece, s.grid, 0, 1) {
		s.piece.Y++
		return StepResult{Moved: true}
	}
	return s.lock()
}

// lock merges the landed piece, clears full rows, scores them and spawns
// the next piece.
func (s *Session) lock() StepResult {
	merge(*s.piece, s.grid)
	n := s.grid.ClearFullRows()
	points := n * n * s.cfg.Scoring.LineBase
	s.score += points
	s.lines += n
	s.spawn()
	return StepResult{
		Locked:   true,
		Cleared:  n,
		Points:   points,
		GameOver: s.gameOver,
	}
}

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// Lines returns the total number of rows cleared.
func (s *Session) Lines() int { return s.lines }

// GameOver reports whether the session is terminal.
func (s *Session) GameOver() bool { return s.gameOver }

// Interval returns the current fall interval.
func (s *Session) Interval() time.Duration { return s.ramp.Interval() }

// Seed returns the seed the session was started with.
func (s *Session) Seed() int64 { return s.seed }

// Ticks returns the number of scheduled ticks applied so far.
func (s *Session) Ticks() int { return s.ticks }

// StartedAt returns the time passed to the last Reset.
func (s *Session) StartedAt() time.Time { return s.started }

// Config returns the rules the session runs with.
func (s *Session) Config() config.BlockfallConfig { return s.cfg }
