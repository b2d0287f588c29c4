// Package replay records blockfall sessions and plays them back.
//
// A recording is the session's seed, its rules and the ordered list of ticks
// and commands with their offsets from the session start. The engine is
// deterministic for a given seed, so that is enough to rebuild every board.
package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/engine"
)

// EventTick is the event kind of a scheduled fall step. Commands use their
// engine.Command names.
const EventTick = "tick"

// ErrMismatch is returned by Verify when playback disagrees with the
// recorded outcome.
var ErrMismatch = errors.New("replay: playback does not match recording")

// Event is one tick or command.
type Event struct {
	Kind string
	At   time.Duration // Offset from StartedAt
}

// Recording is a complete session.
type Recording struct {
	ID        int64 // Set by storage
	Seed      int64
	Preset    string
	Config    config.BlockfallConfig
	StartedAt time.Time
	EndedAt   time.Time
	Score     int
	Lines     int
	Ticks     int
	GameOver  bool // False when the session was reset or abandoned
	Events    []Event
}

// Duration returns how long the session ran.
func (r Recording) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Saver persists finished recordings.
type Saver interface {
	SaveRecording(rec Recording) (int64, error)
}

// Recorder is a scheduler hook that records every session and hands it to
// a Saver when the session ends.
type Recorder struct {
	saver  Saver
	preset string
	logger *log.Logger

	cur  *Recording
	last int64
}

// NewRecorder returns a recorder that tags recordings with preset.
func NewRecorder(saver Saver, preset string, logger *log.Logger) *Recorder {
	return &Recorder{saver: saver, preset: preset, logger: logger}
}

// LastID returns the storage ID of the most recently saved recording.
// It stays 0 when the saver is a Writer.
func (r *Recorder) LastID() int64 { return r.last }

// SessionStarted begins a new recording.
func (r *Recorder) SessionStarted(cfg config.BlockfallConfig, seed int64, at time.Time) {
	r.cur = &Recording{
		Seed:      seed,
		Preset:    r.preset,
		Config:    cfg,
		StartedAt: at,
	}
}

// Ticked records a fall step.
func (r *Recorder) Ticked(at time.Time, _ engine.StepResult) {
	r.add(EventTick, at)
}

// Commanded records a player command. Rejected commands are recorded too.
func (r *Recorder) Commanded(cmd engine.Command, at time.Time, _ engine.StepResult) {
	r.add(cmd.String(), at)
}

func (r *Recorder) add(kind string, at time.Time) {
	if r.cur == nil {
		return
	}
	r.cur.Events = append(r.cur.Events, Event{Kind: kind, At: at.Sub(r.cur.StartedAt)})
}

// SessionEnded finishes the recording and saves it. Sessions with no events
// are discarded.
func (r *Recorder) SessionEnded(snap engine.Snapshot, at time.Time) {
	rec := r.cur
	r.cur = nil
	if rec == nil || len(rec.Events) == 0 {
		return
	}

	rec.EndedAt = at
	rec.Score = snap.Score
	rec.Lines = snap.Lines
	rec.Ticks = snap.Ticks
	rec.GameOver = snap.GameOver

	id, err := r.saver.SaveRecording(*rec)
	if err != nil {
		r.logger.Warn("cannot save replay", "err", err)
		return
	}
	if id == 0 {
		return // Queued by a Writer, which logs the save itself
	}
	r.last = id
	r.logger.Debug("replay saved", "id", id, "events", len(rec.Events))
}

// Play re-runs a recording and returns the final state.
func Play(rec Recording) (engine.Snapshot, error) {
	s, err := engine.NewSession(rec.Config, rec.Seed, rec.StartedAt)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("replay: %w", err)
	}

	for i, ev := range rec.Events {
		at := rec.StartedAt.Add(ev.At)
		if ev.Kind == EventTick {
			s.Tick(at)
			continue
		}
		cmd, err := engine.ParseCommand(ev.Kind)
		if err != nil {
			return engine.Snapshot{}, fmt.Errorf("replay: event %d: %w", i, err)
		}
		s.Apply(cmd)
	}
	return s.Snapshot(), nil
}

// Verify plays rec and checks the outcome against what was recorded.
func Verify(rec Recording) (engine.Snapshot, error) {
	snap, err := Play(rec)
	if err != nil {
		return snap, err
	}
	if snap.Score != rec.Score || snap.Lines != rec.Lines || snap.GameOver != rec.GameOver {
		return snap, fmt.Errorf("%w: score %d/%d, lines %d/%d, game over %v/%v",
			ErrMismatch, snap.Score, rec.Score, snap.Lines, rec.Lines, snap.GameOver, rec.GameOver)
	}
	return snap, nil
}
