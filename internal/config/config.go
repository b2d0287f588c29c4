// Package config provides YAML-based rules configuration and difficulty
// presets for blockfall.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors returned (wrapped) by BlockfallConfig.Validate.
var (
	ErrInvalidBoard   = errors.New("config: invalid board")
	ErrInvalidSpeed   = errors.New("config: invalid speed")
	ErrInvalidScoring = errors.New("config: invalid scoring")
	ErrUnknownPreset  = errors.New("config: unknown difficulty preset")
)

// widestPiece is the width of the I piece; the spawn column must leave room for it.
const widestPiece = 4

// BlockfallConfig contains all rules for a blockfall session.
// Values are fixed when a session is constructed.
type BlockfallConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Speed   SpeedConfig   `yaml:"speed"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// BoardConfig defines the grid dimensions and spawn coordinate.
type BoardConfig struct {
	Rows   int `yaml:"rows"`
	Cols   int `yaml:"cols"`
	SpawnX int `yaml:"spawn_x"`
	SpawnY int `yaml:"spawn_y"`
}

// SpeedConfig defines the fall interval and its ramp over play time.
type SpeedConfig struct {
	InitialMS   int `yaml:"initial_ms"`
	MinMS       int `yaml:"min_ms"`        // Floor for the ramp
	RampEveryMS int `yaml:"ramp_every_ms"` // Elapsed time between speed increases
	RampStepMS  int `yaml:"ramp_step_ms"`  // Interval decrement per increase (0 = no ramp)
}

// ScoringConfig defines line clear rewards.
type ScoringConfig struct {
	LineBase int `yaml:"line_base"` // Points = cleared² × LineBase
}

// Initial returns the starting fall interval.
func (s SpeedConfig) Initial() time.Duration {
	return time.Duration(s.InitialMS) * time.Millisecond
}

// Floor returns the minimum fall interval.
func (s SpeedConfig) Floor() time.Duration {
	return time.Duration(s.MinMS) * time.Millisecond
}

// RampEvery returns how much play time passes between speed increases.
func (s SpeedConfig) RampEvery() time.Duration {
	return time.Duration(s.RampEveryMS) * time.Millisecond
}

// RampStep returns the interval decrement applied per speed increase.
func (s SpeedConfig) RampStep() time.Duration {
	return time.Duration(s.RampStepMS) * time.Millisecond
}

// FloorAboveInitial reports whether the first ramp step will raise the
// interval to the floor instead of shrinking it.
func (s SpeedConfig) FloorAboveInitial() bool {
	return s.MinMS > s.InitialMS
}

// Validate checks the config for values a session cannot run with.
// A floor above the initial interval is accepted (see the classic preset).
func (c BlockfallConfig) Validate() error {
	b := c.Board
	if b.Rows <= 0 || b.Cols < widestPiece {
		return fmt.Errorf("%w: %dx%d grid (need rows > 0, cols >= %d)", ErrInvalidBoard, b.Rows, b.Cols, widestPiece)
	}
	if b.SpawnX < 0 || b.SpawnX+widestPiece > b.Cols {
		return fmt.Errorf("%w: spawn_x %d leaves no room in %d columns", ErrInvalidBoard, b.SpawnX, b.Cols)
	}
	if b.SpawnY < 0 || b.SpawnY >= b.Rows {
		return fmt.Errorf("%w: spawn_y %d outside %d rows", ErrInvalidBoard, b.SpawnY, b.Rows)
	}

	s := c.Speed
	if s.InitialMS <= 0 || s.MinMS <= 0 {
		return fmt.Errorf("%w: intervals must be positive (initial %dms, min %dms)", ErrInvalidSpeed, s.InitialMS, s.MinMS)
	}
	if s.RampEveryMS <= 0 {
		return fmt.Errorf("%w: ramp_every_ms must be positive, got %d", ErrInvalidSpeed, s.RampEveryMS)
	}
	if s.RampStepMS < 0 {
		return fmt.Errorf("%w: ramp_step_ms must not be negative, got %d", ErrInvalidSpeed, s.RampStepMS)
	}

	if c.Scoring.LineBase < 0 {
		return fmt.Errorf("%w: line_base must not be negative, got %d", ErrInvalidScoring, c.Scoring.LineBase)
	}
	return nil
}
