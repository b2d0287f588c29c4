package engine

import (
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
)

// Ramp shortens the fall interval as play time accumulates.
type Ramp struct {
	interval time.Duration
	floor    time.Duration
	every    time.Duration
	step     time.Duration
	last     time.Time // time of the last speed increase
}

// NewRamp starts a ramp at the configured initial interval.
func NewRamp(cfg config.SpeedConfig, now time.Time) Ramp {
	return Ramp{
		interval: cfg.Initial(),
		floor:    cfg.Floor(),
		every:    cfg.RampEvery(),
		step:     cfg.RampStep(),
		last:     now,
	}
}

// Interval returns the current fall interval.
func (r *Ramp) Interval() time.Duration { return r.interval }

// Observe applies one speed increase if at least RampEvery has passed since
// the last one, and reports whether it did. The interval becomes
// max(floor, interval-step), so a floor above the current interval raises it.
func (r *Ramp) Observe(now time.Time) bool {
	if now.Sub(r.last) < r.every {
		return false
	}
	r.last = now
	r.interval = max(r.floor, r.interval-r.step)
	return true
}
