package config

import (
	"fmt"
	"sort"
)

// DifficultyPreset represents a named speed profile.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyFixed   DifficultyPreset = "fixed"   // No ramp, interval stays at initial
	DifficultyClassic DifficultyPreset = "classic" // 400ms start with a 500ms floor
)

// presetSpeeds holds the speed section each preset installs.
// Board and scoring are never touched by a preset.
var presetSpeeds = map[DifficultyPreset]SpeedConfig{
	DifficultyEasy:    {InitialMS: 600, MinMS: 200, RampEveryMS: 15000, RampStepMS: 20},
	DifficultyNormal:  {InitialMS: 400, MinMS: 100, RampEveryMS: 10000, RampStepMS: 20},
	DifficultyHard:    {InitialMS: 250, MinMS: 60, RampEveryMS: 8000, RampStepMS: 25},
	DifficultyFixed:   {InitialMS: 400, MinMS: 400, RampEveryMS: 10000, RampStepMS: 0},
	DifficultyClassic: {InitialMS: 400, MinMS: 500, RampEveryMS: 10000, RampStepMS: 20},
}

// PresetNames returns all known preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presetSpeeds))
	for p := range presetSpeeds {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}

// ApplyPreset replaces the speed section of cfg with the preset's values.
// An empty preset leaves cfg unchanged.
func ApplyPreset(cfg *BlockfallConfig, preset DifficultyPreset) error {
	if preset == "" {
		return nil
	}
	speed, ok := presetSpeeds[preset]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}
	cfg.Speed = speed
	return nil
}

// MatchPreset returns the preset whose speed section equals speed.
func MatchPreset(speed SpeedConfig) (DifficultyPreset, bool) {
	for p, s := range presetSpeeds {
		if s == speed {
			return p, true
		}
	}
	return "", false
}
