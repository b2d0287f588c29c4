package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the built-in rules: a 20x10 board, spawn at
// (3, 0), 400ms initial interval ramping down by 20ms every 10s to a 100ms floor,
// and 100 points per cleared line squared.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Board: BoardConfig{
			Rows:   20,
			Cols:   10,
			SpawnX: 3,
			SpawnY: 0,
		},
		Speed: SpeedConfig{
			InitialMS:   400,
			MinMS:       100,
			RampEveryMS: 10000,
			RampStepMS:  20,
		},
		Scoring: ScoringConfig{
			LineBase: 100,
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultBlockfallYAML
}
