package main

import (
	"testing"

	"github.com/vovakirdan/blockfall/internal/config"
)

func TestPresetName(t *testing.T) {
	defaults := config.DefaultBlockfallConfig()
	hard := config.DefaultBlockfallConfig()
	if err := config.ApplyPreset(&hard, config.DifficultyHard); err != nil {
		t.Fatal(err)
	}
	custom := config.DefaultBlockfallConfig()
	custom.Speed.InitialMS = 700

	tests := []struct {
		name   string
		preset string
		rules  config.BlockfallConfig
		want   string
	}{
		{"default rules", "", defaults, "normal"},
		{"file matching a preset", "", hard, "hard"},
		{"file with own speeds", "", custom, "custom"},
		{"flag wins", "easy", custom, "easy"},
	}

	t.Cleanup(func() { flagPreset = "" })
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			flagPreset = tc.preset
			if got := presetName(tc.rules); got != tc.want {
				t.Errorf("presetName() = %q, expected %q", got, tc.want)
			}
		})
	}
}
