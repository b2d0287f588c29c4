package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var flagNoRecord bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Left/A/H    - Move left
  Right/D/L   - Move right
  Up/W/K      - Rotate clockwise
  Down/S/J    - Soft drop
  R           - Restart
  Ctrl+S      - Save a screenshot to ~/.blockfall/screenshots
  Q/Ctrl+C    - Quit

Presets:
  easy    - 600ms start, ramps to 200ms
  normal  - 400ms start, ramps to 100ms (default)
  hard    - 250ms start, ramps to 60ms
  fixed   - 400ms, no ramp
  classic - 400ms start with a 500ms floor

Every session is recorded in the replay journal unless --no-record is set.

Examples:
  blockfall play
  blockfall play --preset easy
  blockfall play --seed 42 --no-record
  blockfall play --config ./my-rules.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record sessions")
}

func runPlay(_ *cobra.Command, _ []string) {
	rules, err := loadRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logFile := openLogFile()
	defer logFile.Close()
	logger := newLogger(logFile)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
		Preset:  presetName(rules),
	}

	var store *storage.Store
	if !flagNoRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open replay journal, not recording", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	logger.Info("starting game", "preset", rt.Preset, "seed", rt.Seed, "size", fmt.Sprintf("%dx%d", width, height))
	if err := tui.Run(rules, rt, store, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
