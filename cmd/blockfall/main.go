// blockfall is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockfall play           - Play in this terminal
//	blockfall serve          - Start SSH server for remote play
//	blockfall replays        - Browse recorded sessions
//	blockfall replay <id>    - Re-simulate and verify one recording
//	blockfall config         - Print the effective rules as YAML
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for reproducible piece sequences
//	--db <path>         - Set replay journal path (default: ~/.blockfall/replays.db)
//	--config <path>     - Load rules from a YAML file
//	--preset <name>     - Speed preset: easy, normal, hard, fixed, classic
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPreset   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - falling blocks in your terminal",
	Long: `Blockfall is a classic falling-block puzzle for the terminal.

Pieces fall on a timer that speeds up the longer you play. Move, rotate and
drop them to complete rows; a full row clears and scores rows² × 100.
The game ends when a new piece has no room to spawn.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  replays  - Browse recorded sessions
  replay   - Re-simulate one recording
  config   - Print the effective rules

Examples:
  blockfall play
  blockfall play --preset hard
  blockfall play --seed 42
  blockfall serve --ssh :2222
  blockfall replay 12`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockfall/replays.db", "Path to replay journal")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Speed preset: easy, normal, hard, fixed, classic")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// loadRules loads the rules file and applies the preset flag.
func loadRules() (config.BlockfallConfig, error) {
	rules, err := config.Load(flagConfig)
	if err != nil {
		return config.BlockfallConfig{}, err
	}
	if err := config.ApplyPreset(&rules, config.DifficultyPreset(flagPreset)); err != nil {
		return config.BlockfallConfig{}, err
	}
	if err := rules.Validate(); err != nil {
		return config.BlockfallConfig{}, err
	}
	return rules, nil
}

// presetName returns the preset recorded with replays: the --preset flag, or
// the preset the loaded rules match, or "custom" when a config file changed
// the speed section.
func presetName(rules config.BlockfallConfig) string {
	if flagPreset != "" {
		return flagPreset
	}
	if p, ok := config.MatchPreset(rules.Speed); ok {
		return string(p)
	}
	return "custom"
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockfall",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openLogFile opens ~/.blockfall/blockfall.log for appending so logging does
// not disturb the full-screen UI. Falls back to discarding logs.
func openLogFile() io.WriteCloser {
	home, err := os.UserHomeDir()
	if err != nil {
		return nopCloser{io.Discard}
	}
	dir := filepath.Join(home, ".blockfall")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nopCloser{io.Discard}
	}
	f, err := os.OpenFile(filepath.Join(dir, "blockfall.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nopCloser{io.Discard}
	}
	return f
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
