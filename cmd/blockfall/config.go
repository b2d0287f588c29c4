package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective rules as YAML",
	Long: `Print the rules a new game would use, after the config search order and
--preset are applied. The output is a valid config file.

Search order:
  --config <path>  ->  ~/.blockfall/config.yaml  ->  ./configs/blockfall.yaml  ->  built-in

Examples:
  blockfall config > ~/.blockfall/config.yaml
  blockfall config --preset hard
  blockfall config --defaults`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults file")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	rules, err := loadRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := config.Marshal(rules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagPreset != "" {
		fmt.Printf("# preset: %s\n", flagPreset)
	}
	fmt.Printf("# available presets: %s\n", strings.Join(config.PresetNames(), ", "))
	os.Stdout.Write(data)
}
