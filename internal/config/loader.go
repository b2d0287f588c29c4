package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the blockfall rules.
// Search order: customPath -> ~/.blockfall/config.yaml -> ./configs/blockfall.yaml -> embedded default
func Load(customPath string) (BlockfallConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlockfallConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return BlockfallConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/blockfall.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultBlockfallYAML)
	if err != nil {
		return DefaultBlockfallConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes a YAML document on top of the built-in defaults, so a file may
// set only the keys it cares about. The result is validated.
func Parse(data []byte) (BlockfallConfig, error) {
	cfg := DefaultBlockfallConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlockfallConfig{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return BlockfallConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func Marshal(cfg BlockfallConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockfall", filename)
}
