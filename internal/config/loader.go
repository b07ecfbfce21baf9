package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadBreakout loads Breakout configuration.
// Search order: customPath -> ~/.arcade/configs/breakout.{yaml,toml} ->
// ./configs/breakout.yaml -> embedded default.
// Fields missing from a file keep their default values.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decodeBreakout(customPath, data)
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	for _, name := range []string{"breakout.yaml", "breakout.toml"} {
		userCfgPath := userConfigPath(name)
		if userCfgPath == "" {
			break
		}
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decodeBreakout(userCfgPath, data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "breakout.yaml")); err == nil {
		if cfg, err := decodeBreakout("breakout.yaml", data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decodeBreakout("breakout.yaml", defaultBreakoutYAML)
	if err != nil {
		return DefaultBreakoutConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decodeBreakout decodes data over the hardcoded defaults, picking the
// format from the file extension.
func decodeBreakout(path string, data []byte) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return BreakoutConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BreakoutConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
// Normal and unknown presets leave the config untouched.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width = 260
		cfg.Ball.VelocityX = 80
		cfg.Ball.VelocityY = -480
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Paddle.Width = 150
		cfg.Ball.VelocityX = 120
		cfg.Ball.VelocityY = -750
	}
}
