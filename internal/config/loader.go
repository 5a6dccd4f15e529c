package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TetrisFile is the config file name looked up in the search directories.
const TetrisFile = "tetris.yaml"

// LoadTetris loads the game configuration.
// Search order: customPath -> ~/.tetris/configs/tetris.yaml ->
// ./configs/tetris.yaml -> embedded default.
// Values missing from a file keep their defaults. The result is validated.
func LoadTetris(customPath string) (TetrisConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TetrisConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		return parseTetris(data, customPath)
	}

	for _, path := range []string{userConfigPath(TetrisFile), filepath.Join("configs", TetrisFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			return parseTetris(data, path)
		}
	}

	cfg, err := parseTetris(defaultTetrisYAML, "embedded default")
	if err != nil {
		return DefaultTetrisConfig(), nil
	}
	return cfg, nil
}

func parseTetris(data []byte, source string) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TetrisConfig{}, fmt.Errorf("config: parse %s: %w", source, err)
	}
	if err := cfg.Validate(); err != nil {
		return TetrisConfig{}, fmt.Errorf("config: %s: %w", source, err)
	}
	return cfg, nil
}

// userConfigPath returns the path of a file in the user config directory,
// or "" if the home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", "configs", filename)
}

// ApplyTetrisPreset adjusts the config for a difficulty preset.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	if preset == DifficultyEasy {
		cfg.Gravity.StartTicks += cfg.Gravity.StartTicks / 4
	}
}
