package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration. It matches
// defaults/tetris.yaml and is used when that file cannot be parsed.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Gravity: GravityConfig{
			StartTicks: 48,
			MinTicks:   3,
		},
		Scoring: ScoringConfig{
			Single:   100,
			Double:   300,
			Triple:   500,
			Tetris:   800,
			SoftDrop: 1,
			HardDrop: 2,
		},
		Levels: LevelConfig{
			Start:         1,
			LinesPerLevel: 10,
		},
		Sprint: SprintConfig{
			Lines: 40,
		},
		Effects: EffectsConfig{
			FlashTicks: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressLines,
				MaxAt: 150,
			},
		},
		Keys: KeysConfig{
			Left:      []string{"left", "a", "h"},
			Right:     []string{"right", "d", "l"},
			RotateCW:  []string{"up", "x", "w"},
			RotateCCW: []string{"z"},
			SoftDrop:  []string{"down", "s", "j"},
			HardDrop:  []string{"space"},
			Hold:      []string{"c", "shift+tab"},
			Pause:     []string{"p", "esc"},
			Restart:   []string{"r"},
			Quit:      []string{"q", "ctrl+c"},
		},
	}
}
