// Package config provides YAML-based game configuration, difficulty
// presets and the environment-driven SSH server configuration.
package config

// TetrisConfig contains all tunables of the falling-block game.
type TetrisConfig struct {
	Gravity    GravityConfig    `yaml:"gravity"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Levels     LevelConfig      `yaml:"levels"`
	Sprint     SprintConfig     `yaml:"sprint"`
	Effects    EffectsConfig    `yaml:"effects"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Keys       KeysConfig       `yaml:"keys"`
}

// GravityConfig sets how many ticks pass between automatic drops. The
// interval shrinks from StartTicks to MinTicks as difficulty rises.
type GravityConfig struct {
	StartTicks int `yaml:"start_ticks"`
	MinTicks   int `yaml:"min_ticks"`
}

// ScoringConfig holds point weights. Line clears are multiplied by the
// current level; drop points are per row.
type ScoringConfig struct {
	Single   int `yaml:"single"`
	Double   int `yaml:"double"`
	Triple   int `yaml:"triple"`
	Tetris   int `yaml:"tetris"`
	SoftDrop int `yaml:"soft_drop"`
	HardDrop int `yaml:"hard_drop"`
}

// LevelConfig controls the displayed level.
type LevelConfig struct {
	Start         int `yaml:"start"`
	LinesPerLevel int `yaml:"lines_per_level"`
}

// SprintConfig is the goal of the sprint mode.
type SprintConfig struct {
	Lines int `yaml:"lines"`
}

// EffectsConfig holds presentation timings.
type EffectsConfig struct {
	FlashTicks int `yaml:"flash_ticks"` // How long cleared rows stay highlighted
}

// KeysConfig maps each game action to the keys that trigger it. Key names
// follow Bubble Tea (e.g. "left", "ctrl+c"); "space" is accepted for the
// space bar.
type KeysConfig struct {
	Left      []string `yaml:"left"`
	Right     []string `yaml:"right"`
	RotateCW  []string `yaml:"rotate_cw"`
	RotateCCW []string `yaml:"rotate_ccw"`
	SoftDrop  []string `yaml:"soft_drop"`
	HardDrop  []string `yaml:"hard_drop"`
	Hold      []string `yaml:"hold"`
	Pause     []string `yaml:"pause"`
	Restart   []string `yaml:"restart"`
	Quit      []string `yaml:"quit"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "lines", "time" or "none"
	MaxAt int    `yaml:"max_at"` // Lines or ticks at which max difficulty is reached
}

// Progression types.
const (
	ProgressLines = "lines"
	ProgressTime  = "time"
	ProgressNone  = "none"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ParsePreset validates a preset name. The empty string is allowed and
// means "keep the config as loaded".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", &ValidationError{Field: "difficulty", Reason: "unknown preset " + name}
	}
}
