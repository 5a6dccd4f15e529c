package config

import "math"

// DifficultyManager turns progress (cleared lines or elapsed ticks) into a
// difficulty level and the gravity interval that goes with it.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0, 1),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressNone
}

// Level returns the current difficulty (0.0 to 1.0).
func (d *DifficultyManager) Level(lines, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case ProgressLines:
		progress = float64(lines) / maxAt
	case ProgressTime:
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0, 1)
	return d.initialLevel + progress*(1-d.initialLevel)
}

// GravityTicks returns the number of ticks between automatic drops,
// interpolated from g.StartTicks at level 0 to g.MinTicks at level 1.
// It never returns less than 1.
func (d *DifficultyManager) GravityTicks(g GravityConfig, lines, ticks int) int {
	level := d.Level(lines, ticks)
	span := float64(g.StartTicks - g.MinTicks)
	interval := g.StartTicks - int(math.Round(level*span))
	return max(interval, g.MinTicks, 1)
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
