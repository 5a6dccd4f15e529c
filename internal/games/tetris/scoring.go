package tetris

import "github.com/vovakirdan/tui-tetris/internal/config"

// Scorer turns game events into points using configured weights.
type Scorer struct {
	cfg config.ScoringConfig
}

// NewScorer creates a scorer.
func NewScorer(cfg config.ScoringConfig) Scorer {
	return Scorer{cfg: cfg}
}

// Lines returns the points for clearing n rows at once at the given level.
func (s Scorer) Lines(n, level int) int {
	var base int
	switch {
	case n <= 0:
		return 0
	case n == 1:
		base = s.cfg.Single
	case n == 2:
		base = s.cfg.Double
	case n == 3:
		base = s.cfg.Triple
	default:
		base = s.cfg.Tetris
	}
	return base * max(level, 1)
}

// SoftDrop returns the points for rows fallen under soft drop.
func (s Scorer) SoftDrop(rows int) int {
	return rows * s.cfg.SoftDrop
}

// HardDrop returns the points for rows skipped by a hard drop.
func (s Scorer) HardDrop(rows int) int {
	return rows * s.cfg.HardDrop
}

// LevelFor returns the displayed level after clearing lines in total.
func LevelFor(cfg config.LevelConfig, lines int) int {
	per := max(cfg.LinesPerLevel, 1)
	return max(cfg.Start, 1) + lines/per
}
