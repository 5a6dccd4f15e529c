package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every ValidationError.
var ErrInvalid = errors.New("invalid configuration")

// ValidationError reports one out-of-range setting.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Validate checks the config for values the game cannot run with. All
// problems are reported, joined.
func (c TetrisConfig) Validate() error {
	var errs []error
	check := func(ok bool, field, reason string) {
		if !ok {
			errs = append(errs, &ValidationError{Field: field, Reason: reason})
		}
	}

	check(c.Gravity.MinTicks >= 1, "gravity.min_ticks", "must be at least 1")
	check(c.Gravity.StartTicks >= c.Gravity.MinTicks, "gravity.start_ticks", "must not be below min_ticks")

	s := c.Scoring
	check(s.Single >= 0 && s.Double >= 0 && s.Triple >= 0 && s.Tetris >= 0, "scoring", "line weights must not be negative")
	check(s.SoftDrop >= 0 && s.HardDrop >= 0, "scoring", "drop weights must not be negative")

	check(c.Levels.Start >= 1, "levels.start", "must be at least 1")
	check(c.Levels.LinesPerLevel >= 1, "levels.lines_per_level", "must be at least 1")
	check(c.Sprint.Lines >= 1, "sprint.lines", "must be at least 1")
	check(c.Effects.FlashTicks >= 0, "effects.flash_ticks", "must not be negative")

	d := c.Difficulty
	check(d.InitialLevel >= 0 && d.InitialLevel <= 1, "difficulty.initial_level", "must be within [0, 1]")
	switch d.Progression.Type {
	case ProgressLines, ProgressTime, ProgressNone:
	default:
		check(false, "difficulty.progression.type", fmt.Sprintf("unknown type %q", d.Progression.Type))
	}
	check(d.Progression.MaxAt >= 0, "difficulty.progression.max_at", "must not be negative")

	return errors.Join(errs...)
}
