package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultTetrisConfig().Validate())
}

func TestEmbeddedDefaultMatchesBuiltin(t *testing.T) {
	cfg, err := parseTetris(defaultTetrisYAML, "embedded")
	require.NoError(t, err)
	assert.Equal(t, DefaultTetrisConfig(), cfg)
}

func TestLoadTetrisFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTetrisConfig(), cfg)
}

func TestLoadTetrisUserDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".tetris", "configs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, TetrisFile), []byte("sprint:\n  lines: 20\n"), 0o600))

	cfg, err := LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Sprint.Lines)
}

func TestLoadTetrisCustomPathKeepsUnsetDefaults(t *testing.T) {
	path := writeFile(t, "custom.yaml", `
gravity:
  start_ticks: 30
keys:
  hard_drop: [enter]
`)

	cfg, err := LoadTetris(path)
	require.NoError(t, err)

	want := DefaultTetrisConfig()
	want.Gravity.StartTicks = 30
	want.Keys.HardDrop = []string{"enter"}
	assert.Equal(t, want, cfg)
}

func TestLoadTetrisErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTetris(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "gravity: [1, 2\n")
		_, err := LoadTetris(path)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalid)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeFile(t, "invalid.yaml", `
gravity:
  start_ticks: 2
  min_ticks: 5
levels:
  lines_per_level: 0
`)
		_, err := LoadTetris(path)
		require.ErrorIs(t, err, ErrInvalid)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "gravity.start_ticks", verr.Field)
		assert.Contains(t, err.Error(), "levels.lines_per_level")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TetrisConfig)
		field  string
	}{
		{"zero min ticks", func(c *TetrisConfig) { c.Gravity.MinTicks = 0 }, "gravity.min_ticks"},
		{"negative weight", func(c *TetrisConfig) { c.Scoring.Tetris = -1 }, "scoring"},
		{"negative drop weight", func(c *TetrisConfig) { c.Scoring.HardDrop = -2 }, "scoring"},
		{"level zero", func(c *TetrisConfig) { c.Levels.Start = 0 }, "levels.start"},
		{"empty sprint", func(c *TetrisConfig) { c.Sprint.Lines = 0 }, "sprint.lines"},
		{"negative flash", func(c *TetrisConfig) { c.Effects.FlashTicks = -1 }, "effects.flash_ticks"},
		{"initial level above one", func(c *TetrisConfig) { c.Difficulty.InitialLevel = 1.5 }, "difficulty.initial_level"},
		{"unknown progression", func(c *TetrisConfig) { c.Difficulty.Progression.Type = "score" }, "difficulty.progression.type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestApplyTetrisPreset(t *testing.T) {
	t.Run("fixed disables progression", func(t *testing.T) {
		cfg := DefaultTetrisConfig()
		ApplyTetrisPreset(&cfg, DifficultyFixed)
		assert.False(t, cfg.Difficulty.Enabled)
	})

	t.Run("hard starts further along", func(t *testing.T) {
		cfg := DefaultTetrisConfig()
		cfg.Difficulty.Enabled = false
		ApplyTetrisPreset(&cfg, DifficultyHard)
		assert.True(t, cfg.Difficulty.Enabled)
		assert.InDelta(t, 0.7, cfg.Difficulty.InitialLevel, 1e-9)
	})

	t.Run("easy slows starting gravity", func(t *testing.T) {
		cfg := DefaultTetrisConfig()
		ApplyTetrisPreset(&cfg, DifficultyEasy)
		assert.Equal(t, 60, cfg.Gravity.StartTicks)
	})

	t.Run("empty preset changes nothing", func(t *testing.T) {
		cfg := DefaultTetrisConfig()
		ApplyTetrisPreset(&cfg, "")
		assert.Equal(t, DefaultTetrisConfig(), cfg)
	})
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("hard")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p)

	_, err = ParsePreset("insane")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestGravityTicks(t *testing.T) {
	g := GravityConfig{StartTicks: 48, MinTicks: 3}

	tests := []struct {
		name  string
		cfg   DifficultyConfig
		lines int
		ticks int
		want  int
	}{
		{"start", DefaultTetrisConfig().Difficulty, 0, 0, 48},
		{"halfway", DefaultTetrisConfig().Difficulty, 75, 0, 25},
		{"maxed out", DefaultTetrisConfig().Difficulty, 150, 0, 3},
		{"past max", DefaultTetrisConfig().Difficulty, 900, 0, 3},
		{
			"disabled keeps initial level",
			DifficultyConfig{Enabled: false, InitialLevel: 1, Progression: ProgressionConfig{Type: ProgressLines, MaxAt: 10}},
			100, 0, 3,
		},
		{
			"time progression",
			DifficultyConfig{Enabled: true, Progression: ProgressionConfig{Type: ProgressTime, MaxAt: 1000}},
			0, 1000, 3,
		},
		{
			"none progression",
			DifficultyConfig{Enabled: true, Progression: ProgressionConfig{Type: ProgressNone, MaxAt: 10}},
			50, 50, 48,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dm := NewDifficultyManager(tc.cfg)
			assert.Equal(t, tc.want, dm.GravityTicks(g, tc.lines, tc.ticks))
		})
	}
}

func TestGravityTicksNeverZero(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{Enabled: true, InitialLevel: 1, Progression: ProgressionConfig{Type: ProgressLines}})
	assert.Equal(t, 1, dm.GravityTicks(GravityConfig{StartTicks: 0, MinTicks: 0}, 0, 0))
}

func TestLoadServerFromEnv(t *testing.T) {
	t.Setenv("TETRIS_SSH_ADDR", ":2222")
	t.Setenv("TETRIS_IDLE_TIMEOUT", "5m")

	cfg, err := LoadServer("")
	require.NoError(t, err)

	assert.Equal(t, ":2222", cfg.Address)
	assert.Equal(t, 5*time.Minute, cfg.IdleTimeout)
	assert.Equal(t, "~/.tetris/scores.db", cfg.DBPath)
	assert.Equal(t, "tetris", cfg.Mode)
	assert.Equal(t, 64, cfg.MaxSessions)
	assert.Empty(t, cfg.HostKeyPath)
}

func TestLoadServerFileWithEnvOverride(t *testing.T) {
	path := writeFile(t, "server.yaml", `
address: ":3000"
host_key: /etc/tetris/host_key
mode: tetris_sprint
`)
	t.Setenv("TETRIS_SSH_ADDR", ":4000")

	cfg, err := LoadServer(path)
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.Address)
	assert.Equal(t, "/etc/tetris/host_key", cfg.HostKeyPath)
	assert.Equal(t, "tetris_sprint", cfg.Mode)
}

func TestLoadServerRejectsZeroSessions(t *testing.T) {
	t.Setenv("TETRIS_MAX_SESSIONS", "0")

	_, err := LoadServer("")
	assert.ErrorIs(t, err, ErrInvalid)
}
