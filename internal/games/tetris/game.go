// Package tetris is the falling-block game. It drives the rules engine from
// platform ticks: input handling, gravity, scoring, levels, the marathon and
// sprint modes and rendering.
package tetris

import (
	"io"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Mode selects the win condition.
type Mode string

const (
	ModeMarathon Mode = "marathon" // Endless, ends on top-out
	ModeSprint   Mode = "sprint"   // Ends in a win after Sprint.Lines lines
)

// Registered game IDs.
const (
	IDMarathon = "tetris"
	IDSprint   = "tetris_sprint"
)

// Package-level settings applied on the next Reset, set by the CLI before
// games are created.
var (
	settingsMu       sync.RWMutex
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a custom config file for new games.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset for new games.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	difficultyPreset = preset
}

// SetLogger sets the logger used by games created afterwards. A nil
// logger discards output.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func currentSettings() (string, config.DifficultyPreset, *log.Logger) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return configPath, difficultyPreset, logger
}

func init() {
	registry.Register(IDMarathon, func() registry.Game {
		return New(ModeMarathon)
	})
	registry.Register(IDSprint, func() registry.Game {
		return New(ModeSprint)
	})
}

// Game implements registry.Game on top of an engine session.
type Game struct {
	mode     Mode
	cfg      config.TetrisConfig
	explicit bool // cfg was given to NewWithConfig and is never reloaded
	log      *log.Logger

	difficulty *config.DifficultyManager
	scorer     Scorer

	session      *engine.Tetris
	tick         uint64
	gravityTimer int
	score        int
	lines        int
	pieces       int

	flashRows  []int
	flashTicks int

	gameOver bool
	won      bool
	paused   bool
}

// New creates a game that loads its config on Reset.
func New(mode Mode) *Game {
	return &Game{
		mode: mode,
		cfg:  config.DefaultTetrisConfig(),
		log:  log.New(io.Discard),
	}
}

// NewWithConfig creates a game with a fixed config. A nil logger discards
// output.
func NewWithConfig(mode Mode, cfg config.TetrisConfig, l *log.Logger) *Game {
	if l == nil {
		l = log.New(io.Discard)
	}
	return &Game{
		mode:     mode,
		cfg:      cfg,
		explicit: true,
		log:      l,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeSprint {
		return IDSprint
	}
	return IDMarathon
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSprint {
		return "Tetris Sprint"
	}
	return "Tetris"
}

// Race reports whether results rank by completion time. Only sprints do.
func (g *Game) Race() bool {
	return g.mode == ModeSprint
}

// Config returns the config in use.
func (g *Game) Config() config.TetrisConfig {
	return g.cfg
}

// Reset starts a new session seeded from cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.explicit {
		g.loadConfig()
	}

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.scorer = NewScorer(g.cfg.Scoring)
	g.session = engine.New(rand.New(rand.NewSource(cfg.Seed)))
	g.tick = 0
	g.gravityTimer = 0
	g.score = 0
	g.lines = 0
	g.pieces = 1
	g.flashRows = nil
	g.flashTicks = 0
	g.gameOver = g.session.IsOver()
	g.won = false
	g.paused = false

	g.log.Debug("game reset", "id", g.ID(), "seed", cfg.Seed, "gravity", g.gravityTicks())
}

func (g *Game) loadConfig() {
	path, preset, l := currentSettings()
	g.log = l

	cfg, err := config.LoadTetris(path)
	if err != nil {
		g.log.Warn("falling back to default config", "err", err)
		cfg = config.DefaultTetrisConfig()
	}
	config.ApplyTetrisPreset(&cfg, preset)
	g.cfg = cfg
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil || g.finished() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	if g.flashTicks > 0 {
		g.flashTicks--
		if g.flashTicks == 0 {
			g.flashRows = nil
		}
	}

	g.handleInput(in)

	if !g.finished() {
		g.gravityTimer++
		if g.gravityTimer >= g.gravityTicks() {
			g.gravityTimer = 0
			res := g.session.Drop()
			if res.Outcome != engine.Falling {
				g.onLock(res.Lines, res.ClearedRows, res.Outcome == engine.GameOver)
			}
		}
	}

	return core.StepResult{State: g.State()}
}

// handleInput maps each action of the frame to at most one engine call.
// A lock caused by input ends processing for the tick.
func (g *Game) handleInput(in core.InputFrame) {
	if in.Has(core.ActionHold) {
		if err := g.session.Hold(); err == nil {
			g.gravityTimer = 0
		} else if g.session.IsOver() {
			g.onTopOut()
			return
		}
	}
	if in.Has(core.ActionLeft) {
		g.session.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		g.session.MoveRight()
	}
	if in.Has(core.ActionRotateCW) {
		g.session.SpinClockwise()
	}
	if in.Has(core.ActionRotateCCW) {
		g.session.SpinCounterClockwise()
	}

	if in.Has(core.ActionSoftDrop) {
		res := g.session.Drop()
		g.gravityTimer = 0
		if res.Outcome == engine.Falling {
			g.score += g.scorer.SoftDrop(1)
		} else {
			g.onLock(res.Lines, res.ClearedRows, res.Outcome == engine.GameOver)
			return
		}
	}

	if in.Has(core.ActionHardDrop) {
		res := g.session.HardDrop()
		g.gravityTimer = 0
		g.score += g.scorer.HardDrop(res.Distance)
		g.onLock(res.Lines, res.ClearedRows, res.GameOver)
	}
}

// onLock books a locked piece: line points at the level the lines were
// cleared on, flash, then the end conditions.
func (g *Game) onLock(lines int, cleared []int, over bool) {
	if lines > 0 {
		g.score += g.scorer.Lines(lines, g.Level())
		g.lines += lines
		g.flashRows = cleared
		g.flashTicks = g.cfg.Effects.FlashTicks
		g.log.Debug("lines cleared", "lines", lines, "total", g.lines, "score", g.score)
	}

	if over {
		g.onTopOut()
		return
	}
	g.pieces++

	if g.mode == ModeSprint && g.lines >= g.cfg.Sprint.Lines {
		g.won = true
		g.log.Info("sprint finished", "ticks", g.tick, "score", g.score)
	}
}

func (g *Game) onTopOut() {
	g.gameOver = true
	g.log.Info("game over", "score", g.score, "lines", g.lines, "pieces", g.pieces)
}

func (g *Game) finished() bool {
	return g.gameOver || g.won
}

// gravityTicks is the current number of ticks between automatic drops.
func (g *Game) gravityTicks() int {
	return g.difficulty.GravityTicks(g.cfg.Gravity, g.lines, int(g.tick))
}

// Level returns the displayed level.
func (g *Game) Level() int {
	return LevelFor(g.cfg.Levels, g.lines)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lines:    g.lines,
		Level:    g.Level(),
		GameOver: g.finished(),
		Won:      g.won,
		Paused:   g.paused,
	}
}
