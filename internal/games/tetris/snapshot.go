package tetris

import "github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"

// Phase is the coarse state of a game.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhasePaused   Phase = "paused"
	PhaseGameOver Phase = "game_over"
	PhaseWon      Phase = "won"
)

// Snapshot captures the game state for determinism tests and debugging.
// It is comparable with ==.
type Snapshot struct {
	Tick         uint64
	Mode         Mode
	Phase        Phase
	Score        int
	Lines        int
	Level        int
	Pieces       int
	GravityTicks int
	Active       engine.Kind
	ActiveCells  [4]engine.Pos
	Next         engine.Kind
	Held         engine.Kind
	CanHold      bool
	Grid         engine.Grid
}

// Snapshot returns the current game snapshot. It must not be called before
// Reset.
func (g *Game) Snapshot() Snapshot {
	phase := PhasePlaying
	switch {
	case g.won:
		phase = PhaseWon
	case g.gameOver:
		phase = PhaseGameOver
	case g.paused:
		phase = PhasePaused
	}

	active := g.session.Active()
	return Snapshot{
		Tick:         g.tick,
		Mode:         g.mode,
		Phase:        phase,
		Score:        g.score,
		Lines:        g.lines,
		Level:        g.Level(),
		Pieces:       g.pieces,
		GravityTicks: g.gravityTicks(),
		Active:       active.Kind,
		ActiveCells:  active.Cells,
		Next:         g.session.NextKind(),
		Held:         g.session.HeldKind(),
		CanHold:      g.session.CanHold(),
		Grid:         g.session.Grid(),
	}
}
