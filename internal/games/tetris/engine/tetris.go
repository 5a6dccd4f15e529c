// Package engine is the rules core of the falling-block game: the
// playfield, piece geometry, the 7-bag randomizer, movement and rotation
// legality, locking, line clearing, hold and ghost projection.
//
// The engine is synchronous and holds no locks. A session must be driven
// from a single goroutine (or behind the caller's own mutex).
package engine

import "errors"

var (
	// ErrHoldUsed is returned by Hold when the current piece was already
	// swapped in by a previous hold.
	ErrHoldUsed = errors.New("engine: hold already used for this piece")

	// ErrGameOver is returned by operations on a finished session.
	ErrGameOver = errors.New("engine: game over")
)

// Outcome tells what a single gravity step did.
type Outcome int

const (
	// Falling means the piece moved down one row.
	Falling Outcome = iota
	// Locked means the piece could not move, became part of the grid and
	// the next piece was spawned.
	Locked
	// GameOver means the piece locked but the next piece could not enter
	// the well. The session is finished.
	GameOver
)

func (o Outcome) String() string {
	switch o {
	case Falling:
		return "falling"
	case Locked:
		return "locked"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// DropResult is the outcome of Drop. Lines and ClearedRows are only set
// when the piece locked (Locked or GameOver).
type DropResult struct {
	Outcome     Outcome
	Lines       int
	ClearedRows []int // Row indexes as they were before collapsing
}

// HardDropResult is the outcome of HardDrop.
type HardDropResult struct {
	Distance    int // Rows the piece fell before locking
	Lines       int
	ClearedRows []int
	GameOver    bool
}

// CellInfo is one colored square, for display.
type CellInfo struct {
	Color Cell
	X, Y  int
}

// Tetris is one game session. The active piece is always drawn into the
// grid with its own color; there is no separate overlay.
type Tetris struct {
	grid    Grid
	active  Piece
	next    Kind
	held    Kind
	bag     *Bag
	swapped bool // Hold used since the last lock
	over    bool
}

// New starts a session on an empty grid. The first three bag draws become
// the active, next and held pieces.
func New(rng Shuffler) *Tetris {
	return NewWithGrid(rng, Grid{})
}

// NewWithGrid starts a session on a prepared grid. If the first piece
// cannot be placed the session starts finished and g is kept as given.
func NewWithGrid(rng Shuffler, g Grid) *Tetris {
	t := &Tetris{
		grid: g,
		bag:  NewBag(rng),
	}
	first := t.bag.Next()
	t.next = t.bag.Next()
	t.held = t.bag.Next()

	active, ok := place(&t.grid, first)
	t.active = active
	t.over = !ok
	return t
}

// MoveLeft shifts the active piece one column left.
func (t *Tetris) MoveLeft() bool {
	return t.move(Left)
}

// MoveRight shifts the active piece one column right.
func (t *Tetris) MoveRight() bool {
	return t.move(Right)
}

func (t *Tetris) move(dir Direction) bool {
	if t.over {
		return false
	}
	p, ok := step(&t.grid, t.active, dir)
	t.active = p
	return ok
}

// SpinClockwise rotates the active piece clockwise if possible.
func (t *Tetris) SpinClockwise() {
	t.Spin(Clockwise)
}

// SpinCounterClockwise rotates the active piece counter-clockwise if possible.
func (t *Tetris) SpinCounterClockwise() {
	t.Spin(CounterClockwise)
}

// Spin rotates the active piece and reports whether it turned. A blocked
// rotation is retried once from one row higher; if that fails too the
// piece stays exactly where it was.
func (t *Tetris) Spin(r Rotation) bool {
	if t.over {
		return false
	}
	p, ok := spin(&t.grid, t.active, r)
	t.active = p
	return ok
}

// Drop applies one row of gravity. When the piece cannot descend it locks:
// full rows are cleared, the hold becomes available again and the next
// piece spawns.
func (t *Tetris) Drop() DropResult {
	if t.over {
		return DropResult{Outcome: GameOver}
	}
	if t.move(Down) {
		return DropResult{Outcome: Falling}
	}
	return t.lock()
}

// HardDrop drops the active piece as far as it goes and locks it.
func (t *Tetris) HardDrop() HardDropResult {
	if t.over {
		return HardDropResult{GameOver: true}
	}
	distance := 0
	for t.move(Down) {
		distance++
	}
	res := t.lock()
	return HardDropResult{
		Distance:    distance,
		Lines:       res.Lines,
		ClearedRows: res.ClearedRows,
		GameOver:    res.Outcome == GameOver,
	}
}

// lock freezes the active piece where it is and brings in the next one.
func (t *Tetris) lock() DropResult {
	t.swapped = false

	rows := t.grid.FullRows()
	lines := t.grid.ClearLines()

	p, ok := place(&t.grid, t.next)
	if !ok {
		t.over = true
		return DropResult{Outcome: GameOver, Lines: lines, ClearedRows: rows}
	}
	t.active = p
	t.next = t.bag.Next()
	return DropResult{Outcome: Locked, Lines: lines, ClearedRows: rows}
}

// Hold swaps the active piece with the held one. The incoming piece spawns
// at the top like a new piece. Only one hold is allowed per locked piece.
func (t *Tetris) Hold() error {
	if t.over {
		return ErrGameOver
	}
	if t.swapped {
		return ErrHoldUsed
	}

	g := t.grid
	for _, c := range t.active.Cells {
		g.Set(c.X, c.Y, Empty)
	}
	p, ok := place(&g, t.held)
	if !ok {
		t.over = true
		return ErrGameOver
	}

	t.grid = g
	t.held = t.active.Kind
	t.active = p
	t.swapped = true
	return nil
}

// Ghost returns the active piece moved to where a hard drop would leave it.
// It changes nothing.
func (t *Tetris) Ghost() Piece {
	return restingPlace(&t.grid, t.active)
}

// GhostCells returns the cells of Ghost.
func (t *Tetris) GhostCells() [4]Pos {
	return t.Ghost().Cells
}

// Cells lists every occupied grid cell, bottom row first.
func (t *Tetris) Cells() []CellInfo {
	cells := make([]CellInfo, 0, t.grid.Filled())
	for y := range Height {
		for x := range Width {
			if c, _ := t.grid.Get(x, y); c != Empty {
				cells = append(cells, CellInfo{Color: c, X: x, Y: y})
			}
		}
	}
	return cells
}

// NextCells returns the next piece in its local frame.
func (t *Tetris) NextCells() [4]CellInfo {
	return previewCells(t.next)
}

// HeldCells returns the held piece in its local frame.
func (t *Tetris) HeldCells() [4]CellInfo {
	return previewCells(t.held)
}

func previewCells(k Kind) [4]CellInfo {
	var out [4]CellInfo
	p := NewPiece(k)
	for i, c := range p.Cells {
		out[i] = CellInfo{Color: p.Color, X: c.X, Y: c.Y}
	}
	return out
}

// Active returns the falling piece.
func (t *Tetris) Active() Piece {
	return t.active
}

// NextKind returns the kind that spawns after the active piece locks.
func (t *Tetris) NextKind() Kind {
	return t.next
}

// HeldKind returns the kind Hold would bring in.
func (t *Tetris) HeldKind() Kind {
	return t.held
}

// Grid returns a copy of the playfield.
func (t *Tetris) Grid() Grid {
	return t.grid
}

// CanHold reports whether Hold would be accepted.
func (t *Tetris) CanHold() bool {
	return !t.over && !t.swapped
}

// IsOver reports whether the session has ended.
func (t *Tetris) IsOver() bool {
	return t.over
}
