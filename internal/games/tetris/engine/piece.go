package engine

import "fmt"

// Kind identifies one of the seven tetrominoes.
type Kind uint8

const (
	Line Kind = iota
	O
	L
	J
	Z
	S
	T
)

// NumKinds is the number of distinct tetrominoes.
const NumKinds = 7

// AllKinds returns every kind in canonical order.
func AllKinds() [NumKinds]Kind {
	return [NumKinds]Kind{Line, O, L, J, Z, S, T}
}

// String returns the conventional one-letter name.
func (k Kind) String() string {
	switch k {
	case Line:
		return "I"
	case O:
		return "O"
	case L:
		return "L"
	case J:
		return "J"
	case Z:
		return "Z"
	case S:
		return "S"
	case T:
		return "T"
	default:
		return "?"
	}
}

// Color returns the cell color pieces of this kind are drawn with.
func (k Kind) Color() Cell {
	switch k {
	case Line:
		return Cyan
	case O:
		return Yellow
	case T:
		return Purple
	case L:
		return Orange
	case J:
		return Blue
	case S:
		return Green
	case Z:
		return Red
	default:
		return Empty
	}
}

// Pos is an integer grid coordinate.
type Pos struct {
	X, Y int
}

// Add returns p + q.
func (p Pos) Add(q Pos) Pos {
	return Pos{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q. Grid coordinates never go negative, so the result is
// rejected (ok == false) when either component would drop below zero.
func (p Pos) Sub(q Pos) (Pos, bool) {
	if p.X < q.X || p.Y < q.Y {
		return p, false
	}
	return Pos{X: p.X - q.X, Y: p.Y - q.Y}, true
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Posf is a continuous coordinate, used for rotation pivots.
type Posf struct {
	X, Y float64
}

func posf(p Pos) Posf {
	return Posf{X: float64(p.X), Y: float64(p.Y)}
}

// trunc converts to grid coordinates truncating toward zero.
func (p Posf) trunc() Pos {
	return Pos{X: int(p.X), Y: int(p.Y)}
}

// Rotation is a quarter-turn direction.
type Rotation int

const (
	Clockwise Rotation = iota
	CounterClockwise
)

func (r Rotation) String() string {
	if r == Clockwise {
		return "cw"
	}
	return "ccw"
}

// shape is the local geometry of a kind: four cells and a rotation pivot.
// Pivots sit on half cells for the shapes whose center is not a cell.
type shape struct {
	cells [4]Pos
	pivot Posf
}

var shapes = [NumKinds]shape{
	Line: {cells: [4]Pos{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, pivot: Posf{1.5, 0}},
	O:    {cells: [4]Pos{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, pivot: Posf{0.5, 0.5}},
	J:    {cells: [4]Pos{{0, 0}, {0, 1}, {1, 0}, {2, 0}}, pivot: Posf{1, 0.5}},
	L:    {cells: [4]Pos{{0, 0}, {1, 0}, {2, 0}, {2, 1}}, pivot: Posf{1, 0.5}},
	S:    {cells: [4]Pos{{0, 0}, {1, 0}, {1, 1}, {2, 1}}, pivot: Posf{1, 0.5}},
	Z:    {cells: [4]Pos{{0, 1}, {1, 1}, {1, 0}, {2, 0}}, pivot: Posf{1, 0.5}},
	T:    {cells: [4]Pos{{0, 0}, {1, 0}, {2, 0}, {1, 1}}, pivot: Posf{1, 0}},
}

// Piece is a tetromino placed somewhere in grid space. It is a value:
// every transformation returns a new Piece and leaves the receiver alone.
type Piece struct {
	Cells [4]Pos
	Pivot Posf
	Kind  Kind
	Color Cell
}

// NewPiece returns a piece of kind k in its local frame, lowest-left cell at
// the origin.
func NewPiece(k Kind) Piece {
	s := shapes[k]
	return Piece{
		Cells: s.cells,
		Pivot: s.pivot,
		Kind:  k,
		Color: k.Color(),
	}
}

// Translate moves the piece and its pivot by d.
func (p Piece) Translate(d Pos) Piece {
	for i := range p.Cells {
		p.Cells[i] = p.Cells[i].Add(d)
	}
	p.Pivot.X += float64(d.X)
	p.Pivot.Y += float64(d.Y)
	return p
}

// TrySub moves the piece by -d. It fails if any cell would leave the
// non-negative quadrant.
func (p Piece) TrySub(d Pos) (Piece, bool) {
	for i := range p.Cells {
		c, ok := p.Cells[i].Sub(d)
		if !ok {
			return p, false
		}
		p.Cells[i] = c
	}
	p.Pivot.X -= float64(d.X)
	p.Pivot.Y -= float64(d.Y)
	return p, true
}

// Spin rotates the piece a quarter turn about its pivot. Rotated positions
// are truncated toward zero onto the grid.
func (p Piece) Spin(r Rotation) Piece {
	p, _ = p.TrySpin(r)
	return p
}

// TrySpin is Spin that fails when a rotated cell lands left of column 0 or
// below row 0. Truncation would otherwise fold such a cell onto column or
// row 0, on top of another cell of the piece.
func (p Piece) TrySpin(r Rotation) (Piece, bool) {
	ok := true
	for i, c := range p.Cells {
		rel := posf(c)
		rel.X -= p.Pivot.X
		rel.Y -= p.Pivot.Y
		if r == Clockwise {
			rel.X, rel.Y = rel.Y, -rel.X
		} else {
			rel.X, rel.Y = -rel.Y, rel.X
		}
		rel.X += p.Pivot.X
		rel.Y += p.Pivot.Y
		if rel.X < 0 || rel.Y < 0 {
			ok = false
		}
		p.Cells[i] = rel.trunc()
	}
	return p, ok
}

// Occupies reports whether c is one of the piece's cells.
func (p Piece) Occupies(c Pos) bool {
	for _, own := range p.Cells {
		if own == c {
			return true
		}
	}
	return false
}

// Bottom returns the lowest row the piece covers.
func (p Piece) Bottom() int {
	y := p.Cells[0].Y
	for _, c := range p.Cells[1:] {
		y = min(y, c.Y)
	}
	return y
}
