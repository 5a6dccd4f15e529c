package engine

// Direction is a one-cell translation of the active piece.
type Direction int

const (
	Left Direction = iota
	Right
	Down
	// Up exists only for the rotation kick; players cannot move a piece up.
	Up
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Down:
		return "down"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// shifted returns p moved one cell in dir. Moving left of column 0 or below
// row 0 fails through the fallible subtraction.
func shifted(p Piece, dir Direction) (Piece, bool) {
	switch dir {
	case Left:
		return p.TrySub(Pos{X: 1})
	case Right:
		return p.Translate(Pos{X: 1}), true
	case Down:
		return p.TrySub(Pos{Y: 1})
	case Up:
		return p.Translate(Pos{Y: 1}), true
	}
	return p, false
}

// fits reports whether to may replace from on g. Cells owned by from count
// as free, so a piece never collides with itself. Cells above the top row
// are allowed: pieces spawn there and fall into view.
func fits(g *Grid, from, to Piece) bool {
	for _, c := range to.Cells {
		if c.X < 0 || c.X >= Width || c.Y < 0 {
			return false
		}
		if c.Y >= Height {
			continue
		}
		if cell, _ := g.Get(c.X, c.Y); cell != Empty && !from.Occupies(c) {
			return false
		}
	}
	return true
}

// fitsInside is fits without the open top: every cell must be on the grid.
// Rotations are checked this way.
func fitsInside(g *Grid, from, to Piece) bool {
	for _, c := range to.Cells {
		if !InBounds(c.X, c.Y) {
			return false
		}
	}
	return fits(g, from, to)
}

// commit erases from and draws to. Off-grid cells are skipped.
func commit(g *Grid, from, to Piece) {
	for _, c := range from.Cells {
		g.Set(c.X, c.Y, Empty)
	}
	for _, c := range to.Cells {
		g.Set(c.X, c.Y, to.Color)
	}
}

// step moves p one cell in dir on g if the destination is free, committing
// the move to the grid. On failure g is untouched and p is returned as is.
func step(g *Grid, p Piece, dir Direction) (Piece, bool) {
	next, ok := shifted(p, dir)
	if !ok || !fits(g, p, next) {
		return p, false
	}
	commit(g, p, next)
	return next, true
}

// spin rotates p on g, retrying once from one row higher when the rotation
// in place is blocked. On failure neither g nor p changes.
func spin(g *Grid, p Piece, r Rotation) (Piece, bool) {
	if rotated, ok := p.TrySpin(r); ok && fitsInside(g, p, rotated) {
		commit(g, p, rotated)
		return rotated, true
	}

	up, _ := shifted(p, Up)
	if !fits(g, p, up) {
		return p, false
	}
	rotated, ok := up.TrySpin(r)
	if !ok || !fitsInside(g, p, rotated) {
		return p, false
	}
	commit(g, p, rotated)
	return rotated, true
}

// restingPlace returns where p would come to rest if dropped straight down,
// without touching g.
func restingPlace(g *Grid, p Piece) Piece {
	cur := p
	for {
		next, ok := shifted(cur, Down)
		if !ok || !fits(g, p, next) {
			return cur
		}
		cur = next
	}
}

// place puts a fresh piece of kind k at the spawn position: centered,
// one row above the visible grid, then lowered into view. Only the first
// drop is required; a blocked first drop means the piece cannot enter the
// well and g is left untouched.
func place(g *Grid, k Kind) (Piece, bool) {
	offset := Width/2 - 1
	if k != O {
		offset--
	}
	p := NewPiece(k).Translate(Pos{X: offset, Y: Height})

	p, ok := step(g, p, Down)
	if !ok {
		return p, false
	}
	// The flat I piece is one row tall and is already fully visible.
	if k != Line {
		p, _ = step(g, p, Down)
	}
	return p, true
}
