package engine

// Playfield dimensions. Row 0 is the bottom of the well and y grows upward.
const (
	Width  = 10
	Height = 20
)

// Cell is the content of one playfield square: Empty or a piece color.
type Cell uint8

const (
	Empty Cell = iota
	Cyan
	Yellow
	Purple
	Green
	Red
	Blue
	Orange
)

// String returns the color name of the cell.
func (c Cell) String() string {
	switch c {
	case Empty:
		return "Empty"
	case Cyan:
		return "Cyan"
	case Yellow:
		return "Yellow"
	case Purple:
		return "Purple"
	case Green:
		return "Green"
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	case Orange:
		return "Orange"
	default:
		return "Unknown"
	}
}

// Grid is the playfield, stored row-major starting at the bottom row.
// It is a plain array, so assigning a Grid copies it.
type Grid struct {
	cells [Width * Height]Cell
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Get returns the cell at (x, y). The second result is false when the
// coordinates are outside the grid.
func (g *Grid) Get(x, y int) (Cell, bool) {
	if !InBounds(x, y) {
		return Empty, false
	}
	return g.cells[y*Width+x], true
}

// Set writes c at (x, y). Out-of-bounds writes are ignored and report false.
func (g *Grid) Set(x, y int, c Cell) bool {
	if !InBounds(x, y) {
		return false
	}
	g.cells[y*Width+x] = c
	return true
}

// Row returns a copy of row y, or an empty row when y is out of range.
func (g *Grid) Row(y int) [Width]Cell {
	var row [Width]Cell
	if y < 0 || y >= Height {
		return row
	}
	copy(row[:], g.cells[y*Width:(y+1)*Width])
	return row
}

// Filled returns the number of non-empty cells.
func (g *Grid) Filled() int {
	n := 0
	for _, c := range g.cells {
		if c != Empty {
			n++
		}
	}
	return n
}
