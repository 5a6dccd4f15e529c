package engine

// rowFull reports whether every cell of row y is occupied.
func (g *Grid) rowFull(y int) bool {
	for _, c := range g.cells[y*Width : (y+1)*Width] {
		if c == Empty {
			return false
		}
	}
	return true
}

// FullRow returns the lowest full row.
func (g *Grid) FullRow() (int, bool) {
	for y := range Height {
		if g.rowFull(y) {
			return y, true
		}
	}
	return 0, false
}

// FullRows returns every full row, bottom to top. It does not modify the grid.
func (g *Grid) FullRows() []int {
	var rows []int
	for y := range Height {
		if g.rowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// CollapseRow removes row y: every row above it moves down by one and the
// top row becomes empty.
func (g *Grid) CollapseRow(y int) {
	if y < 0 || y >= Height {
		return
	}
	copy(g.cells[y*Width:(Height-1)*Width], g.cells[(y+1)*Width:])
	top := g.cells[(Height-1)*Width:]
	for i := range top {
		top[i] = Empty
	}
}

// ClearLines collapses full rows until none is left and returns how many
// were removed. The scan restarts after every collapse, so non-adjacent
// full rows are all handled.
func (g *Grid) ClearLines() int {
	n := 0
	for {
		y, ok := g.FullRow()
		if !ok {
			return n
		}
		g.CollapseRow(y)
		n++
	}
}
