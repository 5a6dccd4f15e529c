package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// put draws p on g without any legality check.
func put(g *Grid, p Piece) {
	for _, c := range p.Cells {
		g.Set(c.X, c.Y, p.Color)
	}
}

// assertDrawn checks that every visible cell of p is painted in p's color.
func assertDrawn(t *testing.T, g *Grid, p Piece) {
	t.Helper()
	for _, c := range p.Cells {
		if !InBounds(c.X, c.Y) {
			continue
		}
		got, _ := g.Get(c.X, c.Y)
		assert.Equal(t, p.Color, got, "cell %s of %s", c, p.Kind)
	}
}

// blockSpawn fills the two top rows around the spawn columns without
// completing any row.
func blockSpawn(g *Grid) {
	for y := Height - 2; y < Height; y++ {
		for x := 3; x <= 6; x++ {
			g.Set(x, y, Red)
		}
	}
}

func TestPlaceSpawnPositions(t *testing.T) {
	tests := []struct {
		kind Kind
		want []Pos
	}{
		{Line, []Pos{{3, 19}, {4, 19}, {5, 19}, {6, 19}}},
		{O, []Pos{{4, 18}, {4, 19}, {5, 18}, {5, 19}}},
		{T, []Pos{{3, 18}, {4, 18}, {5, 18}, {4, 19}}},
		{Z, []Pos{{3, 19}, {4, 19}, {4, 18}, {5, 18}}},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			var g Grid
			p, ok := place(&g, tc.kind)

			require.True(t, ok)
			assert.ElementsMatch(t, tc.want, p.Cells[:])
			assertDrawn(t, &g, p)
			assert.Equal(t, 4, g.Filled())
		})
	}
}

func TestPlaceFailsOnBlockedTop(t *testing.T) {
	for _, k := range AllKinds() {
		var g Grid
		blockSpawn(&g)
		before := g

		_, ok := place(&g, k)

		assert.False(t, ok, "kind %s", k)
		assert.Equal(t, before, g, "kind %s", k)
	}
}

func TestNewDealsFromBag(t *testing.T) {
	tt := New(inOrder{})

	assert.Equal(t, T, tt.Active().Kind)
	assert.Equal(t, S, tt.NextKind())
	assert.Equal(t, Z, tt.HeldKind())
	assert.True(t, tt.CanHold())
	assert.False(t, tt.IsOver())

	g := tt.Grid()
	assertDrawn(t, &g, tt.Active())
	assert.Equal(t, 4, g.Filled())
}

func TestMovesStopAtWalls(t *testing.T) {
	tt := New(rand.New(rand.NewSource(3)))

	for tt.MoveLeft() {
	}
	minX := Width
	for _, c := range tt.Active().Cells {
		minX = min(minX, c.X)
	}
	assert.Zero(t, minX)

	for tt.MoveRight() {
	}
	maxX := 0
	for _, c := range tt.Active().Cells {
		maxX = max(maxX, c.X)
	}
	assert.Equal(t, Width-1, maxX)

	g := tt.Grid()
	assert.Equal(t, 4, g.Filled())
}

func TestMoveLeftRightRoundTrip(t *testing.T) {
	tt := New(inOrder{})
	start := tt.Active()
	startGrid := tt.Grid()

	require.True(t, tt.MoveLeft())
	require.True(t, tt.MoveRight())

	assert.Equal(t, start, tt.Active())
	assert.Equal(t, startGrid, tt.Grid())
}

func TestActivePieceAlwaysDrawn(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		tt := New(rand.New(rand.NewSource(seed)))
		moves := rand.New(rand.NewSource(seed + 1000))

		for i := 0; i < 400 && !tt.IsOver(); i++ {
			switch moves.Intn(6) {
			case 0:
				tt.MoveLeft()
			case 1:
				tt.MoveRight()
			case 2:
				tt.SpinClockwise()
			case 3:
				tt.SpinCounterClockwise()
			case 4:
				_ = tt.Hold()
			default:
				tt.Drop()
			}
			if tt.IsOver() {
				break
			}
			g := tt.Grid()
			assertDrawn(t, &g, tt.Active())
			assert.Equal(t, tt.Active().Kind.Color(), tt.Active().Color)
		}
	}
}

func TestDropFallsThenLocks(t *testing.T) {
	tt := New(inOrder{})
	next := tt.NextKind()

	// T spawns with its flat side on row 18.
	for range 18 {
		require.Equal(t, Falling, tt.Drop().Outcome)
	}
	res := tt.Drop()

	require.Equal(t, Locked, res.Outcome)
	assert.Zero(t, res.Lines)
	assert.Empty(t, res.ClearedRows)
	assert.Equal(t, next, tt.Active().Kind)

	g := tt.Grid()
	for _, c := range []Pos{{3, 0}, {4, 0}, {5, 0}, {4, 1}} {
		got, _ := g.Get(c.X, c.Y)
		assert.Equal(t, Purple, got, "locked cell %s", c)
	}
}

func TestHardDropMatchesGhost(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		tt := New(rand.New(rand.NewSource(seed)))
		moves := rand.New(rand.NewSource(seed * 31))

		for range 60 {
			for range moves.Intn(5) {
				if moves.Intn(2) == 0 {
					tt.MoveLeft()
				} else {
					tt.MoveRight()
				}
			}

			before := tt.Grid()
			active := tt.Active()
			ghost := tt.Ghost()
			require.Equal(t, before, tt.Grid(), "ghost must not modify the grid")
			require.Equal(t, active, tt.Active())

			res := tt.HardDrop()
			assert.Equal(t, active.Bottom()-ghost.Bottom(), res.Distance, "seed %d", seed)
			if res.GameOver {
				break
			}

			g := tt.Grid()
			for _, c := range ghost.Cells {
				if !InBounds(c.X, c.Y) || containsRow(res.ClearedRows, c.Y) {
					continue
				}
				assertLockedAt(t, &g, ghost, c, res.ClearedRows)
			}
		}
	}
}

func containsRow(rows []int, y int) bool {
	for _, r := range rows {
		if r == y {
			return true
		}
	}
	return false
}

// assertLockedAt checks that ghost cell c landed where expected after rows
// below it were collapsed.
func assertLockedAt(t *testing.T, g *Grid, ghost Piece, c Pos, cleared []int) {
	t.Helper()
	y := c.Y
	for _, r := range cleared {
		if r < c.Y {
			y--
		}
	}
	got, _ := g.Get(c.X, y)
	assert.Equal(t, ghost.Color, got, "ghost cell %s", c)
}

func TestLineClearScenario(t *testing.T) {
	tt := New(rand.New(rand.NewSource(11)))

	var g Grid
	for x := range Width - 1 {
		g.Set(x, 0, Red)
	}
	for x := range 4 {
		g.Set(x, 1, Blue)
	}
	vertical := NewPiece(Line).Translate(Pos{X: 8, Y: 3}).Spin(Clockwise)
	require.ElementsMatch(t, []Pos{{9, 1}, {9, 2}, {9, 3}, {9, 4}}, vertical.Cells[:])
	put(&g, vertical)
	tt.grid = g
	tt.active = vertical
	next := tt.NextKind()

	res := tt.HardDrop()

	require.False(t, res.GameOver)
	assert.Equal(t, 1, res.Distance)
	assert.Equal(t, 1, res.Lines)
	assert.Equal(t, []int{0}, res.ClearedRows)
	assert.Equal(t, next, tt.Active().Kind)

	got := tt.Grid()
	assert.Equal(t,
		[Width]Cell{Blue, Blue, Blue, Blue, Empty, Empty, Empty, Empty, Empty, Cyan},
		got.Row(0))
	assert.Equal(t, [Width]Cell{9: Cyan}, got.Row(1))
	assert.Equal(t, [Width]Cell{9: Cyan}, got.Row(2))
	assert.Equal(t, [Width]Cell{}, got.Row(3))

	top := got.Row(Height - 1)
	for x, c := range top {
		if c != Empty {
			assert.True(t, tt.Active().Occupies(Pos{X: x, Y: Height - 1}),
				"top row cell %d belongs to the new piece", x)
		}
	}
}

func TestHoldSwapsOncePerPiece(t *testing.T) {
	tt := New(inOrder{})

	require.NoError(t, tt.Hold())
	assert.Equal(t, Z, tt.Active().Kind)
	assert.Equal(t, T, tt.HeldKind())
	cells := tt.Active().Cells
	assert.ElementsMatch(t, []Pos{{3, 19}, {4, 19}, {4, 18}, {5, 18}}, cells[:])
	assert.False(t, tt.CanHold())

	g := tt.Grid()
	assert.Equal(t, 4, g.Filled(), "the swapped-out piece must be erased")
	assertDrawn(t, &g, tt.Active())

	active, grid := tt.Active(), tt.Grid()
	err := tt.Hold()
	require.ErrorIs(t, err, ErrHoldUsed)
	assert.Equal(t, active, tt.Active())
	assert.Equal(t, T, tt.HeldKind())
	assert.Equal(t, grid, tt.Grid())

	tt.HardDrop()
	assert.True(t, tt.CanHold())
	require.NoError(t, tt.Hold())
}

func TestGameOverOnBlockedSpawn(t *testing.T) {
	tt := New(rand.New(rand.NewSource(5)))

	var g Grid
	blockSpawn(&g)
	floor := NewPiece(O)
	put(&g, floor)
	tt.grid = g
	tt.active = floor

	res := tt.Drop()

	assert.Equal(t, GameOver, res.Outcome)
	assert.True(t, tt.IsOver())
	assert.Equal(t, g, tt.Grid(), "a failed spawn must leave the grid untouched")

	assert.False(t, tt.MoveLeft())
	assert.False(t, tt.Spin(Clockwise))
	assert.ErrorIs(t, tt.Hold(), ErrGameOver)
	assert.Equal(t, GameOver, tt.Drop().Outcome)
	assert.True(t, tt.HardDrop().GameOver)
	assert.False(t, tt.CanHold())
	assert.Equal(t, g, tt.Grid())
}

func TestHoldIntoBlockedSpawnEndsGame(t *testing.T) {
	tt := New(inOrder{})

	var g Grid
	blockSpawn(&g)
	floor := NewPiece(O)
	put(&g, floor)
	tt.grid = g
	tt.active = floor

	err := tt.Hold()

	require.ErrorIs(t, err, ErrGameOver)
	assert.True(t, tt.IsOver())
	assert.Equal(t, g, tt.Grid())
	assert.Equal(t, Z, tt.HeldKind())
}

func TestNewWithGridBlockedStartsOver(t *testing.T) {
	var g Grid
	for x := 3; x <= 6; x++ {
		g.Set(x, Height-1, Orange)
	}

	tt := NewWithGrid(rand.New(rand.NewSource(9)), g)

	assert.True(t, tt.IsOver())
	assert.Equal(t, g, tt.Grid())
	assert.Equal(t, GameOver, tt.Drop().Outcome)
}

func TestCellsListsBottomRowFirst(t *testing.T) {
	var g Grid
	g.Set(2, 0, Green)
	g.Set(0, 1, Blue)

	tt := NewWithGrid(inOrder{}, g)
	cells := tt.Cells()

	require.Len(t, cells, 6)
	assert.Equal(t, CellInfo{Color: Green, X: 2, Y: 0}, cells[0])
	assert.Equal(t, CellInfo{Color: Blue, X: 0, Y: 1}, cells[1])
	for i := 1; i < len(cells); i++ {
		prev, cur := cells[i-1], cells[i]
		assert.True(t, prev.Y < cur.Y || (prev.Y == cur.Y && prev.X < cur.X))
	}
}

func TestPreviewCellsUseLocalFrame(t *testing.T) {
	tt := New(inOrder{})

	next := tt.NextCells()
	for i, c := range NewPiece(S).Cells {
		assert.Equal(t, CellInfo{Color: Green, X: c.X, Y: c.Y}, next[i])
	}

	held := tt.HeldCells()
	for i, c := range NewPiece(Z).Cells {
		assert.Equal(t, CellInfo{Color: Red, X: c.X, Y: c.Y}, held[i])
	}
}
