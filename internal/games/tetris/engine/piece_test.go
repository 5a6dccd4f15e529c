package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosSubIsFallible(t *testing.T) {
	p, ok := Pos{X: 2, Y: 0}.Sub(Pos{X: 1})
	require.True(t, ok)
	assert.Equal(t, Pos{X: 1, Y: 0}, p)

	_, ok = Pos{X: 0, Y: 3}.Sub(Pos{X: 1})
	assert.False(t, ok, "subtracting past column 0 must fail")

	_, ok = Pos{X: 3, Y: 0}.Sub(Pos{Y: 1})
	assert.False(t, ok, "subtracting past row 0 must fail")
}

func TestKindColorsAreDistinct(t *testing.T) {
	seen := make(map[Cell]Kind)
	for _, k := range AllKinds() {
		c := k.Color()
		require.NotEqual(t, Empty, c, "kind %s", k)
		if other, dup := seen[c]; dup {
			t.Fatalf("kinds %s and %s share color %s", k, other, c)
		}
		seen[c] = k
	}
}

func TestTranslateMovesPivot(t *testing.T) {
	p := NewPiece(S).Translate(Pos{X: 3, Y: 5})

	assert.Equal(t, [4]Pos{{3, 5}, {4, 5}, {4, 6}, {5, 6}}, p.Cells)
	assert.Equal(t, Posf{X: 4, Y: 5.5}, p.Pivot)

	back, ok := p.TrySub(Pos{X: 3, Y: 5})
	require.True(t, ok)
	assert.Equal(t, NewPiece(S), back)
}

func TestSpinTruncatesTowardZero(t *testing.T) {
	// Flat I at row 10, pivot (4.5, 10).
	p := NewPiece(Line).Translate(Pos{X: 3, Y: 10})

	cw := p.Spin(Clockwise)
	assert.Equal(t, [4]Pos{{4, 11}, {4, 10}, {4, 9}, {4, 8}}, cw.Cells)
	assert.Equal(t, p.Pivot, cw.Pivot)

	ccw := p.Spin(CounterClockwise)
	assert.Equal(t, [4]Pos{{4, 8}, {4, 9}, {4, 10}, {4, 11}}, ccw.Cells)
}

func TestSpinOIsStable(t *testing.T) {
	p := NewPiece(O).Translate(Pos{X: 4, Y: 4})
	rotated := p.Spin(Clockwise)

	assert.ElementsMatch(t, p.Cells[:], rotated.Cells[:])
}

func TestSpinRoundTrip(t *testing.T) {
	for _, k := range AllKinds() {
		for _, r := range []Rotation{Clockwise, CounterClockwise} {
			t.Run(k.String()+"_"+r.String(), func(t *testing.T) {
				var g Grid
				start := NewPiece(k).Translate(Pos{X: 4, Y: 10})
				put(&g, start)

				cur := start
				for i := range 4 {
					var ok bool
					cur, ok = spin(&g, cur, r)
					require.True(t, ok, "quarter turn %d", i+1)
					assertDrawn(t, &g, cur)
					assert.Equal(t, 4, g.Filled())
				}
				assert.Equal(t, start.Cells, cur.Cells)
			})
		}
	}
}

func TestSpinKicksUpOnce(t *testing.T) {
	var g Grid
	flat := NewPiece(T).Translate(Pos{X: 3, Y: 0})
	put(&g, flat)

	rotated, ok := spin(&g, flat, Clockwise)

	require.True(t, ok)
	assert.ElementsMatch(t, []Pos{{4, 2}, {4, 1}, {4, 0}, {5, 1}}, rotated.Cells[:])
	assertDrawn(t, &g, rotated)
	assert.Equal(t, 4, g.Filled())
}

func TestSpinRejectedLeavesPieceUnchanged(t *testing.T) {
	var g Grid
	flat := NewPiece(T).Translate(Pos{X: 3, Y: 0})
	put(&g, flat)
	g.Set(4, 2, Red)
	before := g

	got, ok := spin(&g, flat, Clockwise)

	assert.False(t, ok)
	assert.Equal(t, flat, got)
	assert.Equal(t, before, g)
}

func TestSpinRejectsCellsOffGrid(t *testing.T) {
	var g Grid
	// Vertical I hugging the right wall; turning it flat needs x >= Width.
	p := NewPiece(Line).Translate(Pos{X: 8, Y: 10}).Spin(Clockwise)
	require.Equal(t, 9, p.Cells[0].X)
	put(&g, p)
	before := g

	got, ok := spin(&g, p, Clockwise)
	assert.False(t, ok)
	assert.Equal(t, p, got)
	assert.Equal(t, before, g)
}

func TestTrySpinRejectsNegativeCells(t *testing.T) {
	// Vertical Z hugging column 0 with its pivot at (1, 10.5).
	vertical := NewPiece(Z).Translate(Pos{X: 0, Y: 10}).Spin(Clockwise)
	require.ElementsMatch(t, []Pos{{1, 11}, {1, 10}, {0, 10}, {0, 9}}, vertical.Cells[:])

	_, ok := vertical.TrySpin(Clockwise)
	assert.False(t, ok, "turning past column 0 must fail")

	ccw, ok := vertical.TrySpin(CounterClockwise)
	require.True(t, ok)
	assert.ElementsMatch(t, []Pos{{0, 10}, {1, 10}, {1, 9}, {2, 9}}, ccw.Cells[:])

	_, ok = NewPiece(Z).TrySpin(Clockwise)
	assert.False(t, ok, "turning below row 0 must fail")
}

// distinct counts the different cells of p.
func distinct(p Piece) int {
	seen := make(map[Pos]bool, len(p.Cells))
	for _, c := range p.Cells {
		seen[c] = true
	}
	return len(seen)
}

func TestSpinAgainstWallKeepsFourCells(t *testing.T) {
	starts := []Pos{{X: 0, Y: 10}, {X: 1, Y: 10}, {X: 0, Y: 0}, {X: 3, Y: 0}}

	for _, k := range AllKinds() {
		for _, r := range []Rotation{Clockwise, CounterClockwise} {
			for _, at := range starts {
				t.Run(k.String()+"_"+r.String()+"_"+at.String(), func(t *testing.T) {
					var g Grid
					cur := NewPiece(k).Translate(at)
					put(&g, cur)

					for i := range 8 {
						next, ok := spin(&g, cur, r)
						if !ok {
							assert.Equal(t, cur, next, "rejected turn %d must not move the piece", i+1)
						}
						cur = next
						require.Equal(t, 4, distinct(cur), "turn %d: %v", i+1, cur.Cells)
						assert.Equal(t, 4, g.Filled(), "turn %d", i+1)
						assertDrawn(t, &g, cur)
					}
				})
			}
		}
	}
}
