package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inOrder never reorders, so bags deal the canonical order from the end.
type inOrder struct{}

func (inOrder) Shuffle(int, func(i, j int)) {}

func TestBagDealsPermutations(t *testing.T) {
	b := NewBag(rand.New(rand.NewSource(42)))
	all := AllKinds()

	counts := make(map[Kind]int)
	for block := range 10 {
		drawn := make([]Kind, 0, NumKinds)
		for range NumKinds {
			k := b.Next()
			drawn = append(drawn, k)
			counts[k]++
		}
		require.ElementsMatch(t, all[:], drawn, "block %d", block)
	}

	for _, k := range all {
		assert.Equal(t, 10, counts[k], "kind %s", k)
	}
}

func TestBagPopsFromTheEnd(t *testing.T) {
	b := NewBag(inOrder{})

	var got []Kind
	for range NumKinds {
		got = append(got, b.Next())
	}

	assert.Equal(t, []Kind{T, S, Z, J, L, O, Line}, got)
}

func TestBagRemaining(t *testing.T) {
	b := NewBag(inOrder{})
	require.Equal(t, NumKinds, b.Remaining())

	b.Next()
	assert.Equal(t, NumKinds-1, b.Remaining())

	for range NumKinds - 1 {
		b.Next()
	}
	assert.Zero(t, b.Remaining())

	b.Next()
	assert.Equal(t, NumKinds-1, b.Remaining(), "an empty bag refills before dealing")
}

func TestBagIsDeterministicPerSeed(t *testing.T) {
	a := NewBag(rand.New(rand.NewSource(7)))
	b := NewBag(rand.New(rand.NewSource(7)))

	for i := range 50 {
		require.Equal(t, a.Next(), b.Next(), "draw %d", i)
	}
}

func TestSessionStartsWithThreeDistinctKinds(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		tt := New(rand.New(rand.NewSource(seed)))

		active, next, held := tt.Active().Kind, tt.NextKind(), tt.HeldKind()
		assert.NotEqual(t, active, next, "seed %d", seed)
		assert.NotEqual(t, active, held, "seed %d", seed)
		assert.NotEqual(t, next, held, "seed %d", seed)
	}
}
