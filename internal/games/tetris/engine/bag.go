package engine

// Shuffler is the randomness the bag needs. *math/rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Bag is the 7-bag randomizer: it deals a shuffled permutation of all seven
// kinds and only reshuffles once the permutation is used up, so every run
// of seven draws starting at a refill contains each kind exactly once.
type Bag struct {
	rng     Shuffler
	pending []Kind
}

// NewBag creates a bag and fills it with its first permutation.
func NewBag(rng Shuffler) *Bag {
	b := &Bag{
		rng:     rng,
		pending: make([]Kind, 0, NumKinds),
	}
	b.refill()
	return b
}

func (b *Bag) refill() {
	kinds := AllKinds()
	b.rng.Shuffle(len(kinds), func(i, j int) {
		kinds[i], kinds[j] = kinds[j], kinds[i]
	})
	b.pending = append(b.pending[:0], kinds[:]...)
}

// Next draws the next kind.
func (b *Bag) Next() Kind {
	if len(b.pending) == 0 {
		b.refill()
	}
	last := len(b.pending) - 1
	k := b.pending[last]
	b.pending = b.pending[:last]
	return k
}

// Remaining returns how many kinds are left before the next reshuffle.
func (b *Bag) Remaining() int {
	return len(b.pending)
}
