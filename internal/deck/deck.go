package deck

import (
	"math/rand/v2"

	"github.com/arcanaland/eights/internal/card"
)

// Size is the number of cards in a full deck.
const Size = 52

// Source is the entropy used by Shuffle. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Canonical returns one card of every (suit, rank) pair, suits in preference
// order and ranks from ace to king.
func Canonical() []card.Card {
	cards := make([]card.Card, 0, Size)
	for _, suit := range card.Suits {
		for _, rank := range card.Ranks {
			cards = append(cards, card.New(suit, rank))
		}
	}
	return cards
}

// Shuffle permutes cards in place with Fisher–Yates.
func Shuffle(cards []card.Card, src Source) {
	for i := len(cards) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// New returns a freshly shuffled 52-card deck. The last element is the top.
func New(src Source) []card.Card {
	cards := Canonical()
	Shuffle(cards, src)
	return cards
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSource returns a source seeded from the runtime's entropy.
func RandomSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// IsComplete reports whether cards is a permutation of the canonical deck.
func IsComplete(cards []card.Card) bool {
	if len(cards) != Size {
		return false
	}
	want := make(map[card.Card]bool, Size)
	for _, c := range Canonical() {
		want[c] = true
	}
	for _, c := range cards {
		if !want[c] {
			return false
		}
		delete(want, c)
	}
	return len(want) == 0
}
