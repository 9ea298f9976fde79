// Package rules decides which cards may be played onto the discard pile.
package rules

import "github.com/arcanaland/eights/internal/card"

// IsLegal reports whether candidate may be played on top. A wild card is
// always legal. While forced names a suit, only that suit matches; otherwise
// the candidate must share the top card's rank or suit.
func IsLegal(candidate, top card.Card, forced card.Suit) bool {
	if candidate.IsWild() {
		return true
	}
	if forced != card.NoSuit {
		return candidate.Suit == forced
	}
	return candidate.Rank == top.Rank || candidate.Suit == top.Suit
}

// Legal returns the cards of hand that IsLegal accepts, in hand order.
func Legal(hand []card.Card, top card.Card, forced card.Suit) []card.Card {
	var legal []card.Card
	for _, c := range hand {
		if IsLegal(c, top, forced) {
			legal = append(legal, c)
		}
	}
	return legal
}
