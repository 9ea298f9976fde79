// Package opponent holds the scripted player that sits across the table.
package opponent

import (
	"github.com/arcanaland/eights/internal/card"
	"github.com/arcanaland/eights/internal/engine"
	"github.com/arcanaland/eights/internal/rules"
)

type Policy interface {
	ChooseAction(state engine.State, side engine.Side) engine.Action
}

// Decision is the outcome of one turn. When Draw is false, Card is played and
// Suit is named if Card is wild.
type Decision struct {
	Draw bool
	Card card.Card
	Suit card.Suit
}

// Decide plays the first legal non-wild card, falls back to a wild card and
// draws when nothing in hand is legal.
func Decide(hand []card.Card, top card.Card, forced card.Suit) Decision {
	legal := rules.Legal(hand, top, forced)
	if len(legal) == 0 {
		return Decision{Draw: true}
	}

	choice := legal[0]
	for _, c := range legal {
		if !c.IsWild() {
			choice = c
			break
		}
	}
	if !choice.IsWild() {
		return Decision{Card: choice}
	}

	remaining := make([]card.Card, 0, len(hand)-1)
	for _, c := range hand {
		if c.ID != choice.ID {
			remaining = append(remaining, c)
		}
	}
	return Decision{Card: choice, Suit: ChooseSuit(remaining)}
}

// ChooseSuit names the suit hand holds most of. Ties go to the suit that
// comes first in card.Suits.
func ChooseSuit(hand []card.Card) card.Suit {
	counts := make(map[card.Suit]int, len(card.Suits))
	for _, c := range hand {
		counts[c.Suit]++
	}
	best, bestCount := card.Suits[0], -1
	for _, s := range card.Suits {
		if counts[s] > bestCount {
			best, bestCount = s, counts[s]
		}
	}
	return best
}

// Greedy drives either side of the table with Decide.
type Greedy struct{}

func (Greedy) ChooseAction(state engine.State, side engine.Side) engine.Action {
	hand := state.Hand(side)
	if state.Status == engine.StatusChoosingSuit {
		return engine.Action{Type: engine.ActionChooseSuit, Actor: side, Suit: ChooseSuit(hand)}
	}

	top, ok := state.Top()
	if !ok {
		return engine.Action{Type: engine.ActionDraw, Actor: side}
	}
	d := Decide(hand, top, state.ForcedSuit)
	if d.Draw {
		return engine.Action{Type: engine.ActionDraw, Actor: side}
	}
	return engine.Action{Type: engine.ActionPlay, Actor: side, CardID: d.Card.ID, Suit: d.Suit}
}
