package engine

import (
	"fmt"
	"strings"

	"github.com/arcanaland/eights/internal/card"
	"github.com/arcanaland/eights/internal/deck"
	"github.com/arcanaland/eights/internal/rules"
)

type ActionType int

const (
	ActionStart ActionType = iota
	ActionPlay
	ActionChooseSuit
	ActionDraw
)

func (t ActionType) String() string {
	switch t {
	case ActionStart:
		return "start"
	case ActionPlay:
		return "play"
	case ActionChooseSuit:
		return "choose_suit"
	case ActionDraw:
		return "draw"
	default:
		return "?"
	}
}

// Action is one request against the table. Deck is only read by ActionStart
// and must be a shuffled permutation of the full deck. Suit is read by
// ActionChooseSuit and by an opponent's wild play.
type Action struct {
	Type   ActionType
	Actor  Side
	CardID string
	Suit   card.Suit
	Deck   []card.Card
}

// Apply returns the state that follows a. Rejected actions return s itself
// and false; s is never modified.
func Apply(s State, a Action) (State, bool) {
	switch a.Type {
	case ActionStart:
		return applyStart(s, a)
	case ActionPlay:
		return applyPlay(s, a)
	case ActionChooseSuit:
		return applyChooseSuit(s, a)
	case ActionDraw:
		return applyDraw(s, a)
	default:
		return s, false
	}
}

// CanAct reports whether side holds the turn in status playing.
func CanAct(s State, side Side) bool {
	return s.Status == StatusPlaying && s.Turn == side
}

func applyStart(s State, a Action) (State, bool) {
	if !deck.IsComplete(a.Deck) {
		return s, false
	}

	cards := append([]card.Card(nil), a.Deck...)
	next := State{
		PlayerHand:   cards[:HandSize:HandSize],
		OpponentHand: cards[HandSize : 2*HandSize : 2*HandSize],
		Turn:         Player,
		Status:       StatusPlaying,
		Winner:       NoSide,
		ForcedSuit:   card.NoSuit,
		Epoch:        s.Epoch + 1,
		Message:      "Your turn! Match the card or play an 8.",
	}
	rest := cards[2*HandSize:]
	next.Discard = []card.Card{rest[len(rest)-1]}
	next.Deck = rest[: len(rest)-1 : len(rest)-1]
	return next, true
}

func applyPlay(s State, a Action) (State, bool) {
	if !CanAct(s, a.Actor) {
		return s, false
	}
	top, ok := s.Top()
	if !ok {
		return s, false
	}

	hand := s.Hand(a.Actor)
	idx := indexOf(hand, a.CardID)
	if idx < 0 {
		return s, false
	}
	played := hand[idx]
	if !rules.IsLegal(played, top, s.ForcedSuit) {
		return s, false
	}
	// The opponent names its suit in the same transition.
	if played.IsWild() && a.Actor == Opponent && !a.Suit.Valid() && len(hand) > 1 {
		return s, false
	}

	next := s.Clone()
	remaining := append(append([]card.Card(nil), hand[:idx]...), hand[idx+1:]...)
	next.setHand(a.Actor, remaining)
	next.Discard = append(next.Discard, played)
	// Any play ends the named suit; only the opponent's wild names a new one here.
	next.ForcedSuit = card.NoSuit

	switch {
	case len(remaining) == 0:
		next.Status = StatusGameOver
		next.Winner = a.Actor
		if a.Actor == Player {
			next.Message = "You win!"
		} else {
			next.Message = "Opponent wins!"
		}
	case played.IsWild() && a.Actor == Player:
		next.Status = StatusChoosingSuit
		next.Message = "Choose a suit for your 8."
	case played.IsWild():
		next.ForcedSuit = a.Suit
		next.Turn = Player
		next.Message = fmt.Sprintf("Opponent played an 8 and changed suit to %s! Your turn.", strings.ToUpper(string(a.Suit)))
	default:
		next.Turn = a.Actor.Other()
		if a.Actor == Player {
			next.Message = "Opponent is thinking..."
		} else {
			next.Message = fmt.Sprintf("Opponent played %s. Your turn!", played.Name())
		}
	}
	return next, true
}

func applyChooseSuit(s State, a Action) (State, bool) {
	if s.Status != StatusChoosingSuit || a.Actor != Player || s.Turn != Player || !a.Suit.Valid() {
		return s, false
	}

	next := s.Clone()
	next.ForcedSuit = a.Suit
	next.Turn = Opponent
	next.Status = StatusPlaying
	next.Message = fmt.Sprintf("Suit changed to %s! Opponent's turn.", strings.ToUpper(string(a.Suit)))
	return next, true
}

func applyDraw(s State, a Action) (State, bool) {
	if !CanAct(s, a.Actor) {
		return s, false
	}

	next := s.Clone()
	next.Turn = a.Actor.Other()
	if len(next.Deck) == 0 {
		if a.Actor == Player {
			next.Message = "Deck is empty! Skipping turn."
		} else {
			next.Message = "Opponent couldn't play and deck is empty. Your turn!"
		}
		return next, true
	}

	drawn := next.Deck[len(next.Deck)-1]
	next.Deck = next.Deck[:len(next.Deck)-1]
	next.setHand(a.Actor, append(next.Hand(a.Actor), drawn))
	if a.Actor == Player {
		next.Message = "You drew a card. Opponent's turn."
	} else {
		next.Message = "Opponent drew a card. Your turn!"
	}
	return next, true
}

func indexOf(hand []card.Card, id string) int {
	for i, c := range hand {
		if c.ID == id {
			return i
		}
	}
	return -1
}
