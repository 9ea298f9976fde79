package engine

import "github.com/arcanaland/eights/internal/card"

// HandSize is the number of cards dealt to each side.
const HandSize = 8

// Side identifies one of the two parties at the table.
type Side int

const (
	NoSide Side = iota
	Player
	Opponent
)

func (s Side) String() string {
	switch s {
	case Player:
		return "player"
	case Opponent:
		return "opponent"
	default:
		return "none"
	}
}

// Other returns the party that is not s.
func (s Side) Other() Side {
	switch s {
	case Player:
		return Opponent
	case Opponent:
		return Player
	default:
		return NoSide
	}
}

// Status is the phase of the game.
type Status int

const (
	StatusWaiting Status = iota
	StatusPlaying
	StatusChoosingSuit
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusPlaying:
		return "playing"
	case StatusChoosingSuit:
		return "choosing_suit"
	case StatusGameOver:
		return "game_over"
	default:
		return "?"
	}
}

// State is the whole game. It is only changed through Apply, which never
// mutates the State it is given.
type State struct {
	Deck         []card.Card // last element is the top of the draw pile
	Discard      []card.Card // last element is the top card
	PlayerHand   []card.Card
	OpponentHand []card.Card
	Turn         Side
	Status       Status
	Winner       Side
	ForcedSuit   card.Suit // set by a wild play, cleared by the next non-wild play
	Message      string
	Epoch        uint64 // incremented by every start
}

// NewState returns the state of a table before the first deal.
func NewState() State {
	return State{
		Turn:    Player,
		Status:  StatusWaiting,
		Winner:  NoSide,
		Message: "Welcome to Crazy Eights!",
	}
}

// Top returns the top card of the discard pile.
func (s State) Top() (card.Card, bool) {
	if len(s.Discard) == 0 {
		return card.Card{}, false
	}
	return s.Discard[len(s.Discard)-1], true
}

// Hand returns the hand held by side.
func (s State) Hand(side Side) []card.Card {
	switch side {
	case Player:
		return s.PlayerHand
	case Opponent:
		return s.OpponentHand
	default:
		return nil
	}
}

// CardCount is the number of cards across every pile and hand.
func (s State) CardCount() int {
	return len(s.Deck) + len(s.Discard) + len(s.PlayerHand) + len(s.OpponentHand)
}

func (s *State) setHand(side Side, hand []card.Card) {
	switch side {
	case Player:
		s.PlayerHand = hand
	case Opponent:
		s.OpponentHand = hand
	}
}

// Clone copies every slice so the result shares no backing arrays with s.
func (s State) Clone() State {
	c := s
	c.Deck = cloneCards(s.Deck)
	c.Discard = cloneCards(s.Discard)
	c.PlayerHand = cloneCards(s.PlayerHand)
	c.OpponentHand = cloneCards(s.OpponentHand)
	return c
}

func cloneCards(cards []card.Card) []card.Card {
	if cards == nil {
		return nil
	}
	return append(make([]card.Card, 0, len(cards)), cards...)
}
