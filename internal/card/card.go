package card

import (
	"fmt"
	"strings"
)

// Suit represents the suit of a playing card
type Suit string

const (
	NoSuit   Suit = ""
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Suits lists the four suits in their fixed preference order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Rank represents the rank of a playing card
type Rank string

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

// Ranks lists the thirteen ranks from ace to king.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// WildRank is always playable and lets the player name the next suit.
const WildRank = Eight

// Card represents a playing card
type Card struct {
	ID   string // Canonical ID (e.g., 8-spades, q-hearts)
	Suit Suit
	Rank Rank
}

// New returns the card with the given suit and rank.
func New(suit Suit, rank Rank) Card {
	return Card{
		ID:   ID(suit, rank),
		Suit: suit,
		Rank: rank,
	}
}

// ID builds the canonical id for a suit and rank.
func ID(suit Suit, rank Rank) string {
	return strings.ToLower(string(rank)) + "-" + string(suit)
}

// IsWild reports whether the card carries the wild rank.
func (c Card) IsWild() bool {
	return c.Rank == WildRank
}

// String returns the short form, e.g. "8♠".
func (c Card) String() string {
	return string(c.Rank) + c.Suit.Symbol()
}

// Name returns the long form, e.g. "7 of hearts".
func (c Card) Name() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Symbol returns the suit glyph.
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "•"
	}
}

// IsRed reports whether the suit is printed in red.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	for _, suit := range Suits {
		if s == suit {
			return true
		}
	}
	return false
}

// ParseSuit accepts a suit name, its first letter or its symbol.
func ParseSuit(input string) (Suit, error) {
	in := strings.ToLower(strings.TrimSpace(input))
	for _, s := range Suits {
		if in == string(s) || in == string(s)[:1] || in == s.Symbol() {
			return s, nil
		}
	}
	// Tolerate the singular form ("spade")
	for _, s := range Suits {
		if in != "" && in+"s" == string(s) {
			return s, nil
		}
	}
	return NoSuit, fmt.Errorf("unknown suit: %q", input)
}

// ParseRank accepts a rank in any letter case; "1" and "ace" name the ace.
func ParseRank(input string) (Rank, error) {
	in := strings.ToUpper(strings.TrimSpace(input))
	switch in {
	case "1", "ACE":
		return Ace, nil
	case "JACK":
		return Jack, nil
	case "QUEEN":
		return Queen, nil
	case "KING":
		return King, nil
	}
	for _, r := range Ranks {
		if in == string(r) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown rank: %q", input)
}

// Parse turns a canonical id ("q-hearts") or a short form ("qh", "10s", "8♠")
// into a card.
func Parse(input string) (Card, error) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return Card{}, fmt.Errorf("empty card")
	}

	if rankPart, suitPart, ok := strings.Cut(in, "-"); ok {
		return parseParts(input, rankPart, suitPart)
	}

	// Short form: everything but the trailing suit marker is the rank.
	runes := []rune(in)
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("invalid card format: %s", input)
	}
	return parseParts(input, string(runes[:len(runes)-1]), string(runes[len(runes)-1]))
}

func parseParts(input, rankPart, suitPart string) (Card, error) {
	rank, err := ParseRank(rankPart)
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %s: %w", input, err)
	}
	suit, err := ParseSuit(suitPart)
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %s: %w", input, err)
	}
	return New(suit, rank), nil
}
