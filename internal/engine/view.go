package engine

import (
	"github.com/arcanaland/eights/internal/card"
	"github.com/arcanaland/eights/internal/rules"
)

// View is what the human player is allowed to see. The opponent's hand is
// reduced to a count.
type View struct {
	Hand          []card.Card
	LegalIDs      []string
	OpponentCount int
	Top           *card.Card
	ForcedSuit    card.Suit
	DeckCount     int
	Turn          Side
	Status        Status
	Winner        Side
	Message       string
	Epoch         uint64
}

// BuildView projects s for the human player.
func BuildView(s State) View {
	v := View{
		Hand:          append([]card.Card(nil), s.PlayerHand...),
		OpponentCount: len(s.OpponentHand),
		ForcedSuit:    s.ForcedSuit,
		DeckCount:     len(s.Deck),
		Turn:          s.Turn,
		Status:        s.Status,
		Winner:        s.Winner,
		Message:       s.Message,
		Epoch:         s.Epoch,
	}
	if top, ok := s.Top(); ok {
		v.Top = &top
		if CanAct(s, Player) {
			for _, c := range rules.Legal(s.PlayerHand, top, s.ForcedSuit) {
				v.LegalIDs = append(v.LegalIDs, c.ID)
			}
		}
	}
	return v
}

// IsLegal reports whether id is among the player's legal cards.
func (v View) IsLegal(id string) bool {
	for _, l := range v.LegalIDs {
		if l == id {
			return true
		}
	}
	return false
}
