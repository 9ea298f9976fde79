package audit

import (
	"strings"
	"testing"

	"github.com/arcanaland/eights/internal/card"
	"github.com/arcanaland/eights/internal/deck"
	"github.com/arcanaland/eights/internal/engine"
)

func dealt(t *testing.T) engine.State {
	t.Helper()
	s, ok := engine.Apply(engine.NewState(), engine.Action{Type: engine.ActionStart, Deck: deck.New(deck.NewSource(9))})
	if !ok {
		t.Fatalf("start rejected")
	}
	return s
}

func TestCheckFreshGame(t *testing.T) {
	if r := Check(dealt(t)); !r.OK() {
		t.Fatalf("fresh game failed audit: %v", r.Errors)
	}
	if r := Check(engine.NewState()); !r.OK() {
		t.Fatalf("waiting table failed audit: %v", r.Errors)
	}
}

func TestCheckDetectsDuplicate(t *testing.T) {
	s := dealt(t)
	s.PlayerHand = append([]card.Card(nil), s.PlayerHand...)
	s.PlayerHand[0] = s.OpponentHand[0]

	r := Check(s)
	if r.OK() {
		t.Fatalf("duplicate card passed audit")
	}
	if r.Err() == nil {
		t.Fatalf("Err() returned nil for failed audit")
	}
	found := false
	for _, e := range r.Errors {
		if strings.Contains(e, "missing") {
			found = true
		}
	}
	if !found {
		t.Fatalf("replaced card not reported missing: %v", r.Errors)
	}
}

func TestCheckDetectsLoss(t *testing.T) {
	s := dealt(t)
	s.Deck = s.Deck[:len(s.Deck)-1]
	if Check(s).OK() {
		t.Fatalf("lost card passed audit")
	}
}

func TestCheckForcedSuitNeedsWildTop(t *testing.T) {
	s := dealt(t)
	top, _ := s.Top()
	s.ForcedSuit = card.Spades
	r := Check(s)
	if top.IsWild() {
		if !r.OK() {
			t.Fatalf("forced suit over wild rejected: %v", r.Errors)
		}
		return
	}
	if r.OK() {
		t.Fatalf("forced suit over %s passed audit", top.ID)
	}
}

func TestCheckGameOverNeedsWinner(t *testing.T) {
	s := dealt(t)
	s.Status = engine.StatusGameOver
	if Check(s).OK() {
		t.Fatalf("game over without winner passed audit")
	}
}

func TestCheckChoosingSuitWithStaleSuit(t *testing.T) {
	s := dealt(t)
	wild := card.New(card.Clubs, card.Eight)
	if top, _ := s.Top(); top.ID != wild.ID {
		// Swap the clubs eight onto the discard pile, wherever it was dealt.
		for _, hand := range [][]card.Card{s.Deck, s.PlayerHand, s.OpponentHand} {
			for i := range hand {
				if hand[i].ID == wild.ID {
					hand[i] = top
				}
			}
		}
		s.Discard = []card.Card{wild}
	}
	s.Status = engine.StatusChoosingSuit
	if r := Check(s); !r.OK() {
		t.Fatalf("choosing_suit over a wild failed audit: %v", r.Errors)
	}

	s.ForcedSuit = card.Hearts
	if Check(s).OK() {
		t.Fatalf("stale forced suit passed audit while choosing")
	}
}
