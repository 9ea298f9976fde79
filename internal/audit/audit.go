// Package audit checks a game state for lost, duplicated or misplaced cards.
package audit

import (
	"fmt"

	"github.com/arcanaland/eights/internal/card"
	"github.com/arcanaland/eights/internal/deck"
	"github.com/arcanaland/eights/internal/engine"
)

type Results struct {
	Errors   []string
	Warnings []string
}

// OK reports whether no errors were found.
func (r Results) OK() bool {
	return len(r.Errors) == 0
}

// Err folds the errors into a single error, or nil.
func (r Results) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("%d audit errors, first: %s", len(r.Errors), r.Errors[0])
}

type Auditor struct {
	State   engine.State
	Results Results
}

func NewAuditor(s engine.State) *Auditor {
	return &Auditor{State: s}
}

// Check runs every check against s.
func Check(s engine.State) Results {
	return NewAuditor(s).Audit()
}

func (a *Auditor) Audit() Results {
	if a.State.Status == engine.StatusWaiting {
		return a.Results
	}

	a.auditConservation()
	a.auditTable()
	a.auditStatus()

	return a.Results
}

// auditConservation checks that every canonical card is in exactly one place
func (a *Auditor) auditConservation() {
	s := a.State
	if n := s.CardCount(); n != deck.Size {
		a.Results.Errors = append(a.Results.Errors,
			fmt.Sprintf("table holds %d cards, want %d", n, deck.Size))
	}

	where := make(map[card.Card]string, deck.Size)
	piles := []struct {
		name  string
		cards []card.Card
	}{
		{"deck", s.Deck},
		{"discard", s.Discard},
		{"player hand", s.PlayerHand},
		{"opponent hand", s.OpponentHand},
	}
	for _, p := range piles {
		for _, c := range p.cards {
			if prev, ok := where[c]; ok {
				a.Results.Errors = append(a.Results.Errors,
					fmt.Sprintf("card %s found in %s and %s", c.ID, prev, p.name))
				continue
			}
			where[c] = p.name
		}
	}

	for _, c := range deck.Canonical() {
		if _, ok := where[c]; !ok {
			a.Results.Errors = append(a.Results.Errors, fmt.Sprintf("card %s is missing", c.ID))
		}
	}
}

// auditTable checks the discard pile against the forced suit
func (a *Auditor) auditTable() {
	s := a.State
	top, ok := s.Top()
	if !ok {
		a.Results.Errors = append(a.Results.Errors, "discard pile is empty")
		return
	}

	if s.ForcedSuit != card.NoSuit {
		if !s.ForcedSuit.Valid() {
			a.Results.Errors = append(a.Results.Errors, fmt.Sprintf("unknown forced suit %q", s.ForcedSuit))
		}
		if !top.IsWild() {
			a.Results.Errors = append(a.Results.Errors,
				fmt.Sprintf("forced suit %s active over non-wild %s", s.ForcedSuit, top.ID))
		}
	}

	if len(s.Deck) == 0 {
		a.Results.Warnings = append(a.Results.Warnings, "draw pile is exhausted")
	}
}

// auditStatus checks the status against the winner and the hands
func (a *Auditor) auditStatus() {
	s := a.State
	switch s.Status {
	case engine.StatusGameOver:
		if s.Winner == engine.NoSide {
			a.Results.Errors = append(a.Results.Errors, "game over without a winner")
		} else if len(s.Hand(s.Winner)) != 0 {
			a.Results.Errors = append(a.Results.Errors,
				fmt.Sprintf("winner %s still holds %d cards", s.Winner, len(s.Hand(s.Winner))))
		}
	case engine.StatusChoosingSuit:
		if s.Turn != engine.Player {
			a.Results.Errors = append(a.Results.Errors, "suit choice pending on the opponent's turn")
		}
		if top, ok := s.Top(); ok && !top.IsWild() {
			a.Results.Errors = append(a.Results.Errors, fmt.Sprintf("suit choice pending over non-wild %s", top.ID))
		}
		if s.ForcedSuit != card.NoSuit {
			a.Results.Errors = append(a.Results.Errors, fmt.Sprintf("stale forced suit %s while choosing a suit", s.ForcedSuit))
		}
		fallthrough
	default:
		if s.Winner != engine.NoSide {
			a.Results.Errors = append(a.Results.Errors, fmt.Sprintf("winner %s set while %s", s.Winner, s.Status))
		}
		if len(s.PlayerHand) == 0 || len(s.OpponentHand) == 0 {
			a.Results.Errors = append(a.Results.Errors, fmt.Sprintf("empty hand while %s", s.Status))
		}
	}
}
