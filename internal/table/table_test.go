package table

import (
	"reflect"
	"testing"
	"time"

	"github.com/arcanaland/eights/internal/card"
	"github.com/arcanaland/eights/internal/deck"
	"github.com/arcanaland/eights/internal/engine"
)

type task struct {
	delay     time.Duration
	fn        func()
	cancelled bool
}

// manualScheduler queues tasks until the test fires them.
type manualScheduler struct {
	tasks []*task
}

func (m *manualScheduler) After(d time.Duration, fn func()) func() {
	tk := &task{delay: d, fn: fn}
	m.tasks = append(m.tasks, tk)
	return func() { tk.cancelled = true }
}

func (m *manualScheduler) pending() []*task {
	var out []*task
	for _, tk := range m.tasks {
		if !tk.cancelled {
			out = append(out, tk)
		}
	}
	return out
}

// fire runs every pending task once.
func (m *manualScheduler) fire() int {
	run := m.pending()
	m.tasks = nil
	for _, tk := range run {
		tk.fn()
	}
	return len(run)
}

func newTable(t *testing.T, seed uint64) (*Table, *manualScheduler, *[]engine.View) {
	t.Helper()
	sched := &manualScheduler{}
	tb := New(Options{
		Source:    deck.NewSource(seed),
		Delay:     1500 * time.Millisecond,
		Scheduler: sched,
	})
	var views []engine.View
	tb.Subscribe(func(v engine.View) { views = append(views, v) })
	return tb, sched, &views
}

func TestStartDealsAndNotifies(t *testing.T) {
	tb, sched, views := newTable(t, 1)
	tb.Start()

	v := tb.View()
	if len(v.Hand) != engine.HandSize || v.OpponentCount != engine.HandSize || v.DeckCount != 35 {
		t.Fatalf("unexpected deal: hand=%d opponent=%d deck=%d", len(v.Hand), v.OpponentCount, v.DeckCount)
	}
	if v.Status != engine.StatusPlaying || v.Turn != engine.Player {
		t.Fatalf("unexpected status %v turn %v", v.Status, v.Turn)
	}
	if len(*views) != 1 {
		t.Fatalf("listener called %d times, want 1", len(*views))
	}
	if len(sched.pending()) != 0 {
		t.Fatalf("opponent scheduled on the player's turn")
	}
	if tb.GameID() == "" {
		t.Fatalf("no game id")
	}
}

func TestOpponentPlaysAfterDelay(t *testing.T) {
	tb, sched, views := newTable(t, 2)
	tb.Start()

	if !tb.Draw() {
		t.Fatalf("draw rejected")
	}
	pending := sched.pending()
	if len(pending) != 1 || pending[0].delay != 1500*time.Millisecond {
		t.Fatalf("expected one opponent turn after 1.5s, got %d", len(pending))
	}
	if tb.View().Turn != engine.Opponent {
		t.Fatalf("turn did not pass to opponent")
	}

	// The human cannot act while the opponent's turn is pending.
	if tb.Draw() {
		t.Fatalf("player drew on the opponent's turn")
	}

	before := len(*views)
	sched.fire()
	s := tb.State()
	if s.Status == engine.StatusPlaying && s.Turn != engine.Player {
		t.Fatalf("opponent turn did not hand back: turn=%v", s.Turn)
	}
	if len(*views) != before+1 {
		t.Fatalf("listener not notified of the opponent's move")
	}
	if s.CardCount() != deck.Size {
		t.Fatalf("%d cards on the table", s.CardCount())
	}
}

func TestRestartDiscardsPendingOpponentTurn(t *testing.T) {
	tb, sched, _ := newTable(t, 3)
	tb.Start()
	tb.Draw()

	stale := sched.pending()
	if len(stale) != 1 {
		t.Fatalf("expected a pending opponent turn")
	}

	tb.Start()
	if !stale[0].cancelled {
		t.Fatalf("restart did not cancel the pending turn")
	}

	// Even if the timer fires anyway, it must not touch the new game.
	fresh := tb.State()
	stale[0].fn()
	if !reflect.DeepEqual(tb.State(), fresh) {
		t.Fatalf("stale opponent turn changed the new game")
	}
	if fresh.Epoch != 2 {
		t.Fatalf("epoch: got %d, want 2", fresh.Epoch)
	}
}

func TestRejectedActionsDoNotNotify(t *testing.T) {
	tb, _, views := newTable(t, 4)
	if tb.Draw() || tb.Play("8-spades") || tb.ChooseSuit(card.Spades) {
		t.Fatalf("action accepted before the deal")
	}
	if len(*views) != 0 {
		t.Fatalf("listener notified of rejected actions")
	}

	tb.Start()
	before := tb.State()
	if tb.ChooseSuit(card.Hearts) {
		t.Fatalf("suit choice accepted while playing")
	}
	if !reflect.DeepEqual(tb.State(), before) {
		t.Fatalf("rejected action changed state")
	}
}

type illegalPolicy struct{}

func (illegalPolicy) ChooseAction(engine.State, engine.Side) engine.Action {
	return engine.Action{Type: engine.ActionPlay, Actor: engine.Opponent, CardID: "no-such-card"}
}

func TestIllegalPolicyFallsBackToDraw(t *testing.T) {
	sched := &manualScheduler{}
	tb := New(Options{Source: deck.NewSource(5), Policy: illegalPolicy{}, Scheduler: sched})
	tb.Start()
	tb.Draw()
	before := tb.State()

	sched.fire()
	after := tb.State()
	if after.Turn != engine.Player {
		t.Fatalf("turn stuck with opponent")
	}
	if len(after.OpponentHand) != len(before.OpponentHand)+1 {
		t.Fatalf("fallback did not draw")
	}
}

func TestPlayThroughWithGreedyPlayer(t *testing.T) {
	for seed := uint64(1); seed <= 30; seed++ {
		tb, sched, _ := newTable(t, seed)
		tb.Start()

		for step := 0; step < 300; step++ {
			s := tb.State()
			if s.Status == engine.StatusGameOver {
				break
			}
			if s.Turn == engine.Opponent && s.Status == engine.StatusPlaying {
				if sched.fire() != 1 {
					t.Fatalf("seed %d: opponent turn not scheduled", seed)
				}
				continue
			}
			v := tb.View()
			switch {
			case v.Status == engine.StatusChoosingSuit:
				tb.ChooseSuit(card.Clubs)
			case len(v.LegalIDs) > 0:
				if !tb.Play(v.LegalIDs[0]) {
					t.Fatalf("seed %d: legal card %s rejected", seed, v.LegalIDs[0])
				}
			default:
				tb.Draw()
			}
		}
		if n := tb.State().CardCount(); n != deck.Size {
			t.Fatalf("seed %d: %d cards on the table", seed, n)
		}
		tb.Close()
	}
}

func TestStateIsACopy(t *testing.T) {
	tb, _, _ := newTable(t, 6)
	tb.Start()

	want := tb.State()
	snap := tb.State()
	snap.PlayerHand[0] = snap.OpponentHand[0]
	snap.Deck[0] = snap.Discard[0]
	snap.Discard = append(snap.Discard[:0], snap.Deck[1])

	if !reflect.DeepEqual(tb.State(), want) {
		t.Fatalf("writing to a snapshot changed the table")
	}
	if v := tb.View(); v.Hand[0].ID != want.PlayerHand[0].ID {
		t.Fatalf("view changed: %s", v.Hand[0].ID)
	}
}
