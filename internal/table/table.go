// Package table runs one interactive game: it owns the game state, applies
// the human's actions and plays the opponent's turns after a delay.
package table

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arcanaland/eights/internal/card"
	"github.com/arcanaland/eights/internal/deck"
	"github.com/arcanaland/eights/internal/engine"
	"github.com/arcanaland/eights/internal/opponent"
)

// Scheduler defers fn by d. The returned func cancels it if it has not run.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

type clock struct{}

func (clock) After(d time.Duration, fn func()) func() {
	timer := time.AfterFunc(d, fn)
	return func() { timer.Stop() }
}

// Clock schedules on the runtime timer.
func Clock() Scheduler {
	return clock{}
}

// Listener receives the player's view after every accepted action.
type Listener func(engine.View)

type Options struct {
	Source    deck.Source
	Policy    opponent.Policy
	Delay     time.Duration
	Scheduler Scheduler
	Logger    *zap.Logger
}

type Table struct {
	mu        sync.Mutex
	gameID    uuid.UUID
	state     engine.State
	src       deck.Source
	policy    opponent.Policy
	delay     time.Duration
	scheduler Scheduler
	cancel    func()
	listeners []Listener
	log       *zap.Logger
}

func New(opts Options) *Table {
	t := &Table{
		state:     engine.NewState(),
		src:       opts.Source,
		policy:    opts.Policy,
		delay:     opts.Delay,
		scheduler: opts.Scheduler,
		log:       opts.Logger,
	}
	if t.src == nil {
		t.src = deck.RandomSource()
	}
	if t.policy == nil {
		t.policy = opponent.Greedy{}
	}
	if t.scheduler == nil {
		t.scheduler = Clock()
	}
	if t.log == nil {
		t.log = zap.NewNop()
	}
	return t
}

// Subscribe registers l for every later change. Listeners run outside the
// table lock, possibly on the scheduler's goroutine.
func (t *Table) Subscribe(l Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, l)
}

// Start deals a new game, abandoning the current one and any opponent turn
// still pending for it.
func (t *Table) Start() {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.gameID = uuid.New()
	ok := t.applyLocked(engine.Action{Type: engine.ActionStart, Deck: deck.New(t.src)})
	view, listeners := engine.BuildView(t.state), t.listeners
	t.mu.Unlock()

	if ok {
		notify(listeners, view)
	}
}

// Play plays the card with the given id from the player's hand.
func (t *Table) Play(cardID string) bool {
	return t.do(engine.Action{Type: engine.ActionPlay, Actor: engine.Player, CardID: cardID})
}

// ChooseSuit names the suit after the player's 8.
func (t *Table) ChooseSuit(s card.Suit) bool {
	return t.do(engine.Action{Type: engine.ActionChooseSuit, Actor: engine.Player, Suit: s})
}

// Draw takes the top card of the deck, or passes when it is empty.
func (t *Table) Draw() bool {
	return t.do(engine.Action{Type: engine.ActionDraw, Actor: engine.Player})
}

func (t *Table) View() engine.View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return engine.BuildView(t.state)
}

// State returns a copy of the full game state that callers may modify freely.
func (t *Table) State() engine.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

func (t *Table) GameID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gameID.String()
}

// Close cancels a pending opponent turn.
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *Table) do(a engine.Action) bool {
	t.mu.Lock()
	ok := t.applyLocked(a)
	view, listeners := engine.BuildView(t.state), t.listeners
	t.mu.Unlock()

	if ok {
		notify(listeners, view)
	}
	return ok
}

func (t *Table) applyLocked(a engine.Action) bool {
	next, ok := engine.Apply(t.state, a)
	if !ok {
		t.log.Debug("action rejected",
			zap.String("game_id", t.gameID.String()),
			zap.Stringer("action", a.Type),
			zap.Stringer("actor", a.Actor),
			zap.String("card", a.CardID),
			zap.Stringer("status", t.state.Status),
		)
		return false
	}
	t.state = next

	fields := []zap.Field{
		zap.String("game_id", t.gameID.String()),
		zap.Uint64("epoch", next.Epoch),
		zap.Stringer("action", a.Type),
		zap.Stringer("actor", a.Actor),
		zap.Stringer("status", next.Status),
	}
	if a.CardID != "" {
		fields = append(fields, zap.String("card", a.CardID))
	}
	if next.ForcedSuit != card.NoSuit {
		fields = append(fields, zap.String("suit", string(next.ForcedSuit)))
	}
	t.log.Info("action applied", fields...)

	if next.Status == engine.StatusGameOver {
		t.log.Info("game over",
			zap.String("game_id", t.gameID.String()),
			zap.Stringer("winner", next.Winner),
			zap.Int("deck_left", len(next.Deck)),
		)
	}

	t.scheduleLocked()
	return true
}

// scheduleLocked queues the opponent's turn if it now holds the turn.
func (t *Table) scheduleLocked() {
	if !engine.CanAct(t.state, engine.Opponent) {
		return
	}
	epoch := t.state.Epoch
	t.cancel = t.scheduler.After(t.delay, func() { t.runOpponent(epoch) })
}

// runOpponent plays one opponent turn unless the game it was scheduled for
// is gone or no longer waiting on the opponent.
func (t *Table) runOpponent(epoch uint64) {
	t.mu.Lock()
	if t.state.Epoch != epoch || !engine.CanAct(t.state, engine.Opponent) {
		t.log.Debug("stale opponent turn discarded",
			zap.Uint64("scheduled_epoch", epoch),
			zap.Uint64("epoch", t.state.Epoch),
			zap.Stringer("turn", t.state.Turn),
			zap.Stringer("status", t.state.Status),
		)
		t.mu.Unlock()
		return
	}
	t.cancel = nil

	a := t.policy.ChooseAction(t.state, engine.Opponent)
	ok := t.applyLocked(a)
	if !ok {
		t.log.Error("opponent chose an illegal action, drawing instead",
			zap.String("game_id", t.gameID.String()),
			zap.Stringer("action", a.Type),
			zap.String("card", a.CardID),
		)
		ok = t.applyLocked(engine.Action{Type: engine.ActionDraw, Actor: engine.Opponent})
	}
	view, listeners := engine.BuildView(t.state), t.listeners
	t.mu.Unlock()

	if ok {
		notify(listeners, view)
	}
}

func notify(listeners []Listener, v engine.View) {
	for _, l := range listeners {
		l(v)
	}
}
