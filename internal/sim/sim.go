// Package sim plays whole games without a terminal, both sides driven by a
// policy, auditing the table after every step.
package sim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arcanaland/eights/internal/audit"
	"github.com/arcanaland/eights/internal/deck"
	"github.com/arcanaland/eights/internal/engine"
	"github.com/arcanaland/eights/internal/opponent"
)

// DefaultMaxSteps bounds a game. Once the deck is gone and neither side can
// play, both sides pass forever; such games are reported as stalled.
const DefaultMaxSteps = 1000

type ActionRecord struct {
	Step   int
	Status engine.Status
	Action engine.Action
}

// Result describes one finished or stalled game.
type Result struct {
	Seed    uint64
	Winner  engine.Side
	Turns   int
	Stalled bool
}

type Runner struct {
	Player   opponent.Policy
	Opponent opponent.Policy
	MaxSteps int
	Logger   *zap.Logger
}

func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Player:   opponent.Greedy{},
		Opponent: opponent.Greedy{},
		MaxSteps: DefaultMaxSteps,
		Logger:   logger,
	}
}

// Play runs one game dealt from seed.
func (r *Runner) Play(seed uint64) (Result, error) {
	state, ok := engine.Apply(engine.NewState(), engine.Action{Type: engine.ActionStart, Deck: deck.New(deck.NewSource(seed))})
	if !ok {
		return Result{}, fmt.Errorf("seed=%d: start rejected", seed)
	}

	res := Result{Seed: seed, Winner: engine.NoSide}
	records := []ActionRecord{}
	for step := 0; step < r.MaxSteps; step++ {
		if state.Status == engine.StatusGameOver {
			res.Winner = state.Winner
			r.Logger.Debug("game finished",
				zap.Uint64("seed", seed),
				zap.Stringer("winner", res.Winner),
				zap.Int("turns", res.Turns),
			)
			return res, nil
		}

		side := state.Turn
		policy := r.Player
		if side == engine.Opponent {
			policy = r.Opponent
		}
		action := policy.ChooseAction(state, side)
		next, ok := engine.Apply(state, action)
		if !ok {
			return res, failure(seed, step, state.Status, records, fmt.Sprintf("%v by %v rejected", action.Type, side))
		}
		records = append(records, ActionRecord{Step: step, Status: state.Status, Action: action})
		if next.Turn != state.Turn {
			res.Turns++
		}
		state = next

		if err := audit.Check(state).Err(); err != nil {
			return res, failure(seed, step, state.Status, records, err.Error())
		}
	}

	res.Stalled = true
	r.Logger.Debug("game stalled", zap.Uint64("seed", seed), zap.Int("deck_left", len(state.Deck)))
	return res, nil
}

// Summary aggregates many games.
type Summary struct {
	Games        int
	PlayerWins   int
	OpponentWins int
	Stalled      int
	TotalTurns   int
	LongestGame  int
	LongestSeed  uint64
}

func (s Summary) AverageTurns() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Games)
}

// Run plays games seeded seed, seed+1, ... and stops at the first failure.
func (r *Runner) Run(seed uint64, games int) (Summary, error) {
	var sum Summary
	for i := 0; i < games; i++ {
		res, err := r.Play(seed + uint64(i))
		if err != nil {
			return sum, err
		}
		sum.Games++
		sum.TotalTurns += res.Turns
		if res.Turns > sum.LongestGame {
			sum.LongestGame, sum.LongestSeed = res.Turns, res.Seed
		}
		switch {
		case res.Stalled:
			sum.Stalled++
		case res.Winner == engine.Player:
			sum.PlayerWins++
		case res.Winner == engine.Opponent:
			sum.OpponentWins++
		}
	}
	r.Logger.Info("simulation finished",
		zap.Uint64("seed", seed),
		zap.Int("games", sum.Games),
		zap.Int("player_wins", sum.PlayerWins),
		zap.Int("opponent_wins", sum.OpponentWins),
		zap.Int("stalled", sum.Stalled),
	)
	return sum, nil
}

func failure(seed uint64, step int, status engine.Status, records []ActionRecord, reason string) error {
	start := 0
	if len(records) > 20 {
		start = len(records) - 20
	}
	log := ""
	for _, r := range records[start:] {
		log += fmt.Sprintf("[s%d %v] %v %v %s %s\n", r.Step, r.Status, r.Action.Actor, r.Action.Type, r.Action.CardID, r.Action.Suit)
	}
	return fmt.Errorf("seed=%d step=%d status=%v reason=%s\nlast actions:\n%s",
		seed, step, status, reason, log)
}
