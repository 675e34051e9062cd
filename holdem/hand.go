// Package holdem implements the heads-up NLHE game state machine: blinds,
// the legal-action abstraction, action application, street advancement,
// and terminal/showdown resolution (spec.md §4.1). Grounded on the
// teacher's Game/Round split (game.go, round.go) and its snapshot-based
// Step/StepBack undo mechanism, generalized from the teacher's N-player
// proportional-raise model to the two-seat fixed-fraction sizing this
// specification calls for.
package holdem

import (
	"math/rand"

	"github.com/google/uuid"

	"holdem-engine/cards"
	"holdem-engine/handeval"
)

// Hand is a single live heads-up hand: config, immutable deal, mutable
// state, and an undo history used by tree-searching callers (dcfr,
// subgame) exactly as the teacher's Game.Step/StepBack is used by CFR
// recursion.
type Hand struct {
	ID     uuid.UUID
	Cfg    Config
	Ctx    Context
	State State
	snaps []State
}

// NewHand deals hole cards and a full board, posts blinds, and returns a
// hand ready for the small blind (seat 0) to act.
func NewHand(cfg Config, rng *rand.Rand) *Hand {
	deck := cards.NewDeck(rng)
	h := &Hand{
		ID:  uuid.New(),
		Cfg: cfg,
	}
	h.Ctx.Hole[0] = [2]cards.Card{deck.Get(), deck.Get()}
	h.Ctx.Hole[1] = [2]cards.Card{deck.Get(), deck.Get()}
	h.Ctx.Board = [5]cards.Card{deck.Get(), deck.Get(), deck.Get(), deck.Get(), deck.Get()}

	h.State = State{
		StreetIdx: 0,
		Stack:     [2]float64{cfg.StartStack - cfg.SmallBlind, cfg.StartStack - cfg.BigBlind},
		Commit:    [2]float64{cfg.SmallBlind, cfg.BigBlind},
		Pot:       cfg.SmallBlind + cfg.BigBlind,
		CurrentBet: cfg.BigBlind,
		Winner:    -1,
		ToAct:     0,
	}
	return h
}

// Board returns the board cards visible at the current street.
func (h *Hand) Board() []cards.Card { return h.Ctx.BoardUpTo(h.State.StreetIdx) }

// LegalActions computes the abstracted legal-action set for the seat to
// act, per spec.md §4.1.
func (h *Hand) LegalActions() ActionSet {
	return legalActions(&h.State, h.Cfg)
}

func legalActions(s *State, cfg Config) ActionSet {
	var out ActionSet
	toAct := s.ToAct
	toCall := s.toCall(toAct)
	stack := s.Stack[toAct]

	if toCall <= cfg.Epsilon {
		out.Add(Check)
		if stack > 0 {
			if s.StreetIdx == 0 {
				out.Add(RaiseHalfPot)
				out.Add(RaisePot)
			} else {
				out.Add(BetHalfPot)
				out.Add(BetPot)
			}
			out.Add(AllIn)
		}
		return out
	}

	out.Add(Fold)
	out.Add(Call)
	if stack > toCall {
		if s.Raises < cfg.MaxRaises {
			out.Add(RaiseHalfPot)
			out.Add(RaisePot)
		}
		out.Add(AllIn)
	}
	return out
}

// TargetCommit returns the total chips the acting seat must have
// committed this street after applying action, per spec.md §4.1's
// sizing table.
func TargetCommit(s *State, cfg Config, action Action) float64 {
	seat := s.ToAct
	commit := s.Commit[seat]
	stack := s.Stack[seat]
	toCall := s.toCall(seat)

	switch action {
	case Fold, Check:
		return commit
	case Call:
		return commit + min(stack, toCall)
	case BetHalfPot:
		return commit + min(stack, max(1, s.Pot*0.5))
	case BetPot:
		return commit + min(stack, max(1, s.Pot*1.0))
	case RaiseHalfPot:
		if s.StreetIdx == 0 {
			return s.CurrentBet + min(stack, max(toCall*2, cfg.BigBlind*2))
		}
		return s.CurrentBet + min(stack, max(toCall, max(1, s.Pot*0.5)))
	case RaisePot:
		if s.StreetIdx == 0 {
			return s.CurrentBet + min(stack, max(toCall*3, cfg.BigBlind*3))
		}
		return s.CurrentBet + min(stack, max(toCall, max(1, s.Pot*1.0)))
	case AllIn:
		return commit + stack
	}
	return commit
}

// Snapshot pushes the current mutable state for later Restore, mirroring
// the teacher's Game.Step history-of-snapshots mechanism.
func (h *Hand) Snapshot() {
	h.snaps = append(h.snaps, *h.State.Clone())
}

// Restore pops the most recent Snapshot. Panics if there is none — a
// caller restoring without a matching snapshot is a programmer error,
// the same class of bug the teacher's StepBack panics on.
func (h *Hand) Restore() {
	if len(h.snaps) == 0 {
		panic("holdem: no snapshot to restore")
	}
	top := h.snaps[len(h.snaps)-1]
	h.snaps = h.snaps[:len(h.snaps)-1]
	h.State = top
}

// Apply applies action for the seat to act, mutating State in place.
// Panics if the hand is already terminal or if action is not currently
// legal — like the teacher's Game.Step, both are programmer errors: a
// caller (dcfr/subgame/engine) that lets a terminal hand reach Apply, or
// that has not consulted LegalActions first, has already broken the
// invariant that terminal states admit no further transitions (spec.md
// §8 invariant 6), which this method cannot recover from by itself.
func (h *Hand) Apply(action Action) {
	if h.State.Terminal {
		panic("holdem: Apply called on a terminal hand")
	}
	legal := h.LegalActions()
	if !legal.Has(action) {
		panic("holdem: action not legal: " + action.String())
	}
	applyAction(&h.State, h.Cfg, action)
	h.State.History = append(h.State.History, action)

	if h.State.Terminal {
		return
	}
	if !streetClosed(&h.State) {
		return
	}
	if h.State.StreetIdx >= 3 {
		settleShowdown(&h.State, h.Ctx)
		return
	}
	advanceStreet(&h.State, h.Cfg)
	for !h.State.Terminal && h.State.StreetIdx < 3 && allInClosed(&h.State) {
		advanceStreet(&h.State, h.Cfg)
	}
	if !h.State.Terminal && h.State.StreetIdx >= 3 && allInClosed(&h.State) {
		settleShowdown(&h.State, h.Ctx)
	}
}

func applyAction(s *State, cfg Config, action Action) {
	seat := s.ToAct
	opp := 1 - seat

	if action == Call && s.toCall(seat) <= cfg.Epsilon {
		action = Check
	}

	switch action {
	case Fold:
		s.Terminal = true
		s.Winner = opp
		s.Stack[opp] += s.Pot
		s.Pot = 0
		return
	case Check:
		s.Acted[seat] = true
		s.ToAct = opp
		return
	}

	target := TargetCommit(s, cfg, action)
	pay := target - s.Commit[seat]
	if pay > s.Stack[seat] {
		pay = s.Stack[seat]
	}
	if pay < 0 {
		pay = 0
	}
	s.Stack[seat] -= pay
	s.Commit[seat] += pay
	s.Pot += pay

	if s.Commit[seat] > s.CurrentBet+cfg.Epsilon {
		s.CurrentBet = s.Commit[seat]
		s.Raises++
		s.Acted = [2]bool{false, false}
		s.Acted[seat] = true
	} else {
		s.Acted[seat] = true
	}
	s.ToAct = opp
}

func streetClosed(s *State) bool {
	return s.Acted[0] && s.Acted[1] && floatEq(s.Commit[0], s.Commit[1])
}

func allInClosed(s *State) bool {
	return (s.Stack[0] <= 0 || s.Stack[1] <= 0) && floatEq(s.Commit[0], s.Commit[1])
}

func floatEq(a, b float64) bool {
	d := a - b
	return d > -1e-6 && d < 1e-6
}

func advanceStreet(s *State, cfg Config) {
	s.StreetIdx++
	s.CurrentBet = 0
	s.Commit = [2]float64{0, 0}
	s.Raises = 0
	s.Acted = [2]bool{false, false}
	s.ToAct = 0
}

func settleShowdown(s *State, ctx Context) {
	if s.Terminal {
		return
	}
	board := ctx.BoardUpTo(3)
	aWins, bWins := handeval.Winners(ctx.Hole[0][:], ctx.Hole[1][:], board)
	s.Terminal = true
	switch {
	case aWins && bWins:
		s.Winner = -1
		s.Stack[0] += s.Pot / 2
		s.Stack[1] += s.Pot / 2
	case aWins:
		s.Winner = 0
		s.Stack[0] += s.Pot
	default:
		s.Winner = 1
		s.Stack[1] += s.Pot
	}
	s.Pot = 0
}

// Settle forces terminal resolution at showdown. Apply already resolves
// showdown when the river closes, so Settle on a terminal hand changes
// nothing. Idempotent per spec.md §8 invariant 6.
func (h *Hand) Settle() {
	settleShowdown(&h.State, h.Ctx)
}

// Payoff returns seat's net chips relative to the starting stack.
func (h *Hand) Payoff(seat int) float64 {
	return h.State.Stack[seat] - h.Cfg.StartStack
}
