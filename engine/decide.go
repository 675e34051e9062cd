package engine

import (
	"math/rand"

	"holdem-engine/belief"
	"holdem-engine/blueprint"
	"holdem-engine/equity"
	"holdem-engine/evscore"
	"holdem-engine/holdem"
	"holdem-engine/infoset"
	"holdem-engine/preflop"
	"holdem-engine/subgame"
)

// decision is the bot pipeline's verdict plus the bookkeeping the
// caller needs to fold back into diagnostics and belief updates.
type decision struct {
	Action       holdem.Action
	HandStrength float64
	UsedRealtime bool
}

// botDecide runs the full bot pipeline from spec.md §4.4-§4.8 for the
// seat to act in s.Hand, which must not be s.HumanSeat.
func (e *Engine) botDecide(rng *rand.Rand, s *Session) decision {
	hand := s.Hand
	seat := hand.State.ToAct
	legal := hand.LegalActions()

	if legal.Count() == 1 {
		return decision{Action: legal.Slice()[0]}
	}

	board := hand.Board()
	hole := hand.Ctx.Hole[seat][:]
	trials := equity.ClampEval(e.EquityTrials)
	seed := e.nextSeed()
	rawHS := e.EquityCache.EstimateCached(seed, hole, board, nil, trials).Equity
	if rawHS <= 1e-4 || rawHS >= 0.9999 {
		if trials < equity.MinTrials*3 && hand.State.StreetIdx < 3 {
			e.Diag.EvalSuspectWarnings.Add(1)
		}
	}

	opponentBelief := s.RangeBelief[1-seat]
	hs := opponentBelief.ConditionEquity(rawHS)

	toCall := hand.State.ToCall(seat)
	spr := hand.State.SPR(seat)
	pot := hand.State.Pot
	reqEquity := evscore.ReqEquity(pot, toCall)
	texture := infoset.ComputeTexture(board)

	filteredLegal, emptied := evscore.PreFilter(legal, hs, reqEquity, spr)
	if emptied {
		e.Diag.IllegalStateWarnings.Add(1)
	}

	preflopNode := hand.State.StreetIdx == 0
	var oppStats evscore.OpponentStats
	if !preflopNode {
		oppStats = s.Stats.streetStats(hand.State.StreetIdx).rates()
	}
	evIn := evscore.Inputs{
		Legal:    filteredLegal,
		HS:       hs,
		Pot:      pot,
		ToCall:   toCall,
		Stack:    hand.State.Stack[seat],
		SPR:      spr,
		Texture:  texture,
		Opponent: oppStats,
		Belief:   evscore.BeliefTilt{Strong: opponentBelief.Strong, Weak: opponentBelief.Weak},
	}
	ev := evscore.Score(evIn, hand.State.CurrentBet, hand.State.Commit[seat], preflopNode, hand.Cfg.BigBlind)

	if preflopNode {
		tier := preflop.Classify(hand.Ctx.Hole[seat])
		facingRaise := toCall > hand.Cfg.Epsilon
		mix := preflop.Distribution(filteredLegal, tier, facingRaise, hs, s.Stats.Preflop.tendency())
		action := preflop.Sample(rng, mix, ev)
		action = evscore.ConservativeOverride(action, legal, hs, spr, texture.Paired, isDryTexture(texture), reqEquity)
		return decision{Action: action, HandStrength: hs}
	}

	allInClosed := hand.State.Stack[0] <= 0 || hand.State.Stack[1] <= 0
	if subgame.ShouldTrigger(hand.State.StreetIdx, pot, spr, allInClosed, e.SubgameCfg) {
		node := subgame.Node{
			Legal: filteredLegal, HS: hs, Pot: pot, ToCall: toCall,
			Stack: hand.State.Stack[seat], SPR: spr, Texture: texture,
			Opponent: evIn.Opponent, Belief: opponentBelief,
			CurrentBet: hand.State.CurrentBet, Commit: hand.State.Commit[seat],
			BigBlind: hand.Cfg.BigBlind,
		}
		prior := e.lookupPrior(hand, seat, hs, filteredLegal)
		res := subgame.Solve(e.Clock, rng, node, prior, e.SubgameCfg)
		e.Diag.RealtimeHits.Add(1)
		action := blueprint.Argmax(res.Strategy)
		action = evscore.ConservativeOverride(action, legal, hs, spr, texture.Paired, isDryTexture(texture), reqEquity)
		return decision{Action: action, HandStrength: hs, UsedRealtime: true}
	}

	prior := e.lookupPriorRaw(hand, seat, hs)
	var action holdem.Action
	if prior != nil {
		projected := blueprint.ProjectOntoLegal(*prior, filteredLegal)
		blended := blueprint.Blend(ev, projected, filteredLegal, e.EVBlend, e.ProbFloor, blueprint.TemperaturePostflop)
		action = blueprint.Argmax(blended)
		if sampled := blueprint.Sample(rng, blended, filteredLegal); sampled != action {
			e.Logger.Debug("blend sample diverged from argmax", "street", hand.State.StreetIdx, "argmax", action, "sampled", sampled)
		}
	} else {
		action = evscore.SelectAction(ev)
	}
	action = evscore.ConservativeOverride(action, legal, hs, spr, texture.Paired, isDryTexture(texture), reqEquity)
	return decision{Action: action, HandStrength: hs}
}

func isDryTexture(t infoset.TextureBits) bool {
	return !t.Monotone && !t.TwoTone && !t.Connected && !t.Paired
}

// lookupPriorRaw looks up the blueprint policy for the current node,
// recording a prior hit/miss, and returns nil on a miss (spec.md §7's
// MissingPrior: silently fall back to EV-only scoring).
func (e *Engine) lookupPriorRaw(hand *holdem.Hand, seat int, hs float64) *[holdem.NumActions]float64 {
	if e.Blueprint == nil {
		e.Diag.PriorMisses.Add(1)
		return nil
	}
	key := e.infosetKey(hand, seat, hs)
	v, ok := e.Blueprint.Lookup(key)
	if !ok {
		e.Diag.PriorMisses.Add(1)
		return nil
	}
	e.Diag.PriorHits.Add(1)
	return &v
}

// lookupPrior projects the blueprint prior onto legal for subgame's
// resolve, falling back to nil (uniform) on a miss.
func (e *Engine) lookupPrior(hand *holdem.Hand, seat int, hs float64, legal holdem.ActionSet) map[holdem.Action]float64 {
	v := e.lookupPriorRaw(hand, seat, hs)
	if v == nil {
		e.Diag.RealtimeFallbacks.Add(1)
		return nil
	}
	return blueprint.ProjectOntoLegal(*v, legal)
}

func (e *Engine) infosetKey(hand *holdem.Hand, seat int, hs float64) string {
	return infoset.Build(
		hand.State.StreetIdx, seat, hand.Board(),
		hand.State.Stack[seat], hand.State.Pot, hand.State.ToCall(seat),
		hand.Cfg.Epsilon, hand.State.Raises, hs,
	).String()
}

// classifyAction buckets an applied action into belief's three kinds,
// used to update the acting seat's opponent's range belief.
func classifyAction(a holdem.Action) belief.ActionKind {
	switch a {
	case holdem.Fold:
		return belief.Fold
	case holdem.Check, holdem.Call:
		return belief.Passive
	default:
		return belief.Aggressive
	}
}
