// Package evscore implements the closed-form per-action expected-value
// scorer and its conservative override / legality pre-filter guard
// rails from spec.md §4.5. The opponent-response model — a categorical
// over {fold, call, raise} tilted by observed rates and range belief —
// is this module's reading of the teacher's RandomActor weighted-choice
// shape (weighted-map, normalize, pick), generalized from a fixed
// weight table to one derived from required equity and bet sizing.
package evscore

import (
	"holdem-engine/holdem"
	"holdem-engine/infoset"
)

// OpponentStats summarizes the observed postflop reaction rates the
// tilt term reads, aggregated per spec.md §3's Session.stats.postflop.
type OpponentStats struct {
	FoldVsBet float64
	CallVsBet float64
	RaiseVsBet float64
	Samples    int
}

// BeliefTilt is the strong/weak component of an OpponentRangeBelief
// (spec.md §4.9), used here to tilt the response model ±0.18 on the
// call branch and ±0.10 on the raise branch.
type BeliefTilt struct {
	Strong float64
	Weak   float64
}

// Inputs bundles everything the scorer needs for one decision node.
type Inputs struct {
	Legal    holdem.ActionSet
	HS       float64
	Pot      float64
	ToCall   float64
	Stack    float64
	SPR      float64
	Texture  infoset.TextureBits
	Opponent OpponentStats
	Belief   BeliefTilt
}

func realizeEquity(tex infoset.TextureBits) float64 {
	switch {
	case tex.Paired:
		return 0.95
	case tex.Monotone || tex.TwoTone || tex.Connected:
		return 0.90
	default:
		return 0.93
	}
}

func isDry(tex infoset.TextureBits) bool {
	return !tex.Monotone && !tex.TwoTone && !tex.Connected && !tex.Paired
}

// pay returns the chips the acting seat commits this street to reach
// target, per the same target-commit table holdem.TargetCommit uses.
func pay(in Inputs, target float64, commit float64) float64 {
	p := target - commit
	if p > in.Stack {
		p = in.Stack
	}
	if p < 0 {
		p = 0
	}
	return p
}

// Pay returns the chips action costs the acting seat this street,
// exported so subgame's leaf evaluator can price an action the same
// way without duplicating the sizing table.
func Pay(in Inputs, action holdem.Action, currentBet, commit float64, preflop bool, bigBlind float64) float64 {
	if action == holdem.Fold || action == holdem.Check {
		return 0
	}
	target := targetFor(in, action, currentBet, commit, preflop, bigBlind)
	return pay(in, target, commit)
}

// targetFor mirrors holdem.TargetCommit's sizing formulas without
// requiring a live *holdem.State, so the scorer can be exercised with
// synthetic inputs in tests.
func targetFor(in Inputs, action holdem.Action, currentBet, commit float64, preflop bool, bigBlind float64) float64 {
	switch action {
	case holdem.Call:
		return commit + min(in.Stack, in.ToCall)
	case holdem.BetHalfPot:
		return commit + min(in.Stack, max(1, in.Pot*0.5))
	case holdem.BetPot:
		return commit + min(in.Stack, max(1, in.Pot*1.0))
	case holdem.RaiseHalfPot:
		if preflop {
			return currentBet + min(in.Stack, max(in.ToCall*2, bigBlind*2))
		}
		return currentBet + min(in.Stack, max(in.ToCall, max(1, in.Pot*0.5)))
	case holdem.RaisePot:
		if preflop {
			return currentBet + min(in.Stack, max(in.ToCall*3, bigBlind*3))
		}
		return currentBet + min(in.Stack, max(in.ToCall, max(1, in.Pot*1.0)))
	case holdem.AllIn:
		return commit + in.Stack
	}
	return commit
}

// responseModel derives P(fold), P(call), P(raise) for a bet/raise of
// size pay into pot, per spec.md §4.5: base rates from required equity
// and sizing fraction, tilted by observed opponent rates (weight 0.4
// past 8 samples) and by range-belief strong/weak tilt.
func responseModel(pot, payAmt float64, opp OpponentStats, belief BeliefTilt) (pFold, pCall, pRaise float64) {
	if pot+2*payAmt <= 0 {
		return 1, 0, 0
	}
	oppReq := payAmt / (pot + 2*payAmt)
	sizing := payAmt / max(1, pot)

	pFold = clamp01(0.20 + 0.55*oppReq)
	pRaise = clamp01(0.22 - 0.08*sizing)
	pCall = 1 - pFold - pRaise
	if pCall < 0 {
		pCall = 0
	}
	pFold, pCall, pRaise = renorm3(pFold, pCall, pRaise)

	if opp.Samples >= 8 {
		const w = 0.4
		pFold = (1-w)*pFold + w*opp.FoldVsBet
		pCall = (1-w)*pCall + w*opp.CallVsBet
		pRaise = (1-w)*pRaise + w*opp.RaiseVsBet
		pFold, pCall, pRaise = renorm3(pFold, pCall, pRaise)
	}

	tilt := belief.Strong - belief.Weak
	pCall = clamp01(pCall + 0.18*tilt)
	pRaise = clamp01(pRaise + 0.10*tilt)
	pFold = clamp01(1 - pCall - pRaise)
	return renorm3(pFold, pCall, pRaise)
}

func renorm3(a, b, c float64) (float64, float64, float64) {
	if a < 0 {
		a = 0
	}
	if b < 0 {
		b = 0
	}
	if c < 0 {
		c = 0
	}
	sum := a + b + c
	if sum <= 0 {
		return 1, 0, 0
	}
	return a / sum, b / sum, c / sum
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Score computes an EV per legal action, per spec.md §4.5, then applies
// the deterministic penalties (marginal-hs-vs-SPR, paired board, dry
// board, over-leveraged all-in).
func Score(in Inputs, currentBet, commit float64, preflop bool, bigBlind float64) map[holdem.Action]float64 {
	out := make(map[holdem.Action]float64, in.Legal.Count())
	realize := realizeEquity(in.Texture)
	dry := isDry(in.Texture)

	for _, a := range in.Legal.Slice() {
		switch a {
		case holdem.Fold:
			out[a] = 0
		case holdem.Check:
			out[a] = in.HS * in.Pot
		case holdem.Call:
			ev := in.HS*in.Pot - (1-in.HS)*in.ToCall
			out[a] = ev * realize
		default:
			target := targetFor(in, a, currentBet, commit, preflop, bigBlind)
			payAmt := pay(in, target, commit)
			pFold, pCall, pRaise := responseModel(in.Pot, payAmt, in.Opponent, in.Belief)
			callBranch := in.HS*(in.Pot+payAmt) - (1-in.HS)*payAmt
			ev := pFold*in.Pot + pCall*callBranch + pRaise*(callBranch-0.35*payAmt)
			out[a] = applyPenalties(a, ev, in, dry, payAmt)
		}
	}
	return out
}

func applyPenalties(a holdem.Action, ev float64, in Inputs, dry bool, payAmt float64) float64 {
	isRaise := a == holdem.RaiseHalfPot || a == holdem.RaisePot || a == holdem.BetHalfPot || a == holdem.BetPot || a == holdem.AllIn
	isPotSize := a == holdem.BetPot || a == holdem.RaisePot

	if in.HS >= 0.4 && in.HS <= 0.65 && in.SPR > 2 && isRaise {
		ev -= in.Pot * 0.15
	}
	if in.Texture.Paired && in.HS >= 0.4 && in.HS <= 0.65 && isRaise {
		ev -= in.Pot * 0.15
	}
	if dry && isPotSize {
		ev -= in.Pot * 0.10
	}
	if a == holdem.AllIn && in.SPR > 6 {
		ev -= payAmt * 0.30
	}
	return ev
}
