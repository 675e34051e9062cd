package evscore

import (
	"holdem-engine/holdem"
)

// reqEq is the required equity to profitably call a bet of size pay
// into pot: pay / (pot + 2*pay).
func reqEq(pot, payAmt float64) float64 {
	denom := pot + 2*payAmt
	if denom <= 0 {
		return 0
	}
	return payAmt / denom
}

// ReqEquity exposes reqEq to callers outside this package (engine),
// which needs the same required-equity figure to drive PreFilter and
// ConservativeOverride from the current to-call amount.
func ReqEquity(pot, payAmt float64) float64 { return reqEq(pot, payAmt) }

// PreFilter removes dominated actions before EV scoring, per spec.md
// §4.5. If every action would be removed, the original legal set is
// restored — an EmptyLegalSet condition the caller should log.
func PreFilter(legal holdem.ActionSet, hs float64, reqEquity float64, spr float64) (holdem.ActionSet, bool) {
	filtered := legal

	if hs > reqEquity+0.02 {
		filtered.Remove(holdem.Fold)
	}
	if (spr > 2 && hs < 0.70) || spr > 10 {
		filtered.Remove(holdem.AllIn)
	}
	if hs < 0.60 {
		filtered.Remove(holdem.BetPot)
		filtered.Remove(holdem.RaisePot)
	}

	if filtered.Count() == 0 {
		return legal, true
	}
	return filtered, false
}

// ConservativeOverride re-maps the EV-selected action per spec.md
// §4.5's four override rules, given the node's context.
func ConservativeOverride(chosen holdem.Action, legal holdem.ActionSet, hs float64, spr float64, paired bool, dry bool, reqEquity float64) holdem.Action {
	if paired && hs > 0.40 && hs < 0.70 && spr > 2 {
		return preferOneOf(legal, holdem.Call, holdem.Check)
	}
	if chosen == holdem.AllIn && spr > 1.5 && hs < 0.70 {
		return preferOneOf(legal, holdem.RaiseHalfPot, holdem.BetHalfPot, holdem.Call, holdem.Check)
	}
	if dry && (chosen == holdem.BetPot || chosen == holdem.RaisePot) && hs < 0.68 {
		if chosen == holdem.RaisePot {
			return preferOneOf(legal, holdem.RaiseHalfPot, holdem.Call, holdem.Check)
		}
		return preferOneOf(legal, holdem.BetHalfPot, holdem.Check)
	}
	if isRaiseAction(chosen) && hs < reqEquity+0.18 {
		return preferOneOf(legal, holdem.Call, holdem.Check, holdem.Fold)
	}
	return chosen
}

func isRaiseAction(a holdem.Action) bool {
	return a == holdem.RaiseHalfPot || a == holdem.RaisePot || a == holdem.BetHalfPot || a == holdem.BetPot || a == holdem.AllIn
}

// preferOneOf returns the first legal action in the given preference
// order, falling back to whatever the legal set actually offers.
func preferOneOf(legal holdem.ActionSet, prefs ...holdem.Action) holdem.Action {
	for _, p := range prefs {
		if legal.Has(p) {
			return p
		}
	}
	for _, a := range legal.Slice() {
		return a
	}
	return holdem.Fold
}

// SelectAction picks the max-EV action within a 0.05 tolerance,
// tie-breaking to the least aggressive candidate within tolerance of
// the maximum, per spec.md §4.5.
func SelectAction(scores map[holdem.Action]float64) holdem.Action {
	if len(scores) == 0 {
		return holdem.Fold
	}
	best := holdem.Fold
	bestEV := negInf
	for a, ev := range scores {
		if ev > bestEV {
			bestEV = ev
			best = a
		}
	}
	choice := best
	for a, ev := range scores {
		if bestEV-ev <= 0.05 && holdem.LessAggressive(a, choice) {
			choice = a
		}
	}
	return choice
}

const negInf = -1e18
