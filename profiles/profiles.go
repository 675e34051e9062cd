// Package profiles implements the four rule-based evaluation opponents
// from spec.md §4.10, used by the DCFR trainer's checkpoint evaluator
// suite. Each profile is a deterministic function of (legal actions,
// to_call, pot, a uniform random draw) to a weighted-choice map,
// mirroring the teacher's RandomActor: GetProbs builds a normalized
// weight map, GetAction argmaxes it. Here the weights come from a
// fixed per-profile rule table instead of uniform randomness.
package profiles

import (
	"math/rand"

	"holdem-engine/holdem"
)

// Profile is a named rule-based opponent.
type Profile int

const (
	Nit Profile = iota
	Station
	Aggro
	PotOdds
)

func (p Profile) String() string {
	switch p {
	case Nit:
		return "nit"
	case Station:
		return "station"
	case Aggro:
		return "aggro"
	case PotOdds:
		return "pot_odds"
	default:
		return "unknown"
	}
}

// All lists every evaluation profile, in a fixed order for the
// checkpoint evaluator suite.
func All() []Profile { return []Profile{Nit, Station, Aggro, PotOdds} }

// GetProbs returns a normalized weight map over the legal actions for
// this profile at the given node, per spec.md §4.10.
func GetProbs(p Profile, legal holdem.ActionSet, toCall, pot float64) map[holdem.Action]float64 {
	switch p {
	case Nit:
		return nitProbs(legal, toCall)
	case Station:
		return stationProbs(legal, toCall)
	case Aggro:
		return aggroProbs(legal, toCall)
	case PotOdds:
		return potOddsProbs(legal, toCall, pot)
	default:
		return uniform(legal)
	}
}

// GetAction samples an action from GetProbs via a single uniform draw,
// mirroring the teacher's RandomActor.GetAction argmax-of-weights shape
// but sampling rather than arg-maxing, so repeated calls exercise the
// full mix instead of always returning the modal action.
func GetAction(rng *rand.Rand, p Profile, legal holdem.ActionSet, toCall, pot float64) holdem.Action {
	probs := GetProbs(p, legal, toCall, pot)
	r := rng.Float64()
	acc := 0.0
	var last holdem.Action = holdem.Fold
	for _, a := range legal.Slice() {
		acc += probs[a]
		last = a
		if r <= acc {
			return a
		}
	}
	return last
}

func uniform(legal holdem.ActionSet) map[holdem.Action]float64 {
	out := make(map[holdem.Action]float64, legal.Count())
	n := float64(legal.Count())
	if n == 0 {
		return out
	}
	for _, a := range legal.Slice() {
		out[a] = 1 / n
	}
	return out
}

// nitProbs: tight, fold-heavy. Folds to any bet with the same weight
// whatever its size; rarely raises; checks/calls otherwise.
func nitProbs(legal holdem.ActionSet, toCall float64) map[holdem.Action]float64 {
	w := make(map[holdem.Action]float64)
	if legal.Has(holdem.Fold) {
		if toCall > 0 {
			w[holdem.Fold] = 0.70
		}
	}
	if legal.Has(holdem.Check) {
		w[holdem.Check] = 1.0
	}
	if legal.Has(holdem.Call) {
		w[holdem.Call] = 0.28
	}
	for _, a := range []holdem.Action{holdem.BetHalfPot, holdem.BetPot, holdem.RaiseHalfPot, holdem.RaisePot, holdem.AllIn} {
		if legal.Has(a) {
			w[a] = 0.02
		}
	}
	return normalize(w, legal)
}

// stationProbs: call-heavy. Rarely folds, rarely raises.
func stationProbs(legal holdem.ActionSet, toCall float64) map[holdem.Action]float64 {
	w := make(map[holdem.Action]float64)
	if legal.Has(holdem.Fold) {
		w[holdem.Fold] = 0.08
	}
	if legal.Has(holdem.Check) {
		w[holdem.Check] = 1.0
	}
	if legal.Has(holdem.Call) {
		w[holdem.Call] = 0.85
	}
	for _, a := range []holdem.Action{holdem.BetHalfPot, holdem.BetPot, holdem.RaiseHalfPot, holdem.RaisePot, holdem.AllIn} {
		if legal.Has(a) {
			w[a] = 0.04
		}
	}
	return normalize(w, legal)
}

// aggroProbs: raise-heavy. Bets/raises whenever legal, rarely folds.
func aggroProbs(legal holdem.ActionSet, toCall float64) map[holdem.Action]float64 {
	w := make(map[holdem.Action]float64)
	if legal.Has(holdem.Fold) {
		w[holdem.Fold] = 0.10
	}
	if legal.Has(holdem.Check) {
		w[holdem.Check] = 0.15
	}
	if legal.Has(holdem.Call) {
		w[holdem.Call] = 0.30
	}
	for _, a := range []holdem.Action{holdem.BetHalfPot, holdem.BetPot, holdem.RaiseHalfPot, holdem.RaisePot, holdem.AllIn} {
		if legal.Has(a) {
			w[a] = 0.55
		}
	}
	return normalize(w, legal)
}

// potOddsProbs: calls iff pot odds <= 0.33, otherwise folds/checks;
// never voluntarily raises.
func potOddsProbs(legal holdem.ActionSet, toCall, pot float64) map[holdem.Action]float64 {
	w := make(map[holdem.Action]float64)
	odds := 0.0
	if pot+toCall > 0 {
		odds = toCall / (pot + toCall)
	}
	if legal.Has(holdem.Check) {
		w[holdem.Check] = 1.0
	}
	if toCall <= 0 {
		return normalize(w, legal)
	}
	if odds <= 0.33 && legal.Has(holdem.Call) {
		w[holdem.Call] = 1.0
	} else if legal.Has(holdem.Fold) {
		w[holdem.Fold] = 1.0
	}
	return normalize(w, legal)
}

func normalize(w map[holdem.Action]float64, legal holdem.ActionSet) map[holdem.Action]float64 {
	out := make(map[holdem.Action]float64, legal.Count())
	sum := 0.0
	for _, a := range legal.Slice() {
		out[a] = w[a]
		sum += w[a]
	}
	if sum <= 0 {
		return uniform(legal)
	}
	for a := range out {
		out[a] /= sum
	}
	return out
}
