package blueprint

import (
	"math"
	"math/rand"

	"holdem-engine/holdem"
)

// DefaultEVBlend and DefaultProbFloor are spec.md §6's EV_BLEND and
// PROB_FLOOR parameters.
const (
	DefaultEVBlend  = 0.4
	DefaultProbFloor = 1e-4

	TemperaturePostflop = 0.30
	TemperaturePreflop  = 0.40
)

// ProjectOntoLegal renormalizes a full 8-length prior vector over just
// the legal actions, per spec.md §4.8's "project blueprint prior onto
// legal actions, renormalize". Missing/zero mass everywhere falls back
// to uniform.
func ProjectOntoLegal(prior [holdem.NumActions]float64, legal holdem.ActionSet) map[holdem.Action]float64 {
	out := make(map[holdem.Action]float64, legal.Count())
	sum := 0.0
	for _, a := range legal.Slice() {
		out[a] = prior[a]
		sum += prior[a]
	}
	if sum <= 0 {
		n := float64(legal.Count())
		for a := range out {
			out[a] = 1 / n
		}
		return out
	}
	for a := range out {
		out[a] /= sum
	}
	return out
}

// Blend combines EV scores with a blueprint prior via spec.md §4.6's
// formula: score(a) = ev_blend*EV(a) + (1-ev_blend)*log(max(floor,
// prior(a))), softmax'd at the given temperature. Returns the resulting
// probability distribution over legal actions.
func Blend(ev map[holdem.Action]float64, prior map[holdem.Action]float64, legal holdem.ActionSet, evBlend, floor, temperature float64) map[holdem.Action]float64 {
	scores := make(map[holdem.Action]float64, legal.Count())
	maxScore := math.Inf(-1)
	for _, a := range legal.Slice() {
		p := prior[a]
		logPrior := math.Log(math.Max(floor, p))
		s := evBlend*ev[a] + (1-evBlend)*logPrior
		scores[a] = s
		if s > maxScore {
			maxScore = s
		}
	}

	probs := make(map[holdem.Action]float64, len(scores))
	sum := 0.0
	for a, s := range scores {
		p := math.Exp((s - maxScore) / temperature)
		probs[a] = p
		sum += p
	}
	if sum <= 0 {
		n := float64(len(scores))
		for a := range probs {
			probs[a] = 1 / n
		}
		return probs
	}
	for a := range probs {
		probs[a] /= sum
	}
	return probs
}

// Argmax returns the highest-probability action, tie-breaking to
// whichever key iteration visits first (map iteration order does not
// matter here since exact float ties are rare after softmax).
func Argmax(probs map[holdem.Action]float64) holdem.Action {
	best := holdem.Fold
	bestP := -1.0
	for a, p := range probs {
		if p > bestP {
			bestP = p
			best = a
		}
	}
	return best
}

// Sample draws an action from probs via a single uniform draw, used
// for exploration/logging per spec.md §4.6 ("sample otherwise for
// logging").
func Sample(rng *rand.Rand, probs map[holdem.Action]float64, legal holdem.ActionSet) holdem.Action {
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
