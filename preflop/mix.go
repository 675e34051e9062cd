package preflop

import (
	"math"
	"math/rand"

	"holdem-engine/holdem"
)

// weights is a raise/call/passive (fold or check) triple, summing to 1.
type weights struct {
	Raise, Call, Passive float64
}

// context distinguishes the two preflop situations the spec's table is
// indexed by.
type context int

const (
	Unopened context = iota
	FacingRaise
)

// baseTable is the tier × context weight table from spec.md §4.4. The
// exact split between raise/call/passive per cell is this module's
// reading of "emit a raise/call/passive triple" — tight with premiums,
// progressively looser down the tiers, and more fold-leaning once
// facing a raise.
var baseTable = map[Tier]map[context]weights{
	Premium: {
		Unopened:    {Raise: 0.90, Call: 0.08, Passive: 0.02},
		FacingRaise: {Raise: 0.75, Call: 0.23, Passive: 0.02},
	},
	Strong: {
		Unopened:    {Raise: 0.70, Call: 0.25, Passive: 0.05},
		FacingRaise: {Raise: 0.35, Call: 0.45, Passive: 0.20},
	},
	Medium: {
		Unopened:    {Raise: 0.40, Call: 0.45, Passive: 0.15},
		FacingRaise: {Raise: 0.10, Call: 0.35, Passive: 0.55},
	},
	Speculative: {
		Unopened:    {Raise: 0.20, Call: 0.45, Passive: 0.35},
		FacingRaise: {Raise: 0.03, Call: 0.20, Passive: 0.77},
	},
	Trash: {
		Unopened:    {Raise: 0.05, Call: 0.15, Passive: 0.80},
		FacingRaise: {Raise: 0.00, Call: 0.03, Passive: 0.97},
	},
}

func baseWeights(tier Tier, facingRaise bool) weights {
	ctx := Unopened
	if facingRaise {
		ctx = FacingRaise
	}
	return baseTable[tier][ctx]
}

// equityCorrection nudges raise mass by spec.md §4.4's ±0.08 when
// estimated hand strength sits outside [0.42, 0.62].
func equityCorrection(w weights, hs float64) weights {
	delta := 0.0
	switch {
	case hs < 0.42:
		delta = -0.08
	case hs > 0.62:
		delta = 0.08
	}
	return shiftRaise(w, delta)
}

// OpponentTendency summarizes the preflop aggression stats the
// tendency correction reads, grounded on Session.stats in spec.md §3.
type OpponentTendency struct {
	ThreeBetRate float64
	CallVsRaise  float64
	Samples      int
}

// tendencyCorrection applies spec.md §4.4's opponent-exploit nudge:
// raise less into a loose 3-bettor, and also less into a sticky
// opponent that rarely 3-bets but calls raises often.
func tendencyCorrection(w weights, t OpponentTendency) weights {
	if t.Samples < 8 {
		return w
	}
	switch {
	case t.ThreeBetRate > 0.28:
		return shiftRaise(w, -0.05)
	case t.ThreeBetRate < 0.10 && t.CallVsRaise > 0.5:
		return shiftRaise(w, -0.05) // sticky, value-call-friendly: raise less, play passively more
	}
	return w
}

func shiftRaise(w weights, delta float64) weights {
	w.Raise += delta
	w.Passive -= delta
	if w.Raise < 0 {
		w.Passive += w.Raise
		w.Raise = 0
	}
	if w.Passive < 0 {
		w.Raise += w.Passive
		w.Passive = 0
	}
	return w
}

// Distribution splits a weights triple across the eight legal actions
// for a preflop node, following spec.md §4.4: raise mass divides
// between RAISE_HALF_POT and RAISE_POT (skewing toward pot-size as hand
// strength rises), with a slice of ALL_IN mass once hs > 0.80; call
// mass goes to CALL; passive (non-raise, non-call) mass goes to FOLD
// when facing a raise and to CHECK otherwise. Mass on actions that are
// not legal at the node is dropped before normalizing.
func Distribution(legal holdem.ActionSet, tier Tier, facingRaise bool, hs float64, tendency OpponentTendency) map[holdem.Action]float64 {
	w := baseWeights(tier, facingRaise)
	w = equityCorrection(w, hs)
	w = tendencyCorrection(w, tendency)

	out := make(map[holdem.Action]float64)

	raiseMass := w.Raise
	allInMass := 0.0
	if hs > 0.80 {
		allInMass = raiseMass * 0.20
		raiseMass -= allInMass
	}
	potFraction := 0.40 + 0.30*clamp01(hs)
	potMass := raiseMass * potFraction
	halfMass := raiseMass - potMass

	out[holdem.RaiseHalfPot] = halfMass
	out[holdem.RaisePot] = potMass
	out[holdem.AllIn] = allInMass
	out[holdem.Call] = w.Call
	if facingRaise {
		out[holdem.Fold] = w.Passive
	} else {
		out[holdem.Check] = w.Passive
	}

	return normalizeOverLegal(out, legal)
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

func normalizeOverLegal(weights map[holdem.Action]float64, legal holdem.ActionSet) map[holdem.Action]float64 {
	out := make(map[holdem.Action]float64, legal.Count())
	sum := 0.0
	for _, a := range legal.Slice() {
		w := weights[a]
		if w < 0 {
			w = 0
		}
		out[a] = w
		sum += w
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

const (
	sampleBlend = 0.55
	sampleTemp  = 0.85
	probFloor   = 1e-4
)

// Sample blends EV scores with the log of the heuristic mix weights
// (spec.md §4.4: "softmax blend of EV scores and log-mix weights with
// blend=0.55 and temperature=0.85"), then draws an action from the
// resulting softmax distribution.
func Sample(rng *rand.Rand, mix map[holdem.Action]float64, ev map[holdem.Action]float64) holdem.Action {
	scores := make(map[holdem.Action]float64, len(mix))
	best := holdem.Fold
	bestScore := math.Inf(-1)
	for a, p := range mix {
		logMix := math.Log(math.Max(probFloor, p))
		score := sampleBlend*ev[a] + (1-sampleBlend)*logMix
		scores[a] = score
		if score > bestScore {
			bestScore = score
			best = a
		}
	}
	if len(scores) == 0 {
		return best
	}

	probs := make(map[holdem.Action]float64, len(scores))
	sum := 0.0
	for a, s := range scores {
		p := math.Exp((s - bestScore) / sampleTemp)
		probs[a] = p
		sum += p
	}
	r := rng.Float64() * sum
	acc := 0.0
	for a, p := range probs {
		acc += p
		if r <= acc {
			return a
		}
	}
	return best
}
