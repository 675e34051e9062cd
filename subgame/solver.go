// Package subgame implements the realtime, time-budgeted DCFR resolve
// from spec.md §4.8: instead of recursing to terminal nodes like the
// offline trainer, each iteration scores every legal action with a
// cheap leaf evaluator (evscore's EV plus noise and a continuation
// term) and runs the same regret-matching/discounting machinery the
// offline trainer uses, blended toward the blueprint prior. Reusing
// dcfr's NodeStats/CurrentStrategy/DiscountRegrets/AverageStrategy
// keeps both solvers' regret bookkeeping identical, as the teacher
// keeps one CFR core (cfr.CFR) for both its training and any
// shallower re-solve a caller chooses to run with fewer iterations.
package subgame

import (
	"math/rand"
	"time"

	"github.com/coder/quartz"

	"holdem-engine/belief"
	"holdem-engine/blueprint"
	"holdem-engine/dcfr"
	"holdem-engine/evscore"
	"holdem-engine/holdem"
	"holdem-engine/infoset"
)

// Config bundles spec.md §6's realtime-subgame parameters.
type Config struct {
	BudgetMS    int
	PriorWeight float64
	Depth       int
	TriggerPot  float64
	TriggerSPR  float64
}

// DefaultConfig matches spec.md §6's stated defaults.
func DefaultConfig() Config {
	return Config{BudgetMS: 300, PriorWeight: 0.65, Depth: 5, TriggerPot: 60, TriggerSPR: 4}
}

func clampBudget(ms int) int {
	if ms < 200 {
		return 200
	}
	if ms > 800 {
		return 800
	}
	return ms
}

// ShouldTrigger reports spec.md §4.8's trigger condition: turn or
// river, pot at or above the trigger or SPR at or below it, and
// betting not already closed all-in.
func ShouldTrigger(streetIdx int, pot, spr float64, allInClosed bool, cfg Config) bool {
	if streetIdx < 2 {
		return false
	}
	if allInClosed {
		return false
	}
	return pot >= cfg.TriggerPot || spr <= cfg.TriggerSPR
}

// Node bundles everything one subgame resolve needs about the current
// decision point: the legal actions, the EV-scorer inputs, and the
// action-sizing context required to compute a "pay" per action.
type Node struct {
	Legal      holdem.ActionSet
	HS         float64
	Pot        float64
	ToCall     float64
	Stack      float64
	SPR        float64
	Texture    infoset.TextureBits
	Opponent   evscore.OpponentStats
	Belief     belief.Belief
	CurrentBet float64
	Commit     float64
	BigBlind   float64
}

// Result is the realtime solver's output: the averaged strategy over the
// node's legal actions, the argmax pick, the time spent and the number
// of iterations run before the time budget elapsed.
type Result struct {
	Strategy map[holdem.Action]float64
	Picked   holdem.Action
	Elapsed  time.Duration
	Iters    int
}

// Solve runs the time-budgeted resolve described above, seeded by
// prior (a projected-onto-legal blueprint distribution, or uniform if
// absent), and returns the averaged strategy and an argmax pick.
func Solve(clock quartz.Clock, rng *rand.Rand, node Node, prior map[holdem.Action]float64, cfg Config) Result {
	budget := time.Duration(clampBudget(cfg.BudgetMS)) * time.Millisecond
	start := clock.Now()

	if prior == nil {
		prior = uniform(node.Legal)
	}

	n := &dcfr.NodeStats{EverLegal: node.Legal}
	iter := 0
	for clock.Since(start) < budget {
		iter++
		blended := blendWithPrior(dcfr.CurrentStrategy(n, node.Legal), prior, node.Legal, cfg.PriorWeight)

		leafEV := make(map[holdem.Action]float64, node.Legal.Count())
		for _, a := range node.Legal.Slice() {
			leafEV[a] = leafValue(rng, node, a, cfg)
		}
		nodeUtil := 0.0
		for _, a := range node.Legal.Slice() {
			nodeUtil += blended[a] * leafEV[a]
		}

		dcfr.AccumulateStrategySum(n, node.Legal, blended)
		dcfr.DiscountRegrets(n, iter)
		for _, a := range node.Legal.Slice() {
			n.Regrets[a] += leafEV[a] - nodeUtil
		}
	}

	avg := dcfr.AverageStrategy(n)
	strat := blueprint.ProjectOntoLegal(avg, node.Legal)
	return Result{
		Strategy: strat,
		Picked:   blueprint.Argmax(strat),
		Elapsed:  clock.Since(start),
		Iters:    iter,
	}
}

func uniform(legal holdem.ActionSet) map[holdem.Action]float64 {
	out := make(map[holdem.Action]float64, legal.Count())
	n := float64(legal.Count())
	for _, a := range legal.Slice() {
		out[a] = 1 / n
	}
	return out
}

func blendWithPrior(sigma, prior map[holdem.Action]float64, legal holdem.ActionSet, weight float64) map[holdem.Action]float64 {
	out := make(map[holdem.Action]float64, legal.Count())
	sum := 0.0
	for _, a := range legal.Slice() {
		v := weight*prior[a] + (1-weight)*sigma[a]
		out[a] = v
		sum += v
	}
	if sum <= 0 {
		return uniform(legal)
	}
	for a := range out {
		out[a] /= sum
	}
	return out
}

// leafValue computes one action's approximate leaf EV, per spec.md
// §4.8: the evscore EV, plus Gaussian noise (~0.4% of pot), plus a
// depth continuation term, minus a sizing-tension penalty.
func leafValue(rng *rand.Rand, node Node, a holdem.Action, cfg Config) float64 {
	evInputs := evscore.Inputs{
		Legal:    holdem.ActionSet(0),
		HS:       node.HS,
		Pot:      node.Pot,
		ToCall:   node.ToCall,
		Stack:    node.Stack,
		SPR:      node.SPR,
		Texture:  node.Texture,
		Opponent: node.Opponent,
		Belief:   evscore.BeliefTilt{Strong: node.Belief.Strong, Weak: node.Belief.Weak},
	}
	evInputs.Legal.Add(a)
	scores := evscore.Score(evInputs, node.CurrentBet, node.Commit, false, node.BigBlind)
	ev := scores[a]

	noise := rng.NormFloat64() * 0.004 * node.Pot

	strongTilt := node.Belief.Strong - node.Belief.Weak
	depth := cfg.Depth
	if depth < 1 {
		depth = 1
	}
	continuation := (node.HS - 0.5 - 0.25*strongTilt) * node.Pot * 0.24 * float64(depth-1) / float64(depth)

	pay := evscore.Pay(evInputs, a, node.CurrentBet, node.Commit, false, node.BigBlind)
	tension := 0.0
	if node.Pot > 0 {
		tension = 0.06 * (pay / node.Pot) * pay
	}

	return ev + noise + continuation - tension
}
