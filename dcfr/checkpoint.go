package dcfr

import (
	"math/rand"
	"runtime"
	"time"

	"holdem-engine/blueprint"
	"holdem-engine/holdem"
	"holdem-engine/preflop"
	"holdem-engine/profiles"
)

// checkpoint exports the current average policy, computes its L1 drift
// against the previous checkpoint, evaluates it against the four
// profiles, and records a blueprint.CheckpointRecord, per spec.md
// §4.7.
func (tr *Trainer) checkpoint(iter int, start time.Time) blueprint.CheckpointRecord {
	policy := tr.ExportPolicy()
	drift := l1Drift(tr.prevPolicy, policy)
	tr.prevPolicy = policy

	evalPerProfile := make(map[string]float64, len(profiles.All()))
	aggregate := 0.0
	for _, p := range profiles.All() {
		ev := tr.evaluateProfile(p, policy)
		evalPerProfile[p.String()] = ev
		aggregate += ev
	}
	if n := len(profiles.All()); n > 0 {
		aggregate /= float64(n)
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	elapsed := time.Since(start).Seconds()
	throughput := 0.0
	if elapsed > 0 {
		throughput = float64(iter) / elapsed
	}

	return blueprint.CheckpointRecord{
		Iteration:      iter,
		InfosetCount:   tr.Arena.Len(),
		ThroughputPerS: throughput,
		MemoryBytes:    int64(mem.HeapAlloc),
		Drift:          drift,
		EvalPerProfile: evalPerProfile,
		EvalAggregate:  aggregate,
	}
}

// l1Drift computes the average L1 distance between two policy
// snapshots over the union of their keys, per spec.md §4.7.
func l1Drift(prev, curr map[string][holdem.NumActions]float64) float64 {
	seen := make(map[string]struct{}, len(prev)+len(curr))
	for k := range prev {
		seen[k] = struct{}{}
	}
	for k := range curr {
		seen[k] = struct{}{}
	}
	if len(seen) == 0 {
		return 0
	}

	total := 0.0
	for k := range seen {
		a := prev[k]
		b := curr[k]
		dist := 0.0
		for i := 0; i < holdem.NumActions; i++ {
			d := a[i] - b[i]
			if d < 0 {
				d = -d
			}
			dist += d
		}
		total += dist
	}
	return total / float64(len(seen))
}

// plateaued implements spec.md §4.7's plateau-stop rule: after
// MinItersBeforeStop, stop if the last 3 checkpoints each have drift
// below threshold and the aggregate EV range across them is below
// EVPlateauThreshold.
func (tr *Trainer) plateaued(iter int) bool {
	if iter < tr.Cfg.MinItersBeforeStop {
		return false
	}
	n := len(tr.Checkpoints)
	if n < 3 {
		return false
	}
	last3 := tr.Checkpoints[n-3:]

	maxEV, minEV := last3[0].EvalAggregate, last3[0].EvalAggregate
	for _, cp := range last3 {
		if cp.Drift > tr.Cfg.DriftPlateauThreshold {
			return false
		}
		if cp.EvalAggregate > maxEV {
			maxEV = cp.EvalAggregate
		}
		if cp.EvalAggregate < minEV {
			minEV = cp.EvalAggregate
		}
	}
	return maxEV-minEV <= tr.Cfg.EVPlateauThreshold
}

// evaluateProfile plays EvalHandsPerProfile hands of the current
// average policy against a rule-based profile, alternating which seat
// the bot occupies, and returns the bot's average EV in big blinds.
func (tr *Trainer) evaluateProfile(p profiles.Profile, policy map[string][holdem.NumActions]float64) float64 {
	rng := rand.New(rand.NewSource(tr.Cfg.Seed ^ int64(len(policy)) ^ int64(p)))
	total := 0.0
	n := tr.Cfg.EvalHandsPerProfile
	if n <= 0 {
		return 0
	}
	for i := 0; i < n; i++ {
		botSeat := i % 2
		total += tr.playEvalHand(rng, botSeat, p, policy)
	}
	return total / float64(n)
}

func (tr *Trainer) playEvalHand(rng *rand.Rand, botSeat int, p profiles.Profile, policy map[string][holdem.NumActions]float64) float64 {
	hand := holdem.NewHand(tr.Cfg.GameCfg, rng)
	for !hand.State.Terminal {
		seat := hand.State.ToAct
		legal := hand.LegalActions()
		toCall := hand.State.ToCall(seat)
		pot := hand.State.Pot

		var action holdem.Action
		if seat == botSeat {
			action = tr.botEvalAction(hand, seat, legal, policy, rng)
		} else {
			action = profiles.GetAction(rng, p, legal, toCall, pot)
		}
		hand.Apply(action)
	}
	return hand.Payoff(botSeat) / tr.Cfg.GameCfg.BigBlind
}

// botEvalAction picks the bot's evaluation-time action: the average
// policy's highest-probability legal action when a postflop infoset
// key hits, a heuristic preflop pick otherwise.
func (tr *Trainer) botEvalAction(hand *holdem.Hand, seat int, legal holdem.ActionSet, policy map[string][holdem.NumActions]float64, rng *rand.Rand) holdem.Action {
	if hand.State.StreetIdx == 0 {
		hs := tr.handStrength(hand, seat)
		facingRaise := hand.State.ToCall(seat) > tr.Cfg.GameCfg.Epsilon
		tier := preflop.Classify(hand.Ctx.Hole[seat])
		mix := preflop.Distribution(legal, tier, facingRaise, hs, preflop.OpponentTendency{})
		if a, err := Sample(rng, mix); err == nil {
			return a
		}
		return legal.Slice()[0]
	}

	hs := tr.handStrength(hand, seat)
	key := tr.infosetKey(hand, seat, hs)
	vec, ok := policy[key]
	if !ok {
		return legal.Slice()[0]
	}
	probs := blueprint.ProjectOntoLegal(vec, legal)
	return blueprint.Argmax(probs)
}
