package dcfr

import (
	"fmt"
	"math/rand"

	"holdem-engine/holdem"
)

// Sample draws one action from a probability map, validating the
// total sums to ~1 first. Adapted from the teacher's
// common/random/sample.go (build a slice of (value, prob) pairs,
// validate the sum, walk a cumulative threshold), generalized from
// int32 action codes to holdem.Action.
func Sample(rng *rand.Rand, probs map[holdem.Action]float64) (holdem.Action, error) {
	type actionProb struct {
		action holdem.Action
		prob   float64
	}
	actions := make([]actionProb, 0, len(probs))
	sum := 0.0
	for a, p := range probs {
		actions = append(actions, actionProb{a, p})
		sum += p
	}
	if len(actions) == 0 {
		return holdem.Fold, fmt.Errorf("dcfr: empty probability map")
	}
	if sum < 0.95 || sum > 1.05 {
		return holdem.Fold, fmt.Errorf("dcfr: invalid probs sum %v != 1", sum)
	}

	r := rng.Float64()
	cumulative := 0.0
	for _, ap := range actions {
		cumulative += ap.prob
		if r < cumulative {
			return ap.action, nil
		}
	}
	return actions[len(actions)-1].action, nil
}
