package dcfr

import (
	"math"

	"holdem-engine/holdem"
)

// PositiveDiscount and NegativeDiscount implement spec.md §4.7's DCFR
// discount multipliers for iteration t (1-indexed).
func PositiveDiscount(t int) float64 {
	tp := math.Pow(float64(t), 1.5)
	return tp / (tp + 1)
}

func NegativeDiscount(t int) float64 {
	tp := math.Pow(float64(t), 0.5)
	return tp / (tp + 2)
}

// DiscountRegrets applies the DCFR discount to n's regrets in place,
// per spec.md §4.7 ("apply before adding the current iteration's
// regret").
func DiscountRegrets(n *NodeStats, t int) {
	pos := PositiveDiscount(t)
	neg := NegativeDiscount(t)
	for a := range n.Regrets {
		if n.Regrets[a] > 0 {
			n.Regrets[a] *= pos
		} else {
			n.Regrets[a] *= neg
		}
	}
}

// CurrentStrategy computes regret-matching over legal actions: sigma(a)
// proportional to max(0, R(a)), uniform over legal when the positive
// sum is zero.
func CurrentStrategy(n *NodeStats, legal holdem.ActionSet) map[holdem.Action]float64 {
	strat := make(map[holdem.Action]float64, legal.Count())
	sum := 0.0
	for _, a := range legal.Slice() {
		r := n.Regrets[a]
		if r < 0 {
			r = 0
		}
		strat[a] = r
		sum += r
	}
	if sum <= 0 {
		u := 1.0 / float64(legal.Count())
		for a := range strat {
			strat[a] = u
		}
		return strat
	}
	for a := range strat {
		strat[a] /= sum
	}
	return strat
}

// AccumulateStrategySum adds sigma into n's running strategy sum, per
// spec.md §4.7 ("accumulate strategy_sum[a] += sigma(a) at every
// visit").
func AccumulateStrategySum(n *NodeStats, legal holdem.ActionSet, strat map[holdem.Action]float64) {
	n.Visits++
	n.EverLegal |= legal
	for _, a := range legal.Slice() {
		n.StrategySum[a] += strat[a]
	}
}

// AverageStrategy exports pi(a) = strategy_sum[a] / sum(strategy_sum),
// uniform fallback if the sum is zero, per spec.md §4.7.
func AverageStrategy(n *NodeStats) [holdem.NumActions]float64 {
	var out [holdem.NumActions]float64
	sum := 0.0
	for _, v := range n.StrategySum {
		sum += v
	}
	if sum <= 0 {
		legalCount := n.EverLegal.Count()
		if legalCount == 0 {
			return out
		}
		u := 1.0 / float64(legalCount)
		for _, a := range n.EverLegal.Slice() {
			out[a] = u
		}
		return out
	}
	for i, v := range n.StrategySum {
		out[i] = v / sum
	}
	return out
}
