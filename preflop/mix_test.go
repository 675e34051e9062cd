package preflop

import (
	"math/rand"
	"testing"

	"holdem-engine/holdem"
)

func TestDistributionSumsToOneOverLegalActions(t *testing.T) {
	var legal holdem.ActionSet
	legal.Add(holdem.Fold)
	legal.Add(holdem.Call)
	legal.Add(holdem.RaiseHalfPot)
	legal.Add(holdem.RaisePot)
	legal.Add(holdem.AllIn)

	dist := Distribution(legal, Medium, true, 0.5, OpponentTendency{})
	sum := 0.0
	for a, p := range dist {
		if p < 0 {
			t.Errorf("negative probability for %v: %v", a, p)
		}
		sum += p
	}
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("distribution sums to %v, want ~1", sum)
	}
}

func TestDistributionOnlyAssignsLegalActions(t *testing.T) {
	var legal holdem.ActionSet
	legal.Add(holdem.Check)
	legal.Add(holdem.RaiseHalfPot)

	dist := Distribution(legal, Strong, false, 0.6, OpponentTendency{})
	for a := range dist {
		if !legal.Has(a) {
			t.Errorf("distribution assigned mass to illegal action %v", a)
		}
	}
	if len(dist) != legal.Count() {
		t.Fatalf("distribution has %d entries, want %d", len(dist), legal.Count())
	}
}

func TestDistributionAddsAllInMassForVeryStrongHands(t *testing.T) {
	var legal holdem.ActionSet
	legal.Add(holdem.Call)
	legal.Add(holdem.RaiseHalfPot)
	legal.Add(holdem.RaisePot)
	legal.Add(holdem.AllIn)

	dist := Distribution(legal, Premium, false, 0.9, OpponentTendency{})
	if dist[holdem.AllIn] <= 0 {
		t.Fatalf("expected positive ALL_IN mass for hs=0.9, got %v", dist[holdem.AllIn])
	}
}

func TestEquityCorrectionShiftsRaiseMassDown(t *testing.T) {
	w := baseWeights(Medium, false)
	corrected := equityCorrection(w, 0.2)
	if corrected.Raise >= w.Raise {
		t.Fatalf("low hs should reduce raise mass: base=%v corrected=%v", w.Raise, corrected.Raise)
	}
}

func TestTendencyCorrectionIgnoresSmallSamples(t *testing.T) {
	w := baseWeights(Medium, false)
	corrected := tendencyCorrection(w, OpponentTendency{ThreeBetRate: 0.9, Samples: 2})
	if corrected != w {
		t.Fatalf("small sample size should not trigger a correction")
	}
}

func TestSamplePicksAmongOfferedActions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	mix := map[holdem.Action]float64{holdem.Fold: 0.1, holdem.Call: 0.6, holdem.RaisePot: 0.3}
	ev := map[holdem.Action]float64{holdem.Fold: 0, holdem.Call: 2, holdem.RaisePot: 3}

	seen := map[holdem.Action]bool{}
	for i := 0; i < 200; i++ {
		a := Sample(rng, mix, ev)
		if _, ok := mix[a]; !ok {
			t.Fatalf("Sample returned action %v not present in mix", a)
		}
		seen[a] = true
	}
	if len(seen) == 0 {
		t.Fatalf("Sample never returned an action")
	}
}
