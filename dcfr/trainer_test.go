package dcfr

import (
	"testing"

	"holdem-engine/blueprint"
	"holdem-engine/holdem"
)

func smallTestConfig() Config {
	cfg := DefaultConfig()
	cfg.TargetIterations = 40
	cfg.CheckpointEvery = 20
	cfg.MinItersBeforeStop = 1_000_000 // never plateau in this small test
	cfg.EquityTrials = 100
	cfg.EvalHandsPerProfile = 4
	cfg.Seed = 7
	return cfg
}

func TestRunStopsAtTargetIterationsAndPopulatesArena(t *testing.T) {
	tr := NewTrainer(smallTestConfig())
	var progressed []int
	reason := tr.Run(func(iter int, cp blueprint.CheckpointRecord) {
		progressed = append(progressed, iter)
		if cp.Iteration != iter {
			t.Fatalf("checkpoint iteration = %d, want %d", cp.Iteration, iter)
		}
	})
	if reason != "target_iterations_reached" {
		t.Fatalf("stop reason = %q, want target_iterations_reached", reason)
	}
	if len(tr.Checkpoints) != 2 {
		t.Fatalf("expected 2 checkpoints at CheckpointEvery=20 over 40 iterations, got %d", len(tr.Checkpoints))
	}
	if len(progressed) != 2 || progressed[0] != 20 || progressed[1] != 40 {
		t.Fatalf("expected onCheckpoint called at iterations [20 40], got %v", progressed)
	}
}

func TestDiscountRegretsScalesTowardZero(t *testing.T) {
	n := &NodeStats{}
	n.Regrets[holdem.Fold] = 10
	n.Regrets[holdem.Call] = -10
	DiscountRegrets(n, 5)
	if n.Regrets[holdem.Fold] <= 0 || n.Regrets[holdem.Fold] >= 10 {
		t.Fatalf("positive regret should shrink toward but stay above 0, got %v", n.Regrets[holdem.Fold])
	}
	if n.Regrets[holdem.Call] >= 0 || n.Regrets[holdem.Call] <= -10 {
		t.Fatalf("negative regret should shrink toward but stay below 0, got %v", n.Regrets[holdem.Call])
	}
}

func TestCurrentStrategyUniformWhenNoPositiveRegret(t *testing.T) {
	n := &NodeStats{}
	var legal holdem.ActionSet
	legal.Add(holdem.Fold)
	legal.Add(holdem.Call)
	legal.Add(holdem.AllIn)

	strat := CurrentStrategy(n, legal)
	for _, a := range legal.Slice() {
		if strat[a] < 1.0/3-1e-9 || strat[a] > 1.0/3+1e-9 {
			t.Fatalf("expected uniform strategy, got %v for %v", strat[a], a)
		}
	}
}

func TestAverageStrategySumsToOne(t *testing.T) {
	n := &NodeStats{}
	var legal holdem.ActionSet
	legal.Add(holdem.Check)
	legal.Add(holdem.BetHalfPot)
	n.EverLegal = legal
	n.StrategySum[holdem.Check] = 3
	n.StrategySum[holdem.BetHalfPot] = 1

	avg := AverageStrategy(n)
	sum := 0.0
	for _, p := range avg {
		sum += p
	}
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("average strategy sums to %v, want ~1", sum)
	}
}

func TestArenaInternsKeysToStableNodes(t *testing.T) {
	a := NewArena()
	n1 := a.Get("flop|IP|tex=0000|spr=2_4|unopened|r=0|hs=5")
	n2 := a.Get("flop|IP|tex=0000|spr=2_4|unopened|r=0|hs=5")
	if n1 != n2 {
		t.Fatalf("expected repeated Get to return the same NodeStats pointer")
	}
	if a.Len() != 1 {
		t.Fatalf("arena length = %d, want 1", a.Len())
	}
}

func TestSampleRejectsBadProbabilitySum(t *testing.T) {
	if _, err := Sample(nil, map[holdem.Action]float64{holdem.Fold: 0.2}); err == nil {
		t.Fatalf("expected an error for a probability map summing far below 1")
	}
}
