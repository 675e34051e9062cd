package belief

import "testing"

func almostEqual(a, b float64) bool {
	d := a - b
	return d > -1e-9 && d < 1e-9
}

func TestUniformSumsToOne(t *testing.T) {
	b := Uniform()
	if !almostEqual(b.Weak+b.Medium+b.Strong, 1) {
		t.Fatalf("uniform belief sums to %v, want 1", b.Weak+b.Medium+b.Strong)
	}
}

func TestUpdateAlwaysSumsToOne(t *testing.T) {
	b := Uniform()
	kinds := []struct {
		facingBet bool
		kind      ActionKind
	}{
		{true, Fold}, {true, Passive}, {true, Aggressive},
		{false, Passive}, {false, Aggressive},
	}
	for _, k := range kinds {
		b = b.Update(k.facingBet, k.kind)
		sum := b.Weak + b.Medium + b.Strong
		if sum < 1-1e-9 || sum > 1+1e-9 {
			t.Fatalf("after update %+v, belief sums to %v, want 1", k, sum)
		}
	}
}

func TestFoldingFacingBetIncreasesWeakShare(t *testing.T) {
	b := Uniform().Update(true, Fold)
	if b.Weak <= 1.0/3 {
		t.Fatalf("folding to a bet should raise weak share, got %v", b.Weak)
	}
	if b.Strong >= 1.0/3 {
		t.Fatalf("folding to a bet should lower strong share, got %v", b.Strong)
	}
}

func TestAggressiveFacingBetIncreasesStrongShare(t *testing.T) {
	b := Uniform().Update(true, Aggressive)
	if b.Strong <= 1.0/3 {
		t.Fatalf("raising into a bet should raise strong share, got %v", b.Strong)
	}
}

func TestConditionEquityClampsToRange(t *testing.T) {
	strong := Belief{Strong: 1}
	if got := strong.ConditionEquity(0.05); got < 0.001 {
		t.Fatalf("ConditionEquity should clamp at 0.001 floor, got %v", got)
	}
	weak := Belief{Weak: 1}
	if got := weak.ConditionEquity(0.95); got > 0.999 {
		t.Fatalf("ConditionEquity should clamp at 0.999 ceiling, got %v", got)
	}
}
