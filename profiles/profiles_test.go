package profiles

import (
	"math/rand"
	"testing"

	"holdem-engine/holdem"
)

func fullLegal() holdem.ActionSet {
	var s holdem.ActionSet
	for a := holdem.Fold; a <= holdem.AllIn; a++ {
		s.Add(a)
	}
	return s
}

func TestGetProbsSumsToOneForEveryProfile(t *testing.T) {
	legal := fullLegal()
	for _, p := range All() {
		probs := GetProbs(p, legal, 10, 20)
		sum := 0.0
		for a, v := range probs {
			if !legal.Has(a) {
				t.Errorf("%v: mass on illegal action %v", p, a)
			}
			sum += v
		}
		if sum < 0.999 || sum > 1.001 {
			t.Errorf("%v: probs sum to %v, want ~1", p, sum)
		}
	}
}

func TestNitFoldsMoreThanStation(t *testing.T) {
	legal := fullLegal()
	nit := GetProbs(Nit, legal, 10, 20)
	station := GetProbs(Station, legal, 10, 20)
	if nit[holdem.Fold] <= station[holdem.Fold] {
		t.Fatalf("nit fold mass %v should exceed station fold mass %v", nit[holdem.Fold], station[holdem.Fold])
	}
}

func TestAggroRaisesMoreThanNit(t *testing.T) {
	legal := fullLegal()
	aggro := GetProbs(Aggro, legal, 10, 20)
	nit := GetProbs(Nit, legal, 10, 20)
	aggroRaise := aggro[holdem.RaiseHalfPot] + aggro[holdem.RaisePot] + aggro[holdem.AllIn]
	nitRaise := nit[holdem.RaiseHalfPot] + nit[holdem.RaisePot] + nit[holdem.AllIn]
	if aggroRaise <= nitRaise {
		t.Fatalf("aggro raise mass %v should exceed nit raise mass %v", aggroRaise, nitRaise)
	}
}

func TestPotOddsCallsCheapBetsAndFoldsExpensiveOnes(t *testing.T) {
	var legal holdem.ActionSet
	legal.Add(holdem.Fold)
	legal.Add(holdem.Call)

	cheap := GetProbs(PotOdds, legal, 5, 95) // odds = 5/100 = 0.05
	if cheap[holdem.Call] <= cheap[holdem.Fold] {
		t.Fatalf("expected pot_odds to call a cheap bet: %+v", cheap)
	}

	expensive := GetProbs(PotOdds, legal, 80, 20) // odds = 80/100 = 0.8
	if expensive[holdem.Fold] <= expensive[holdem.Call] {
		t.Fatalf("expected pot_odds to fold an expensive bet: %+v", expensive)
	}
}

func TestGetActionAlwaysReturnsLegalAction(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	legal := fullLegal()
	for i := 0; i < 100; i++ {
		a := GetAction(rng, Aggro, legal, 10, 20)
		if !legal.Has(a) {
			t.Fatalf("GetAction returned illegal action %v", a)
		}
	}
}
