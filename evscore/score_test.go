package evscore

import (
	"testing"

	"holdem-engine/holdem"
	"holdem-engine/infoset"
)

func fullLegalPostflop() holdem.ActionSet {
	var s holdem.ActionSet
	s.Add(holdem.Fold)
	s.Add(holdem.Call)
	s.Add(holdem.BetHalfPot)
	s.Add(holdem.BetPot)
	s.Add(holdem.RaiseHalfPot)
	s.Add(holdem.RaisePot)
	s.Add(holdem.AllIn)
	return s
}

func TestFoldAlwaysScoresZero(t *testing.T) {
	in := Inputs{Legal: fullLegalPostflop(), HS: 0.3, Pot: 20, ToCall: 5, Stack: 100, SPR: 5}
	scores := Score(in, 5, 0, false, 2)
	if scores[holdem.Fold] != 0 {
		t.Fatalf("FOLD score = %v, want 0", scores[holdem.Fold])
	}
}

func TestCheckScalesWithHandStrength(t *testing.T) {
	var legal holdem.ActionSet
	legal.Add(holdem.Check)
	in := Inputs{Legal: legal, HS: 0.7, Pot: 30, ToCall: 0, Stack: 100, SPR: 3}
	scores := Score(in, 0, 0, false, 2)
	if want := 0.7 * 30; scores[holdem.Check] != want {
		t.Fatalf("CHECK score = %v, want %v", scores[holdem.Check], want)
	}
}

func TestCallRealizeEquityVariesByTexture(t *testing.T) {
	base := Inputs{Legal: fullLegalPostflop(), HS: 0.6, Pot: 20, ToCall: 10, Stack: 100, SPR: 5}
	dry := base
	dry.Texture = infoset.TextureBits{}
	paired := base
	paired.Texture = infoset.TextureBits{Paired: true}
	wet := base
	wet.Texture = infoset.TextureBits{Monotone: true}

	dryEV := Score(dry, 10, 0, false, 2)[holdem.Call]
	pairedEV := Score(paired, 10, 0, false, 2)[holdem.Call]
	wetEV := Score(wet, 10, 0, false, 2)[holdem.Call]

	if dryEV == pairedEV || dryEV == wetEV {
		t.Fatalf("expected texture to change CALL's realize-equity discount: dry=%v paired=%v wet=%v", dryEV, pairedEV, wetEV)
	}
}

func TestAllInPenalizedAtHighSPR(t *testing.T) {
	in := Inputs{Legal: fullLegalPostflop(), HS: 0.75, Pot: 20, ToCall: 5, Stack: 300, SPR: 8}
	scores := Score(in, 5, 0, false, 2)
	lowSPR := in
	lowSPR.SPR = 1
	lowScores := Score(lowSPR, 5, 0, false, 2)
	if scores[holdem.AllIn] >= lowScores[holdem.AllIn] {
		t.Fatalf("expected high-SPR ALL_IN to be penalized relative to low-SPR: high=%v low=%v", scores[holdem.AllIn], lowScores[holdem.AllIn])
	}
}

func TestPreFilterRemovesDominatedFold(t *testing.T) {
	legal := fullLegalPostflop()
	filtered, empty := PreFilter(legal, 0.9, 0.3, 3)
	if empty {
		t.Fatalf("did not expect an empty pre-filter result")
	}
	if filtered.Has(holdem.Fold) {
		t.Fatalf("expected FOLD removed when hs far exceeds required equity")
	}
}

func TestPreFilterRestoresFullSetWhenEmptied(t *testing.T) {
	var legal holdem.ActionSet
	legal.Add(holdem.AllIn)
	filtered, empty := PreFilter(legal, 0.5, 0.5, 12)
	if !empty {
		t.Fatalf("expected pre-filter to report empty result")
	}
	if filtered != legal {
		t.Fatalf("expected full legal set restored on empty pre-filter")
	}
}

func TestConservativeOverrideForcesCallOnPairedMarginalBoard(t *testing.T) {
	legal := fullLegalPostflop()
	got := ConservativeOverride(holdem.RaisePot, legal, 0.55, 3, true, false, 0.3)
	if got != holdem.Call && got != holdem.Check {
		t.Fatalf("expected CALL/CHECK override, got %v", got)
	}
}

func TestConservativeOverrideDowngradesAllInAtModerateSPR(t *testing.T) {
	legal := fullLegalPostflop()
	got := ConservativeOverride(holdem.AllIn, legal, 0.5, 2, false, false, 0.3)
	if got == holdem.AllIn {
		t.Fatalf("expected ALL_IN to be downgraded at spr=2, hs=0.5")
	}
}

func TestSelectActionPrefersLessAggressiveWithinTolerance(t *testing.T) {
	scores := map[holdem.Action]float64{
		holdem.Call:         10.0,
		holdem.RaiseHalfPot: 10.03,
	}
	got := SelectAction(scores)
	if got != holdem.Call {
		t.Fatalf("SelectAction = %v, want CALL (less aggressive within tolerance)", got)
	}
}
