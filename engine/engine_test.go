package engine

import (
	"testing"

	"github.com/google/uuid"

	"holdem-engine/holdem"
	"holdem-engine/subgame"
)

// subgameTestConfig sets trigger thresholds that are never reached at
// this module's default stack/blind sizes, so unit tests never pay the
// realtime solver's wall-clock budget.
func subgameTestConfig() subgame.Config {
	cfg := subgame.DefaultConfig()
	cfg.TriggerPot = 1e9
	cfg.TriggerSPR = -1
	return cfg
}

func testEngine() *Engine {
	return New(Config{
		GameCfg:      holdem.DefaultConfig(),
		EquityTrials: 100,
		EVBlend:      0.4,
		ProbFloor:    1e-4,
		Subgame:      subgameTestConfig(),
		Seed:         42,
	}, nil, nil)
}

func TestNewHandHumanSeatZeroActsFirstPreflop(t *testing.T) {
	e := testEngine()
	_, snap, botLog, term := e.NewHand(0)

	if snap.ToAct != 0 {
		t.Fatalf("expected seat 0 to act first preflop, got %d", snap.ToAct)
	}
	if len(botLog) != 0 {
		t.Fatalf("expected no bot actions before the human's first turn, got %v", botLog)
	}
	if term != nil {
		t.Fatalf("did not expect an immediate terminal result")
	}
	found := false
	for _, a := range snap.LegalToAct {
		if a == holdem.Fold {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected FOLD among the human's legal actions, got %v", snap.LegalToAct)
	}
}

func TestApplyHumanActionFoldMatchesScenario1Payoff(t *testing.T) {
	e := testEngine()
	s, snap, _, _ := e.NewHand(0)

	foldIdx := -1
	for i, a := range snap.LegalToAct {
		if a == holdem.Fold {
			foldIdx = i
		}
	}
	if foldIdx < 0 {
		t.Fatalf("FOLD not offered: %v", snap.LegalToAct)
	}

	resultSnap, _, term, err := e.ApplyHumanAction(s.ID, foldIdx)
	if err != nil {
		t.Fatalf("ApplyHumanAction: %v", err)
	}
	if !resultSnap.Terminal {
		t.Fatalf("expected terminal after folding preflop")
	}
	if term == nil {
		t.Fatalf("expected a terminal result")
	}
	if term.Winner != 1 {
		t.Fatalf("winner = %d, want 1 (the non-folder)", term.Winner)
	}
	if term.HumanPayoff != -e.GameCfg.SmallBlind {
		t.Fatalf("human payoff = %v, want %v", term.HumanPayoff, -e.GameCfg.SmallBlind)
	}
	if term.Score.Losses != 1 || term.Score.Net != -e.GameCfg.SmallBlind {
		t.Fatalf("score = %+v, want one loss netting -small blind", term.Score)
	}
}

func TestApplyHumanActionRejectsOutOfRangeIndex(t *testing.T) {
	e := testEngine()
	s, snap, _, _ := e.NewHand(0)

	_, _, _, err := e.ApplyHumanAction(s.ID, len(snap.LegalToAct)+5)
	if err == nil {
		t.Fatalf("expected an error for an out-of-range action index")
	}
	if !AsKind(err, InvalidAction) {
		t.Fatalf("expected InvalidAction, got %v", err)
	}
}

func TestApplyHumanActionRejectsUnknownSession(t *testing.T) {
	e := testEngine()
	_, _, _, err := e.ApplyHumanAction(uuid.New(), 0)
	if !AsKind(err, BadSession) {
		t.Fatalf("expected BadSession, got %v", err)
	}
}

func TestHealthReportsConfiguredDefaults(t *testing.T) {
	e := testEngine()
	h := e.Health()
	if h.StartStack != 200 || h.SmallBlind != 1 || h.BigBlind != 2 {
		t.Fatalf("unexpected health blinds/stack: %+v", h)
	}
	if h.AbstractionVersion != "infoset_v1" {
		t.Fatalf("abstraction version = %q, want infoset_v1", h.AbstractionVersion)
	}
	if h.BlueprintLoaded {
		t.Fatalf("expected no blueprint loaded for a nil-store engine")
	}
}

func TestNewHandInSessionPersistsScoreAcrossHands(t *testing.T) {
	e := testEngine()
	s, snap, _, _ := e.NewHand(0)

	foldIdx := -1
	for i, a := range snap.LegalToAct {
		if a == holdem.Fold {
			foldIdx = i
		}
	}
	if foldIdx < 0 {
		t.Fatalf("FOLD not offered: %v", snap.LegalToAct)
	}
	_, _, term, err := e.ApplyHumanAction(s.ID, foldIdx)
	if err != nil {
		t.Fatalf("ApplyHumanAction: %v", err)
	}
	if term.Score.Losses != 1 {
		t.Fatalf("expected one loss after the first hand, got %+v", term.Score)
	}

	s2, _, _, term2, err := e.NewHandInSession(s.ID, 1)
	if err != nil {
		t.Fatalf("NewHandInSession: %v", err)
	}
	if s2.ID != s.ID {
		t.Fatalf("expected NewHandInSession to reuse the session id")
	}
	if s2.Score.Losses != 1 || s2.Score.Net != term.Score.Net {
		t.Fatalf("expected the second hand's session to carry over score, got %+v", s2.Score)
	}
	if s2.HandIndex != 1 {
		t.Fatalf("expected HandIndex to carry over at 1, got %d", s2.HandIndex)
	}
	if term2 != nil && term2.Score.Net == 0 {
		t.Fatalf("unexpected zeroed score after a second settled hand: %+v", term2.Score)
	}
}

func TestNewHandInSessionRejectsUnknownSession(t *testing.T) {
	e := testEngine()
	_, _, _, _, err := e.NewHandInSession(uuid.New(), 0)
	if !AsKind(err, BadSession) {
		t.Fatalf("expected BadSession, got %v", err)
	}
}

func TestApplyHumanActionRejectsActionAfterTerminal(t *testing.T) {
	e := testEngine()
	s, snap, _, _ := e.NewHand(0)

	foldIdx := -1
	for i, a := range snap.LegalToAct {
		if a == holdem.Fold {
			foldIdx = i
		}
	}
	if foldIdx < 0 {
		t.Fatalf("FOLD not offered: %v", snap.LegalToAct)
	}
	_, _, term, err := e.ApplyHumanAction(s.ID, foldIdx)
	if err != nil {
		t.Fatalf("ApplyHumanAction: %v", err)
	}
	if term == nil {
		t.Fatalf("expected terminal result after fold")
	}

	_, _, _, err = e.ApplyHumanAction(s.ID, 0)
	if !AsKind(err, StateInvariantViolation) {
		t.Fatalf("expected StateInvariantViolation for an action past terminal, got %v", err)
	}
	if s.Score.Losses != 1 {
		t.Fatalf("expected the rejected post-terminal action to leave score untouched, got %+v", s.Score)
	}
}

func TestPotConservationAcrossPlayedHands(t *testing.T) {
	e := testEngine()
	for i := 0; i < 3; i++ {
		humanSeat := i % 2
		s, snap, _, term := e.NewHand(humanSeat)
		for term == nil {
			idx := 0 // deterministic: always the first legal action in enum order
			if len(snap.LegalToAct) == 0 {
				t.Fatalf("expected a nonempty legal set when it is the human's turn")
			}
			if idx >= len(snap.LegalToAct) {
				idx = len(snap.LegalToAct) - 1
			}
			var err error
			snap, _, term, err = e.ApplyHumanAction(s.ID, idx)
			if err != nil {
				t.Fatalf("ApplyHumanAction: %v", err)
			}
		}
		stacks := s.Hand.State.Stack
		total := s.Hand.State.Pot + stacks[0] + stacks[1]
		want := 2 * e.GameCfg.StartStack
		if total < want-1e-6 || total > want+1e-6 {
			t.Fatalf("hand %d: chip conservation violated: pot+stacks=%v, want %v", i, total, want)
		}
	}
}
