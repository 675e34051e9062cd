package engine

import (
	"github.com/google/uuid"

	"holdem-engine/belief"
	"holdem-engine/evscore"
	"holdem-engine/holdem"
	"holdem-engine/preflop"
)

// Score is the human's running result across a session, per spec.md §3.
type Score struct {
	Wins   int
	Losses int
	Ties   int
	Net    float64
}

// StreetStats tracks one street's observed opponent reaction rates as
// raw counts, per spec.md §3's postflop[street] block.
type StreetStats struct {
	FacingBet  int
	FoldVsBet  int
	CallVsBet  int
	RaiseVsBet int
}

// rates converts accumulated counts into evscore's observed-rate shape,
// falling back to the zero-samples case when no bet has been faced.
func (s StreetStats) rates() evscore.OpponentStats {
	if s.FacingBet == 0 {
		return evscore.OpponentStats{}
	}
	n := float64(s.FacingBet)
	return evscore.OpponentStats{
		FoldVsBet:  float64(s.FoldVsBet) / n,
		CallVsBet:  float64(s.CallVsBet) / n,
		RaiseVsBet: float64(s.RaiseVsBet) / n,
		Samples:    s.FacingBet,
	}
}

// PreflopStats tracks the human's preflop tendencies, per spec.md §3.
type PreflopStats struct {
	FacingRaise int
	ThreeBet    int
	CallVsRaise int
}

func (s PreflopStats) tendency() preflop.OpponentTendency {
	if s.FacingRaise == 0 {
		return preflop.OpponentTendency{}
	}
	n := float64(s.FacingRaise)
	return preflop.OpponentTendency{
		ThreeBetRate: float64(s.ThreeBet) / n,
		CallVsRaise:  float64(s.CallVsRaise) / n,
		Samples:      s.FacingRaise,
	}
}

// Stats bundles the opponent-tendency counters that persist across
// hands within a session, per spec.md §3.
type Stats struct {
	Preflop  PreflopStats
	Postflop [3]StreetStats // indexed by streetIdx-1: flop, turn, river
}

func (s *Stats) streetStats(streetIdx int) *StreetStats {
	i := streetIdx - 1
	if i < 0 || i > 2 {
		i = 2
	}
	return &s.Postflop[i]
}

// Session is one human player's ongoing play against the bot, per
// spec.md §3. Score and Stats persist across hands; RangeBelief and
// the current hand are reset per new hand within the session.
type Session struct {
	ID          uuid.UUID
	HandIndex   int
	HumanSeat   int
	Score       Score
	Stats       Stats
	RangeBelief [2]belief.Belief

	Hand        *holdem.Hand
	humanLegal  holdem.ActionSet // the legal set offered the last time control passed to the human
	handSettled bool             // true once settle has recorded this hand's outcome into Score
	lastResult  *TerminalResult  // settle's result for the current hand, returned again on a repeat settle
}

// newSession creates a brand-new session (fresh score/stats) and deals
// its first hand's belief priors, per spec.md §3.
func newSession(humanSeat int) *Session {
	s := &Session{
		ID:        uuid.New(),
		HumanSeat: humanSeat,
	}
	s.resetForNewHand(humanSeat)
	return s
}

// resetForNewHand prepares an existing session for a new hand: only
// RangeBelief and the per-hand bookkeeping reset, per spec.md §3's
// "next hand reuses session stats and belief priors reset per hand" —
// Score, Stats, and HandIndex carry over untouched.
func (s *Session) resetForNewHand(humanSeat int) {
	s.HumanSeat = humanSeat
	s.RangeBelief = [2]belief.Belief{belief.Uniform(), belief.Uniform()}
	s.Hand = nil
	s.humanLegal = holdem.ActionSet(0)
	s.handSettled = false
	s.lastResult = nil
}
