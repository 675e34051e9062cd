package holdem

import "holdem-engine/cards"

// State is the per-hand mutable state from spec.md §3 (HandState).
// Street 0=preflop, 1=flop, 2=turn, 3=river.
type State struct {
	StreetIdx  int
	Pot        float64
	CurrentBet float64
	Commit     [2]float64
	Stack      [2]float64
	Raises     int
	Acted      [2]bool
	ToAct      int
	History    []Action
	Terminal   bool
	Winner     int // 0, 1, or -1 (tie / showdown pending)
}

// Context is the immutable per-hand deal (spec.md §3 HandContext): two
// hole-card pairs and the full five-card board, dealt upfront and
// revealed incrementally as the street advances.
type Context struct {
	Hole  [2][2]cards.Card
	Board [5]cards.Card
}

// BoardUpTo returns the cards publicly visible at the given street.
func (c Context) BoardUpTo(streetIdx int) []cards.Card {
	n := 0
	switch {
	case streetIdx <= 0:
		n = 0
	case streetIdx == 1:
		n = 3
	case streetIdx == 2:
		n = 4
	default:
		n = 5
	}
	return c.Board[:n]
}

// Clone deep-copies the mutable state.
func (s *State) Clone() *State {
	cp := *s
	cp.History = make([]Action, len(s.History))
	copy(cp.History, s.History)
	return &cp
}

func (s *State) toCall(seat int) float64 {
	tc := s.CurrentBet - s.Commit[seat]
	if tc < 0 {
		return 0
	}
	return tc
}

func (s *State) spr(seat int, eps float64) float64 {
	pot := s.Pot
	if pot < 1 {
		pot = 1
	}
	return s.Stack[seat] / pot
}

// ToCall exposes the acting seat's outstanding call amount to callers
// outside this package (evscore, preflop, dcfr, subgame).
func (s *State) ToCall(seat int) float64 { return s.toCall(seat) }

// SPR exposes the seat's stack-to-pot ratio (spec.md §4.3's SPR
// definition: stack / max(1, pot)) to callers outside this package.
func (s *State) SPR(seat int) float64 { return s.spr(seat, 0) }
