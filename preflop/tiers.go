// Package preflop implements the preflop hand-class tiering and
// weighted action mix from spec.md §4.4. The shape — classify, then
// look up a fixed per-tier distribution and resample — mirrors the
// teacher's RandomActor.GetProbs (normalize a map of action weights),
// generalized from uniform random weights to the spec's tier table.
package preflop

import "holdem-engine/cards"

// Tier is a coarse preflop hand class.
type Tier int

const (
	Trash Tier = iota
	Speculative
	Medium
	Strong
	Premium
)

func (t Tier) String() string {
	switch t {
	case Premium:
		return "premium"
	case Strong:
		return "strong"
	case Medium:
		return "medium"
	case Speculative:
		return "speculative"
	default:
		return "trash"
	}
}

// toStandard converts this module's 0..12 rank encoding to the
// standard 2..14 scale the spec's tier boundaries are written in.
func toStandard(r int) int { return r + 2 }

// Classify buckets a two-card pocket into a Tier per the exact
// boundaries of spec.md §4.4.
func Classify(hole [2]cards.Card) Tier {
	r0, r1 := toStandard(hole[0].Rank()), toStandard(hole[1].Rank())
	suited := hole[0].Suit() == hole[1].Suit()

	if r0 == r1 {
		switch {
		case r0 >= 12: // Q, K, A
			return Premium
		case r0 >= 9: // 9, T, J
			return Strong
		case r0 >= 6: // 6, 7, 8
			return Medium
		default:
			return Speculative
		}
	}

	high, low := r0, r1
	if low > high {
		high, low = low, high
	}
	gap := high - low - 1
	isAce := high == 14

	switch {
	case suited && isAce && low >= 10:
		return Premium
	case isAce && low >= 12:
		return Strong
	case suited && high >= 13 && low >= 10:
		return Strong
	case high >= 13 && low >= 11:
		return Medium
	case suited && gap <= 2 && high >= 9:
		return Medium
	case suited && isAce:
		return Medium
	case gap <= 1 && high >= 10:
		return Speculative
	case suited && high >= 9:
		return Speculative
	default:
		return Trash
	}
}
