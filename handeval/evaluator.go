// Package handeval implements 7-card best-of-5 hand evaluation, grounded
// on the teacher's category-by-category combo search (utils.go) rather
// than a lookup-table evaluator: straightforward to read, adequate for
// the sample counts the equity estimator and trainer actually need.
package handeval

import (
	"slices"

	"holdem-engine/cards"
)

// Rank is a comparable vector for lexicographic hand comparison:
// [category, tiebreak ranks...], higher is better.
type Rank []int16

// Compare returns >0 if a beats b, <0 if b beats a, 0 on a tie.
func Compare(a, b Rank) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return len(a) - len(b)
}

var categoryNames = [9]string{
	"High Card", "Pair", "Two Pair", "Three of a Kind",
	"Straight", "Flush", "Full House", "Four of a Kind", "Straight Flush",
}

// CategoryName returns the human label for rank[0].
func CategoryName(r Rank) string {
	if len(r) == 0 || r[0] < 0 || int(r[0]) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[r[0]]
}

func concat(hole, board []cards.Card) []cards.Card {
	out := make([]cards.Card, 0, len(hole)+len(board))
	out = append(out, hole...)
	out = append(out, board...)
	return out
}

func kickers(all, combo []cards.Card, n int) []int16 {
	used := make(map[cards.Card]bool, len(combo))
	for _, c := range combo {
		used[c] = true
	}
	remaining := make([]cards.Card, 0, len(all)-len(combo))
	for _, c := range all {
		if !used[c] {
			remaining = append(remaining, c)
		}
	}
	slices.SortFunc(remaining, func(a, b cards.Card) int {
		return b.Rank() - a.Rank()
	})
	out := make([]int16, 0, n)
	for i := 0; i < n && i < len(remaining); i++ {
		out = append(out, int16(remaining[i].Rank()))
	}
	return out
}

func straightTopRank(combo []cards.Card) int16 {
	hasAce, hasTwo := false, false
	for _, c := range combo {
		if c.Rank() == cards.Ace {
			hasAce = true
		}
		if c.Rank() == cards.Two {
			hasTwo = true
		}
	}
	if hasAce && hasTwo {
		return int16(cards.Five) // wheel: top card is the 5
	}
	top := int16(0)
	for _, c := range combo {
		if int16(c.Rank()) > top {
			top = int16(c.Rank())
		}
	}
	return top
}

func flushCards(all []cards.Card) ([]cards.Card, bool) {
	for suit := 0; suit < 4; suit++ {
		var group []cards.Card
		for _, c := range all {
			if c.Suit() == suit {
				group = append(group, c)
			}
		}
		if len(group) >= 5 {
			return group, true
		}
	}
	return nil, false
}

func straightCards(all []cards.Card) ([]cards.Card, bool) {
	sorted := make([]cards.Card, len(all))
	copy(sorted, all)
	slices.SortFunc(sorted, func(a, b cards.Card) int { return a.Rank() - b.Rank() })

	unique := make([]cards.Card, 0, len(sorted))
	prev := -1
	for _, c := range sorted {
		if c.Rank() != prev {
			unique = append(unique, c)
			prev = c.Rank()
		}
	}

	if len(unique) >= 5 {
		for i := len(unique) - 5; i >= 0; i-- {
			if unique[i+4].Rank()-unique[i].Rank() == 4 {
				target := unique[i].Rank()
				straight := make([]cards.Card, 0, 5)
				for j := 0; j < 5; j++ {
					for _, c := range sorted {
						if c.Rank() == target+j {
							straight = append(straight, c)
							break
						}
					}
				}
				return straight, true
			}
		}
	}

	hasAce := len(unique) > 0 && unique[len(unique)-1].Rank() == cards.Ace
	hasTwo := len(unique) > 0 && unique[0].Rank() == cards.Two
	if hasAce && hasTwo {
		need := []int{cards.Three, cards.Four, cards.Five}
		ok := true
		for _, r := range need {
			found := false
			for _, c := range unique {
				if c.Rank() == r {
					found = true
					break
				}
			}
			if !found {
				ok = false
				break
			}
		}
		if ok {
			straight := make([]cards.Card, 0, 5)
			for _, r := range []int{cards.Ace, cards.Two, cards.Three, cards.Four, cards.Five} {
				for _, c := range sorted {
					if c.Rank() == r {
						straight = append(straight, c)
						break
					}
				}
			}
			return straight, true
		}
	}
	return nil, false
}

func straightFlushCards(all []cards.Card) ([]cards.Card, bool) {
	flush, ok := flushCards(all)
	if !ok {
		return nil, false
	}
	return straightCards(flush)
}

func groupsByRank(all []cards.Card) map[int][]cards.Card {
	groups := make(map[int][]cards.Card)
	for _, c := range all {
		groups[c.Rank()] = append(groups[c.Rank()], c)
	}
	return groups
}

func bestOfSize(all []cards.Card, size int) ([]cards.Card, bool) {
	var best []cards.Card
	for _, group := range groupsByRank(all) {
		if len(group) >= size {
			if best == nil || group[0].Rank() > best[0].Rank() {
				best = group[:size]
			}
		}
	}
	return best, best != nil
}

func twoPairCards(all []cards.Card) ([]cards.Card, bool) {
	var pairs [][]cards.Card
	for _, group := range groupsByRank(all) {
		if len(group) >= 2 {
			pairs = append(pairs, group[:2])
		}
	}
	if len(pairs) < 2 {
		return nil, false
	}
	slices.SortFunc(pairs, func(a, b []cards.Card) int { return b[0].Rank() - a[0].Rank() })
	out := make([]cards.Card, 0, 4)
	out = append(out, pairs[0]...)
	out = append(out, pairs[1]...)
	return out, true
}

func fullHouseCards(all []cards.Card) ([]cards.Card, bool) {
	groups := groupsByRank(all)
	var trips []cards.Card
	for _, group := range groups {
		if len(group) >= 3 && (trips == nil || group[0].Rank() > trips[0].Rank()) {
			trips = group[:3]
		}
	}
	if trips == nil {
		return nil, false
	}
	var pair []cards.Card
	for _, group := range groups {
		if len(group) >= 2 && group[0].Rank() != trips[0].Rank() {
			if pair == nil || group[0].Rank() > pair[0].Rank() {
				pair = group[:2]
			}
		}
	}
	if pair == nil {
		return nil, false
	}
	out := make([]cards.Card, 0, 5)
	out = append(out, trips...)
	out = append(out, pair...)
	return out, true
}

// Evaluate returns the comparable Rank of the best five-card hand out of
// hole (2 cards) plus board (3..5 cards).
func Evaluate(hole, board []cards.Card) Rank {
	all := concat(hole, board)

	if combo, ok := straightFlushCards(all); ok {
		return Rank{8, straightTopRank(combo)}
	}
	if combo, ok := bestOfSize(all, 4); ok {
		r := Rank{7, int16(combo[0].Rank())}
		return append(r, kickers(all, combo, 1)...)
	}
	if combo, ok := fullHouseCards(all); ok {
		return Rank{6, int16(combo[0].Rank()), int16(combo[3].Rank())}
	}
	if flush, ok := flushCards(all); ok {
		slices.SortFunc(flush, func(a, b cards.Card) int { return b.Rank() - a.Rank() })
		r := Rank{5}
		for i := 0; i < 5 && i < len(flush); i++ {
			r = append(r, int16(flush[i].Rank()))
		}
		return r
	}
	if combo, ok := straightCards(all); ok {
		return Rank{4, straightTopRank(combo)}
	}
	if combo, ok := bestOfSize(all, 3); ok {
		r := Rank{3, int16(combo[0].Rank())}
		return append(r, kickers(all, combo, 2)...)
	}
	if combo, ok := twoPairCards(all); ok {
		hi := max(combo[0].Rank(), combo[2].Rank())
		lo := min(combo[0].Rank(), combo[2].Rank())
		r := Rank{2, int16(hi), int16(lo)}
		return append(r, kickers(all, combo, 1)...)
	}
	if combo, ok := bestOfSize(all, 2); ok {
		r := Rank{1, int16(combo[0].Rank())}
		return append(r, kickers(all, combo, 3)...)
	}

	sorted := make([]cards.Card, len(all))
	copy(sorted, all)
	slices.SortFunc(sorted, func(a, b cards.Card) int { return b.Rank() - a.Rank() })
	r := Rank{0}
	for i := 0; i < 5 && i < len(sorted); i++ {
		r = append(r, int16(sorted[i].Rank()))
	}
	return r
}

// Winners returns, for two 7-card hands (hole+board each), which seats
// hold the winning hand: true/true on a split pot.
func Winners(holeA, holeB, board []cards.Card) (aWins, bWins bool) {
	ra := Evaluate(holeA, board)
	rb := Evaluate(holeB, board)
	cmp := Compare(ra, rb)
	return cmp >= 0, cmp <= 0
}
