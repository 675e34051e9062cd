// Package infoset builds the canonical information-set key used both
// by the DCFR trainer (as the lookup key into NodeStats) and by the
// runtime blueprint store, per spec.md §4.3. Keys are pure string
// functions of public information plus an estimated hand-strength
// band — the same "hash public state, not private state" shape as the
// teacher's GameState.Hash, but rendered as a human-readable string so
// it round-trips through a JSON policy file.
package infoset

import (
	"sort"

	"holdem-engine/cards"
)

// TextureBits holds the four board-texture flags from spec.md §4.3.
type TextureBits struct {
	Paired    bool
	TwoTone   bool
	Monotone  bool
	Connected bool
}

// Bits renders the flags as the spec's 4-bit string,
// <paired><two_tone><monotone><connected>.
func (t TextureBits) Bits() string {
	bit := func(b bool) byte {
		if b {
			return '1'
		}
		return '0'
	}
	return string([]byte{bit(t.Paired), bit(t.TwoTone), bit(t.Monotone), bit(t.Connected)})
}

// ComputeTexture derives the board's texture bits from its public
// cards. An empty or one-card board (preflop) has all flags false.
func ComputeTexture(board []cards.Card) TextureBits {
	if len(board) < 2 {
		return TextureBits{}
	}

	rankCount := map[int]int{}
	suitCount := map[int]int{}
	for _, c := range board {
		rankCount[c.Rank()]++
		suitCount[c.Suit()]++
	}

	paired := false
	for _, n := range rankCount {
		if n >= 2 {
			paired = true
			break
		}
	}

	distinctSuits := len(suitCount)
	maxSuitCount := 0
	for _, n := range suitCount {
		if n > maxSuitCount {
			maxSuitCount = n
		}
	}
	monotone := maxSuitCount == len(board) && len(board) >= 3
	twoTone := distinctSuits == 2

	ranks := make([]int, 0, len(rankCount))
	for r := range rankCount {
		ranks = append(ranks, r)
	}
	sort.Ints(ranks)
	adjacent := 0
	for i := 1; i < len(ranks); i++ {
		if ranks[i]-ranks[i-1] <= 2 {
			adjacent++
		}
	}
	connected := adjacent >= 2

	return TextureBits{Paired: paired, TwoTone: twoTone, Monotone: monotone, Connected: connected}
}
