package cards

import (
	"math/rand"
	"testing"
)

func TestRankSuitRoundTrip(t *testing.T) {
	for r := 0; r < numRanks; r++ {
		for s := 0; s < numSuits; s++ {
			c := New(r, s)
			if c.Rank() != r || c.Suit() != s {
				t.Fatalf("New(%d,%d) round trip got rank=%d suit=%d", r, s, c.Rank(), c.Suit())
			}
		}
	}
}

func TestDeckDealsAllCardsOnce(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))
	seen := make(map[Card]bool)
	for d.Remaining() > 0 {
		c := d.Get()
		if seen[c] {
			t.Fatalf("card %v dealt twice", c)
		}
		seen[c] = true
	}
	if len(seen) != numRanks*numSuits {
		t.Fatalf("dealt %d distinct cards, want %d", len(seen), numRanks*numSuits)
	}
}

func TestDeckResetReshuffles(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(7)))
	d.Get()
	d.Reset()
	if d.Remaining() != 52 {
		t.Fatalf("remaining after reset = %d, want 52", d.Remaining())
	}
	if len(d.Dealt()) != 0 {
		t.Fatalf("expected Reset to clear dealt history, got %v", d.Dealt())
	}
}

func TestDeckDealtTracksDrawOrder(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(3)))
	var want []Card
	for i := 0; i < 5; i++ {
		want = append(want, d.Get())
	}
	got := d.Dealt()
	if len(got) != len(want) {
		t.Fatalf("Dealt() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Dealt()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCanonicalizeSorts(t *testing.T) {
	in := []Card{New(Ace, Clubs), New(Two, Spades), New(King, Hearts)}
	out := Canonicalize(in)
	for i := 1; i < len(out); i++ {
		if out[i-1] > out[i] {
			t.Fatalf("not sorted: %v", out)
		}
	}
	if len(in) != 3 || in[0] != New(Ace, Clubs) {
		t.Fatalf("Canonicalize mutated its input")
	}
}

func TestRemove(t *testing.T) {
	all := All()
	out := Remove(all, New(Ace, Clubs), New(Two, Spades))
	if len(out) != len(all)-2 {
		t.Fatalf("Remove left %d cards, want %d", len(out), len(all)-2)
	}
}
