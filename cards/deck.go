package cards

import (
	"math/rand"

	"github.com/idsulik/go-collections/v3/queue"
)

// Deck is a shuffled draw queue over the 52-card set, with every card
// it has handed out retained in a second queue so a hand can inspect
// its own deal order after the fact (holdem.Context keeps hole/board
// cards separately, but callers outside this package sometimes just
// want "what came off the deck, in order").
type Deck struct {
	rand      *rand.Rand
	draw      *queue.Queue[Card]
	dealt     *queue.Queue[Card]
	remaining int
	dealtN    int
}

// NewDeck builds a freshly shuffled deck from rng.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rand: rng}
	d.Reset()
	return d
}

// Reset reshuffles the full 52-card set and clears the dealt history.
func (d *Deck) Reset() {
	order := make([]Card, numRanks*numSuits)
	for i := range order {
		order[i] = Card(i)
	}
	fisherYates(d.rand, order)

	d.draw = queue.New[Card](numRanks * numSuits)
	for _, c := range order {
		d.draw.Enqueue(c)
	}
	d.dealt = queue.New[Card](numRanks * numSuits)
	d.remaining = numRanks * numSuits
	d.dealtN = 0
}

// fisherYates shuffles order in place, swapping each position with a
// uniformly chosen earlier-or-equal one, walking back to front.
func fisherYates(rng *rand.Rand, order []Card) {
	for i := len(order) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
}

// Get draws the next card, moving it into the dealt history. Panics if
// the deck is exhausted — a deck running dry mid-hand is a programmer
// error (more than 52 cards requested), never a reachable runtime
// condition.
func (d *Deck) Get() Card {
	c, ok := d.draw.Dequeue()
	if !ok {
		panic("cards: deck is empty")
	}
	d.dealt.Enqueue(c)
	d.remaining--
	d.dealtN++
	return c
}

// Remaining reports how many cards are left to draw.
func (d *Deck) Remaining() int {
	return d.remaining
}

// Dealt returns the cards drawn so far, in the order they were dealt.
func (d *Deck) Dealt() []Card {
	out := make([]Card, 0, d.dealtN)
	d.dealt.ForEach(func(c Card) {
		out = append(out, c)
	})
	return out
}
