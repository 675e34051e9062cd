package infoset

import (
	"testing"

	"holdem-engine/cards"
)

func TestKeyDeterministic(t *testing.T) {
	board := []cards.Card{cards.New(cards.Nine, cards.Hearts), cards.New(cards.Ten, cards.Hearts), cards.New(cards.Two, cards.Clubs)}
	k1 := Build(1, 1, board, 40, 10, 0, 1e-9, 0, 0.62)
	k2 := Build(1, 1, board, 40, 10, 0, 1e-9, 0, 0.62)
	if k1.String() != k2.String() {
		t.Fatalf("equivalent states produced different keys: %q vs %q", k1.String(), k2.String())
	}
}

func TestTextureMonotoneAndConnected(t *testing.T) {
	board := []cards.Card{cards.New(cards.Nine, cards.Hearts), cards.New(cards.Ten, cards.Hearts), cards.New(cards.Jack, cards.Hearts)}
	tex := ComputeTexture(board)
	if !tex.Monotone {
		t.Fatalf("expected monotone board")
	}
	if !tex.Connected {
		t.Fatalf("expected connected board")
	}
	if tex.Paired {
		t.Fatalf("did not expect a paired board")
	}
}

func TestSPRBands(t *testing.T) {
	cases := []struct {
		spr  float64
		want string
	}{
		{0.5, "0_1"}, {1.5, "1_2"}, {3, "2_4"}, {6, "4_8"}, {20, "8_plus"},
	}
	for _, c := range cases {
		if got := SPRBand(c.spr); got != c.want {
			t.Errorf("SPRBand(%v) = %q, want %q", c.spr, got, c.want)
		}
	}
}

func TestHSBandClampsAndFloors(t *testing.T) {
	if HSBand(-1) != 0 {
		t.Fatalf("HSBand(-1) should clamp to band 0")
	}
	if HSBand(2) != 9 {
		t.Fatalf("HSBand(2) should clamp to band 9")
	}
	if HSBand(0.65) != 6 {
		t.Fatalf("HSBand(0.65) = %d, want 6", HSBand(0.65))
	}
}

func TestKeyStringFormat(t *testing.T) {
	board := []cards.Card{cards.New(cards.Two, cards.Spades), cards.New(cards.Seven, cards.Hearts), cards.New(cards.Nine, cards.Clubs)}
	k := Build(1, 0, board, 40, 10, 5, 1e-9, 1, 0.45)
	want := "flop|OOP|tex=" + k.Texture.Bits() + "|spr=4_8|facingBet|r=1|hs=4"
	if k.String() != want {
		t.Fatalf("key = %q, want %q", k.String(), want)
	}
}
