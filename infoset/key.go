package infoset

import (
	"fmt"

	"holdem-engine/cards"
)

var streetNames = [4]string{"preflop", "flop", "turn", "river"}

// SPRBand buckets a stack-to-pot ratio into the five spec.md §4.3 bands.
func SPRBand(spr float64) string {
	switch {
	case spr < 1:
		return "0_1"
	case spr < 2:
		return "1_2"
	case spr < 4:
		return "2_4"
	case spr < 8:
		return "4_8"
	default:
		return "8_plus"
	}
}

// HSBand buckets a hand-strength estimate into 0..9.
func HSBand(hs float64) int {
	if hs < 0 {
		hs = 0
	}
	if hs > 0.999999 {
		hs = 0.999999
	}
	return int(hs * 10)
}

// Position labels the acting seat for heads-up postflop play: seat 1
// is in position, seat 0 is out of position.
func Position(actingSeat int) string {
	if actingSeat == 1 {
		return "IP"
	}
	return "OOP"
}

// BetState reports whether the acting seat is facing a bet.
func BetState(toCall, eps float64) string {
	if toCall > eps {
		return "facingBet"
	}
	return "unopened"
}

// Key is the decomposed form of an infoset key; String renders the
// canonical spec.md §4.3 string.
type Key struct {
	StreetIdx int
	Position  string
	Texture   TextureBits
	SPRBand   string
	BetState  string
	Raises    int
	HSBand    int
}

func (k Key) String() string {
	street := "river"
	if k.StreetIdx >= 0 && k.StreetIdx < len(streetNames) {
		street = streetNames[k.StreetIdx]
	}
	return fmt.Sprintf("%s|%s|tex=%s|spr=%s|%s|r=%d|hs=%d",
		street, k.Position, k.Texture.Bits(), k.SPRBand, k.BetState, k.Raises, k.HSBand)
}

// Build composes the canonical key from raw inputs, matching the
// formulas in spec.md §4.3 exactly so two structurally-equivalent
// states produce byte-identical keys.
func Build(streetIdx, actingSeat int, board []cards.Card, stack, pot, toCall float64, eps float64, raises int, hs float64) Key {
	sprDenominator := pot
	if sprDenominator < 1 {
		sprDenominator = 1
	}
	return Key{
		StreetIdx: streetIdx,
		Position:  Position(actingSeat),
		Texture:   ComputeTexture(board),
		SPRBand:   SPRBand(stack / sprDenominator),
		BetState:  BetState(toCall, eps),
		Raises:    raises,
		HSBand:    HSBand(hs),
	}
}
