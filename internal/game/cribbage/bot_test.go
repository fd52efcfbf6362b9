package cribbage

import "testing"

// TestChooseDiscardDeterministicAndInRange: a fixed hand always yields
// the same pair of distinct, ascending, in-range indices.
func TestChooseDiscardDeterministicAndInRange(t *testing.T) {
	hand := cards(t, "5S", "5H", "JD", "KC", "2H", "9D")

	a, b, err := ChooseDiscard(hand, false)
	if err != nil {
		t.Fatal(err)
	}
	if a < 0 || b < 0 || a >= len(hand) || b >= len(hand) {
		t.Fatalf("indices out of range: %d, %d", a, b)
	}
	if a >= b {
		t.Fatalf("indices not ascending/distinct: %d, %d", a, b)
	}
	for i := 0; i < 10; i++ {
		a2, b2, err := ChooseDiscard(hand, false)
		if err != nil {
			t.Fatal(err)
		}
		if a2 != a || b2 != b {
			t.Fatalf("non-deterministic choice: (%d,%d) vs (%d,%d)", a, b, a2, b2)
		}
	}
}

// TestChooseDiscardKeepsObviousPoints: with 5-5-5-J plus junk, the junk
// goes to the crib no matter whose crib it is. (The kept 5-5-5-J is 14
// without a cut: the triple-five fifteen, three jack-five fifteens, and
// the trips.)
func TestChooseDiscardKeepsObviousPoints(t *testing.T) {
	hand := cards(t, "5S", "5H", "5D", "JC", "2H", "9D")
	for _, dealer := range []bool{true, false} {
		a, b, err := ChooseDiscard(hand, dealer)
		if err != nil {
			t.Fatal(err)
		}
		if a != 4 || b != 5 {
			t.Fatalf("dealer=%v: discarded (%d,%d), want (4,5)", dealer, a, b)
		}
	}
}

// TestChooseDiscardCribSign: the dealer prefers feeding its own crib, the
// non-dealer starves the opponent's. With 5-5-K-Q every throw splitting a
// five scores a fifteen both ways (kept 2, thrown 2): worth 3 to the
// dealer but only 1 to the pone, who instead keeps the pair of fives and
// throws the worthless K-Q.
func TestChooseDiscardCribSign(t *testing.T) {
	hand := cards(t, "5S", "5H", "KD", "QC")

	a, b, err := ChooseDiscard(hand, true)
	if err != nil {
		t.Fatal(err)
	}
	if a != 0 || b != 2 {
		t.Fatalf("dealer throw = (%d,%d), want (0,2)", a, b)
	}

	a, b, err = ChooseDiscard(hand, false)
	if err != nil {
		t.Fatal(err)
	}
	if a != 2 || b != 3 {
		t.Fatalf("pone throw = (%d,%d), want (2,3)", a, b)
	}
}

// TestChooseDiscardTooSmall rejects hands below two cards.
func TestChooseDiscardTooSmall(t *testing.T) {
	if _, _, err := ChooseDiscard(cards(t, "5S"), true); err == nil {
		t.Fatal("expected error for a one-card hand")
	}
}

// TestChoosePlayTakesFifteen: the bot takes the 2 points when a card
// lands the count on 15.
func TestChoosePlayTakesFifteen(t *testing.T) {
	hand := cards(t, "2H", "5S", "9D")
	idx, ok := ChoosePlay(hand, 10, cards(t, "KS"))
	if !ok {
		t.Fatal("expected a legal play")
	}
	if idx != 1 {
		t.Fatalf("play index = %d, want 1 (the five)", idx)
	}
}

// TestChoosePlayPairsUp: pairing the last card beats a pointless low play.
func TestChoosePlayPairsUp(t *testing.T) {
	hand := cards(t, "2H", "9S", "4D")
	idx, ok := ChoosePlay(hand, 9, cards(t, "9D"))
	if !ok {
		t.Fatal("expected a legal play")
	}
	if idx != 1 {
		t.Fatalf("play index = %d, want 1 (pair of nines)", idx)
	}
}

// TestChoosePlayNoLegal signals Go when everything would exceed 31.
func TestChoosePlayNoLegal(t *testing.T) {
	hand := cards(t, "KH", "9S", "4D")
	if idx, ok := ChoosePlay(hand, 29, nil); ok {
		t.Fatalf("expected no legal play, got index %d", idx)
	}
}

// TestChoosePlayPrefersLowEarly: with no points on offer and fewer than
// four cards down, the lower card is led.
func TestChoosePlayPrefersLowEarly(t *testing.T) {
	hand := cards(t, "KH", "3S")
	idx, ok := ChoosePlay(hand, 0, nil)
	if !ok {
		t.Fatal("expected a legal play")
	}
	if idx != 1 {
		t.Fatalf("play index = %d, want 1 (the three)", idx)
	}

	// Later in the sub-round the bonus disappears and the first legal
	// card wins the tie.
	idx, ok = ChoosePlay(hand, 4, cards(t, "AS", "AD", "AC", "AH"))
	if !ok {
		t.Fatal("expected a legal play")
	}
	if idx != 0 {
		t.Fatalf("play index = %d, want 0 (first found on tie)", idx)
	}
}
