package common

import (
	"crypto/rand"
	"math/big"
	"time"
)

// NewStandardDeck returns all 52 cards exactly once in a fixed suit-major
// order. The order carries no meaning; callers shuffle before dealing.
func NewStandardDeck() []Card {
	deck := make([]Card, 0, 52)
	suits := []Suit{Spades, Hearts, Diamonds, Clubs}
	for _, s := range suits {
		for r := 1; r <= 13; r++ {
			deck = append(deck, Card{Rank: Rank(r), Suit: s})
		}
	}
	return deck
}

// Shuffled returns a uniformly random permutation of cards without
// mutating its input.
// Crypto-secure Fisher–Yates; if crypto/rand fails, we fall back to a
// time-seeded shuffle as a last resort.
func Shuffled(cards []Card) []Card {
	out := append([]Card(nil), cards...)
	for i := len(out) - 1; i > 0; i-- {
		nBig, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			fallbackShuffle(out)
			return out
		}
		j := int(nBig.Int64())
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func fallbackShuffle(cards []Card) {
	// Minimal fallback (predictable) used only if crypto/rand fails.
	seed := time.Now().UnixNano()
	for i := len(cards) - 1; i > 0; i-- {
		seed = (seed*6364136223846793005 + 1) & 0x7fffffffffffffff
		j := int(seed % int64(i+1))
		cards[i], cards[j] = cards[j], cards[i]
	}
}
