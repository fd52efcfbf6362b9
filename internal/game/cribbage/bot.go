package cribbage

import (
	"errors"

	"cribbage-go/internal/game/common"
)

// The heuristic opponent only uses the engine's public scoring surface,
// and it is fully deterministic: a fixed hand always yields the same
// choice. Comparison scores are floats but are never shown to anyone.

// cribWeight discounts cards thrown to the crib against cards kept: the
// crib's value is uncertain until the cut, so it counts half.
const cribWeight = 0.5

// ChooseDiscard exhaustively tries every pair of hand indices to throw to
// the crib and keeps the pair maximizing kept-hand value plus (for the
// dealer, whose crib it is) or minus (for the opponent's crib) half the
// discarded pair's value. The cut card is unknown at discard time, so
// everything is scored without one. Returned indices are ascending; the
// caller must remove the higher index first.
func ChooseDiscard(hand []common.Card, isDealer bool) (int, int, error) {
	if len(hand) < 2 {
		return 0, 0, errors.New("hand too small")
	}

	bestA, bestB := 0, 1
	bestScore := 0.0
	first := true
	for i := 0; i < len(hand)-1; i++ {
		for j := i + 1; j < len(hand); j++ {
			kept := make([]common.Card, 0, len(hand)-2)
			for k, c := range hand {
				if k != i && k != j {
					kept = append(kept, c)
				}
			}
			thrown := []common.Card{hand[i], hand[j]}

			score := float64(ScoreHand(kept, nil, false).Total)
			cribValue := cribWeight * float64(ScoreHand(thrown, nil, true).Total)
			if isDealer {
				score += cribValue
			} else {
				score -= cribValue
			}

			// Strict comparison: ties go to the first pair found in
			// lexicographic index order.
			if first || score > bestScore {
				first = false
				bestScore = score
				bestA, bestB = i, j
			}
		}
	}
	return bestA, bestB, nil
}

// ChoosePlay picks the hand index to play given the running count and the
// current sub-round's played cards. ok is false when no card is legal and
// the caller must declare Go. Candidates are valued by their immediate
// pegging points plus a small bonus for low cards early in the sub-round
// (holding high cards back keeps 15/31 chances open); ties go to the
// first card in hand order.
func ChoosePlay(hand []common.Card, count int, played []common.Card) (index int, ok bool) {
	bestIdx := -1
	bestScore := 0.0
	for i, c := range hand {
		if count+c.CountValue() > 31 {
			continue
		}
		points, _, _ := PegScore(played, c, count)
		score := float64(points)
		if len(played) < 4 {
			score += float64(10-c.CountValue()) * 0.1
		}
		if bestIdx < 0 || score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}
	if bestIdx < 0 {
		return -1, false
	}
	return bestIdx, true
}
