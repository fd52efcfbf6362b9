package cribbage

import (
	"sort"

	"cribbage-go/internal/game/common"
)

// ScoreBreakdown itemizes the points of one scored hand or crib.
type ScoreBreakdown struct {
	Total    int `json:"total"`
	Fifteens int `json:"fifteens"`
	Pairs    int `json:"pairs"`
	Runs     int `json:"runs"`
	Flush    int `json:"flush"`
	Nobs     int `json:"nobs"`
}

// ScoreHand scores a hand (or the crib, with isCrib) against an optional
// cut card. The same function serves the player hands and the crib; the
// only rule difference is the crib's stricter flush.
func ScoreHand(hand []common.Card, cut *common.Card, isCrib bool) ScoreBreakdown {
	all := append([]common.Card(nil), hand...)
	if cut != nil {
		all = append(all, *cut)
	}

	sb := ScoreBreakdown{
		Fifteens: scoreFifteens(all),
		Pairs:    scorePairs(all),
		Runs:     scoreRuns(all),
		Flush:    scoreFlush(hand, cut, isCrib),
		Nobs:     scoreNobs(hand, cut),
	}
	sb.Total = sb.Fifteens + sb.Pairs + sb.Runs + sb.Flush + sb.Nobs
	return sb
}

// scoreFifteens counts every subset (size >= 2) summing to 15, 2 points
// each. Hand size is bounded by 5 so the mask walk is cheap.
func scoreFifteens(cards []common.Card) int {
	n := len(cards)
	points := 0
	for mask := 1; mask < (1 << n); mask++ {
		sum := 0
		bits := 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				sum += cards[i].CountValue()
				bits++
			}
		}
		if bits >= 2 && sum == 15 {
			points += 2
		}
	}
	return points
}

func scorePairs(cards []common.Card) int {
	count := map[common.Rank]int{}
	for _, c := range cards {
		count[c.Rank]++
	}
	points := 0
	for _, n := range count {
		// nC2 pairs, each pair is 2 points. Trips and quads fall out of
		// the pair count without special cases.
		if n >= 2 {
			points += (n * (n - 1) / 2) * 2
		}
	}
	return points
}

// scoreRuns finds the longest run of length >= 3 and scores
// length x multiplicity, where multiplicity is the product of the
// duplicate counts of each rank in the run. Distinct runs of the same
// maximal length all count (a double run of 3-3-4-5 scores 8).
func scoreRuns(cards []common.Card) int {
	count := map[int]int{}
	var ranks []int
	for _, c := range cards {
		r := int(c.Rank)
		if count[r] == 0 {
			ranks = append(ranks, r)
		}
		count[r]++
	}
	sort.Ints(ranks)

	bestLen := 0
	bestMult := 0
	for start := 0; start < len(ranks); start++ {
		for end := start; end < len(ranks); end++ {
			runLen := end - start + 1
			if runLen < 3 {
				continue
			}
			if ranks[end]-ranks[start] != runLen-1 {
				continue
			}
			mult := 1
			for i := start; i <= end; i++ {
				mult *= count[ranks[i]]
			}
			if runLen > bestLen {
				bestLen = runLen
				bestMult = mult
			} else if runLen == bestLen {
				bestMult += mult
			}
		}
	}
	if bestLen == 0 {
		return 0
	}
	return bestLen * bestMult
}

// scoreFlush: four same-suited hand cards score 4, five with the cut.
// The crib only flushes when the cut extends it to five.
func scoreFlush(hand []common.Card, cut *common.Card, isCrib bool) int {
	if len(hand) != 4 {
		return 0
	}
	s := hand[0].Suit
	for i := 1; i < 4; i++ {
		if hand[i].Suit != s {
			return 0
		}
	}
	cutMatches := cut != nil && cut.Suit == s
	if isCrib {
		if cutMatches {
			return 5
		}
		return 0
	}
	if cutMatches {
		return 5
	}
	return 4
}

func scoreNobs(hand []common.Card, cut *common.Card) int {
	if cut == nil {
		return 0
	}
	for _, c := range hand {
		if c.Rank == common.Jack && c.Suit == cut.Suit {
			return 1
		}
	}
	return 0
}

// PegScore computes the points for playing newCard onto the current
// sub-round. seq holds the cards of the sub-round so far (oldest first)
// and total the running count before the play. Scored against the
// post-play state: 2 for hitting 15, 2 for hitting 31, and 2 per card in
// the unbroken trailing streak matching newCard's rank (pair 2, trips 6,
// quads 12).
func PegScore(seq []common.Card, newCard common.Card, total int) (points int, newTotal int, reasons []string) {
	newTotal = total + newCard.CountValue()

	if newTotal == 15 {
		points += 2
		reasons = append(reasons, "fifteen")
	}
	if newTotal == 31 {
		points += 2
		reasons = append(reasons, "thirty-one")
	}

	matches := 0
	for i := len(seq) - 1; i >= 0; i-- {
		if seq[i].Rank != newCard.Rank {
			break
		}
		matches++
	}
	switch matches {
	case 1:
		points += 2
		reasons = append(reasons, "pair")
	case 2:
		points += 6
		reasons = append(reasons, "three-of-a-kind")
	case 3:
		points += 12
		reasons = append(reasons, "four-of-a-kind")
	}

	return points, newTotal, reasons
}
