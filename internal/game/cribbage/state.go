package cribbage

import (
	"encoding/json"

	"cribbage-go/internal/game/common"
)

// MaxScore is the winning score; awards clamp to it.
const MaxScore = 121

// Seat assignments are fixed for a game: player 0 leads the play and
// counts first, player 1 deals and owns the crib.
const (
	NonDealer = 0
	Dealer    = 1
)

const (
	handSize       = 6
	discardsNeeded = 2
	cribSize       = 4
)

// Phase is the exhaustive set of game phases. A transition is legal in
// exactly one phase; GameOver makes every transition inert until NewGame.
type Phase int

const (
	PhaseDealing Phase = iota
	PhaseDiscarding
	PhasePlaying
	PhaseCounting
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "dealing"
	case PhaseDiscarding:
		return "discarding"
	case PhasePlaying:
		return "playing"
	case PhaseCounting:
		return "counting"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

type Player struct {
	Name  string        `json:"name"`
	Hand  []common.Card `json:"hand"`
	Score int           `json:"score"`
}

// State is one cribbage game as a value. Transitions never mutate their
// receiver; they return a fresh deep copy, so a rejected move leaves the
// caller's state untouched and the boundary layer can own the single
// mutable cell.
type State struct {
	Players [2]Player `json:"players"`

	Deck []common.Card `json:"deck"`
	Cut  *common.Card  `json:"cut,omitempty"`
	Crib []common.Card `json:"crib"`

	// Kept snapshots the 4-card post-discard hands for the show; the
	// play phase consumes the live hands.
	Kept [2][]common.Card `json:"kept"`

	// Played is the full play log of the current hand (card conservation
	// and pair lookback both need it). RoundStart indexes the first card
	// of the current sub-round; Count is the running sum since then.
	Played     []common.Card `json:"played"`
	RoundStart int           `json:"round_start"`
	Count      int           `json:"count"`

	Phase   Phase `json:"phase"`
	Current int   `json:"current"`
}

// PlayResult reports the immediate outcome of one pegging play.
type PlayResult struct {
	Card    common.Card `json:"card"`
	Points  int         `json:"points"`
	Count   int         `json:"count"`
	Reasons []string    `json:"reasons,omitempty"`
}

// ShowResult reports the scoring of one hand in the show, plus the crib
// when the dealer's count closes the hand.
type ShowResult struct {
	Hand ScoreBreakdown  `json:"hand"`
	Crib *ScoreBreakdown `json:"crib,omitempty"`
}

// NewGame returns a fresh game dealt and ready for discards. It is total:
// legal at any time, including mid-game and after game over.
func NewGame(playerName, opponentName string) State {
	if playerName == "" {
		playerName = "Player 1"
	}
	if opponentName == "" {
		opponentName = "Player 2"
	}
	s := State{
		Players: [2]Player{{Name: playerName}, {Name: opponentName}},
		Phase:   PhaseDealing,
	}
	next, _ := s.Deal()
	return next
}

// Deal starts the next hand: fresh shuffled deck, six cards each, the
// next deck card popped as the shared cut card. Scores carry over; only
// legal in the dealing phase.
func (s State) Deal() (State, error) {
	if s.Phase != PhaseDealing {
		return s, ErrWrongPhase
	}
	ns := s.clone()

	deck := common.Shuffled(common.NewStandardDeck())
	for i := range ns.Players {
		ns.Players[i].Hand = make([]common.Card, 0, handSize)
	}
	for round := 0; round < handSize; round++ {
		for p := range ns.Players {
			ns.Players[p].Hand = append(ns.Players[p].Hand, deck[0])
			deck = deck[1:]
		}
	}
	cut := deck[0]
	deck = deck[1:]

	ns.Deck = deck
	ns.Cut = &cut
	ns.Crib = nil
	ns.Kept = [2][]common.Card{}
	ns.Played = nil
	ns.RoundStart = 0
	ns.Count = 0
	ns.Phase = PhaseDiscarding
	ns.Current = NonDealer
	return ns, nil
}

// DiscardCountFor reports how many cards the player has put in the crib
// this hand.
func (s State) DiscardCountFor(player int) int {
	if player < 0 || player > 1 {
		return 0
	}
	if s.Kept[player] != nil {
		return discardsNeeded
	}
	n := handSize - len(s.Players[player].Hand)
	if n < 0 {
		return 0
	}
	if n > discardsNeeded {
		return discardsNeeded
	}
	return n
}

// Discard moves one card from the player's hand into the crib. Discards
// are strictly turn-by-turn, two per player; the fourth crib card starts
// the play with the non-dealer leading.
func (s State) Discard(player, cardIndex int) (State, error) {
	if player < 0 || player > 1 {
		return s, ErrInvalidPlayer
	}
	if s.Phase != PhaseDiscarding {
		return s, ErrWrongPhase
	}
	if player != s.Current {
		return s, ErrNotYourTurn
	}
	if s.DiscardCountFor(player) >= discardsNeeded {
		return s, ErrDiscardComplete
	}
	if cardIndex < 0 || cardIndex >= len(s.Players[player].Hand) {
		return s, ErrInvalidCardIndex
	}

	ns := s.clone()
	hand := ns.Players[player].Hand
	card := hand[cardIndex]
	ns.Players[player].Hand = append(hand[:cardIndex], hand[cardIndex+1:]...)
	ns.Crib = append(ns.Crib, card)

	if len(ns.Crib) == cribSize {
		for i := range ns.Players {
			ns.Kept[i] = append([]common.Card(nil), ns.Players[i].Hand...)
		}
		ns.Phase = PhasePlaying
		ns.Current = NonDealer
		ns.Count = 0
		ns.Played = nil
		ns.RoundStart = 0
		return ns, nil
	}

	other := 1 - player
	if ns.DiscardCountFor(other) < discardsNeeded {
		ns.Current = other
	} else {
		ns.Current = player
	}
	return ns, nil
}

// CanPlay reports whether the player holds a card that keeps the count at
// 31 or below.
func (s State) CanPlay(player int) bool {
	if player < 0 || player > 1 {
		return false
	}
	for _, c := range s.Players[player].Hand {
		if s.Count+c.CountValue() <= 31 {
			return true
		}
	}
	return false
}

// PlayCard plays one card onto the count, awarding pegging points
// immediately. Hitting 31 closes the sub-round; emptying both hands
// moves the game to the show.
func (s State) PlayCard(player, cardIndex int) (State, PlayResult, error) {
	if player < 0 || player > 1 {
		return s, PlayResult{}, ErrInvalidPlayer
	}
	if s.Phase != PhasePlaying {
		return s, PlayResult{}, ErrWrongPhase
	}
	if player != s.Current {
		return s, PlayResult{}, ErrNotYourTurn
	}
	if cardIndex < 0 || cardIndex >= len(s.Players[player].Hand) {
		return s, PlayResult{}, ErrInvalidCardIndex
	}
	card := s.Players[player].Hand[cardIndex]
	if s.Count+card.CountValue() > 31 {
		return s, PlayResult{}, ErrWouldExceed31
	}

	ns := s.clone()
	hand := ns.Players[player].Hand
	ns.Players[player].Hand = append(hand[:cardIndex], hand[cardIndex+1:]...)

	points, newTotal, reasons := PegScore(ns.Played[ns.RoundStart:], card, ns.Count)
	ns.Played = append(ns.Played, card)
	ns.Count = newTotal
	res := PlayResult{Card: card, Points: points, Count: newTotal, Reasons: reasons}

	if ns.award(player, points) {
		return ns, res, nil
	}

	if ns.Count == 31 {
		ns.Count = 0
		ns.RoundStart = len(ns.Played)
	}
	ns.Current = 1 - player

	if len(ns.Players[0].Hand) == 0 && len(ns.Players[1].Hand) == 0 {
		ns.Count = 0
		ns.RoundStart = len(ns.Played)
		ns.Phase = PhaseCounting
		ns.Current = NonDealer
	}
	return ns, res, nil
}

// Go is the current player's declaration that no legal play exists. The
// opponent scores 1 and plays on at the same count if able; otherwise the
// sub-round closes with the count reset to 0.
func (s State) Go(player int) (State, error) {
	if player < 0 || player > 1 {
		return s, ErrInvalidPlayer
	}
	if s.Phase != PhasePlaying {
		return s, ErrWrongPhase
	}
	if player != s.Current {
		return s, ErrNotYourTurn
	}
	if s.CanPlay(player) {
		return s, ErrHasLegalPlay
	}

	ns := s.clone()
	other := 1 - player
	if ns.award(other, 1) {
		return ns, nil
	}

	if ns.CanPlay(other) {
		ns.Current = other
		return ns, nil
	}

	ns.Count = 0
	ns.RoundStart = len(ns.Played)
	if len(ns.Players[0].Hand) == 0 && len(ns.Players[1].Hand) == 0 {
		ns.Phase = PhaseCounting
		ns.Current = NonDealer
	}
	return ns, nil
}

// CountHand scores one hand in the show's strict order: non-dealer, then
// dealer, then the dealer's crib. The dealer's count also scores the crib
// and rolls the game into the next hand's dealing phase.
func (s State) CountHand(player int) (State, ShowResult, error) {
	if player < 0 || player > 1 {
		return s, ShowResult{}, ErrInvalidPlayer
	}
	if s.Phase != PhaseCounting {
		return s, ShowResult{}, ErrWrongPhase
	}
	if player != s.Current {
		return s, ShowResult{}, ErrNotYourTurn
	}

	ns := s.clone()
	hb := ScoreHand(ns.Kept[player], ns.Cut, false)
	res := ShowResult{Hand: hb}
	if ns.award(player, hb.Total) {
		return ns, res, nil
	}

	if player == NonDealer {
		ns.Current = Dealer
		return ns, res, nil
	}

	cb := ScoreHand(ns.Crib, ns.Cut, true)
	res.Crib = &cb
	if ns.award(Dealer, cb.Total) {
		return ns, res, nil
	}

	ns.Phase = PhaseDealing
	ns.Current = NonDealer
	return ns, res, nil
}

func (s State) IsGameOver() bool {
	return s.Phase == PhaseGameOver
}

// Winner returns the winning player, or -1 while the game is live.
func (s State) Winner() int {
	if s.Phase != PhaseGameOver {
		return -1
	}
	if s.Players[0].Score >= MaxScore {
		return 0
	}
	return 1
}

// award adds points to a player's score, clamped to MaxScore. Reaching
// the cap ends the game on the spot; it returns true when that happens so
// callers stop transitioning.
func (s *State) award(player, points int) bool {
	if points <= 0 {
		return false
	}
	score := s.Players[player].Score + points
	if score >= MaxScore {
		score = MaxScore
	}
	s.Players[player].Score = score
	if score >= MaxScore {
		s.Phase = PhaseGameOver
		return true
	}
	return false
}

func (s State) clone() State {
	ns := s
	for i := range ns.Players {
		ns.Players[i].Hand = append([]common.Card(nil), s.Players[i].Hand...)
		ns.Kept[i] = append([]common.Card(nil), s.Kept[i]...)
	}
	ns.Deck = append([]common.Card(nil), s.Deck...)
	ns.Crib = append([]common.Card(nil), s.Crib...)
	ns.Played = append([]common.Card(nil), s.Played...)
	if s.Cut != nil {
		cut := *s.Cut
		ns.Cut = &cut
	}
	return ns
}
