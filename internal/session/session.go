package session

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"cribbage-go/internal/game/common"
	"cribbage-go/internal/game/cribbage"
)

// ErrRequestInFlight rejects a duplicate of an action whose first copy
// has not committed yet.
var ErrRequestInFlight = errors.New("duplicate request in flight")

// HumanSeat and BotSeat are fixed: the human is the non-dealer, the
// heuristic opponent deals and owns the crib.
const (
	HumanSeat = cribbage.NonDealer
	BotSeat   = cribbage.Dealer
)

// Session owns one game's single mutable state cell. A mutex serializes
// every mutation, so there is exactly one writer at a time; the engine's
// value-semantics transitions make a failed move leave the cell
// untouched. The opponent's moves run on a deferred timer and are
// cancelled by generation whenever a new game replaces the state.
type Session struct {
	ID string

	mu    sync.Mutex
	state cribbage.State
	guard *Guard

	aiDelay time.Duration
	aiGen   int
	aiTimer *time.Timer

	// OnCommit observes every committed state (snapshot pushes).
	// OnGameOver fires once per finished game with the number of hands
	// the game dealt. Both run inside the writer lock and must not call
	// back into the session; keep them fast.
	OnCommit   func(cribbage.State)
	OnGameOver func(cribbage.State, int)

	// pendingThrow remembers the second card of the bot's chosen crib
	// pair across the turn-by-turn discard alternation.
	pendingThrow *common.Card

	recorded   bool
	handsDealt int
}

func New(id, playerName, botName string, aiDelay time.Duration) *Session {
	s := &Session{
		ID:      id,
		state:   cribbage.NewGame(playerName, botName),
		guard:   NewGuard(),
		aiDelay: aiDelay,
	}
	s.handsDealt = 1
	return s
}

// State returns a copy of the current state for read-only use.
func (s *Session) State() cribbage.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// HandsDealt reports how many hands this game has dealt so far.
func (s *Session) HandsDealt() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handsDealt
}

func discardKey(player, cardIndex int) string {
	return fmt.Sprintf("discard:%d:%d", player, cardIndex)
}

// Discard applies a human discard. The idempotency guard is claimed
// before the transition and released after the commit, so a duplicate
// (player, slot) request arriving in between is rejected rather than
// discarding a second card.
func (s *Session) Discard(player, cardIndex int) error {
	key := discardKey(player, cardIndex)
	if !s.guard.TryAcquire(key) {
		return ErrRequestInFlight
	}
	defer s.guard.Release(key)

	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.state.Discard(player, cardIndex)
	if err != nil {
		return err
	}
	s.commit(next)
	return nil
}

// PlayCard applies a human pegging play.
func (s *Session) PlayCard(player, cardIndex int) (cribbage.PlayResult, error) {
	key := fmt.Sprintf("play:%d:%d", player, cardIndex)
	if !s.guard.TryAcquire(key) {
		return cribbage.PlayResult{}, ErrRequestInFlight
	}
	defer s.guard.Release(key)

	s.mu.Lock()
	defer s.mu.Unlock()
	next, res, err := s.state.PlayCard(player, cardIndex)
	if err != nil {
		return cribbage.PlayResult{}, err
	}
	s.commit(next)
	return res, nil
}

// Go declares that the player cannot play.
func (s *Session) Go(player int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.state.Go(player)
	if err != nil {
		return err
	}
	s.commit(next)
	return nil
}

// CountHand scores the player's hand in the show.
func (s *Session) CountHand(player int) (cribbage.ShowResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, res, err := s.state.CountHand(player)
	if err != nil {
		return cribbage.ShowResult{}, err
	}
	s.commit(next)
	return res, nil
}

// NextHand deals the next hand of the same game.
func (s *Session) NextHand() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.state.Deal()
	if err != nil {
		return err
	}
	s.handsDealt++
	s.commit(next)
	return nil
}

// Restart abandons the current game and starts a fresh one. Any pending
// AI move belongs to the old game and must not land on the new one: the
// generation bump invalidates it before the state swaps.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aiGen++
	if s.aiTimer != nil {
		s.aiTimer.Stop()
		s.aiTimer = nil
	}
	fresh := cribbage.NewGame(s.state.Players[0].Name, s.state.Players[1].Name)
	s.recorded = false
	s.handsDealt = 1
	s.commit(fresh)
}

// commit swaps in the new state and runs the post-commit hooks. Callers
// hold s.mu.
func (s *Session) commit(next cribbage.State) {
	s.state = next
	if next.Phase != cribbage.PhaseDiscarding {
		s.pendingThrow = nil
	}
	if s.OnCommit != nil {
		s.OnCommit(next)
	}
	if next.IsGameOver() {
		if !s.recorded {
			s.recorded = true
			if s.OnGameOver != nil {
				s.OnGameOver(next, s.handsDealt)
			}
		}
		return
	}
	s.scheduleAILocked()
}

// scheduleAILocked arms the bot's deferred move when the turn is the
// bot's. Callers hold s.mu.
func (s *Session) scheduleAILocked() {
	if !s.botShouldActLocked() {
		return
	}
	gen := s.aiGen
	if s.aiTimer != nil {
		s.aiTimer.Stop()
	}
	s.aiTimer = time.AfterFunc(s.aiDelay, func() { s.applyAIMove(gen) })
}

func (s *Session) botShouldActLocked() bool {
	st := s.state
	switch st.Phase {
	case cribbage.PhaseDiscarding, cribbage.PhasePlaying, cribbage.PhaseCounting:
		return st.Current == BotSeat
	default:
		return false
	}
}

// applyAIMove runs one bot action. A stale generation means the game was
// replaced while the timer was pending; the move is dropped.
func (s *Session) applyAIMove(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.aiGen || !s.botShouldActLocked() {
		return
	}

	st := s.state
	var (
		next cribbage.State
		err  error
	)
	switch st.Phase {
	case cribbage.PhaseDiscarding:
		// Discards alternate strictly, so the bot throws one card per
		// turn: the pair is chosen up front and the second card kept
		// aside (by identity, since indices shift) for its next turn.
		hand := st.Players[BotSeat].Hand
		idx := -1
		if s.pendingThrow != nil {
			for i, c := range hand {
				if c == *s.pendingThrow {
					idx = i
					break
				}
			}
			s.pendingThrow = nil
		}
		if idx < 0 {
			a, b, cerr := cribbage.ChooseDiscard(hand, true)
			if cerr != nil {
				log.Printf("session %s: bot discard choice: %v", s.ID, cerr)
				return
			}
			second := hand[a]
			s.pendingThrow = &second
			idx = b
		}
		next, err = st.Discard(BotSeat, idx)
	case cribbage.PhasePlaying:
		idx, ok := cribbage.ChoosePlay(
			st.Players[BotSeat].Hand,
			st.Count,
			st.Played[st.RoundStart:],
		)
		if ok {
			next, _, err = st.PlayCard(BotSeat, idx)
		} else {
			next, err = st.Go(BotSeat)
		}
	case cribbage.PhaseCounting:
		next, _, err = st.CountHand(BotSeat)
	default:
		return
	}
	if err != nil {
		log.Printf("session %s: bot move failed: %v", s.ID, err)
		return
	}
	s.commit(next)
}
