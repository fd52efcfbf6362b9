package session

import (
	"errors"
	"testing"
	"time"

	"cribbage-go/internal/game/cribbage"
)

// never is long enough that the bot timer cannot fire inside a test.
const never = time.Hour

// TestDiscardDuplicateInFlight: while a (player, slot) discard key is
// held, a second identical request fails fast instead of discarding a
// second card; the key frees up again after release.
func TestDiscardDuplicateInFlight(t *testing.T) {
	s := New("t1", "Alice", "Bot", never)

	key := discardKey(HumanSeat, 0)
	if !s.guard.TryAcquire(key) {
		t.Fatal("fresh key should acquire")
	}
	if err := s.Discard(HumanSeat, 0); !errors.Is(err, ErrRequestInFlight) {
		t.Fatalf("duplicate discard error = %v, want ErrRequestInFlight", err)
	}
	s.guard.Release(key)

	if err := s.Discard(HumanSeat, 0); err != nil {
		t.Fatalf("discard after release: %v", err)
	}
	if got := len(s.State().Crib); got != 1 {
		t.Fatalf("crib size = %d, want 1", got)
	}
}

// TestDiscardReleasesKeyAfterCommit: a committed discard does not leave
// its guard key held.
func TestDiscardReleasesKeyAfterCommit(t *testing.T) {
	s := New("t2", "Alice", "Bot", never)

	if err := s.Discard(HumanSeat, 0); err != nil {
		t.Fatalf("discard: %v", err)
	}
	key := discardKey(HumanSeat, 0)
	if !s.guard.TryAcquire(key) {
		t.Fatal("key still held after commit")
	}
	s.guard.Release(key)
}

// TestDiscardErrorsPropagate: an engine rejection comes back unchanged
// and the state is untouched.
func TestDiscardErrorsPropagate(t *testing.T) {
	s := New("t3", "Alice", "Bot", never)

	if err := s.Discard(HumanSeat, 9); !errors.Is(err, cribbage.ErrInvalidCardIndex) {
		t.Fatalf("error = %v, want ErrInvalidCardIndex", err)
	}
	if err := s.Discard(BotSeat, 0); !errors.Is(err, cribbage.ErrNotYourTurn) {
		t.Fatalf("error = %v, want ErrNotYourTurn", err)
	}
	if got := len(s.State().Crib); got != 0 {
		t.Fatalf("crib size = %d, want 0", got)
	}
}

// TestBotCompletesDiscarding: with the bot timer live, human discards
// interleave with deferred bot discards until the crib fills and play
// begins.
func TestBotCompletesDiscarding(t *testing.T) {
	s := New("t4", "Alice", "Bot", time.Millisecond)

	if err := s.Discard(HumanSeat, 0); err != nil {
		t.Fatalf("first discard: %v", err)
	}
	waitForTurn(t, s, HumanSeat)
	if err := s.Discard(HumanSeat, 0); err != nil {
		t.Fatalf("second discard: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		st := s.State()
		if st.Phase == cribbage.PhasePlaying {
			if got := len(st.Crib); got != 4 {
				t.Fatalf("crib size = %d, want 4", got)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("stuck in phase %v waiting for play to begin", st.Phase)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func waitForTurn(t *testing.T, s *Session, seat int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		if s.State().Current == seat {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("turn never returned to seat %d", seat)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// TestRestartCancelsPendingBotMove: a bot move armed against the old
// game must not land on the replacement game.
func TestRestartCancelsPendingBotMove(t *testing.T) {
	s := New("t5", "Alice", "Bot", 20*time.Millisecond)

	if err := s.Discard(HumanSeat, 0); err != nil {
		t.Fatalf("discard: %v", err)
	}
	// The bot timer is now armed. Replace the game before it fires.
	s.Restart()
	time.Sleep(100 * time.Millisecond)

	st := s.State()
	if got := len(st.Crib); got != 0 {
		t.Fatalf("crib size after restart = %d, want 0", got)
	}
	if got := len(st.Players[BotSeat].Hand); got != 6 {
		t.Fatalf("bot hand after restart = %d cards, want 6", got)
	}
	if st.Current != HumanSeat {
		t.Fatalf("current after restart = %d, want %d", st.Current, HumanSeat)
	}
}

// TestOnGameOverFiresOnce: the hook runs exactly once even when further
// lookups read the finished state.
func TestOnGameOverFiresOnce(t *testing.T) {
	s := New("t6", "Alice", "Bot", never)
	fired := 0
	s.OnGameOver = func(cribbage.State, int) { fired++ }

	st := s.State()
	st.Players[HumanSeat].Score = cribbage.MaxScore
	st.Phase = cribbage.PhaseGameOver
	s.mu.Lock()
	s.commit(st)
	s.commit(st)
	s.mu.Unlock()

	if fired != 1 {
		t.Fatalf("OnGameOver fired %d times, want 1", fired)
	}
}

// TestManagerLifecycle: create, fetch, remove.
func TestManagerLifecycle(t *testing.T) {
	m := NewManager(never)
	s := m.Create("Alice", "Bot")
	if s.ID == "" {
		t.Fatal("empty session ID")
	}

	got, ok := m.Get(s.ID)
	if !ok || got != s {
		t.Fatal("Get did not return the created session")
	}

	m.Remove(s.ID)
	if _, ok := m.Get(s.ID); ok {
		t.Fatal("session still present after Remove")
	}
}
