package handlers

import (
	"encoding/json"
	"testing"

	"cribbage-go/internal/game/cribbage"
	"cribbage-go/internal/session"
)

// TestBuildGameViewShape: the snapshot carries the human hand and
// public counters but only a count for the opponent's cards.
func TestBuildGameViewShape(t *testing.T) {
	st := cribbage.NewGame("Alice", "Bot")
	view := BuildGameView("g1", st)

	if view.GameID != "g1" {
		t.Fatalf("game id = %q, want g1", view.GameID)
	}
	if view.YourSeat != session.HumanSeat {
		t.Fatalf("your seat = %d, want %d", view.YourSeat, session.HumanSeat)
	}
	if got := len(view.YourHand); got != 6 {
		t.Fatalf("your hand = %d cards, want 6", got)
	}
	if got := view.Players[session.BotSeat].HandCount; got != 6 {
		t.Fatalf("bot hand count = %d, want 6", got)
	}
	if view.Cut == nil {
		t.Fatal("cut card missing from view")
	}
	if view.Winner != -1 {
		t.Fatalf("winner = %d, want -1 for a live game", view.Winner)
	}
}

// TestBuildGameViewHidesHiddenFields: the serialized view must not
// carry the deck, the crib contents, the kept snapshots, or any
// opponent hand beyond its size.
func TestBuildGameViewHidesHiddenFields(t *testing.T) {
	st := cribbage.NewGame("Alice", "Bot")
	data, err := json.Marshal(BuildGameView("g1", st))
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"deck", "crib", "kept", "hand"} {
		if _, ok := m[key]; ok {
			t.Fatalf("view exposes hidden field %q: %s", key, data)
		}
	}
	if _, ok := m["crib_size"]; !ok {
		t.Fatalf("view missing crib_size: %s", data)
	}

	players, ok := m["players"].([]any)
	if !ok || len(players) != 2 {
		t.Fatalf("view players malformed: %s", data)
	}
	for i, p := range players {
		fields, ok := p.(map[string]any)
		if !ok {
			t.Fatalf("player %d malformed: %s", i, data)
		}
		if _, leaked := fields["hand"]; leaked {
			t.Fatalf("player %d view carries a hand: %s", i, data)
		}
	}
}

// TestBuildGameViewCopies: mutating the view must not reach back into
// the source state.
func TestBuildGameViewCopies(t *testing.T) {
	st := cribbage.NewGame("Alice", "Bot")
	orig := st.Players[session.HumanSeat].Hand[0]

	view := BuildGameView("g1", st)
	view.YourHand[0] = *view.Cut
	cut := *st.Cut
	view.Cut = &cut

	if st.Players[session.HumanSeat].Hand[0] != orig {
		t.Fatal("view mutation reached the source hand")
	}
}
