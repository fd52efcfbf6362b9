package database

import (
	"errors"
	"testing"

	"cribbage-go/internal/models"
)

// TestOpenAndMigrate runs the embedded migrations against an in-memory
// database and exercises both tables through the models layer.
func TestOpenAndMigrate(t *testing.T) {
	db, err := OpenAndMigrate(":memory:")
	if err != nil {
		t.Fatalf("open/migrate: %v", err)
	}
	defer db.Close()

	r, err := models.InsertGameResult(db, models.GameResult{
		GameID:      "g1",
		WinnerName:  "Alice",
		LoserName:   "Skunk",
		WinnerScore: 121,
		LoserScore:  98,
		HandsDealt:  7,
	})
	if err != nil {
		t.Fatalf("insert result: %v", err)
	}
	if r.ID == 0 || r.FinishedAt.IsZero() {
		t.Fatalf("result row incomplete: %+v", r)
	}

	results, err := models.ListGameResults(db, 10)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(results) != 1 || results[0].WinnerName != "Alice" {
		t.Fatalf("results = %+v, want one row for Alice", results)
	}

	if _, err := models.GetGameResultByID(db, 999); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("missing row error = %v, want ErrNotFound", err)
	}

	seq, err := models.NextMoveSeq(db, "g1")
	if err != nil {
		t.Fatalf("next seq: %v", err)
	}
	if seq != 1 {
		t.Fatalf("first seq = %d, want 1", seq)
	}

	card := "5H"
	err = models.InsertGameMove(db, models.GameMove{
		GameID: "g1",
		Seq:    seq,
		Player: 0,
		Action: "play",
		Card:   &card,
		Points: 2,
	})
	if err != nil {
		t.Fatalf("insert move: %v", err)
	}

	seq, err = models.NextMoveSeq(db, "g1")
	if err != nil {
		t.Fatalf("next seq after insert: %v", err)
	}
	if seq != 2 {
		t.Fatalf("second seq = %d, want 2", seq)
	}

	moves, err := models.ListMovesByGame(db, "g1", 0)
	if err != nil {
		t.Fatalf("list moves: %v", err)
	}
	if len(moves) != 1 || moves[0].Card == nil || *moves[0].Card != "5H" {
		t.Fatalf("moves = %+v, want one play of 5H", moves)
	}
}
