package models

import (
	"database/sql"
	"errors"
	"time"
)

// GameResult is one finished game's record.
type GameResult struct {
	ID          int64     `json:"id"`
	GameID      string    `json:"game_id"`
	WinnerName  string    `json:"winner_name"`
	LoserName   string    `json:"loser_name"`
	WinnerScore int       `json:"winner_score"`
	LoserScore  int       `json:"loser_score"`
	HandsDealt  int       `json:"hands_dealt"`
	FinishedAt  time.Time `json:"finished_at"`
}

func InsertGameResult(db *sql.DB, r GameResult) (*GameResult, error) {
	res, err := db.Exec(
		`INSERT INTO game_results(game_id, winner_name, loser_name, winner_score, loser_score, hands_dealt)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.GameID, r.WinnerName, r.LoserName, r.WinnerScore, r.LoserScore, r.HandsDealt,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return GetGameResultByID(db, id)
}

func GetGameResultByID(db *sql.DB, id int64) (*GameResult, error) {
	var r GameResult
	err := db.QueryRow(
		`SELECT id, game_id, winner_name, loser_name, winner_score, loser_score, hands_dealt, finished_at
		 FROM game_results WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.GameID, &r.WinnerName, &r.LoserName, &r.WinnerScore, &r.LoserScore, &r.HandsDealt, &r.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func ListGameResults(db *sql.DB, limit int64) ([]GameResult, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := db.Query(
		`SELECT id, game_id, winner_name, loser_name, winner_score, loser_score, hands_dealt, finished_at
		 FROM game_results ORDER BY finished_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GameResult
	for rows.Next() {
		var r GameResult
		if err := rows.Scan(&r.ID, &r.GameID, &r.WinnerName, &r.LoserName, &r.WinnerScore, &r.LoserScore, &r.HandsDealt, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
