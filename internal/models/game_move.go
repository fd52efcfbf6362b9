package models

import (
	"database/sql"
	"time"
)

// GameMove is one line of a game's move log: a discard, a pegged card, a
// go, or a counted hand.
type GameMove struct {
	ID        int64     `json:"id"`
	GameID    string    `json:"game_id"`
	Seq       int       `json:"seq"`
	Player    int       `json:"player"`
	Action    string    `json:"action"`
	Card      *string   `json:"card,omitempty"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

func InsertGameMove(db *sql.DB, m GameMove) error {
	_, err := db.Exec(
		`INSERT INTO game_moves(game_id, seq, player, action, card, points) VALUES (?, ?, ?, ?, ?, ?)`,
		m.GameID, m.Seq, m.Player, m.Action, m.Card, m.Points,
	)
	return err
}

// NextMoveSeq returns the next free sequence number for a game's log.
func NextMoveSeq(db *sql.DB, gameID string) (int, error) {
	var n sql.NullInt64
	err := db.QueryRow(`SELECT MAX(seq) FROM game_moves WHERE game_id = ?`, gameID).Scan(&n)
	if err != nil {
		return 0, err
	}
	if !n.Valid {
		return 1, nil
	}
	return int(n.Int64) + 1, nil
}

func ListMovesByGame(db *sql.DB, gameID string, limit int64) ([]GameMove, error) {
	if limit <= 0 || limit > 1000 {
		limit = 500
	}
	rows, err := db.Query(
		`SELECT id, game_id, seq, player, action, card, points, created_at
		 FROM game_moves WHERE game_id = ? ORDER BY seq ASC LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GameMove
	for rows.Next() {
		var m GameMove
		var card sql.NullString
		if err := rows.Scan(&m.ID, &m.GameID, &m.Seq, &m.Player, &m.Action, &card, &m.Points, &m.CreatedAt); err != nil {
			return nil, err
		}
		if card.Valid {
			v := card.String
			m.Card = &v
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
