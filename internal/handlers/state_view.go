package handlers

import (
	"cribbage-go/internal/game/common"
	"cribbage-go/internal/game/cribbage"
	"cribbage-go/internal/session"
)

// GameView is the client-facing snapshot of a game. The deck, the
// opponent's cards, and the crib contents never appear in it; crib
// points are revealed through the count response instead.
type GameView struct {
	GameID  string         `json:"game_id"`
	Phase   cribbage.Phase `json:"phase"`
	Current int            `json:"current"`

	Players  [2]PlayerView `json:"players"`
	YourSeat int           `json:"your_seat"`
	YourHand []common.Card `json:"your_hand"`

	Cut      *common.Card  `json:"cut,omitempty"`
	Count    int           `json:"count"`
	Played   []common.Card `json:"played"`
	CribSize int           `json:"crib_size"`

	Winner int `json:"winner"`
}

type PlayerView struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	HandCount int    `json:"hand_count"`
}

// BuildGameView sanitizes a committed state for the human player.
func BuildGameView(gameID string, st cribbage.State) GameView {
	view := GameView{
		GameID:   gameID,
		Phase:    st.Phase,
		Current:  st.Current,
		YourSeat: session.HumanSeat,
		YourHand: append([]common.Card(nil), st.Players[session.HumanSeat].Hand...),
		Count:    st.Count,
		Played:   append([]common.Card(nil), st.Played[st.RoundStart:]...),
		CribSize: len(st.Crib),
		Winner:   st.Winner(),
	}
	if st.Cut != nil {
		cut := *st.Cut
		view.Cut = &cut
	}
	for i, p := range st.Players {
		view.Players[i] = PlayerView{
			Name:      p.Name,
			Score:     p.Score,
			HandCount: len(p.Hand),
		}
	}
	return view
}
