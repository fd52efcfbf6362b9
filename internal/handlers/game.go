package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strings"

	"cribbage-go/internal/auth"
	"cribbage-go/internal/config"
	"cribbage-go/internal/game/common"
	"cribbage-go/internal/game/cribbage"
	"cribbage-go/internal/models"
	"cribbage-go/internal/session"
	ws "cribbage-go/pkg/websocket"

	"github.com/gin-gonic/gin"
)

const defaultBotName = "Skunk"

func gameRoom(gameID string) string { return "game:" + gameID }

// CreateGameHandler starts a new game against the bot and mints the
// token that authorizes every later action on it.
func CreateGameHandler(m *session.Manager, db *sql.DB, hub *ws.Hub, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PlayerName string `json:"player_name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		name := strings.TrimSpace(req.PlayerName)
		if name == "" {
			name = "Player"
		}

		s := m.Create(name, defaultBotName)
		s.OnCommit = func(st cribbage.State) {
			hub.Broadcast(gameRoom(s.ID), "game_update", BuildGameView(s.ID, st))
		}
		s.OnGameOver = func(st cribbage.State, handsDealt int) {
			recordResult(db, s.ID, st, handsDealt)
		}

		token, err := auth.GenerateToken(s.ID, name, cfg)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"game_id": s.ID,
			"token":   token,
			"state":   BuildGameView(s.ID, s.State()),
		})
	}
}

func recordResult(db *sql.DB, gameID string, st cribbage.State, handsDealt int) {
	winner := st.Winner()
	if winner < 0 {
		return
	}
	loser := 1 - winner
	_, err := models.InsertGameResult(db, models.GameResult{
		GameID:      gameID,
		WinnerName:  st.Players[winner].Name,
		LoserName:   st.Players[loser].Name,
		WinnerScore: st.Players[winner].Score,
		LoserScore:  st.Players[loser].Score,
		HandsDealt:  handsDealt,
	})
	if err != nil {
		log.Printf("record result: game=%s err=%v", gameID, err)
	}
}

// sessionFromRoute resolves the session for :id and enforces that the
// caller's token was minted for that game.
func sessionFromRoute(c *gin.Context, m *session.Manager) (*session.Session, bool) {
	id := c.Param("id")
	if claimed, ok := gameIDFromContext(c); !ok || claimed != id {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token not valid for this game"})
		return nil, false
	}
	s, ok := m.Get(id)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return nil, false
	}
	return s, true
}

func GetGameHandler(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFromRoute(c, m)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": BuildGameView(s.ID, s.State())})
	}
}

type moveRequest struct {
	Type      string `json:"type"` // discard|play|go|count
	CardIndex int    `json:"card_index"`
}

// MoveHandler applies one human action. The engine validates it; a
// rejection maps to a 4xx and changes nothing.
func MoveHandler(m *session.Manager, db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFromRoute(c, m)
		if !ok {
			return
		}
		var req moveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		before := s.State()
		resp := gin.H{}
		var (
			action string
			card   *string
			points int
			err    error
		)
		switch req.Type {
		case "discard":
			action = "discard"
			card = cardAt(before.Players[session.HumanSeat].Hand, req.CardIndex)
			err = s.Discard(session.HumanSeat, req.CardIndex)
		case "play":
			action = "play"
			var res cribbage.PlayResult
			res, err = s.PlayCard(session.HumanSeat, req.CardIndex)
			if err == nil {
				cs := res.Card.String()
				card = &cs
				points = res.Points
				resp["play"] = res
			}
		case "go":
			action = "go"
			err = s.Go(session.HumanSeat)
		case "count":
			action = "count"
			var res cribbage.ShowResult
			res, err = s.CountHand(session.HumanSeat)
			if err == nil {
				points = res.Hand.Total
				resp["count"] = gin.H{
					"cards": before.Kept[session.HumanSeat],
					"score": res.Hand,
				}
			}
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown move type"})
			return
		}
		if err != nil {
			writeAPIError(c, err)
			return
		}

		logMove(db, s.ID, session.HumanSeat, action, card, points)
		resp["state"] = BuildGameView(s.ID, s.State())
		c.JSON(http.StatusOK, resp)
	}
}

func cardAt(hand []common.Card, idx int) *string {
	if idx < 0 || idx >= len(hand) {
		return nil
	}
	s := hand[idx].String()
	return &s
}

// logMove appends to the game's move log. Failures are logged, not
// surfaced: the log is an audit trail, not part of the game.
func logMove(db *sql.DB, gameID string, player int, action string, card *string, points int) {
	seq, err := models.NextMoveSeq(db, gameID)
	if err != nil {
		log.Printf("move log seq: game=%s err=%v", gameID, err)
		return
	}
	err = models.InsertGameMove(db, models.GameMove{
		GameID: gameID,
		Seq:    seq,
		Player: player,
		Action: action,
		Card:   card,
		Points: points,
	})
	if err != nil {
		log.Printf("move log insert: game=%s err=%v", gameID, err)
	}
}

func NextHandHandler(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFromRoute(c, m)
		if !ok {
			return
		}
		if err := s.NextHand(); err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": BuildGameView(s.ID, s.State())})
	}
}

func RestartHandler(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFromRoute(c, m)
		if !ok {
			return
		}
		s.Restart()
		c.JSON(http.StatusOK, gin.H{"state": BuildGameView(s.ID, s.State())})
	}
}

func GameMovesHandler(m *session.Manager, db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFromRoute(c, m)
		if !ok {
			return
		}
		moves, err := models.ListMovesByGame(db, s.ID, 0)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		if moves == nil {
			moves = []models.GameMove{}
		}
		c.JSON(http.StatusOK, gin.H{"moves": moves})
	}
}

// ResultsHandler lists recently finished games. It is public: results
// carry no hidden information.
func ResultsHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := models.ListGameResults(db, 0)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		if results == nil {
			results = []models.GameResult{}
		}
		c.JSON(http.StatusOK, gin.H{"results": results})
	}
}
