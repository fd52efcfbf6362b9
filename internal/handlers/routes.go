package handlers

import (
	"database/sql"

	"cribbage-go/internal/config"
	"cribbage-go/internal/middleware"
	"cribbage-go/internal/session"
	ws "cribbage-go/pkg/websocket"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the REST API. Game creation and the results
// board are open; everything touching a specific game needs that
// game's token.
func RegisterRoutes(api *gin.RouterGroup, m *session.Manager, db *sql.DB, hub *ws.Hub, cfg config.Config) {
	api.POST("/games", CreateGameHandler(m, db, hub, cfg))
	api.GET("/results", ResultsHandler(db))

	protected := api.Group("")
	protected.Use(middleware.RequireGameToken(cfg))
	protected.GET("/games/:id", GetGameHandler(m))
	protected.POST("/games/:id/move", MoveHandler(m, db))
	protected.POST("/games/:id/next_hand", NextHandHandler(m))
	protected.POST("/games/:id/restart", RestartHandler(m))
	protected.GET("/games/:id/moves", GameMovesHandler(m, db))
}
