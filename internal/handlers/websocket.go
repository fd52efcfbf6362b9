package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"cribbage-go/internal/auth"
	"cribbage-go/internal/config"
	"cribbage-go/internal/session"
	ws "cribbage-go/pkg/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			// Non-browser clients carry no Origin.
			return true
		}
		return isLoopbackOrigin(origin)
	},
}

func isLoopbackOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// WebSocketHandler upgrades the connection and parks the client in its
// game's room for snapshot pushes. The token decides the room; clients
// only listen, moves go through the REST API.
func WebSocketHandler(m *session.Manager, hub *ws.Hub, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerOrQueryToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		claims, err := auth.ParseToken(token, cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		s, ok := m.Get(claims.GameID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the HTTP error.
			return
		}

		client := ws.NewClient(conn, hub, gameRoom(s.ID))
		hub.Register(client)

		go client.WritePump()
		go client.ReadPump(nil)

		_ = client.SendDirect("connected", gin.H{
			"game_id": s.ID,
			"state":   BuildGameView(s.ID, s.State()),
		})
	}
}

// Used by both the REST middleware and the websocket endpoint; browser
// websocket clients cannot set an Authorization header.
func bearerOrQueryToken(c *gin.Context) string {
	authz := c.GetHeader("Authorization")
	if authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(c.Query("token"))
}
