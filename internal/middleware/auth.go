package middleware

import (
	"net/http"
	"strings"

	"cribbage-go/internal/auth"
	"cribbage-go/internal/config"

	"github.com/gin-gonic/gin"
)

// RequireGameToken validates the bearer token minted at game creation
// and exposes its claims to the handlers. It does not check which game
// the token belongs to; handlers match the claim against the route.
func RequireGameToken(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := auth.ParseToken(token, cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("gameID", claims.GameID)
		c.Set("playerName", claims.PlayerName)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authz := c.GetHeader("Authorization")
	if authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	// Browser websocket clients cannot set headers.
	return strings.TrimSpace(c.Query("token"))
}
