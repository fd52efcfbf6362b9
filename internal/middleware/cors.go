package middleware

import (
	"net/http"
	"strings"

	"cribbage-go/internal/config"

	"github.com/gin-gonic/gin"
)

// DevCORS enables credentialed CORS for loopback origins in development
// so a local frontend on another port can reach the API. Outside
// development it does nothing.
func DevCORS(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := strings.TrimSpace(c.GetHeader("Origin"))
		if origin == "" || cfg.AppEnv != "development" {
			c.Next()
			return
		}

		if isLoopbackOrigin(origin) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Vary", "Origin")
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func isLoopbackOrigin(origin string) bool {
	for _, prefix := range []string{
		"http://localhost:", "https://localhost:",
		"http://127.0.0.1:", "https://127.0.0.1:",
		"http://[::1]:", "https://[::1]:",
	} {
		if strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}
