package handlers

import "github.com/gin-gonic/gin"

func gameIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get("gameID")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
