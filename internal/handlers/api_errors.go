package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"cribbage-go/internal/game/cribbage"
	"cribbage-go/internal/models"
	"cribbage-go/internal/session"

	"github.com/gin-gonic/gin"
)

// writeAPIError maps engine and storage sentinels to stable HTTP
// statuses. Rule violations are the caller's mistake (4xx) and leave
// the game untouched; anything unrecognized is logged and hidden
// behind a generic 500.
func writeAPIError(c *gin.Context, err error) {
	if err == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if errors.Is(err, models.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	switch {
	case errors.Is(err, cribbage.ErrInvalidPlayer):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid player"})
	case errors.Is(err, cribbage.ErrInvalidCardIndex):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid card index"})
	case errors.Is(err, cribbage.ErrWouldExceed31):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "move would exceed 31"})
	case errors.Is(err, cribbage.ErrNotYourTurn):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "not your turn"})
	case errors.Is(err, cribbage.ErrWrongPhase):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "action not valid in this phase"})
	case errors.Is(err, cribbage.ErrDiscardComplete):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "discard already completed"})
	case errors.Is(err, cribbage.ErrHasLegalPlay):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "you have a legal play"})
	case errors.Is(err, session.ErrRequestInFlight):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "duplicate request in flight"})
	default:
		log.Printf("internal error: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
