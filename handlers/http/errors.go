package httpHandler

import (
	"errors"
	"net/http"

	"recipe-server/usecases"

	"github.com/gin-gonic/gin"
)

// abortWithError is the single place a usecase error becomes a status
// code. Handlers never pick statuses for typed errors themselves.
func abortWithError(c *gin.Context, err error) {
	var verr *usecases.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
	case errors.Is(err, usecases.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, usecases.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to authenticate with provided credentials"})
	case errors.Is(err, usecases.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func abortInvalidBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
}
