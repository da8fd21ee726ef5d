package httpHandler

import (
	"net/http"
	"strings"

	"recipe-server/entities"
	"recipe-server/usecases"

	"github.com/gin-gonic/gin"
)

const contextUserKey = "currentUser"

// TokenAuth resolves the Authorization header to a user before any store
// access happens. Both "Token <key>" and "Bearer <key>" schemes are
// accepted.
func TokenAuth(tokens *usecases.TokenUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := tokens.Resolve(BearerKey(c.GetHeader("Authorization")))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication credentials were not provided or are invalid",
			})
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by TokenAuth, or nil on routes
// that skipped it.
func CurrentUser(c *gin.Context) *entities.User {
	if v, ok := c.Get(contextUserKey); ok {
		if user, ok := v.(*entities.User); ok {
			return user
		}
	}
	return nil
}

// BearerKey extracts the opaque key from an Authorization header value.
func BearerKey(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Token") && !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
