package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openkanban/kanban/internal/auth"
	apierrors "github.com/openkanban/kanban/internal/errors"
)

const contextKeyUserID = "user_id"

// RequireAuth validates the bearer token on protected routes and attaches
// the caller's user id to the request context.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		if !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "Authorization header must use a Bearer token")
			c.Abort()
			return
		}

		userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apierrors.Unauthorized(c, "Token is not valid")
			c.Abort()
			return
		}

		c.Set(contextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(contextKeyUserID)
	if !exists {
		return "", false
	}

	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
