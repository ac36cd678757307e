package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"devconnect/internal/token"
)

const userIDKey = "userID"

// requireAuth resolves the bearer token to an acting user id. Mutating
// handlers never accept a caller-supplied user id; this is the only source.
func (h *Handler) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
		return
	}

	userID, err := token.Verify(strings.TrimSpace(header[len(prefix):]), h.jwtSecret)
	if err != nil {
		msg := "invalid token"
		if errors.Is(err, token.ErrExpired) {
			msg = "token expired"
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
		return
	}

	c.Set(userIDKey, userID)
	c.Next()
}

func actingUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
