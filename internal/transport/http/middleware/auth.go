package middleware

import (
	"net/http"
	"strings"

	"github.com/Abaaza/wallmastersbackend/internal/token"
	"github.com/gin-gonic/gin"
)

const errUnauthorized = "Unauthorized"

// accessVerifier is the slice of token.Service the middleware needs.
type accessVerifier interface {
	VerifyAccessToken(raw string) (*token.Claims, error)
}

// Auth validates a Bearer access token and sets "userID" in the gin context.
func Auth(tokens accessVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
			return
		}

		claims, err := tokens.VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
			return
		}

		c.Set("userID", claims.UserID)
		c.Next()
	}
}
