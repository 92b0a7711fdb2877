package token

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextEmail is the gin context key under which the authenticated email is
// stored for downstream handlers.
const ContextEmail = "authEmail"

// Verifier abstracts token verification for the middleware.
type Verifier interface {
	// Verify checks a bearer token and returns its claims.
	Verify(tokenStr string) (*Claims, error)
}

// RequireAuth returns a Gin middleware that validates the Authorization
// bearer token and restricts access to authenticated callers.
func RequireAuth(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		claims, err := verifier.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}
