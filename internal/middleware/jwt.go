package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"news_portal/internal/domain" // Identity type

	"github.com/gin-gonic/gin" // Gin web framework
)

// IdentityKey is the gin context key holding the authenticated domain.Identity
const IdentityKey = "identity"

// TokenVerifier verifies bearer tokens
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// JWTAuthMiddleware validates the bearer token and attaches the caller's identity
func JWTAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		identity, err := verifier.Verify(tokenStr)
		if err != nil {
			// Expired and malformed tokens share one message
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		c.Set(IdentityKey, identity) // Store identity in context
		c.Next()                     // Proceed to the next handler
	}
}

// IdentityFrom returns the identity attached by JWTAuthMiddleware
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}
