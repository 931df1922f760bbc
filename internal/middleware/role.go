package middleware

import (
	"net/http" // HTTP status codes

	"news_portal/internal/domain" // Role type

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRole lets the request through only when the authenticated role is one of roles.
// It never touches the database; the role was validated when the token was decoded.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
			return
		}
		for _, r := range roles {
			if identity.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Unable to access this api"})
	}
}
