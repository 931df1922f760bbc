package middleware

import (
	"context"  // Request context
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// DBKey is the gin context key holding the *gorm.DB for the request
const DBKey = "db"

// DBProvider hands out the shared database handle
type DBProvider interface {
	Get(ctx context.Context) (*gorm.DB, error)
}

// DatabaseMiddleware makes sure the database is reachable before any handler runs
// and injects the handle into the context
func DatabaseMiddleware(provider DBProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, err := provider.Get(c.Request.Context())
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.FullPath(), // Route
				"error": err.Error(),  // Error message
			}).Error("Database unavailable")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"message": "Service temporarily unavailable"})
			return
		}
		c.Set(DBKey, db.WithContext(c.Request.Context())) // Queries follow request lifetime
		c.Next()
	}
}

// DBFrom returns the handle set by DatabaseMiddleware
func DBFrom(c *gin.Context) *gorm.DB {
	return c.MustGet(DBKey).(*gorm.DB)
}
