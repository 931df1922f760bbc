package api

import (
	"errors"   // Error classification
	"net/http" // HTTP status codes

	"news_portal/internal/domain" // Error taxonomy

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // Translated driver errors
)

// statusFor maps each error kind to its HTTP status
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"message": ...}; internal errors are logged and never exposed
func respondError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = domain.Conflict("Resource already exists") // Lost a race on a unique index
	}
	status := statusFor(domain.KindOf(err))
	if status == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method, // HTTP method
			"path":   c.FullPath(),     // Route
			"error":  err.Error(),      // Error message
		}).Error("Request failed")
		c.JSON(status, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"message": err.Error()})
}
