package api

import (
	"errors"   // Error classification
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"news_portal/internal/domain"     // Importing domain models
	"news_portal/internal/middleware" // Identity and DB accessors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// TokenIssuer signs identity tokens
type TokenIssuer interface {
	Issue(id domain.Identity) (string, error)
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email"`    // Account email
	Password string `json:"password"` // Plain password
}

// ChangePasswordRequest is the password change payload
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"` // Current password
	NewPassword string `json:"new_password"` // Replacement password
}

// UserResponse is the public view of a user record
type UserResponse struct {
	ID       string      `json:"_id"`      // User ID
	Name     string      `json:"name"`     // Display name
	Email    string      `json:"email"`    // Email
	Role     domain.Role `json:"role"`     // Role
	Category string      `json:"category"` // Category
	Image    string      `json:"image"`    // Avatar URL
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Category: u.Category, Image: u.Image}
}

// normalizeEmail makes email lookups case-insensitive
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LoginHandler authenticates a user by email and password and returns a token
func LoginHandler(issuer TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, domain.Validation("Invalid request"))
			return
		}
		email := normalizeEmail(req.Email)
		if email == "" {
			respondError(c, domain.Validation("Please provide your email"))
			return
		}
		if req.Password == "" {
			respondError(c, domain.Validation("Please provide your password"))
			return
		}
		db := middleware.DBFrom(c)
		var user domain.User // Fetch user from database
		err := db.Where("email = ?", email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithField("email", email).Warn("Login failed: unknown email")
			respondError(c, domain.Unauthenticated("Invalid Credentials"))
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "email": email}).Warn("Login failed: wrong password")
			respondError(c, domain.Unauthenticated("Invalid Credentials"))
			return
		}
		token, err := issuer.Issue(domain.Identity{ID: user.ID, Role: user.Role})
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,   // User ID
			"role":    user.Role, // Role
		}).Info("Login success")
		c.JSON(http.StatusOK, gin.H{
			"message": "Login success",
			"token":   token,
			"user":    toUserResponse(&user),
		})
	}
}

// ProfileHandler returns the caller's own user record
func ProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		if c.Param("id") != identity.ID {
			respondError(c, domain.Forbidden("You can only view your own profile"))
			return
		}
		var user domain.User
		err := middleware.DBFrom(c).Where("id = ?", identity.ID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, domain.NotFound("User not found"))
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": toUserResponse(&user)})
	}
}

// ChangePasswordHandler replaces the caller's password after checking the current one
func ChangePasswordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
			respondError(c, domain.Validation("Please provide old and new password"))
			return
		}
		if len(req.NewPassword) < 6 {
			respondError(c, domain.Validation("Password must be at least 6 characters"))
			return
		}
		db := middleware.DBFrom(c)
		var user domain.User
		err := db.Where("id = ?", identity.ID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, domain.NotFound("User not found"))
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
			respondError(c, domain.Validation("Old password is incorrect"))
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := db.Model(&user).Update("password", string(hash)).Error; err != nil {
			respondError(c, err)
			return
		}
		logrus.WithField("user_id", user.ID).Info("Password changed")
		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	}
}
