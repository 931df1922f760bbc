package db

import (
	"errors"
	"fmt"
	"strings"

	"news_portal/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// AdminSeed describes the canonical admin account
type AdminSeed struct {
	Name     string
	Email    string
	Password string
	Category string
}

// EnsureAdmin creates the canonical admin when no admin exists and the email is free.
// Existing accounts are never modified. Returns true when a record was created.
func EnsureAdmin(db *gorm.DB, seed AdminSeed) (bool, error) {
	seed.Email = strings.ToLower(strings.TrimSpace(seed.Email))
	if seed.Email == "" || seed.Password == "" {
		logrus.Info("No ADMIN_EMAIL or ADMIN_PASSWORD set, skipping admin creation")
		return false, nil
	}
	var existing domain.User
	err := db.Where("role = ?", domain.RoleAdmin).Or("email = ?", seed.Email).First(&existing).Error
	if err == nil {
		logrus.WithField("email", existing.Email).Info("Admin user already exists. Skipping creation.")
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to look up admin: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}
	admin := domain.User{
		Name:     strings.TrimSpace(seed.Name),
		Email:    seed.Email,
		Password: string(hash),
		Role:     domain.RoleAdmin,
		Category: strings.TrimSpace(seed.Category),
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}
	logrus.WithFields(logrus.Fields{"id": admin.ID, "email": admin.Email}).Info("Admin user created")
	return true, nil
}
