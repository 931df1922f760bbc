package api

import (
	"errors"   // Error classification
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"news_portal/internal/domain"     // Importing domain models
	"news_portal/internal/middleware" // Identity and DB accessors

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"golang.org/x/crypto/bcrypt"   // Password hashing
	"gorm.io/gorm"                 // GORM ORM library
)

// AddWriterRequest is the payload for creating a writer
type AddWriterRequest struct {
	Name     string `json:"name"`     // Display name
	Email    string `json:"email"`    // Unique email
	Password string `json:"password"` // Initial password
	Category string `json:"category"` // Writer's beat
}

// UpdateWriterRequest is the payload for editing a writer
type UpdateWriterRequest struct {
	Name     string `json:"name"`     // Display name
	Email    string `json:"email"`    // Unique email
	Category string `json:"category"` // Writer's beat
	Role     string `json:"role"`     // Optional role change
}

// emailTaken reports whether another user already owns email
func emailTaken(db *gorm.DB, email, exceptID string) (bool, error) {
	var count int64
	q := db.Model(&domain.User{}).Where("email = ?", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// findWriter loads a writer-role user by id
func findWriter(db *gorm.DB, id string) (*domain.User, error) {
	var writer domain.User
	err := db.Where("id = ? AND role = ?", id, domain.RoleWriter).First(&writer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("Writer not found")
	}
	if err != nil {
		return nil, err
	}
	return &writer, nil
}

// AddWriterHandler creates a writer account
func AddWriterHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddWriterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, domain.Validation("Invalid request"))
			return
		}
		name := strings.TrimSpace(req.Name)
		email := normalizeEmail(req.Email)
		category := strings.TrimSpace(req.Category)
		switch {
		case name == "":
			respondError(c, domain.Validation("Please provide name"))
			return
		case email == "":
			respondError(c, domain.Validation("Please provide email"))
			return
		case req.Password == "":
			respondError(c, domain.Validation("Please provide password"))
			return
		case category == "":
			respondError(c, domain.Validation("Please provide category"))
			return
		}
		db := middleware.DBFrom(c)
		taken, err := emailTaken(db, email, "")
		if err != nil {
			respondError(c, err)
			return
		}
		if taken {
			respondError(c, domain.Conflict("Email already exists"))
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, err)
			return
		}
		writer := domain.User{
			Name:     name,
			Email:    email,
			Password: string(hash),
			Role:     domain.RoleWriter,
			Category: category,
		}
		if err := db.Create(&writer).Error; err != nil {
			respondError(c, err)
			return
		}
		identity, _ := middleware.IdentityFrom(c)
		logrus.WithFields(logrus.Fields{
			"admin_id":  identity.ID, // Acting admin
			"writer_id": writer.ID,   // New writer
		}).Info("Writer created")
		c.JSON(http.StatusCreated, gin.H{"message": "Writer added successfully", "writer": toUserResponse(&writer)})
	}
}

// ListWritersHandler returns every writer, newest first
func ListWritersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var writers []domain.User
		if err := middleware.DBFrom(c).Where("role = ?", domain.RoleWriter).Order("created_at desc").Find(&writers).Error; err != nil {
			respondError(c, err)
			return
		}
		resp := make([]UserResponse, len(writers))
		for i := range writers {
			resp[i] = toUserResponse(&writers[i])
		}
		c.JSON(http.StatusOK, gin.H{"writers": resp})
	}
}

// GetWriterHandler returns one writer
func GetWriterHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		writer, err := findWriter(middleware.DBFrom(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"writer": toUserResponse(writer)})
	}
}

// UpdateWriterHandler edits a writer's profile fields
func UpdateWriterHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateWriterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, domain.Validation("Invalid request"))
			return
		}
		name := strings.TrimSpace(req.Name)
		email := normalizeEmail(req.Email)
		category := strings.TrimSpace(req.Category)
		if name == "" || email == "" || category == "" {
			respondError(c, domain.Validation("Please provide name, email and category"))
			return
		}
		role := domain.RoleWriter
		if req.Role != "" {
			parsed, ok := domain.ParseRole(req.Role)
			if !ok {
				respondError(c, domain.Validation("Invalid role"))
				return
			}
			role = parsed
		}
		db := middleware.DBFrom(c)
		writer, err := findWriter(db, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		taken, err := emailTaken(db, email, writer.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		if taken {
			respondError(c, domain.Conflict("Email already exists"))
			return
		}
		// Keep the denormalized author name on news in step with the profile
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(writer).Updates(map[string]any{
				"name":     name,
				"email":    email,
				"category": category,
				"role":     role,
			}).Error; err != nil {
				return err
			}
			return tx.Model(&domain.News{}).Where("writer_id = ?", writer.ID).Update("writer_name", name).Error
		})
		if err != nil {
			respondError(c, err)
			return
		}
		invalidatePublicNews(rdb) // Cached lists carry the author name
		writer.Name, writer.Email, writer.Category, writer.Role = name, email, category, role
		c.JSON(http.StatusOK, gin.H{"message": "Writer updated successfully", "writer": toUserResponse(writer)})
	}
}

// DeleteWriterHandler removes a writer who has no news
func DeleteWriterHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		db := middleware.DBFrom(c)
		writer, err := findWriter(db, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		var authored int64
		if err := db.Model(&domain.News{}).Where("writer_id = ?", writer.ID).Count(&authored).Error; err != nil {
			respondError(c, err)
			return
		}
		if authored > 0 {
			respondError(c, domain.Conflict("Writer still has news; delete or reassign it first"))
			return
		}
		if err := db.Delete(writer).Error; err != nil {
			respondError(c, err)
			return
		}
		identity, _ := middleware.IdentityFrom(c)
		logrus.WithFields(logrus.Fields{
			"admin_id":  identity.ID,
			"writer_id": writer.ID,
		}).Info("Writer deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Writer deleted successfully"})
	}
}
