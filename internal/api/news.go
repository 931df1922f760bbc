package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error classification
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Display dates

	"news_portal/internal/domain"     // Importing domain models
	"news_portal/internal/middleware" // Identity and DB accessors
	"news_portal/internal/utils"      // Slugs, sanitizing and cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/google/uuid"       // Slug fallback
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// NewsRequest is the payload for creating or editing news
type NewsRequest struct {
	Title       string   `json:"title"`       // Headline
	Category    string   `json:"category"`    // Section, defaults to the writer's category
	Description string   `json:"description"` // Body HTML
	Content     string   `json:"content"`     // Optional long-form HTML
	Image       string   `json:"image"`       // Cover image URL
	Tags        []string `json:"tags"`        // Free-form tags
}

// StatusUpdateRequest is the payload for changing a news status
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

const displayDateLayout = "January 2, 2006"

// cleanTags trims, drops empties and deduplicates tags preserving order
func cleanTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(utils.StripHTML(t))
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
	}
	return out
}

// uniqueSlug derives a slug from title that no other news record uses
func uniqueSlug(db *gorm.DB, title string) (string, error) {
	base := utils.Slugify(title)
	if base == "" {
		base = "news"
	}
	candidate := base
	for attempt := 0; attempt < 10; attempt++ {
		var count int64
		if err := db.Model(&domain.News{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = base + "-" + uuid.NewString()[:6] // Collision: add a short random suffix
	}
	return "", errors.New("could not allocate a unique slug")
}

// validate normalizes the request and checks required fields
func (r *NewsRequest) validate() error {
	r.Title = strings.TrimSpace(utils.StripHTML(r.Title))
	r.Category = strings.TrimSpace(utils.StripHTML(r.Category))
	r.Description = utils.SanitizeHTML(r.Description)
	r.Content = utils.SanitizeHTML(r.Content)
	r.Image = strings.TrimSpace(r.Image)
	r.Tags = cleanTags(r.Tags)
	if r.Title == "" {
		return domain.Validation("Please provide title")
	}
	if strings.TrimSpace(r.Description) == "" {
		return domain.Validation("Please provide description")
	}
	return nil
}

// invalidatePublicNews drops every cached public listing
func invalidatePublicNews(rdb *redis.Client) {
	if err := utils.DeleteCache(context.Background(), rdb, utils.PublicNewsKeys...); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to invalidate public news cache")
	}
}

// AddNewsHandler creates a pending news record authored by the calling writer.
// Pending news is not public, so the public cache is left alone.
func AddNewsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		var req NewsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, domain.Validation("Invalid request"))
			return
		}
		if err := req.validate(); err != nil {
			respondError(c, err)
			return
		}
		db := middleware.DBFrom(c)
		var writer domain.User
		if err := db.Where("id = ?", identity.ID).First(&writer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, domain.Unauthenticated("Account no longer exists"))
				return
			}
			respondError(c, err)
			return
		}
		slug, err := uniqueSlug(db, req.Title)
		if err != nil {
			respondError(c, err)
			return
		}
		category := req.Category
		if category == "" {
			category = writer.Category
		}
		news := domain.News{
			WriterID:    writer.ID,
			WriterName:  writer.Name,
			Title:       req.Title,
			Slug:        slug,
			Category:    category,
			Status:      domain.StatusPending,
			Description: req.Description,
			Content:     req.Content,
			Image:       req.Image,
			Tags:        req.Tags,
			Date:        time.Now().Format(displayDateLayout),
		}
		if err := db.Create(&news).Error; err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"writer_id": writer.ID, // Author
			"news_id":   news.ID,   // New record
		}).Info("News created")
		c.JSON(http.StatusCreated, gin.H{"message": "News added successfully", "news": news})
	}
}

// UpdateNewsHandler edits a news record; writers may only edit their own
func UpdateNewsHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		db := middleware.DBFrom(c)
		news, err := loadAuthorizedNews(db, identity, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		var req NewsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, domain.Validation("Invalid request"))
			return
		}
		if err := req.validate(); err != nil {
			respondError(c, err)
			return
		}
		if req.Category == "" {
			req.Category = news.Category
		}
		news.Title = req.Title
		news.Category = req.Category
		news.Description = req.Description
		news.Content = req.Content
		news.Image = req.Image
		news.Tags = req.Tags
		// Slug stays fixed so published links keep working
		if err := db.Model(news).Select("title", "category", "description", "content", "image", "tags").Updates(news).Error; err != nil {
			respondError(c, err)
			return
		}
		invalidatePublicNews(rdb)
		c.JSON(http.StatusOK, gin.H{"message": "News updated successfully", "news": news})
	}
}

// DeleteNewsHandler removes a news record; writers may only delete their own
func DeleteNewsHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		db := middleware.DBFrom(c)
		news, err := loadAuthorizedNews(db, identity, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if err := db.Delete(news).Error; err != nil {
			respondError(c, err)
			return
		}
		invalidatePublicNews(rdb)
		logrus.WithFields(logrus.Fields{
			"user_id": identity.ID,
			"role":    identity.Role,
			"news_id": news.ID,
		}).Info("News deleted")
		c.JSON(http.StatusOK, gin.H{"message": "News deleted successfully"})
	}
}

// DashboardNewsHandler lists news visible to the caller: all for admins, own for writers
func DashboardNewsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		var news []domain.News
		if err := scopeNews(middleware.DBFrom(c), domain.ScopeFor(identity)).Order("created_at desc").Find(&news).Error; err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"news": news})
	}
}

// WriterNewsHandler lists the calling writer's own news
func WriterNewsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		var news []domain.News
		if err := scopeNews(middleware.DBFrom(c), domain.ScopeAuthor(identity.ID)).Order("created_at desc").Find(&news).Error; err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"news": news})
	}
}

// DashboardNewsDetailHandler returns one news record the caller may see
func DashboardNewsDetailHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		news, err := loadAuthorizedNews(middleware.DBFrom(c), identity, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"news": news})
	}
}

// UpdateNewsStatusHandler sets the publication status of a news record
func UpdateNewsStatusHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StatusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, domain.Validation("Invalid request"))
			return
		}
		status, ok := domain.ParseNewsStatus(strings.ToLower(strings.TrimSpace(req.Status)))
		if !ok {
			respondError(c, domain.Validation("Status must be one of pending, active, deactive"))
			return
		}
		db := middleware.DBFrom(c)
		var news domain.News
		err := db.Where("id = ?", c.Param("id")).First(&news).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, domain.NotFound("News not found"))
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		previous := news.Status
		if err := db.Model(&news).Update("status", status).Error; err != nil {
			respondError(c, err)
			return
		}
		news.Status = status
		invalidatePublicNews(rdb)
		identity, _ := middleware.IdentityFrom(c)
		logrus.WithFields(logrus.Fields{
			"admin_id": identity.ID, // Acting admin
			"news_id":  news.ID,     // Target
			"from":     previous,    // Old status
			"to":       status,      // New status
		}).Info("News status updated")
		c.JSON(http.StatusOK, gin.H{"message": "News status updated successfully", "news": news})
	}
}
