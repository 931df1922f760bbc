package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error classification
	"net/http" // HTTP status codes
	"sort"     // Category ordering
	"strings"  // String manipulation
	"time"     // Cache TTL

	"news_portal/internal/domain"     // Importing domain models
	"news_portal/internal/middleware" // DB accessor
	"news_portal/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// CategoryNews groups active news under a category
type CategoryNews struct {
	Category string        `json:"category"`
	News     []domain.News `json:"news"`
}

// CategoryCount is one row of the category summary
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// NewsImage is one entry of the image gallery
type NewsImage struct {
	ID    string `json:"_id"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
}

// activeNews starts a query over published news only
func activeNews(db *gorm.DB) *gorm.DB {
	return db.Model(&domain.News{}).Where("status = ?", domain.StatusActive)
}

// cachedList serves key from Redis when present, otherwise loads, caches and returns it.
// Cache failures never fail the request.
func cachedList[T any](c *gin.Context, rdb *redis.Client, ttl time.Duration, key, field string, load func(db *gorm.DB) (T, error)) {
	ctx := context.Background() // Use background context for Redis
	var cached T
	found, err := utils.GetCache(ctx, rdb, key, &cached)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache read failed")
	}
	if err == nil && found {
		c.JSON(http.StatusOK, gin.H{field: cached})
		return
	}
	value, err := load(middleware.DBFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := utils.SetCache(ctx, rdb, key, value, ttl); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache write failed")
	}
	c.JSON(http.StatusOK, gin.H{field: value})
}

// LatestNewsHandler returns the six newest active stories
func LatestNewsHandler(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		cachedList(c, rdb, ttl, utils.CacheKeyLatestNews, "news", func(db *gorm.DB) ([]domain.News, error) {
			var news []domain.News
			err := activeNews(db).Order("created_at desc").Limit(6).Find(&news).Error
			return news, err
		})
	}
}

// PopularNewsHandler returns the four most viewed active stories
func PopularNewsHandler(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		cachedList(c, rdb, ttl, utils.CacheKeyPopularNews, "popularNews", func(db *gorm.DB) ([]domain.News, error) {
			var news []domain.News
			err := activeNews(db).Order("view_count desc").Order("created_at desc").Limit(4).Find(&news).Error
			return news, err
		})
	}
}

// RecentNewsHandler returns the stories right after the latest block
func RecentNewsHandler(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		cachedList(c, rdb, ttl, utils.CacheKeyRecentNews, "news", func(db *gorm.DB) ([]domain.News, error) {
			var news []domain.News
			err := activeNews(db).Order("created_at desc").Offset(6).Limit(5).Find(&news).Error
			return news, err
		})
	}
}

// AllNewsHandler returns up to four active stories per category
func AllNewsHandler(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		cachedList(c, rdb, ttl, utils.CacheKeyAllNews, "news", func(db *gorm.DB) ([]CategoryNews, error) {
			var news []domain.News
			if err := activeNews(db).Order("created_at desc").Find(&news).Error; err != nil {
				return nil, err
			}
			byCategory := make(map[string][]domain.News)
			for _, n := range news {
				if len(byCategory[n.Category]) < 4 {
					byCategory[n.Category] = append(byCategory[n.Category], n)
				}
			}
			groups := make([]CategoryNews, 0, len(byCategory))
			for category, items := range byCategory {
				groups = append(groups, CategoryNews{Category: category, News: items})
			}
			sort.Slice(groups, func(i, j int) bool { return groups[i].Category < groups[j].Category })
			return groups, nil
		})
	}
}

// CategoriesHandler returns each category with its number of active stories
func CategoriesHandler(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		cachedList(c, rdb, ttl, utils.CacheKeyCategories, "categories", func(db *gorm.DB) ([]CategoryCount, error) {
			var categories []CategoryCount
			err := activeNews(db).
				Select("category, COUNT(*) AS count").
				Group("category").
				Order("category").
				Scan(&categories).Error
			return categories, err
		})
	}
}

// ImagesNewsHandler returns cover images of the nine newest active stories
func ImagesNewsHandler(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		cachedList(c, rdb, ttl, utils.CacheKeyImages, "images", func(db *gorm.DB) ([]NewsImage, error) {
			var images []NewsImage
			err := activeNews(db).
				Select("id, slug, image").
				Where("image <> ?", "").
				Order("created_at desc").
				Limit(9).
				Scan(&images).Error
			return images, err
		})
	}
}

// CategoryNewsHandler returns active stories of one category
func CategoryNewsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var news []domain.News
		if err := activeNews(middleware.DBFrom(c)).Where("category = ?", c.Param("category")).Order("created_at desc").Find(&news).Error; err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"news": news})
	}
}

// escapeLike escapes LIKE wildcards in user input using '!' as the escape character
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

// SearchNewsHandler finds active stories whose title contains ?value=
func SearchNewsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		value := strings.TrimSpace(c.Query("value"))
		if value == "" {
			respondError(c, domain.Validation("Please provide a search value"))
			return
		}
		pattern := "%" + escapeLike(strings.ToLower(value)) + "%"
		var news []domain.News
		if err := activeNews(middleware.DBFrom(c)).Where("LOWER(title) LIKE ? ESCAPE '!'", pattern).Order("created_at desc").Find(&news).Error; err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"news": news})
	}
}

// NewsDetailsHandler returns an active story by slug with related stories, counting the view
func NewsDetailsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		db := middleware.DBFrom(c)
		var news domain.News
		err := activeNews(db).Where("slug = ?", c.Param("slug")).First(&news).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, domain.NotFound("News not found"))
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		if err := db.Model(&news).UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
			respondError(c, err)
			return
		}
		news.Count++
		var related []domain.News
		if err := activeNews(db).
			Where("category = ? AND id <> ?", news.Category, news.ID).
			Order("created_at desc").
			Limit(4).
			Find(&related).Error; err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"news": news, "relatedNews": related})
	}
}
