package api

import (
	"net/http" // HTTP status codes

	"news_portal/internal/domain"     // Domain models
	"news_portal/internal/middleware" // Identity and DB accessors

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// NewsStats holds news counts grouped by status
type NewsStats struct {
	TotalNews    int64 `json:"totalNews"`
	PendingNews  int64 `json:"pendingNews"`
	ActiveNews   int64 `json:"activeNews"`
	DeactiveNews int64 `json:"deactiveNews"`
}

// ComputeStats counts news per status within scope with a single grouped query.
// Recomputed on every call.
func ComputeStats(db *gorm.DB, scope domain.Scope) (NewsStats, error) {
	var rows []struct {
		Status domain.NewsStatus
		Count  int64
	}
	err := scopeNews(db, scope).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return NewsStats{}, err
	}
	var stats NewsStats
	for _, row := range rows {
		switch row.Status {
		case domain.StatusPending:
			stats.PendingNews = row.Count
		case domain.StatusActive:
			stats.ActiveNews = row.Count
		case domain.StatusDeactive:
			stats.DeactiveNews = row.Count
		}
		stats.TotalNews += row.Count
	}
	return stats, nil
}

// NewsStatisticsHandler returns site-wide counts plus the number of writers
func NewsStatisticsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		db := middleware.DBFrom(c)
		stats, err := ComputeStats(db, domain.ScopeAll())
		if err != nil {
			respondError(c, err)
			return
		}
		var totalWriters int64
		if err := db.Model(&domain.User{}).Where("role = ?", domain.RoleWriter).Count(&totalWriters).Error; err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"totalNews":    stats.TotalNews,
			"pendingNews":  stats.PendingNews,
			"activeNews":   stats.ActiveNews,
			"deactiveNews": stats.DeactiveNews,
			"totalWriters": totalWriters,
		})
	}
}

// WriterNewsStatisticsHandler returns counts over the caller's own news
func WriterNewsStatisticsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		stats, err := ComputeStats(middleware.DBFrom(c), domain.ScopeAuthor(identity.ID))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
