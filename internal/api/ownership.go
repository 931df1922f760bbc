package api

import (
	"errors"

	"news_portal/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

var errNotOwner = domain.Forbidden("You can only manage your own news")

// scopeNews restricts a news query to the given scope
func scopeNews(db *gorm.DB, scope domain.Scope) *gorm.DB {
	q := db.Model(&domain.News{})
	if !scope.All() {
		q = q.Where("writer_id = ?", scope.AuthorID)
	}
	return q
}

// authorizeNews reports whether identity may view or change news
func authorizeNews(identity domain.Identity, news *domain.News) error {
	if identity.IsAdmin() {
		return nil // Admins act on any record
	}
	if identity.Role != domain.RoleWriter || news.WriterID != identity.ID {
		return errNotOwner
	}
	return nil
}

// loadAuthorizedNews fetches a news record by id and applies the ownership check.
// A writer gets Forbidden for ids they do not own, whether or not the record exists.
func loadAuthorizedNews(db *gorm.DB, identity domain.Identity, id string) (*domain.News, error) {
	var news domain.News
	err := db.Where("id = ?", id).First(&news).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if !identity.IsAdmin() {
			return nil, errNotOwner
		}
		return nil, domain.NotFound("News not found")
	}
	if err != nil {
		return nil, err
	}
	if err := authorizeNews(identity, &news); err != nil {
		return nil, err
	}
	return &news, nil
}
