package domain

import (
	"time"

	"github.com/google/uuid" // Opaque string IDs
	"gorm.io/gorm"           // GORM ORM library
)

// NewsStatus is the publication state of a news record
type NewsStatus string

const (
	StatusPending  NewsStatus = "pending"  // Awaiting admin review
	StatusActive   NewsStatus = "active"   // Published on the public site
	StatusDeactive NewsStatus = "deactive" // Taken down
)

// ParseNewsStatus validates a status string
func ParseNewsStatus(s string) (NewsStatus, bool) {
	switch st := NewsStatus(s); st {
	case StatusPending, StatusActive, StatusDeactive:
		return st, true
	}
	return "", false
}

// News Model
type News struct {
	ID          string     `gorm:"primaryKey;size:36" json:"_id"`                        // Primary key
	WriterID    string     `gorm:"size:36;not null;index" json:"writerId"`               // Author (User.ID)
	WriterName  string     `json:"writerName"`                                           // Author name at creation time
	Title       string     `gorm:"not null" json:"title"`                                // Headline
	Slug        string     `gorm:"uniqueIndex;size:191;not null" json:"slug"`            // URL slug
	Category    string     `gorm:"size:64;index" json:"category"`                        // Section
	Status      NewsStatus `gorm:"size:16;not null;default:pending;index" json:"status"` // Publication state
	Description string     `gorm:"type:text" json:"description"`                         // Teaser (sanitized HTML)
	Content     string     `gorm:"type:text" json:"content"`                             // Body (sanitized HTML)
	Image       string     `json:"image"`                                                // Cover image URL
	Tags        []string   `gorm:"serializer:json" json:"tags"`                          // Free-form tags
	Count       int        `gorm:"column:view_count;not null;default:0" json:"count"`    // Public view counter
	Date        string     `json:"date"`                                                 // Display date
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`                               // Creation time
	UpdatedAt   time.Time  `json:"updatedAt"`                                            // Last update time
}

// BeforeCreate assigns a UUID and the default status
func (n *News) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Status == "" {
		n.Status = StatusPending
	}
	return nil
}
