package domain

import (
	"time"

	"github.com/google/uuid" // Opaque string IDs
	"gorm.io/gorm"           // GORM ORM library
)

// User Model (admin or writer credential record)
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`              // Primary key
	Name      string    `gorm:"not null" json:"name"`                       // Display name
	Email     string    `gorm:"uniqueIndex;size:191;not null" json:"email"` // Unique email
	Password  string    `gorm:"not null" json:"-"`                          // Hashed password
	Role      Role      `gorm:"size:16;not null;index" json:"role"`         // Role: admin or writer
	Category  string    `json:"category"`                                   // Writer's beat
	Image     string    `json:"image"`                                      // Avatar URL
	CreatedAt time.Time `json:"createdAt"`                                  // Creation time
	UpdatedAt time.Time `json:"updatedAt"`                                  // Last update time
}

// BeforeCreate assigns a UUID when none is set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
