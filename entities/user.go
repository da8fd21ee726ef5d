package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account in the recipe catalog
type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `json:"name"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
	IsStaff      bool   `gorm:"default:false" json:"is_staff"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	u.UpdatedAt = u.CreatedAt
	return
}
