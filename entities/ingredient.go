package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient belongs to exactly one user; the name is unique per owner.
// Rows are hard-deleted so the uniqueness constraint stays accurate.
type Ingredient struct {
	ID        string `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"index;not null;uniqueIndex:idx_ingredient_owner_name" json:"user_id"`
	Name      string `gorm:"not null;uniqueIndex:idx_ingredient_owner_name" json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	i.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	i.UpdatedAt = i.CreatedAt
	return
}
