package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	UserID      string         `gorm:"index;not null" json:"user_id"`
	Title       string         `gorm:"not null" json:"title"`
	TimeMinutes int            `json:"time_minutes"`
	Price       float64        `gorm:"type:numeric(8,2)" json:"price"`
	Ingredients []Ingredient   `gorm:"many2many:recipe_ingredients" json:"ingredients"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	r.UpdatedAt = r.CreatedAt
	return
}
