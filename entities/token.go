package entities

import (
	"time"

	"gorm.io/gorm"
)

// Token is an opaque bearer key bound to one user. A user holds at most
// one live token: issuing a new one replaces any prior rows.
type Token struct {
	Key       string    `gorm:"primaryKey;type:varchar(64)" json:"-"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt string    `json:"created_at"`
}

func (t *Token) BeforeCreate(tx *gorm.DB) (err error) {
	t.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return
}
