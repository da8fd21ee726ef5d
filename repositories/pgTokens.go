package repositories

import (
	"recipe-server/db"
	"recipe-server/entities"

	"gorm.io/gorm"
)

type tokenPgRepository struct {
	db db.Database
}

func NewTokenPgRepository(database db.Database) TokenRepository {
	return &tokenPgRepository{db: database}
}

func (r *tokenPgRepository) Replace(token *entities.Token) error {
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", token.UserID).Delete(&entities.Token{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

func (r *tokenPgRepository) GetByKey(key string) (*entities.Token, error) {
	var token entities.Token
	err := r.db.GetDB().Where("key = ?", key).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenPgRepository) DeleteByUserID(userID string) error {
	return r.db.GetDB().Where("user_id = ?", userID).Delete(&entities.Token{}).Error
}
