package repositories

import (
	"recipe-server/db"
	"recipe-server/entities"
	"time"
)

type recipePgRepository struct {
	db db.Database
}

func NewRecipePgRepository(database db.Database) RecipeRepository {
	return &recipePgRepository{db: database}
}

func (r *recipePgRepository) Create(recipe *entities.Recipe) error {
	return r.db.GetDB().Create(recipe).Error
}

func (r *recipePgRepository) GetByID(userID, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	err := r.db.GetDB().Preload("Ingredients").
		Where("user_id = ? AND id = ?", userID, id).First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipePgRepository) GetByOwner(userID string) ([]entities.Recipe, error) {
	var recipes []entities.Recipe
	err := r.db.GetDB().Preload("Ingredients").
		Where("user_id = ?", userID).Order("created_at DESC").Find(&recipes).Error
	return recipes, err
}

func (r *recipePgRepository) Update(recipe *entities.Recipe) error {
	recipe.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	tx := r.db.GetDB()
	if err := tx.Omit("Ingredients").Save(recipe).Error; err != nil {
		return err
	}
	return tx.Model(recipe).Association("Ingredients").Replace(recipe.Ingredients)
}

func (r *recipePgRepository) Delete(userID, id string) error {
	return r.db.GetDB().Where("user_id = ? AND id = ?", userID, id).Delete(&entities.Recipe{}).Error
}
