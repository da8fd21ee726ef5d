package repositories

import (
	"recipe-server/db"
	"recipe-server/entities"
	"time"
)

type ingredientPgRepository struct {
	db db.Database
}

func NewIngredientPgRepository(database db.Database) IngredientRepository {
	return &ingredientPgRepository{db: database}
}

func (r *ingredientPgRepository) Create(ingredient *entities.Ingredient) error {
	return r.db.GetDB().Create(ingredient).Error
}

func (r *ingredientPgRepository) GetByID(userID, id string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	err := r.db.GetDB().Where("user_id = ? AND id = ?", userID, id).First(&ingredient).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientPgRepository) GetByName(userID, name string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	err := r.db.GetDB().Where("user_id = ? AND name = ?", userID, name).First(&ingredient).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientPgRepository) GetByIDs(userID string, ids []string) ([]entities.Ingredient, error) {
	var ingredients []entities.Ingredient
	err := r.db.GetDB().Where("user_id = ? AND id IN ?", userID, ids).Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientPgRepository) GetByOwner(userID string) ([]entities.Ingredient, error) {
	var ingredients []entities.Ingredient
	err := r.db.GetDB().Where("user_id = ?", userID).Order("name DESC").Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientPgRepository) Update(ingredient *entities.Ingredient) error {
	ingredient.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return r.db.GetDB().Save(ingredient).Error
}

func (r *ingredientPgRepository) Delete(userID, id string) error {
	return r.db.GetDB().Where("user_id = ? AND id = ?", userID, id).Delete(&entities.Ingredient{}).Error
}
