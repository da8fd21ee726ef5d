package usecases

import (
	"errors"
	"strings"

	"recipe-server/entities"
	"recipe-server/repositories"
	"recipe-server/services"

	"gorm.io/gorm"
)

type IngredientUseCase struct {
	IngredientRepo repositories.IngredientRepository
	Events         *services.EventBus
}

func NewIngredientUseCase(ingredientRepo repositories.IngredientRepository, events *services.EventBus) *IngredientUseCase {
	return &IngredientUseCase{IngredientRepo: ingredientRepo, Events: events}
}

// List returns the owner's ingredients ordered by name descending.
func (uc *IngredientUseCase) List(userID string) ([]entities.Ingredient, error) {
	return uc.IngredientRepo.GetByOwner(userID)
}

func (uc *IngredientUseCase) Get(userID, id string) (*entities.Ingredient, error) {
	ingredient, err := uc.IngredientRepo.GetByID(userID, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return ingredient, nil
}

func (uc *IngredientUseCase) Create(userID, name string) (*entities.Ingredient, error) {
	name = strings.TrimSpace(name)

	verr := newValidationError()
	if name == "" {
		verr.add("name", "this field is required")
		return nil, verr
	}
	if _, err := uc.IngredientRepo.GetByName(userID, name); err == nil {
		verr.add("name", "you already have an ingredient with this name")
		return nil, verr
	}

	ingredient := &entities.Ingredient{UserID: userID, Name: name}
	if err := uc.IngredientRepo.Create(ingredient); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			verr.add("name", "you already have an ingredient with this name")
			return nil, verr
		}
		return nil, err
	}
	uc.Events.Publish(services.Event{UserID: userID, Type: "created", Record: "ingredient", Data: ingredient})
	return ingredient, nil
}

func (uc *IngredientUseCase) Update(userID, id, name string) (*entities.Ingredient, error) {
	ingredient, err := uc.IngredientRepo.GetByID(userID, id)
	if err != nil {
		return nil, ErrNotFound
	}

	name = strings.TrimSpace(name)
	verr := newValidationError()
	if name == "" {
		verr.add("name", "this field is required")
		return nil, verr
	}
	if other, err := uc.IngredientRepo.GetByName(userID, name); err == nil && other.ID != ingredient.ID {
		verr.add("name", "you already have an ingredient with this name")
		return nil, verr
	}

	ingredient.Name = name
	if err := uc.IngredientRepo.Update(ingredient); err != nil {
		return nil, err
	}
	uc.Events.Publish(services.Event{UserID: userID, Type: "updated", Record: "ingredient", Data: ingredient})
	return ingredient, nil
}

func (uc *IngredientUseCase) Delete(userID, id string) error {
	ingredient, err := uc.IngredientRepo.GetByID(userID, id)
	if err != nil {
		return ErrNotFound
	}
	if err := uc.IngredientRepo.Delete(userID, id); err != nil {
		return err
	}
	uc.Events.Publish(services.Event{UserID: userID, Type: "deleted", Record: "ingredient", Data: ingredient})
	return nil
}
