package usecases

import (
	"strings"

	"recipe-server/entities"
	"recipe-server/repositories"
	"recipe-server/services"
)

type RecipeUseCase struct {
	RecipeRepo     repositories.RecipeRepository
	IngredientRepo repositories.IngredientRepository
	Events         *services.EventBus
}

func NewRecipeUseCase(recipeRepo repositories.RecipeRepository, ingredientRepo repositories.IngredientRepository, events *services.EventBus) *RecipeUseCase {
	return &RecipeUseCase{RecipeRepo: recipeRepo, IngredientRepo: ingredientRepo, Events: events}
}

// RecipeInput carries the writable recipe fields. Nil pointers on update
// mean "leave unchanged".
type RecipeInput struct {
	Title         *string
	TimeMinutes   *int
	Price         *float64
	IngredientIDs *[]string
}

func (uc *RecipeUseCase) List(userID string) ([]entities.Recipe, error) {
	return uc.RecipeRepo.GetByOwner(userID)
}

func (uc *RecipeUseCase) Get(userID, id string) (*entities.Recipe, error) {
	recipe, err := uc.RecipeRepo.GetByID(userID, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return recipe, nil
}

func (uc *RecipeUseCase) Create(userID string, input RecipeInput) (*entities.Recipe, error) {
	recipe := &entities.Recipe{UserID: userID}

	verr := newValidationError()
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
		verr.add("title", "this field is required")
	} else {
		recipe.Title = strings.TrimSpace(*input.Title)
	}
	if input.TimeMinutes != nil {
		if *input.TimeMinutes < 0 {
			verr.add("time_minutes", "must be zero or greater")
		} else {
			recipe.TimeMinutes = *input.TimeMinutes
		}
	}
	if input.Price != nil {
		if *input.Price < 0 {
			verr.add("price", "must be zero or greater")
		} else {
			recipe.Price = *input.Price
		}
	}

	if input.IngredientIDs != nil && len(*input.IngredientIDs) > 0 {
		linked, err := uc.resolveIngredients(userID, *input.IngredientIDs, verr)
		if err != nil {
			return nil, err
		}
		recipe.Ingredients = linked
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if err := uc.RecipeRepo.Create(recipe); err != nil {
		return nil, err
	}
	uc.Events.Publish(services.Event{UserID: userID, Type: "created", Record: "recipe", Data: recipe})
	return recipe, nil
}

func (uc *RecipeUseCase) Update(userID, id string, input RecipeInput) (*entities.Recipe, error) {
	recipe, err := uc.RecipeRepo.GetByID(userID, id)
	if err != nil {
		return nil, ErrNotFound
	}

	verr := newValidationError()
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			verr.add("title", "this field may not be blank")
		} else {
			recipe.Title = strings.TrimSpace(*input.Title)
		}
	}
	if input.TimeMinutes != nil {
		if *input.TimeMinutes < 0 {
			verr.add("time_minutes", "must be zero or greater")
		} else {
			recipe.TimeMinutes = *input.TimeMinutes
		}
	}
	if input.Price != nil {
		if *input.Price < 0 {
			verr.add("price", "must be zero or greater")
		} else {
			recipe.Price = *input.Price
		}
	}
	if input.IngredientIDs != nil {
		linked, err := uc.resolveIngredients(userID, *input.IngredientIDs, verr)
		if err != nil {
			return nil, err
		}
		recipe.Ingredients = linked
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if err := uc.RecipeRepo.Update(recipe); err != nil {
		return nil, err
	}
	uc.Events.Publish(services.Event{UserID: userID, Type: "updated", Record: "recipe", Data: recipe})
	return recipe, nil
}

func (uc *RecipeUseCase) Delete(userID, id string) error {
	recipe, err := uc.RecipeRepo.GetByID(userID, id)
	if err != nil {
		return ErrNotFound
	}
	if err := uc.RecipeRepo.Delete(userID, id); err != nil {
		return err
	}
	uc.Events.Publish(services.Event{UserID: userID, Type: "deleted", Record: "recipe", Data: recipe})
	return nil
}

// resolveIngredients loads the owner's ingredients for the given ids.
// Ids that do not resolve within the owner's rows are a validation
// failure, so recipes can never link another user's ingredients.
func (uc *RecipeUseCase) resolveIngredients(userID string, ids []string, verr *ValidationError) ([]entities.Ingredient, error) {
	if len(ids) == 0 {
		return []entities.Ingredient{}, nil
	}
	linked, err := uc.IngredientRepo.GetByIDs(userID, ids)
	if err != nil {
		return nil, err
	}
	if len(linked) != len(ids) {
		verr.add("ingredients", "one or more ingredient ids are unknown")
	}
	return linked, nil
}
