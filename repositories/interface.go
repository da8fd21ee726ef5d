package repositories

import "recipe-server/entities"

type UserRepository interface {
	Create(user *entities.User) error
	GetByID(id string) (*entities.User, error)
	GetByEmail(email string) (*entities.User, error)
	Update(user *entities.User) error
}

type TokenRepository interface {
	// Replace removes every token held by the user before storing the new
	// one, so at most one key resolves per user at any time.
	Replace(token *entities.Token) error
	GetByKey(key string) (*entities.Token, error)
	DeleteByUserID(userID string) error
}

// Ingredient and Recipe lookups always carry the owner's user id; there is
// no unscoped accessor, so a handler cannot forget the ownership filter.

type IngredientRepository interface {
	Create(ingredient *entities.Ingredient) error
	GetByID(userID, id string) (*entities.Ingredient, error)
	GetByName(userID, name string) (*entities.Ingredient, error)
	GetByIDs(userID string, ids []string) ([]entities.Ingredient, error)
	GetByOwner(userID string) ([]entities.Ingredient, error)
	Update(ingredient *entities.Ingredient) error
	Delete(userID, id string) error
}

type RecipeRepository interface {
	Create(recipe *entities.Recipe) error
	GetByID(userID, id string) (*entities.Recipe, error)
	GetByOwner(userID string) ([]entities.Recipe, error)
	Update(recipe *entities.Recipe) error
	Delete(userID, id string) error
}
