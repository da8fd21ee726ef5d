package repositories

import (
	"sort"
	"sync"
	"time"

	"recipe-server/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory implementations of the repository interfaces. They honor the
// same constraints the postgres schema enforces (unique emails, unique
// ingredient names per owner) and return the same gorm sentinel errors,
// so usecases and handlers behave identically over either backend.

type userMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]entities.User // id -> user
}

func NewUserMemoryRepository() UserRepository {
	return &userMemoryRepository{users: make(map[string]entities.User)}
}

func (r *userMemoryRepository) Create(user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *userMemoryRepository) GetByID(id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.users[id]; ok {
		return &user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *userMemoryRepository) GetByEmail(email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *userMemoryRepository) Update(user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	user.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	r.users[user.ID] = *user
	return nil
}

type tokenMemoryRepository struct {
	mu     sync.Mutex
	tokens map[string]entities.Token // key -> token
}

func NewTokenMemoryRepository() TokenRepository {
	return &tokenMemoryRepository{tokens: make(map[string]entities.Token)}
}

func (r *tokenMemoryRepository) Replace(token *entities.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, existing := range r.tokens {
		if existing.UserID == token.UserID {
			delete(r.tokens, key)
		}
	}
	token.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	r.tokens[token.Key] = *token
	return nil
}

func (r *tokenMemoryRepository) GetByKey(key string) (*entities.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token, ok := r.tokens[key]; ok {
		return &token, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *tokenMemoryRepository) DeleteByUserID(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, token := range r.tokens {
		if token.UserID == userID {
			delete(r.tokens, key)
		}
	}
	return nil
}

type ingredientMemoryRepository struct {
	mu          sync.RWMutex
	ingredients map[string]entities.Ingredient // id -> ingredient
}

func NewIngredientMemoryRepository() IngredientRepository {
	return &ingredientMemoryRepository{ingredients: make(map[string]entities.Ingredient)}
}

func (r *ingredientMemoryRepository) Create(ingredient *entities.Ingredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.ingredients {
		if existing.UserID == ingredient.UserID && existing.Name == ingredient.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if ingredient.ID == "" {
		ingredient.ID = uuid.New().String()
	}
	ingredient.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	ingredient.UpdatedAt = ingredient.CreatedAt
	r.ingredients[ingredient.ID] = *ingredient
	return nil
}

func (r *ingredientMemoryRepository) GetByID(userID, id string) (*entities.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if ingredient, ok := r.ingredients[id]; ok && ingredient.UserID == userID {
		return &ingredient, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *ingredientMemoryRepository) GetByName(userID, name string) (*entities.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ingredient := range r.ingredients {
		if ingredient.UserID == userID && ingredient.Name == name {
			i := ingredient
			return &i, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *ingredientMemoryRepository) GetByIDs(userID string, ids []string) ([]entities.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	found := make([]entities.Ingredient, 0, len(ids))
	for _, id := range ids {
		if ingredient, ok := r.ingredients[id]; ok && ingredient.UserID == userID {
			found = append(found, ingredient)
		}
	}
	return found, nil
}

func (r *ingredientMemoryRepository) GetByOwner(userID string) ([]entities.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var owned []entities.Ingredient
	for _, ingredient := range r.ingredients {
		if ingredient.UserID == userID {
			owned = append(owned, ingredient)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].Name > owned[j].Name })
	return owned, nil
}

func (r *ingredientMemoryRepository) Update(ingredient *entities.Ingredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ingredients[ingredient.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	ingredient.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	r.ingredients[ingredient.ID] = *ingredient
	return nil
}

func (r *ingredientMemoryRepository) Delete(userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ingredient, ok := r.ingredients[id]; ok && ingredient.UserID == userID {
		delete(r.ingredients, id)
	}
	return nil
}

type recipeMemoryRepository struct {
	mu      sync.RWMutex
	recipes map[string]entities.Recipe // id -> recipe
	order   []string                   // insertion order, newest last
}

func NewRecipeMemoryRepository() RecipeRepository {
	return &recipeMemoryRepository{recipes: make(map[string]entities.Recipe)}
}

func (r *recipeMemoryRepository) Create(recipe *entities.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	recipe.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	recipe.UpdatedAt = recipe.CreatedAt
	r.recipes[recipe.ID] = *recipe
	r.order = append(r.order, recipe.ID)
	return nil
}

func (r *recipeMemoryRepository) GetByID(userID, id string) (*entities.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if recipe, ok := r.recipes[id]; ok && recipe.UserID == userID {
		return &recipe, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *recipeMemoryRepository) GetByOwner(userID string) ([]entities.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var owned []entities.Recipe
	// newest first, matching the postgres ordering
	for i := len(r.order) - 1; i >= 0; i-- {
		if recipe, ok := r.recipes[r.order[i]]; ok && recipe.UserID == userID {
			owned = append(owned, recipe)
		}
	}
	return owned, nil
}

func (r *recipeMemoryRepository) Update(recipe *entities.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recipes[recipe.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	recipe.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	r.recipes[recipe.ID] = *recipe
	return nil
}

func (r *recipeMemoryRepository) Delete(userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if recipe, ok := r.recipes[id]; ok && recipe.UserID == userID {
		delete(r.recipes, id)
	}
	return nil
}
