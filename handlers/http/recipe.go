package httpHandler

import (
	"net/http"

	"recipe-server/usecases"

	"github.com/gin-gonic/gin"
)

type RecipeHandler struct {
	useCase *usecases.RecipeUseCase
}

func NewRecipeHandler(useCase *usecases.RecipeUseCase) *RecipeHandler {
	return &RecipeHandler{useCase: useCase}
}

// recipeRequest uses pointers so PATCH can tell "absent" from "zero".
type recipeRequest struct {
	Title       *string   `json:"title"`
	TimeMinutes *int      `json:"time_minutes"`
	Price       *float64  `json:"price"`
	Ingredients *[]string `json:"ingredients"`
}

func (r recipeRequest) toInput() usecases.RecipeInput {
	return usecases.RecipeInput{
		Title:         r.Title,
		TimeMinutes:   r.TimeMinutes,
		Price:         r.Price,
		IngredientIDs: r.Ingredients,
	}
}

// List handles GET /recipe/recipes, filtered to the caller's own rows.
func (h *RecipeHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	recipes, err := h.useCase.List(user.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  recipes,
		"count": len(recipes),
	})
}

// Create handles POST /recipe/recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	recipe, err := h.useCase.Create(user.ID, req.toInput())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Recipe created successfully",
		"data":    recipe,
	})
}

// Get handles GET /recipe/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	user := CurrentUser(c)

	recipe, err := h.useCase.Get(user.ID, c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": recipe})
}

// Update handles PATCH /recipe/recipes/:id
func (h *RecipeHandler) Update(c *gin.Context) {
	user := CurrentUser(c)

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	recipe, err := h.useCase.Update(user.ID, c.Param("id"), req.toInput())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe updated successfully",
		"data":    recipe,
	})
}

// Delete handles DELETE /recipe/recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)

	if err := h.useCase.Delete(user.ID, c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}
