package httpHandler

import (
	"net/http"

	"recipe-server/usecases"

	"github.com/gin-gonic/gin"
)

type IngredientHandler struct {
	useCase *usecases.IngredientUseCase
}

func NewIngredientHandler(useCase *usecases.IngredientUseCase) *IngredientHandler {
	return &IngredientHandler{useCase: useCase}
}

type ingredientRequest struct {
	Name string `json:"name"`
}

// List handles GET /recipe/ingredients, ordered by name descending and
// limited to the caller's own rows.
func (h *IngredientHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	ingredients, err := h.useCase.List(user.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  ingredients,
		"count": len(ingredients),
	})
}

// Create handles POST /recipe/ingredients
func (h *IngredientHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	ingredient, err := h.useCase.Create(user.ID, req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Ingredient created successfully",
		"data":    ingredient,
	})
}

// Get handles GET /recipe/ingredients/:id
func (h *IngredientHandler) Get(c *gin.Context) {
	user := CurrentUser(c)

	ingredient, err := h.useCase.Get(user.ID, c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ingredient})
}

// Update handles PATCH /recipe/ingredients/:id
func (h *IngredientHandler) Update(c *gin.Context) {
	user := CurrentUser(c)

	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	ingredient, err := h.useCase.Update(user.ID, c.Param("id"), req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Ingredient updated successfully",
		"data":    ingredient,
	})
}

// Delete handles DELETE /recipe/ingredients/:id
func (h *IngredientHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)

	if err := h.useCase.Delete(user.ID, c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient deleted successfully"})
}
