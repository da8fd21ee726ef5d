package httpHandler

import (
	"net/http"

	"recipe-server/entities"
	"recipe-server/usecases"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users  *usecases.UserUseCase
	tokens *usecases.TokenUseCase
}

func NewUserHandler(users *usecases.UserUseCase, tokens *usecases.TokenUseCase) *UserHandler {
	return &UserHandler{users: users, tokens: tokens}
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type updateMeRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the public shape of an account. The password hash never
// appears here, on success or on error.
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func publicUser(user *entities.User) userResponse {
	return userResponse{ID: user.ID, Email: user.Email, Name: user.Name}
}

// Create handles POST /user/create
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	user, err := h.users.Register(req.Email, req.Password, req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, publicUser(user))
}

// Token handles POST /user/token. Bad credentials are a 400 here, never
// a 401; the caller is not presenting a token yet.
func (h *UserHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	user, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	key, err := h.tokens.Issue(user.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": key})
}

// Me handles GET /user/me
func (h *UserHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"name": user.Name, "email": user.Email})
}

// UpdateMe handles PATCH /user/me. The email field is not read: email is
// immutable after signup.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user := CurrentUser(c)

	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	updated, err := h.users.UpdateProfile(user.ID, req.Name, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": updated.Name, "email": updated.Email})
}

// MeNotAllowed answers verbs /user/me does not support.
func (h *UserHandler) MeNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
}
