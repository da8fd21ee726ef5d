package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-server/repositories"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	app := gin.New()
	Setup(app, Deps{
		Users:       repositories.NewUserMemoryRepository(),
		Tokens:      repositories.NewTokenMemoryRepository(),
		Ingredients: repositories.NewIngredientMemoryRepository(),
		Recipes:     repositories.NewRecipeMemoryRepository(),
		TokenTTL:    time.Hour,
	})
	return app
}

func doJSON(t *testing.T, app *gin.Engine, method, path, token string, payload any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	decoded := map[string]any{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

func signup(t *testing.T, app *gin.Engine, email, password, name string) {
	t.Helper()
	w, _ := doJSON(t, app, http.MethodPost, "/user/create", "", gin.H{
		"email": email, "password": password, "name": name,
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func obtainToken(t *testing.T, app *gin.Engine, email, password string) string {
	t.Helper()
	w, body := doJSON(t, app, http.MethodPost, "/user/token", "", gin.H{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func listData(t *testing.T, app *gin.Engine, path, token string) []any {
	t.Helper()
	w, body := doJSON(t, app, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data, _ := body["data"].([]any)
	return data
}

func TestHealth(t *testing.T) {
	app := newTestEngine()
	w, body := doJSON(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", body["status"])
}

func TestCreateUser(t *testing.T) {
	app := newTestEngine()

	w, body := doJSON(t, app, http.MethodPost, "/user/create", "", gin.H{
		"email": "test@dev.com", "password": "testpass123", "name": "Test Name",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "test@dev.com", body["email"])
	assert.Equal(t, "Test Name", body["name"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	app := newTestEngine()
	signup(t, app, "test@dev.com", "testpass123", "Test")

	w, body := doJSON(t, app, http.MethodPost, "/user/create", "", gin.H{
		"email": "test@dev.com", "password": "testpass123", "name": "Test",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body, "errors")
}

func TestCreateUserShortPassword(t *testing.T) {
	app := newTestEngine()

	w, body := doJSON(t, app, http.MethodPost, "/user/create", "", gin.H{
		"email": "test@dev.com", "password": "123", "name": "Test",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errors, ok := body["errors"].(map[string]any)
	require.True(t, ok, "expected a field-error map")
	assert.Contains(t, errors, "password")

	// no record was persisted: token issuance for that email must fail
	w, _ = doJSON(t, app, http.MethodPost, "/user/token", "", gin.H{
		"email": "test@dev.com", "password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTokenEndpoint(t *testing.T) {
	app := newTestEngine()
	signup(t, app, "test@dev.com", "testpass123", "Test")

	w, body := doJSON(t, app, http.MethodPost, "/user/token", "", gin.H{
		"email": "test@dev.com", "password": "testpass123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body["token"])

	// wrong password: 400, never 401, and no token field
	w, body = doJSON(t, app, http.MethodPost, "/user/token", "", gin.H{
		"email": "test@dev.com", "password": "wrongpass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, body, "token")

	// unknown email behaves the same
	w, body = doJSON(t, app, http.MethodPost, "/user/token", "", gin.H{
		"email": "nobody@dev.com", "password": "testpass123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, body, "token")
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	app := newTestEngine()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/user/me"},
		{http.MethodPatch, "/user/me"},
		{http.MethodGet, "/recipe/ingredients"},
		{http.MethodGet, "/recipe/recipes"},
		{http.MethodPost, "/recipe/recipes"},
	}
	for _, p := range paths {
		w, body := doJSON(t, app, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
		assert.NotContains(t, body, "data", "%s %s must not return data", p.method, p.path)
	}

	// a made-up token is just as unauthorized
	w, _ := doJSON(t, app, http.MethodGet, "/user/me", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	app := newTestEngine()
	signup(t, app, "test@dev.com", "testpass123", "Test Name")
	token := obtainToken(t, app, "test@dev.com", "testpass123")

	w, body := doJSON(t, app, http.MethodGet, "/user/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Test Name", body["name"])
	assert.Equal(t, "test@dev.com", body["email"])
	assert.NotContains(t, body, "password")
}

func TestPostMeNotAllowed(t *testing.T) {
	app := newTestEngine()
	signup(t, app, "test@dev.com", "testpass123", "Test")
	token := obtainToken(t, app, "test@dev.com", "testpass123")

	w, _ := doJSON(t, app, http.MethodPost, "/user/me", token, gin.H{"name": "x"})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestPatchMe(t *testing.T) {
	app := newTestEngine()
	signup(t, app, "test@dev.com", "testpass123", "Old Name")
	token := obtainToken(t, app, "test@dev.com", "testpass123")

	w, body := doJSON(t, app, http.MethodPatch, "/user/me", token, gin.H{
		"name": "new name", "password": "new_test_password",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "new name", body["name"])
	assert.Equal(t, "test@dev.com", body["email"], "email stays unchanged")
	assert.NotContains(t, body, "password")

	// the update persisted
	_, body = doJSON(t, app, http.MethodGet, "/user/me", token, nil)
	assert.Equal(t, "new name", body["name"])

	// and the new password is live
	obtainToken(t, app, "test@dev.com", "new_test_password")
}

func TestIngredientListOrderingAndOwnership(t *testing.T) {
	app := newTestEngine()
	signup(t, app, "a@x.com", "longenough1", "A")
	signup(t, app, "b@x.com", "longenough2", "B")
	tokenA := obtainToken(t, app, "a@x.com", "longenough1")
	tokenB := obtainToken(t, app, "b@x.com", "longenough2")

	for _, name := range []string{"Kale", "Salt"} {
		w, _ := doJSON(t, app, http.MethodPost, "/recipe/ingredients", tokenA, gin.H{"name": name})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w, _ := doJSON(t, app, http.MethodPost, "/recipe/ingredients", tokenB, gin.H{"name": "Pepper"})
	require.Equal(t, http.StatusCreated, w.Code)

	data := listData(t, app, "/recipe/ingredients", tokenA)
	require.Len(t, data, 2, "B's rows must not leak into A's list")

	first, _ := data[0].(map[string]any)
	second, _ := data[1].(map[string]any)
	assert.Equal(t, "Salt", first["name"], "descending name order")
	assert.Equal(t, "Kale", second["name"])

	dataB := listData(t, app, "/recipe/ingredients", tokenB)
	require.Len(t, dataB, 1)
	onlyB, _ := dataB[0].(map[string]any)
	assert.Equal(t, "Pepper", onlyB["name"])
}

func TestRecipeOwnership(t *testing.T) {
	app := newTestEngine()
	signup(t, app, "a@x.com", "longenough1", "A")
	signup(t, app, "b@x.com", "longenough2", "B")
	tokenA := obtainToken(t, app, "a@x.com", "longenough1")
	tokenB := obtainToken(t, app, "b@x.com", "longenough2")

	w, body := doJSON(t, app, http.MethodPost, "/recipe/recipes", tokenA, gin.H{
		"title": "sample recipe", "time_minutes": 10, "price": 5.00,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created, _ := body["data"].(map[string]any)
	recipeID, _ := created["id"].(string)
	require.NotEmpty(t, recipeID)

	assert.Len(t, listData(t, app, "/recipe/recipes", tokenA), 1)
	assert.Empty(t, listData(t, app, "/recipe/recipes", tokenB))

	// another user's row is indistinguishable from a missing one
	w, _ = doJSON(t, app, http.MethodGet, "/recipe/recipes/"+recipeID, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = doJSON(t, app, http.MethodPatch, "/recipe/recipes/"+recipeID, tokenB, gin.H{"title": "hijack"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = doJSON(t, app, http.MethodDelete, "/recipe/recipes/"+recipeID, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// the owner still sees the original
	w, body = doJSON(t, app, http.MethodGet, "/recipe/recipes/"+recipeID, tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got, _ := body["data"].(map[string]any)
	assert.Equal(t, "sample recipe", got["title"])
}

func TestRecipeValidation(t *testing.T) {
	app := newTestEngine()
	signup(t, app, "a@x.com", "longenough1", "A")
	token := obtainToken(t, app, "a@x.com", "longenough1")

	w, body := doJSON(t, app, http.MethodPost, "/recipe/recipes", token, gin.H{
		"time_minutes": -5, "price": -1.00,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errors, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errors, "title")
	assert.Contains(t, errors, "time_minutes")
	assert.Contains(t, errors, "price")
}

func TestTokenRotationOverHTTP(t *testing.T) {
	app := newTestEngine()
	signup(t, app, "a@x.com", "longenough1", "A")

	first := obtainToken(t, app, "a@x.com", "longenough1")
	second := obtainToken(t, app, "a@x.com", "longenough1")
	require.NotEqual(t, first, second)

	w, _ := doJSON(t, app, http.MethodGet, "/user/me", first, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "replaced token must be dead")

	w, _ = doJSON(t, app, http.MethodGet, "/user/me", second, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// Full signup-to-listing walk mirroring everyday client usage.
func TestCatalogFlow(t *testing.T) {
	app := newTestEngine()

	w, _ := doJSON(t, app, http.MethodPost, "/user/create", "", gin.H{
		"email": "a@x.com", "password": "longenough1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	token := obtainToken(t, app, "a@x.com", "longenough1")

	for _, name := range []string{"Kale", "Salt"} {
		w, _ := doJSON(t, app, http.MethodPost, "/recipe/ingredients", token, gin.H{"name": name})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	data := listData(t, app, "/recipe/ingredients", token)
	require.Len(t, data, 2)
	first, _ := data[0].(map[string]any)
	second, _ := data[1].(map[string]any)
	assert.Equal(t, "Salt", first["name"])
	assert.Equal(t, "Kale", second["name"])
}
