package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"catalogs/internal/handlers"
	"catalogs/internal/middleware"
	"catalogs/internal/models"
	"catalogs/internal/repositories"
	"catalogs/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp builds the full Fiber app against an in-memory SQLite database.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory database")

	err = db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{})
	require.NoError(t, err, "failed to auto-migrate database")

	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"), 0)
	categoryService := services.NewCategoryService(categoryRepo, productRepo, nil)
	productService := services.NewProductService(productRepo, categoryRepo, nil)

	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	categoryHandler.RegisterRoutes(protectedRoutes)
	productHandler.RegisterRoutes(protectedRoutes)

	return app
}

// TestMain suppresses request logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	if len(raw) > 0 {
		// List endpoints return arrays; callers decode those themselves.
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// registerAndLogin registers a user and returns its ID and a bearer token.
func registerAndLogin(t *testing.T, app *fiber.App, email, password, fullName string) (userID, token string) {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":     email,
		"password":  password,
		"full_name": fullName,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	userID, _ = body["id"].(string)
	require.NotEmpty(t, userID)

	// Login is form-encoded, with the email in the username field.
	form := fmt.Sprintf("username=%s&password=%s", email, password)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	loginResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)

	var tokenBody map[string]string
	require.NoError(t, json.NewDecoder(loginResp.Body).Decode(&tokenBody))
	loginResp.Body.Close()
	assert.Equal(t, "bearer", tokenBody["token_type"])
	token = tokenBody["access_token"]
	require.NotEmpty(t, token)
	return userID, token
}

func TestFullCatalogScenario(t *testing.T) {
	app := setupApp(t)

	userID, token := registerAndLogin(t, app, "a@x.com", "p1secret", "A")

	// Create a category; ownership is taken from the token, not the body.
	resp, category := doJSON(t, app, http.MethodPost, "/api/v1/categories", token, map[string]string{
		"name": "Books",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, userID, category["owner_id"])
	categoryID := category["id"].(string)

	// Create a product in it.
	resp, product := doJSON(t, app, http.MethodPost, "/api/v1/products", token, map[string]interface{}{
		"name":        "Novel",
		"price":       9.99,
		"category_id": categoryID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, userID, product["owner_id"])
	assert.Equal(t, 9.99, product["price"])
	productID := product["id"].(string)

	// Deleting the category is blocked while the product references it.
	resp, body := doJSON(t, app, http.MethodDelete, "/api/v1/categories/"+categoryID, token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "associated products")

	// Both records are still there.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/categories/"+categoryID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/products/"+productID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Delete the product, then the category.
	resp, body = doJSON(t, app, http.MethodDelete, "/api/v1/products/"+productID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body["message"], "deleted successfully")

	resp, body = doJSON(t, app, http.MethodDelete, "/api/v1/categories/"+categoryID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body["message"], "deleted successfully")

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/categories/"+categoryID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	payload := map[string]string{
		"email":     "dup@example.com",
		"password":  "password123",
		"full_name": "First",
	}
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	payload["full_name"] = "Second"
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "already registered")
}

func TestLoginBadCredentials(t *testing.T) {
	app := setupApp(t)

	registerAndLogin(t, app, "login@example.com", "rightpass", "Login User")

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "login@example.com", "wrongpass"},
		{"unknown email", "ghost@example.com", "rightpass"},
	}
	var messages []interface{}
	for _, tc := range cases {
		form := fmt.Sprintf("username=%s&password=%s", tc.username, tc.password)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, tc.name)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		messages = append(messages, body["message"])
	}
	// Same error shape for both, so emails cannot be probed.
	assert.Equal(t, messages[0], messages[1])
}

func TestOwnershipIsolation(t *testing.T) {
	app := setupApp(t)

	_, tokenA := registerAndLogin(t, app, "isolation-a@x.com", "password1", "A")
	_, tokenB := registerAndLogin(t, app, "isolation-b@x.com", "password2", "B")

	resp, category := doJSON(t, app, http.MethodPost, "/api/v1/categories", tokenA, map[string]string{
		"name": "A's Books",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	categoryID := category["id"].(string)

	resp, product := doJSON(t, app, http.MethodPost, "/api/v1/products", tokenA, map[string]interface{}{
		"name":        "A's Novel",
		"price":       5.00,
		"category_id": categoryID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	productID := product["id"].(string)

	// B cannot see, update or delete A's category or product; every attempt
	// reads as not-found rather than forbidden.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/categories/"+categoryID, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPut, "/api/v1/categories/"+categoryID, tokenB, map[string]string{"name": "Hijacked"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/products/"+productID, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/products/"+productID, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// B cannot attach a product to A's category.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/products", tokenB, map[string]interface{}{
		"name":        "B's Novel",
		"price":       7.00,
		"category_id": categoryID,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// B's listings stay empty; A still sees its own records.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+tokenB)
	listResp, err := app.Test(req, -1)
	require.NoError(t, err)
	var productsOfB []models.Product
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&productsOfB))
	listResp.Body.Close()
	assert.Empty(t, productsOfB)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/products/"+productID, tokenA, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPartialUpdate(t *testing.T) {
	app := setupApp(t)

	_, token := registerAndLogin(t, app, "partial@x.com", "password1", "P")

	resp, category := doJSON(t, app, http.MethodPost, "/api/v1/categories", token, map[string]string{
		"name":        "Books",
		"description": "Paper things",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	categoryID := category["id"].(string)

	// Updating only the name leaves the description untouched.
	resp, updated := doJSON(t, app, http.MethodPut, "/api/v1/categories/"+categoryID, token, map[string]string{
		"name": "Novels",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Novels", updated["name"])
	assert.Equal(t, "Paper things", updated["description"])

	// An empty field set is a no-op.
	resp, unchanged := doJSON(t, app, http.MethodPut, "/api/v1/categories/"+categoryID, token, map[string]string{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Novels", unchanged["name"])
	assert.Equal(t, "Paper things", unchanged["description"])
	assert.Equal(t, category["created_at"], unchanged["created_at"])
}

func TestProductUpdateValidation(t *testing.T) {
	app := setupApp(t)

	_, token := registerAndLogin(t, app, "prodval@x.com", "password1", "P")

	resp, category := doJSON(t, app, http.MethodPost, "/api/v1/categories", token, map[string]string{"name": "Books"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	categoryID := category["id"].(string)

	resp, product := doJSON(t, app, http.MethodPost, "/api/v1/products", token, map[string]interface{}{
		"name":        "Novel",
		"price":       9.99,
		"category_id": categoryID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	productID := product["id"].(string)

	// Non-positive price on create is rejected before any write.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/products", token, map[string]interface{}{
		"name":        "Freebie",
		"price":       0,
		"category_id": categoryID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Moving a product to a nonexistent category fails and changes nothing.
	resp, _ = doJSON(t, app, http.MethodPut, "/api/v1/products/"+productID, token, map[string]interface{}{
		"name":        "Renamed",
		"category_id": "no-such-category",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, fetched := doJSON(t, app, http.MethodGet, "/api/v1/products/"+productID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Novel", fetched["name"])
	assert.Equal(t, categoryID, fetched["category_id"])
}

func TestEndpointsWithoutAuth(t *testing.T) {
	app := setupApp(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/categories"},
		{http.MethodPost, "/api/v1/categories"},
		{http.MethodGet, "/api/v1/products"},
		{http.MethodDelete, "/api/v1/products/some-id"},
	}
	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", p.method, p.path)
		assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
		resp.Body.Close()
	}

	// A syntactically valid but forged token is also rejected.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	req.Header.Set("Authorization", "Bearer not.a.realtoken")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
