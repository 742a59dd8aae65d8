package testhelpers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipenest/backend/config"
	"github.com/pageza/recipenest/backend/internal/models"
)

// TestPassword is the plain-text password of chefs made by CreateTestChef.
const TestPassword = "password123"

// AuthConfig returns token parameters for tests.
func AuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Secret:   "test-jwt-secret",
		Issuer:   "RecipeNestAPI",
		Audience: "RecipeNestFrontend",
		TokenTTL: time.Hour,
	}
}

// CreateTestChef inserts a chef whose password is TestPassword.
func CreateTestChef(t *testing.T, db *gorm.DB, email string) *models.Chef {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	chef := &models.Chef{
		Name:         "Test",
		Surname:      "Chef",
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := db.Create(chef).Error; err != nil {
		t.Fatalf("failed to create test chef: %v", err)
	}
	return chef
}

// CreateTestRecipe inserts a recipe owned by chefID.
func CreateTestRecipe(t *testing.T, db *gorm.DB, chefID uint, title string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{Title: title, Description: title + " description", ChefID: chefID}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return recipe
}

// PerformRequest performs an HTTP request for testing
func PerformRequest(router http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// DecodeJSON unmarshals a recorded response body into v.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func init() {
	gin.SetMode(gin.TestMode)
}
