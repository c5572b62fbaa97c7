package api_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/server"
	"github.com/foodgram/backend/internal/service"
)

// testApp is a fully wired application over an in-memory database. Redis is
// absent so the server falls back to the in-memory cache and disables rate
// limiting.
type testApp struct {
	engine *gin.Engine
	db     *gorm.DB
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mediaDir := t.TempDir()
	cfg := &config.Config{
		ServerHost: "localhost",
		ServerPort: "8080",
		BaseURL:    "http://localhost:8080",
		JWTSecret:  "test-secret",
		ImageStore: "local",
		MediaDir:   mediaDir,
	}

	store, err := service.NewLocalImageStore(mediaDir, cfg.BaseURL)
	require.NoError(t, err)

	srv := server.New(cfg, db, nil, store, zap.NewNop())
	return &testApp{engine: srv.Router(), db: db}
}

func (app *testApp) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	return w
}

// registerUser creates an account through the API and returns its token.
func (app *testApp) registerUser(t *testing.T, username string) string {
	t.Helper()
	w := app.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":      username + "@example.com",
		"username":   username,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "str0ng-password",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (app *testApp) createIngredient(t *testing.T, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, app.db.Create(ingredient).Error)
	return ingredient
}

func testImagePayload() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake image bytes"))
}

func (app *testApp) createRecipe(t *testing.T, token, name string, ingredients []gin.H) map[string]interface{} {
	t.Helper()
	w := app.request(t, http.MethodPost, "/api/recipes", token, gin.H{
		"name":         name,
		"text":         "test description",
		"image":        testImagePayload(),
		"cooking_time": 10,
		"ingredients":  ingredients,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func ingredientAmount(ingredient *models.Ingredient, amount int) gin.H {
	return gin.H{"id": ingredient.ID.String(), "amount": amount}
}

func recipeID(t *testing.T, recipe map[string]interface{}) string {
	t.Helper()
	id, ok := recipe["id"].(string)
	require.True(t, ok, "recipe response has no id: %v", recipe)
	return id
}

func recipePath(t *testing.T, recipe map[string]interface{}, suffix string) string {
	return fmt.Sprintf("/api/recipes/%s%s", recipeID(t, recipe), suffix)
}
