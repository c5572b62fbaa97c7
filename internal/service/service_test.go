package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestRecipeService(t *testing.T, db *gorm.DB) *RecipeService {
	t.Helper()
	store, err := NewLocalImageStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)
	return NewRecipeService(db, store, zap.NewNop())
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

func testImageData() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake image bytes"))
}

func createTestRecipe(t *testing.T, svc *RecipeService, author *models.User, name string, items []types.IngredientAmount) *models.Recipe {
	t.Helper()
	recipe, err := svc.Create(context.Background(), author.ID, &types.CreateRecipeRequest{
		Name:        name,
		Text:        "test description",
		Image:       testImageData(),
		CookingTime: 5,
		Ingredients: items,
	})
	require.NoError(t, err)
	return recipe
}
