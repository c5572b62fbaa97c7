package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/cache"
	"github.com/foodgram/backend/internal/models"
)

const shoppingListTTL = 300 * time.Second

// ShoppingListService aggregates ingredient amounts across every recipe in
// a user's cart. Results are cached per user; a stale list for up to the
// TTL after a cart change is acceptable.
type ShoppingListService struct {
	db    *gorm.DB
	cache cache.Cache
	log   *zap.Logger
}

func NewShoppingListService(db *gorm.DB, c cache.Cache, log *zap.Logger) *ShoppingListService {
	return &ShoppingListService{db: db, cache: c, log: log}
}

type shoppingListRow struct {
	Name  string
	Unit  string
	Total int
}

// Generate returns the tab-delimited shopping list for the user.
func (s *ShoppingListService) Generate(ctx context.Context, userID uuid.UUID) (string, error) {
	key := shoppingListKey(userID)

	if cached, err := s.cache.Get(ctx, key); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("shopping list cache read failed", zap.Error(err))
	}

	var rows []shoppingListRow
	err := s.db.WithContext(ctx).
		Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC").
		Scan(&rows).Error
	if err != nil {
		return "", err
	}

	content := renderShoppingList(rows)

	if err := s.cache.Set(ctx, key, content, shoppingListTTL); err != nil {
		s.log.Warn("shopping list cache write failed", zap.Error(err))
	}

	return content, nil
}

func shoppingListKey(userID uuid.UUID) string {
	return fmt.Sprintf("shopping_list:%s", userID)
}

func renderShoppingList(rows []shoppingListRow) string {
	var b strings.Builder
	b.WriteString("Список покупок\n")
	b.WriteString("Ингредиенты\tКоличество\tЕдиницы измерения\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%s\t%d\t%s\n", row.Name, row.Total, row.Unit)
	}
	return b.String()
}
