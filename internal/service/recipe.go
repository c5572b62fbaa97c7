package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// RecipeService owns the recipe aggregate: the recipe row plus its full set
// of ingredient line items, written together in one transaction.
type RecipeService struct {
	db    *gorm.DB
	store ImageStore
	log   *zap.Logger
}

func NewRecipeService(db *gorm.DB, store ImageStore, log *zap.Logger) *RecipeService {
	return &RecipeService{db: db, store: store, log: log}
}

// RecipeFilter narrows List results. FavoritedBy/InCartOf are only set for
// authenticated callers.
type RecipeFilter struct {
	AuthorID    *uuid.UUID
	FavoritedBy *uuid.UUID
	InCartOf    *uuid.UUID
	Limit       int
	Offset      int
}

func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	if req.CookingTime < 1 {
		return nil, ErrInvalidCookingTime
	}
	if err := s.validateIngredients(ctx, req.Ingredients); err != nil {
		return nil, err
	}

	img, err := DecodeBase64Image(req.Image)
	if err != nil {
		return nil, err
	}
	imageURL, err := s.store.Save(ctx, img)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Name:        req.Name,
		AuthorID:    authorID,
		Text:        req.Text,
		ImageURL:    imageURL,
		CookingTime: req.CookingTime,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return tx.Create(lineItems(recipe.ID, req.Ingredients)).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("recipe created",
		zap.String("recipe_id", recipe.ID.String()),
		zap.String("author_id", authorID.String()))

	return s.Get(ctx, recipe.ID)
}

// Update applies a partial update. When ingredients are present the prior
// line-item set is deleted and rewritten in full inside the same
// transaction; an interrupted replace must never leave a partial set.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, ErrForbidden
	}

	if req.CookingTime != nil && *req.CookingTime < 1 {
		return nil, ErrInvalidCookingTime
	}
	if req.Ingredients != nil {
		if err := s.validateIngredients(ctx, *req.Ingredients); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Text != nil {
		recipe.Text = *req.Text
	}
	if req.CookingTime != nil {
		recipe.CookingTime = *req.CookingTime
	}
	if req.Image != nil {
		img, err := DecodeBase64Image(*req.Image)
		if err != nil {
			return nil, err
		}
		imageURL, err := s.store.Save(ctx, img)
		if err != nil {
			return nil, err
		}
		recipe.ImageURL = imageURL
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(map[string]interface{}{
			"name":         recipe.Name,
			"text":         recipe.Text,
			"image_url":    recipe.ImageURL,
			"cooking_time": recipe.CookingTime,
		}).Error; err != nil {
			return err
		}
		if req.Ingredients == nil {
			return nil
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Create(lineItems(recipe.ID, *req.Ingredients)).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, recipeID)
}

func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uuid.UUID) error {
	recipe, err := s.Get(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != userID {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.RecipeIngredient{},
			&models.Favorite{},
			&models.ShoppingCart{},
			&models.RecipeShortLink{},
		} {
			if err := tx.Where("recipe_id = ?", recipeID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Recipe{}, "id = ?", recipeID).Error
	})
}

func (s *RecipeService) Get(ctx context.Context, recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeService) List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		Order("recipes.created_at DESC")

	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if filter.FavoritedBy != nil {
		query = query.Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", *filter.FavoritedBy)
	}
	if filter.InCartOf != nil {
		query = query.Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id").
			Where("shopping_carts.user_id = ?", *filter.InCartOf)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Flags returns is_favorited / is_in_shopping_cart for one recipe as seen
// by the given caller. Both are false for anonymous callers.
func (s *RecipeService) Flags(ctx context.Context, userID *uuid.UUID, recipeID uuid.UUID) (favorited, inCart bool, err error) {
	if userID == nil {
		return false, false, nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", *userID, recipeID).
		Count(&count).Error; err != nil {
		return false, false, err
	}
	favorited = count > 0

	if err := s.db.WithContext(ctx).Model(&models.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ?", *userID, recipeID).
		Count(&count).Error; err != nil {
		return false, false, err
	}
	return favorited, count > 0, nil
}

// validateIngredients enforces the aggregate invariants: a non-empty list,
// no repeated ingredient, every id resolving to reference data, and
// positive amounts.
func (s *RecipeService) validateIngredients(ctx context.Context, items []types.IngredientAmount) error {
	if len(items) == 0 {
		return ErrNoIngredients
	}

	seen := make(map[uuid.UUID]bool, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.Amount < 1 {
			return ErrInvalidAmount
		}
		if seen[item.ID] {
			return ErrDuplicateIngredient
		}
		seen[item.ID] = true
		ids = append(ids, item.ID)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("id IN ?", ids).
		Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return ErrIngredientNotFound
	}
	return nil
}

func lineItems(recipeID uuid.UUID, items []types.IngredientAmount) []models.RecipeIngredient {
	rows := make([]models.RecipeIngredient, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}
	return rows
}
