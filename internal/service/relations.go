package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// RelationService implements the toggle relationships: favorites, shopping
// cart entries and author subscriptions. Adds conflict on repeat, removes
// fail when the pair is absent.
type RelationService struct {
	db *gorm.DB
}

func NewRelationService(db *gorm.DB) *RelationService {
	return &RelationService{db: db}
}

func (s *RelationService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.addPair(ctx, &models.Favorite{UserID: userID, RecipeID: recipeID},
		"user_id = ? AND recipe_id = ?", userID, recipeID); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *RelationService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := s.getRecipe(ctx, recipeID); err != nil {
		return err
	}
	return s.removePair(ctx, &models.Favorite{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
}

func (s *RelationService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.addPair(ctx, &models.ShoppingCart{UserID: userID, RecipeID: recipeID},
		"user_id = ? AND recipe_id = ?", userID, recipeID); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *RelationService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := s.getRecipe(ctx, recipeID); err != nil {
		return err
	}
	return s.removePair(ctx, &models.ShoppingCart{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
}

// Follow subscribes the user to the author. Self-follow is rejected before
// any row is written.
func (s *RelationService) Follow(ctx context.Context, userID, authorID uuid.UUID) (*models.User, error) {
	if userID == authorID {
		return nil, ErrSelfFollow
	}

	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.addPair(ctx, &models.Follow{UserID: userID, AuthorID: authorID},
		"user_id = ? AND author_id = ?", userID, authorID); err != nil {
		return nil, err
	}
	return &author, nil
}

func (s *RelationService) Unfollow(ctx context.Context, userID, authorID uuid.UUID) error {
	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.removePair(ctx, &models.Follow{}, "user_id = ? AND author_id = ?", userID, authorID)
}

// IsSubscribed reports whether the caller follows the author. Always false
// for anonymous callers.
func (s *RelationService) IsSubscribed(ctx context.Context, userID *uuid.UUID, authorID uuid.UUID) (bool, error) {
	if userID == nil {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", *userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// Subscriptions lists the authors the user follows, oldest subscription
// first.
func (s *RelationService) Subscriptions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.User, error) {
	query := s.db.WithContext(ctx).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("follows.created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var authors []models.User
	if err := query.Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}

// AuthorRecipes returns the author's recipes in short form, newest first,
// optionally truncated.
func (s *RelationService) AuthorRecipes(ctx context.Context, authorID uuid.UUID, limit int) ([]models.Recipe, int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	query := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, count, nil
}

func (s *RelationService) getRecipe(ctx context.Context, recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (s *RelationService) addPair(ctx context.Context, row interface{}, query string, args ...interface{}) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(row).Where(query, args...).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyExists
	}
	return s.db.WithContext(ctx).Create(row).Error
}

func (s *RelationService) removePair(ctx context.Context, model interface{}, query string, args ...interface{}) error {
	result := s.db.WithContext(ctx).Where(query, args...).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRelationAbsent
	}
	return nil
}
