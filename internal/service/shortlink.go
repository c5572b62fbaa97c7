package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/cache"
	"github.com/foodgram/backend/internal/models"
)

const (
	shortHashLength  = 8
	shortLinkHashTTL = time.Hour
)

// ShortLinkService hashes recipe identity into an 8-character URL-safe
// token and resolves tokens back through a read-through cache.
type ShortLinkService struct {
	db      *gorm.DB
	cache   cache.Cache
	baseURL string
	log     *zap.Logger
}

func NewShortLinkService(db *gorm.DB, c cache.Cache, baseURL string, log *zap.Logger) *ShortLinkService {
	return &ShortLinkService{db: db, cache: c, baseURL: baseURL, log: log}
}

// GetOrCreate returns the existing short link for the recipe, or mints one.
// Repeated calls for the same recipe always return the same hash.
func (s *ShortLinkService) GetOrCreate(ctx context.Context, recipeID uuid.UUID) (*models.RecipeShortLink, error) {
	var link models.RecipeShortLink
	err := s.db.WithContext(ctx).First(&link, "recipe_id = ?", recipeID).Error
	if err == nil {
		return &link, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	input := fmt.Sprintf("%s%s%s", recipe.ID, recipe.Name, recipe.CreatedAt.Format(time.RFC3339Nano))
	hash := generateHash(input)

	// One retry with a random salt if another recipe already holds the
	// hash; the unique column remains the backstop for the race window.
	taken, err := s.hashTaken(ctx, hash)
	if err != nil {
		return nil, err
	}
	if taken {
		salt := make([]byte, 8)
		if _, err := rand.Read(salt); err != nil {
			return nil, err
		}
		hash = generateHash(input + hex.EncodeToString(salt))
		s.log.Warn("short link hash collision, retried with salt",
			zap.String("recipe_id", recipeID.String()))
	}

	link = models.RecipeShortLink{RecipeID: recipeID, URLHash: hash}
	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// ShortURL builds the externally shareable URL for a link.
func (s *ShortLinkService) ShortURL(link *models.RecipeShortLink) string {
	return fmt.Sprintf("%s/s/%s", s.baseURL, link.URLHash)
}

// Resolve maps a hash to a recipe id, consulting the cache first.
func (s *ShortLinkService) Resolve(ctx context.Context, hash string) (uuid.UUID, error) {
	key := fmt.Sprintf("recipe_hash:%s", hash)

	if cached, err := s.cache.Get(ctx, key); err == nil {
		if id, parseErr := uuid.Parse(cached); parseErr == nil {
			return id, nil
		}
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("short link cache read failed", zap.Error(err))
	}

	var link models.RecipeShortLink
	if err := s.db.WithContext(ctx).First(&link, "url_hash = ?", hash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, err
	}

	if err := s.cache.Set(ctx, key, link.RecipeID.String(), shortLinkHashTTL); err != nil {
		s.log.Warn("short link cache write failed", zap.Error(err))
	}

	return link.RecipeID, nil
}

func (s *ShortLinkService) hashTaken(ctx context.Context, hash string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.RecipeShortLink{}).
		Where("url_hash = ?", hash).
		Count(&count).Error
	return count > 0, err
}

// generateHash digests the input with SHA-256 and keeps the first eight
// URL-safe base64 characters.
func generateHash(input string) string {
	sum := sha256.Sum256([]byte(input))
	return base64.URLEncoding.EncodeToString(sum[:])[:shortHashLength]
}
