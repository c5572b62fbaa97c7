package database

import (
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// Migrate runs AutoMigrate for every model in dependency order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.ShoppingCart{},
		&models.Follow{},
		&models.RecipeShortLink{},
	)
}
