package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeShortLink maps an 8-character URL-safe hash to a recipe. Created
// lazily on the first get-link request, one row per recipe.
type RecipeShortLink struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"recipe_id"`
	Recipe    *Recipe   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	URLHash   string    `gorm:"size:10;not null;uniqueIndex" json:"url_hash"`
}

func (RecipeShortLink) TableName() string {
	return "recipe_short_links"
}

func (l *RecipeShortLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
