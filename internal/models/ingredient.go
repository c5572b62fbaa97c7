package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is immutable reference data, loaded once by cmd/seed_ingredients.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Name            string    `gorm:"size:128;uniqueIndex;not null" json:"name"`
	MeasurementUnit string    `gorm:"size:128;not null" json:"measurement_unit"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
