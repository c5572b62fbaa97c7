package types

import "github.com/google/uuid"

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// IngredientAmount is one requested line item of a recipe.
type IngredientAmount struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount int       `json:"amount" binding:"required"`
}

type CreateRecipeRequest struct {
	Name        string             `json:"name" binding:"required,max=128"`
	Text        string             `json:"text" binding:"required"`
	Image       string             `json:"image" binding:"required"`
	CookingTime int                `json:"cooking_time" binding:"required"`
	Ingredients []IngredientAmount `json:"ingredients"`
}

// UpdateRecipeRequest uses pointers so PATCH can distinguish an omitted
// field from a zero value. A nil Ingredients slice leaves the existing
// line items untouched; a present one replaces them wholesale.
type UpdateRecipeRequest struct {
	Name        *string             `json:"name"`
	Text        *string             `json:"text"`
	Image       *string             `json:"image"`
	CookingTime *int                `json:"cooking_time"`
	Ingredients *[]IngredientAmount `json:"ingredients"`
}

type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}
