package api

import (
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/models"
)

type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
	Avatar       string    `json:"avatar"`
}

func newUserResponse(u *models.User, isSubscribed bool) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
		Avatar:       u.AvatarURL,
	}
}

// ShortRecipeResponse is the compact recipe form used by favorite/cart adds
// and subscription listings.
type ShortRecipeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

func newShortRecipeResponse(r *models.Recipe) ShortRecipeResponse {
	return ShortRecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.ImageURL,
		CookingTime: r.CookingTime,
	}
}

type RecipeIngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

type RecipeResponse struct {
	ID               uuid.UUID                  `json:"id"`
	Name             string                     `json:"name"`
	Author           UserResponse               `json:"author"`
	Text             string                     `json:"text"`
	Image            string                     `json:"image"`
	CookingTime      int                        `json:"cooking_time"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
}

func newRecipeResponse(r *models.Recipe, authorSubscribed, favorited, inCart bool) RecipeResponse {
	items := make([]RecipeIngredientResponse, 0, len(r.Ingredients))
	for _, line := range r.Ingredients {
		item := RecipeIngredientResponse{
			ID:     line.IngredientID,
			Amount: line.Amount,
		}
		if line.Ingredient != nil {
			item.Name = line.Ingredient.Name
			item.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
		items = append(items, item)
	}

	resp := RecipeResponse{
		ID:               r.ID,
		Name:             r.Name,
		Text:             r.Text,
		Image:            r.ImageURL,
		CookingTime:      r.CookingTime,
		Ingredients:      items,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
	}
	if r.Author != nil {
		resp.Author = newUserResponse(r.Author, authorSubscribed)
	}
	return resp
}

// FollowResponse is the full author profile returned by subscribe and
// subscription listings.
type FollowResponse struct {
	UserResponse
	Recipes      []ShortRecipeResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

func newFollowResponse(author *models.User, isSubscribed bool, recipes []models.Recipe, count int64) FollowResponse {
	short := make([]ShortRecipeResponse, 0, len(recipes))
	for i := range recipes {
		short = append(short, newShortRecipeResponse(&recipes[i]))
	}
	return FollowResponse{
		UserResponse: newUserResponse(author, isSubscribed),
		Recipes:      short,
		RecipesCount: count,
	}
}
