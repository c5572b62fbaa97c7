package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/types"
)

type RecipeHandler struct {
	recipes      *service.RecipeService
	relations    *service.RelationService
	shoppingList *service.ShoppingListService
	shortLinks   *service.ShortLinkService
	log          *zap.Logger
}

func NewRecipeHandler(
	recipes *service.RecipeService,
	relations *service.RelationService,
	shoppingList *service.ShoppingListService,
	shortLinks *service.ShortLinkService,
	log *zap.Logger,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:      recipes,
		relations:    relations,
		shoppingList: shoppingList,
		shortLinks:   shortLinks,
		log:          log,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator, limiter *middleware.RateLimiter) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.AuthOptional(validator), h.ListRecipes)
		recipes.GET("/download_shopping_cart", middleware.AuthRequired(validator), h.DownloadShoppingCart)
		recipes.GET("/:id", middleware.AuthOptional(validator), h.GetRecipe)
		recipes.GET("/:id/get-link", h.GetLink)

		createChain := []gin.HandlerFunc{middleware.AuthRequired(validator)}
		if limiter != nil {
			createChain = append(createChain, limiter.Middleware())
		}
		recipes.POST("", append(createChain, h.CreateRecipe)...)

		recipes.PATCH("/:id", middleware.AuthRequired(validator), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthRequired(validator), h.DeleteRecipe)
		recipes.POST("/:id/favorite", middleware.AuthRequired(validator), h.Favorite)
		recipes.DELETE("/:id/favorite", middleware.AuthRequired(validator), h.Unfavorite)
		recipes.POST("/:id/shopping_cart", middleware.AuthRequired(validator), h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", middleware.AuthRequired(validator), h.RemoveFromCart)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	filter := service.RecipeFilter{}
	filter.Limit, filter.Offset = pagination(c)

	if author := c.Query("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid author id"})
			return
		}
		filter.AuthorID = &authorID
	}
	// Favorited/in-cart filters only make sense for a known caller.
	if userID != nil {
		if c.Query("is_favorited") != "" {
			filter.FavoritedBy = userID
		}
		if c.Query("is_in_shopping_cart") != "" {
			filter.InCartOf = userID
		}
	}

	recipes, err := h.recipes.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	responses := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		resp, err := h.buildRecipeResponse(c, &recipes[i], userID)
		if err != nil {
			respondServiceError(c, h.log, err)
			return
		}
		responses = append(responses, resp)
	}

	c.JSON(http.StatusOK, gin.H{"recipes": responses})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), recipeID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	resp, err := h.buildRecipeResponse(c, recipe, middleware.CurrentUserID(c))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	userID := middleware.CurrentUserID(c)
	recipe, err := h.recipes.Create(c.Request.Context(), *userID, &req)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	resp, err := h.buildRecipeResponse(c, recipe, userID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	recipeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	userID := middleware.CurrentUserID(c)
	recipe, err := h.recipes.Update(c.Request.Context(), *userID, recipeID, &req)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	resp, err := h.buildRecipeResponse(c, recipe, userID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	recipeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c)
	if err := h.recipes.Delete(c.Request.Context(), *userID, recipeID); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) Favorite(c *gin.Context) {
	h.addRelation(c, h.relations.AddFavorite)
}

func (h *RecipeHandler) Unfavorite(c *gin.Context) {
	h.removeRelation(c, h.relations.RemoveFavorite)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addRelation(c, h.relations.AddToCart)
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeRelation(c, h.relations.RemoveFromCart)
}

func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	content, err := h.shoppingList.Generate(c.Request.Context(), *userID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}

func (h *RecipeHandler) GetLink(c *gin.Context) {
	recipeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	link, err := h.shortLinks.GetOrCreate(c.Request.Context(), recipeID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"short-link": h.shortLinks.ShortURL(link)})
}

type addRelationFunc func(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error)

func (h *RecipeHandler) addRelation(c *gin.Context, add addRelationFunc) {
	recipeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c)
	recipe, err := add(c.Request.Context(), *userID, recipeID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, newShortRecipeResponse(recipe))
}

func (h *RecipeHandler) removeRelation(c *gin.Context, remove func(ctx context.Context, userID, recipeID uuid.UUID) error) {
	recipeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c)
	if err := remove(c.Request.Context(), *userID, recipeID); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) buildRecipeResponse(c *gin.Context, recipe *models.Recipe, userID *uuid.UUID) (RecipeResponse, error) {
	ctx := c.Request.Context()

	favorited, inCart, err := h.recipes.Flags(ctx, userID, recipe.ID)
	if err != nil {
		return RecipeResponse{}, err
	}

	subscribed, err := h.relations.IsSubscribed(ctx, userID, recipe.AuthorID)
	if err != nil {
		return RecipeResponse{}, err
	}

	return newRecipeResponse(recipe, subscribed, favorited, inCart), nil
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errors": "recipe not found"})
		return uuid.Nil, false
	}
	return id, true
}
