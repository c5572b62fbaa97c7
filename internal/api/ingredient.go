package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foodgram/backend/internal/service"
)

type IngredientHandler struct {
	ingredients *service.IngredientService
	log         *zap.Logger
}

func NewIngredientHandler(ingredients *service.IngredientService, log *zap.Logger) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients, log: log}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
	}
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	items, err := h.ingredients.List(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errors": "ingredient not found"})
		return
	}

	ingredient, err := h.ingredients.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, ingredient)
}
