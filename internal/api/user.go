package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/types"
)

type UserHandler struct {
	auth      *service.AuthService
	relations *service.RelationService
	store     service.ImageStore
	log       *zap.Logger
}

func NewUserHandler(auth *service.AuthService, relations *service.RelationService, store service.ImageStore, log *zap.Logger) *UserHandler {
	return &UserHandler{auth: auth, relations: relations, store: store, log: log}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	users := router.Group("/users")
	{
		users.GET("/me", middleware.AuthRequired(validator), h.Me)
		users.GET("/me/avatar", middleware.AuthRequired(validator), h.Me)
		users.PUT("/me/avatar", middleware.AuthRequired(validator), h.SetAvatar)
		users.PATCH("/me/avatar", middleware.AuthRequired(validator), h.SetAvatar)
		users.DELETE("/me/avatar", middleware.AuthRequired(validator), h.DeleteAvatar)
		users.GET("/subscriptions", middleware.AuthRequired(validator), h.Subscriptions)
		users.GET("/:id", middleware.AuthOptional(validator), h.GetUser)
		users.POST("/:id/subscribe", middleware.AuthRequired(validator), h.Subscribe)
		users.DELETE("/:id/subscribe", middleware.AuthRequired(validator), h.Unsubscribe)
	}
}

func (h *UserHandler) Me(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	user, err := h.auth.GetUser(c.Request.Context(), *userID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user, false))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	targetID, ok := parseUserIDParam(c)
	if !ok {
		return
	}

	user, err := h.auth.GetUser(c.Request.Context(), targetID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	subscribed, err := h.relations.IsSubscribed(c.Request.Context(), middleware.CurrentUserID(c), targetID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user, subscribed))
}

func (h *UserHandler) SetAvatar(c *gin.Context) {
	var req types.AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "an image must be provided"})
		return
	}

	img, err := service.DecodeBase64Image(req.Avatar)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	url, err := h.store.Save(c.Request.Context(), img)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	userID := middleware.CurrentUserID(c)
	user, err := h.auth.SetAvatar(c.Request.Context(), *userID, url)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar": user.AvatarURL})
}

func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	if _, err := h.auth.SetAvatar(c.Request.Context(), *userID, ""); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	authorID, ok := parseUserIDParam(c)
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c)
	author, err := h.relations.Follow(c.Request.Context(), *userID, authorID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	resp, err := h.buildFollowResponse(c, author)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	authorID, ok := parseUserIDParam(c)
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c)
	if err := h.relations.Unfollow(c.Request.Context(), *userID, authorID); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	limit, offset := pagination(c)

	authors, err := h.relations.Subscriptions(c.Request.Context(), *userID, limit, offset)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	responses := make([]FollowResponse, 0, len(authors))
	for i := range authors {
		resp, err := h.buildFollowResponse(c, &authors[i])
		if err != nil {
			respondServiceError(c, h.log, err)
			return
		}
		responses = append(responses, resp)
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": responses})
}

func (h *UserHandler) buildFollowResponse(c *gin.Context, author *models.User) (FollowResponse, error) {
	recipesLimit := 0
	if raw := c.Query("recipes_limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			recipesLimit = n
		}
	}

	recipes, count, err := h.relations.AuthorRecipes(c.Request.Context(), author.ID, recipesLimit)
	if err != nil {
		return FollowResponse{}, err
	}

	// The caller reached subscribe/subscriptions, so is_subscribed is true
	// by construction here.
	return newFollowResponse(author, true, recipes, count), nil
}

func parseUserIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errors": "user not found"})
		return uuid.Nil, false
	}
	return id, true
}
