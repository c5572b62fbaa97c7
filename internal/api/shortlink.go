package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/foodgram/backend/internal/service"
)

// ShortLinkHandler serves the public redirect endpoint. Failures are logged
// and answered with a generic not-found so link visitors never see
// internals.
type ShortLinkHandler struct {
	shortLinks *service.ShortLinkService
	log        *zap.Logger
}

func NewShortLinkHandler(shortLinks *service.ShortLinkService, log *zap.Logger) *ShortLinkHandler {
	return &ShortLinkHandler{shortLinks: shortLinks, log: log}
}

func (h *ShortLinkHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/s/:hash", h.Redirect)
}

func (h *ShortLinkHandler) Redirect(c *gin.Context) {
	hash := c.Param("hash")

	recipeID, err := h.shortLinks.Resolve(c.Request.Context(), hash)
	if err != nil {
		h.log.Warn("short link resolve failed",
			zap.String("hash", hash),
			zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"errors": "recipe not found"})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/api/recipes/%s", recipeID))
}
