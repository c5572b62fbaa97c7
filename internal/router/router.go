package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/foodgram/backend/internal/api"
	"github.com/foodgram/backend/internal/middleware"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Auth        *api.AuthHandler
	Users       *api.UserHandler
	Recipes     *api.RecipeHandler
	Ingredients *api.IngredientHandler
	ShortLinks  *api.ShortLinkHandler
}

// SetupRouter configures the application routes
func SetupRouter(
	h Handlers,
	validator middleware.TokenValidator,
	limiter *middleware.RateLimiter,
	mediaDir string,
	log *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS())

	if mediaDir != "" {
		router.Static("/media", mediaDir)
	}

	apiGroup := router.Group("/api")
	h.Auth.RegisterRoutes(apiGroup)
	h.Users.RegisterRoutes(apiGroup, validator)
	h.Recipes.RegisterRoutes(apiGroup, validator, limiter)
	h.Ingredients.RegisterRoutes(apiGroup)

	// Public redirect lives outside /api so shared URLs stay short.
	h.ShortLinks.RegisterRoutes(router)

	return router
}
