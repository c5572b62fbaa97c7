package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/api"
	"github.com/foodgram/backend/internal/cache"
	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/router"
	"github.com/foodgram/backend/internal/service"
)

// Server wires services, handlers and the HTTP listener together.
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *zap.Logger
}

// New assembles the full application from its external resources. The
// redis client may be nil in tests, in which case an in-memory cache is
// used and rate limiting is disabled.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store service.ImageStore, log *zap.Logger) *Server {
	var c cache.Cache
	var limiter *middleware.RateLimiter
	if redisClient != nil {
		c = cache.NewRedisCache(redisClient)
		limiter = middleware.NewRecipeCreationRateLimiter(redisClient)
	} else {
		c = cache.NewMemoryCache()
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db, store, log)
	relationService := service.NewRelationService(db)
	shoppingListService := service.NewShoppingListService(db, c, log)
	shortLinkService := service.NewShortLinkService(db, c, cfg.BaseURL, log)
	ingredientService := service.NewIngredientService(db)

	handlers := router.Handlers{
		Auth:        api.NewAuthHandler(authService, log),
		Users:       api.NewUserHandler(authService, relationService, store, log),
		Recipes:     api.NewRecipeHandler(recipeService, relationService, shoppingListService, shortLinkService, log),
		Ingredients: api.NewIngredientHandler(ingredientService, log),
		ShortLinks:  api.NewShortLinkHandler(shortLinkService, log),
	}

	mediaDir := ""
	if cfg.ImageStore == "local" {
		mediaDir = cfg.MediaDir
	}

	engine := router.SetupRouter(handlers, authService, limiter, mediaDir, log)

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:    fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
			Handler: engine,
		},
		log: log,
	}
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
