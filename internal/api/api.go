// Package api contains the gin handlers for the HTTP surface. Handlers
// translate between JSON and the service layer; all business rules live in
// internal/service.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/foodgram/backend/internal/service"
)

const defaultPageLimit = 20

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Everything unrecognized is logged and hidden behind a 500.
func respondServiceError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"errors": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"errors": err.Error()})
	case errors.Is(err, service.ErrAlreadyExists),
		errors.Is(err, service.ErrRelationAbsent),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrNoIngredients),
		errors.Is(err, service.ErrDuplicateIngredient),
		errors.Is(err, service.ErrIngredientNotFound),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidCookingTime),
		errors.Is(err, service.ErrInvalidImageEncoding),
		errors.Is(err, service.ErrUnsupportedImageFormat),
		errors.Is(err, service.ErrInvalidImageData),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrInvalidUsername):
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"errors": err.Error()})
	default:
		log.Error("unhandled service error",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "internal error"})
	}
}

// pagination reads limit/offset query parameters with sane bounds.
func pagination(c *gin.Context) (limit, offset int) {
	limit = defaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}
