package api_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortLinkEndpoints(t *testing.T) {
	app := setupTestApp(t)
	alice := app.registerUser(t, "alice")
	salt := app.createIngredient(t, "salt", "g")

	recipe := app.createRecipe(t, alice, "Soup", []gin.H{ingredientAmount(salt, 5)})

	var shortURL string

	t.Run("get-link mints a short url", func(t *testing.T) {
		w := app.request(t, http.MethodGet, recipePath(t, recipe, "/get-link"), "", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		got := decodeJSON(t, w)
		shortURL = got["short-link"].(string)
		assert.Contains(t, shortURL, "http://localhost:8080/s/")

		hash := strings.TrimPrefix(shortURL, "http://localhost:8080/s/")
		assert.Len(t, hash, 8)
	})

	t.Run("get-link is idempotent", func(t *testing.T) {
		w := app.request(t, http.MethodGet, recipePath(t, recipe, "/get-link"), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, shortURL, decodeJSON(t, w)["short-link"])
	})

	t.Run("redirects to the recipe page", func(t *testing.T) {
		hash := strings.TrimPrefix(shortURL, "http://localhost:8080/s/")
		w := app.request(t, http.MethodGet, "/s/"+hash, "", nil)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, recipePath(t, recipe, ""), w.Header().Get("Location"))
	})

	t.Run("unknown hash is a generic 404", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/s/missing0", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "recipe not found")
	})
}
