package api_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/models"
)

func (app *testApp) userID(t *testing.T, username string) string {
	t.Helper()
	var user models.User
	require.NoError(t, app.db.First(&user, "username = ?", username).Error)
	return user.ID.String()
}

func TestMeAndProfileEndpoints(t *testing.T) {
	app := setupTestApp(t)
	alice := app.registerUser(t, "alice")
	app.registerUser(t, "bob")

	t.Run("me returns the caller", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/users/me", alice, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeJSON(t, w)
		assert.Equal(t, "alice", got["username"])
	})

	t.Run("profile is public", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/users/"+app.userID(t, "bob"), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeJSON(t, w)
		assert.Equal(t, "bob", got["username"])
		assert.Equal(t, false, got["is_subscribed"])
	})

	t.Run("unknown profile", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/users/"+uuid.NewString(), "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAvatarEndpoints(t *testing.T) {
	app := setupTestApp(t)
	alice := app.registerUser(t, "alice")

	t.Run("put stores the avatar", func(t *testing.T) {
		w := app.request(t, http.MethodPut, "/api/users/me/avatar", alice, gin.H{
			"avatar": testImagePayload(),
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got := decodeJSON(t, w)
		assert.Contains(t, got["avatar"], "/media/")

		w = app.request(t, http.MethodGet, "/api/users/me", alice, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, decodeJSON(t, w)["avatar"], "/media/")
	})

	t.Run("rejects a non-image payload", func(t *testing.T) {
		w := app.request(t, http.MethodPut, "/api/users/me/avatar", alice, gin.H{
			"avatar": "plain text",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete clears the avatar", func(t *testing.T) {
		w := app.request(t, http.MethodDelete, "/api/users/me/avatar", alice, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = app.request(t, http.MethodGet, "/api/users/me", alice, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeJSON(t, w)["avatar"])
	})
}

func TestSubscribeEndpoints(t *testing.T) {
	app := setupTestApp(t)
	alice := app.registerUser(t, "alice")
	bob := app.registerUser(t, "bob")
	oat := app.createIngredient(t, "oats", "g")

	bobID := app.userID(t, "bob")
	for _, name := range []string{"First", "Second", "Third"} {
		app.createRecipe(t, bob, name, []gin.H{ingredientAmount(oat, 50)})
	}

	t.Run("subscribe returns the author with recipes", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/users/"+bobID+"/subscribe?recipes_limit=2", alice, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		got := decodeJSON(t, w)
		assert.Equal(t, "bob", got["username"])
		assert.Equal(t, true, got["is_subscribed"])
		assert.Equal(t, float64(3), got["recipes_count"])
		assert.Len(t, got["recipes"], 2)
	})

	t.Run("duplicate subscribe conflicts", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/users/"+bobID+"/subscribe", alice, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("self subscribe is rejected", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/users/"+app.userID(t, "alice")+"/subscribe", alice, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("subscriptions listing", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/users/subscriptions", alice, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeJSON(t, w)
		subs := got["subscriptions"].([]interface{})
		require.Len(t, subs, 1)
		author := subs[0].(map[string]interface{})
		assert.Equal(t, "bob", author["username"])
	})

	t.Run("profile shows subscription state for the caller", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/users/"+bobID, alice, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decodeJSON(t, w)["is_subscribed"])
	})

	t.Run("unsubscribe twice", func(t *testing.T) {
		w := app.request(t, http.MethodDelete, "/api/users/"+bobID+"/subscribe", alice, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = app.request(t, http.MethodDelete, "/api/users/"+bobID+"/subscribe", alice, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("subscribing to a missing user is 404", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/users/"+uuid.NewString()+"/subscribe", bob, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
