package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/types"
)

func TestFavoriteToggle(t *testing.T) {
	db := setupTestDB(t)
	recipes := newTestRecipeService(t, db)
	svc := NewRelationService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	egg := createTestIngredient(t, db, "egg", "pcs")
	ctx := context.Background()

	recipe := createTestRecipe(t, recipes, alice, "Omelette", []types.IngredientAmount{
		{ID: egg.ID, Amount: 3},
	})

	t.Run("add returns the recipe", func(t *testing.T) {
		got, err := svc.AddFavorite(ctx, bob.ID, recipe.ID)
		require.NoError(t, err)
		assert.Equal(t, recipe.ID, got.ID)
	})

	t.Run("second add conflicts", func(t *testing.T) {
		_, err := svc.AddFavorite(ctx, bob.ID, recipe.ID)
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("remove succeeds once", func(t *testing.T) {
		require.NoError(t, svc.RemoveFavorite(ctx, bob.ID, recipe.ID))
	})

	t.Run("second remove reports absence", func(t *testing.T) {
		err := svc.RemoveFavorite(ctx, bob.ID, recipe.ID)
		assert.ErrorIs(t, err, ErrRelationAbsent)
	})

	t.Run("unknown recipe", func(t *testing.T) {
		_, err := svc.AddFavorite(ctx, bob.ID, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestShoppingCartToggle(t *testing.T) {
	db := setupTestDB(t)
	recipes := newTestRecipeService(t, db)
	svc := NewRelationService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	milk := createTestIngredient(t, db, "milk", "ml")
	ctx := context.Background()

	recipe := createTestRecipe(t, recipes, alice, "Porridge", []types.IngredientAmount{
		{ID: milk.ID, Amount: 300},
	})

	_, err := svc.AddToCart(ctx, bob.ID, recipe.ID)
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, bob.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	require.NoError(t, svc.RemoveFromCart(ctx, bob.ID, recipe.ID))
	assert.ErrorIs(t, svc.RemoveFromCart(ctx, bob.ID, recipe.ID), ErrRelationAbsent)
}

func TestFollow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelationService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	ctx := context.Background()

	t.Run("self follow is rejected", func(t *testing.T) {
		_, err := svc.Follow(ctx, alice.ID, alice.ID)
		assert.ErrorIs(t, err, ErrSelfFollow)
	})

	t.Run("unknown author", func(t *testing.T) {
		_, err := svc.Follow(ctx, alice.ID, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("follow and duplicate follow", func(t *testing.T) {
		author, err := svc.Follow(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", author.Username)

		_, err = svc.Follow(ctx, alice.ID, bob.ID)
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("subscriptions list oldest first", func(t *testing.T) {
		_, err := svc.Follow(ctx, alice.ID, carol.ID)
		require.NoError(t, err)

		authors, err := svc.Subscriptions(ctx, alice.ID, 0, 0)
		require.NoError(t, err)
		require.Len(t, authors, 2)
		assert.Equal(t, bob.ID, authors[0].ID)
		assert.Equal(t, carol.ID, authors[1].ID)
	})

	t.Run("is subscribed", func(t *testing.T) {
		subscribed, err := svc.IsSubscribed(ctx, &alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, subscribed)

		subscribed, err = svc.IsSubscribed(ctx, nil, bob.ID)
		require.NoError(t, err)
		assert.False(t, subscribed)
	})

	t.Run("unfollow", func(t *testing.T) {
		require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))
		assert.ErrorIs(t, svc.Unfollow(ctx, alice.ID, bob.ID), ErrRelationAbsent)
	})
}

func TestAuthorRecipes(t *testing.T) {
	db := setupTestDB(t)
	recipes := newTestRecipeService(t, db)
	svc := NewRelationService(db)
	alice := createTestUser(t, db, "alice")
	oat := createTestIngredient(t, db, "oats", "g")

	for _, name := range []string{"First", "Second", "Third"} {
		createTestRecipe(t, recipes, alice, name, []types.IngredientAmount{
			{ID: oat.ID, Amount: 50},
		})
	}

	list, count, err := svc.AuthorRecipes(context.Background(), alice.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Len(t, list, 2)
}
