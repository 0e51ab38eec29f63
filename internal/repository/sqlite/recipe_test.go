package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/recipe-api/internal/domain"
)

func newRecipe(userID int64, title string) *domain.Recipe {
	return &domain.Recipe{
		UserID:      userID,
		Title:       title,
		TimeMinutes: 20,
		Price:       550,
		Link:        "https://example.com/" + title,
		Description: "A " + title,
	}
}

func tagNames(tags []domain.Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}

func TestRecipeRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := db.Recipes()
	ctx := context.Background()
	userID := seedUser(t, db, "recipes@example.com")

	recipe := newRecipe(userID, "Soup")
	require.NoError(t, repo.Create(ctx, recipe))
	assert.NotZero(t, recipe.ID)

	found, err := repo.GetByID(ctx, userID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soup", found.Title)
	assert.Equal(t, 20, found.TimeMinutes)
	assert.Equal(t, domain.Price(550), found.Price)
	assert.Equal(t, "https://example.com/Soup", found.Link)
	assert.Equal(t, "A Soup", found.Description)
	assert.NotNil(t, found.Tags)
	assert.Empty(t, found.Tags)
	assert.Empty(t, found.Ingredients)
}

func TestRecipeRepository_ScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	repo := db.Recipes()
	ctx := context.Background()
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	recipe := newRecipe(owner, "Stew")
	require.NoError(t, repo.Create(ctx, recipe))

	_, err := repo.GetByID(ctx, other, recipe.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	hijack := *recipe
	hijack.UserID = other
	hijack.Title = "Mine now"
	assert.ErrorIs(t, repo.Update(ctx, &hijack), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, other, recipe.ID), domain.ErrNotFound)

	list, err := repo.ListByUser(ctx, other, domain.RecipeFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRecipeRepository_AttachKeepsOrderAndIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := db.Recipes()
	ctx := context.Background()
	userID := seedUser(t, db, "attach@example.com")

	recipe := newRecipe(userID, "Pasta")
	require.NoError(t, repo.Create(ctx, recipe))

	for _, name := range []string{"Italian", "Dinner", "Italian"} {
		tag, err := db.Tags().GetOrCreate(ctx, userID, name)
		require.NoError(t, err)
		require.NoError(t, repo.AttachTag(ctx, recipe.ID, tag.ID))
	}

	found, err := repo.GetByID(ctx, userID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Italian", "Dinner"}, tagNames(found.Tags))
}

func TestRecipeRepository_AttachRejectsOtherOwner(t *testing.T) {
	db := newTestDB(t)
	repo := db.Recipes()
	ctx := context.Background()
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	recipe := newRecipe(owner, "Curry")
	require.NoError(t, repo.Create(ctx, recipe))

	foreign, err := db.Tags().GetOrCreate(ctx, other, "Spicy")
	require.NoError(t, err)
	require.NoError(t, repo.AttachTag(ctx, recipe.ID, foreign.ID))

	found, err := repo.GetByID(ctx, owner, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Tags)
}

func TestRecipeRepository_ClearKeepsRows(t *testing.T) {
	db := newTestDB(t)
	repo := db.Recipes()
	ctx := context.Background()
	userID := seedUser(t, db, "clear@example.com")

	recipe := newRecipe(userID, "Salad")
	require.NoError(t, repo.Create(ctx, recipe))

	tag, err := db.Tags().GetOrCreate(ctx, userID, "Healthy")
	require.NoError(t, err)
	salt, err := db.Ingredients().GetOrCreate(ctx, userID, "Salt")
	require.NoError(t, err)
	require.NoError(t, repo.AttachTag(ctx, recipe.ID, tag.ID))
	require.NoError(t, repo.AttachIngredient(ctx, recipe.ID, salt.ID))

	require.NoError(t, repo.ClearTags(ctx, recipe.ID))

	found, err := repo.GetByID(ctx, userID, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Tags)
	require.Len(t, found.Ingredients, 1)

	_, err = db.Tags().GetByID(ctx, userID, tag.ID)
	assert.NoError(t, err)

	require.NoError(t, repo.ClearIngredients(ctx, recipe.ID))
	found, err = repo.GetByID(ctx, userID, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Ingredients)
}

func TestRecipeRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := db.Recipes()
	ctx := context.Background()
	userID := seedUser(t, db, "update@example.com")

	recipe := newRecipe(userID, "Bread")
	require.NoError(t, repo.Create(ctx, recipe))

	recipe.Title = "Sourdough"
	recipe.Price = 1299
	require.NoError(t, repo.Update(ctx, recipe))

	found, err := repo.GetByID(ctx, userID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sourdough", found.Title)
	assert.Equal(t, domain.Price(1299), found.Price)
}

func TestRecipeRepository_DeleteKeepsTags(t *testing.T) {
	db := newTestDB(t)
	repo := db.Recipes()
	ctx := context.Background()
	userID := seedUser(t, db, "delete@example.com")

	recipe := newRecipe(userID, "Cake")
	require.NoError(t, repo.Create(ctx, recipe))
	tag, err := db.Tags().GetOrCreate(ctx, userID, "Dessert")
	require.NoError(t, err)
	require.NoError(t, repo.AttachTag(ctx, recipe.ID, tag.ID))

	require.NoError(t, repo.Delete(ctx, userID, recipe.ID))

	_, err = repo.GetByID(ctx, userID, recipe.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = db.Tags().GetByID(ctx, userID, tag.ID)
	assert.NoError(t, err)
}

func TestRecipeRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := db.Recipes()
	ctx := context.Background()
	userID := seedUser(t, db, "filter@example.com")

	soup := newRecipe(userID, "Soup")
	cake := newRecipe(userID, "Cake")
	toast := newRecipe(userID, "Toast")
	for _, r := range []*domain.Recipe{soup, cake, toast} {
		require.NoError(t, repo.Create(ctx, r))
	}

	dessert, err := db.Tags().GetOrCreate(ctx, userID, "Dessert")
	require.NoError(t, err)
	require.NoError(t, repo.AttachTag(ctx, cake.ID, dessert.ID))

	salt, err := db.Ingredients().GetOrCreate(ctx, userID, "Salt")
	require.NoError(t, err)
	require.NoError(t, repo.AttachIngredient(ctx, soup.ID, salt.ID))
	require.NoError(t, repo.AttachIngredient(ctx, cake.ID, salt.ID))

	all, err := repo.ListByUser(ctx, userID, domain.RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, toast.ID, all[0].ID, "newest first")

	byTag, err := repo.ListByUser(ctx, userID, domain.RecipeFilter{TagIDs: []int64{dessert.ID}})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "Cake", byTag[0].Title)
	assert.Equal(t, []string{"Dessert"}, tagNames(byTag[0].Tags))

	byIngredient, err := repo.ListByUser(ctx, userID, domain.RecipeFilter{IngredientIDs: []int64{salt.ID}})
	require.NoError(t, err)
	assert.Len(t, byIngredient, 2)

	both, err := repo.ListByUser(ctx, userID, domain.RecipeFilter{
		TagIDs:        []int64{dessert.ID},
		IngredientIDs: []int64{salt.ID},
	})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, cake.ID, both[0].ID)
}
