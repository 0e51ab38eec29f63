package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/recipe-api/internal/domain"
	"github.com/msomdec/recipe-api/internal/repository/sqlite"
	"github.com/msomdec/recipe-api/internal/service"
	"github.com/msomdec/recipe-api/internal/validation"
)

func newTestRecipeService(t *testing.T) (*service.RecipeService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	return service.NewRecipeService(db, db, validation.New()), db
}

func names(entries ...string) *[]service.NameRequest {
	out := make([]service.NameRequest, len(entries))
	for i, n := range entries {
		out[i] = service.NameRequest{Name: n}
	}
	return &out
}

func soupRequest() service.RecipeRequest {
	return service.RecipeRequest{
		Title:       ptr("Soup"),
		TimeMinutes: ptr(20),
		Price:       ptr(domain.Price(550)),
		Ingredients: names("Salt"),
	}
}

func TestRecipeService_CreateReusesIngredients(t *testing.T) {
	svc, db := newTestRecipeService(t)
	ctx := context.Background()
	userID := createUser(t, db, "soup@example.com")

	first, err := svc.Create(ctx, userID, soupRequest())
	require.NoError(t, err)
	require.Len(t, first.Ingredients, 1)
	assert.Equal(t, "Salt", first.Ingredients[0].Name)
	assert.Equal(t, userID, first.Ingredients[0].UserID)

	second, err := svc.Create(ctx, userID, soupRequest())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Ingredients[0].ID, second.Ingredients[0].ID)

	ingredients, err := db.Ingredients().ListByUser(ctx, userID, false)
	require.NoError(t, err)
	assert.Len(t, ingredients, 1)
}

func TestRecipeService_CreateDeduplicatesTags(t *testing.T) {
	svc, db := newTestRecipeService(t)
	ctx := context.Background()
	userID := createUser(t, db, "italian@example.com")

	req := soupRequest()
	req.Tags = names("Italian", " Italian ", "Dinner")

	recipe, err := svc.Create(ctx, userID, req)
	require.NoError(t, err)
	require.Len(t, recipe.Tags, 2)
	assert.Equal(t, "Italian", recipe.Tags[0].Name)
	assert.Equal(t, "Dinner", recipe.Tags[1].Name)

	tags, err := db.Tags().ListByUser(ctx, userID, false)
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}

func TestRecipeService_CreateKeepsUsersApart(t *testing.T) {
	svc, db := newTestRecipeService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	a, err := svc.Create(ctx, alice, soupRequest())
	require.NoError(t, err)
	b, err := svc.Create(ctx, bob, soupRequest())
	require.NoError(t, err)

	assert.NotEqual(t, a.Ingredients[0].ID, b.Ingredients[0].ID)
	assert.Equal(t, bob, b.Ingredients[0].UserID)

	_, err = svc.Get(ctx, bob, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Update(ctx, bob, a.ID, service.RecipeRequest{Title: ptr("Stolen")}, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, bob, a.ID), domain.ErrNotFound)

	list, err := svc.List(ctx, bob, domain.RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestRecipeService_CreateValidation(t *testing.T) {
	svc, db := newTestRecipeService(t)
	userID := createUser(t, db, "invalid@example.com")

	_, err := svc.Create(context.Background(), userID, service.RecipeRequest{
		Title:       ptr("   "),
		TimeMinutes: ptr(-5),
		Tags:        names("ok", ""),
	})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "is required", verr.Fields["title"])
	assert.Equal(t, "must be greater than or equal to 0", verr.Fields["time_minutes"])
	assert.Equal(t, "is required", verr.Fields["price"])
	assert.Equal(t, "is required", verr.Fields["tags[1].name"])

	_, err = svc.Create(context.Background(), userID, service.RecipeRequest{
		Title:       ptr("Caviar"),
		TimeMinutes: ptr(1),
		Price:       ptr(domain.Price(100000)),
	})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, domain.ErrPriceDigits.Error(), verr.Fields["price"])

	list, err := svc.List(context.Background(), userID, domain.RecipeFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRecipeService_UpdateBlankTitle(t *testing.T) {
	svc, db := newTestRecipeService(t)
	ctx := context.Background()
	userID := createUser(t, db, "blank@example.com")

	recipe, err := svc.Create(ctx, userID, service.RecipeRequest{
		Title:       ptr("Soup"),
		TimeMinutes: ptr(20),
		Price:       ptr(domain.Price(550)),
	})
	require.NoError(t, err)

	for _, partial := range []bool{true, false} {
		_, err := svc.Update(ctx, userID, recipe.ID, service.RecipeRequest{
			Title:       ptr("  "),
			TimeMinutes: ptr(20),
			Price:       ptr(domain.Price(550)),
		}, partial)
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr), "partial=%v got %v", partial, err)
		assert.Equal(t, "is required", verr.Fields["title"])
	}

	got, err := svc.Get(ctx, userID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soup", got.Title)
}

func TestRecipeService_PartialUpdate(t *testing.T) {
	svc, db := newTestRecipeService(t)
	ctx := context.Background()
	userID := createUser(t, db, "patch@example.com")

	req := soupRequest()
	req.Tags = names("Dinner")
	req.Link = ptr("https://example.com/soup")
	recipe, err := svc.Create(ctx, userID, req)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, userID, recipe.ID, service.RecipeRequest{Title: ptr("Tomato soup")}, true)
	require.NoError(t, err)
	assert.Equal(t, "Tomato soup", updated.Title)
	assert.Equal(t, 20, updated.TimeMinutes)
	assert.Equal(t, domain.Price(550), updated.Price)
	assert.Equal(t, "https://example.com/soup", updated.Link)
	require.Len(t, updated.Tags, 1, "absent tags leave links alone")
	require.Len(t, updated.Ingredients, 1)

	updated, err = svc.Update(ctx, userID, recipe.ID, service.RecipeRequest{Tags: names()}, true)
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)
	assert.Len(t, updated.Ingredients, 1)

	tags, err := db.Tags().ListByUser(ctx, userID, false)
	require.NoError(t, err)
	assert.Len(t, tags, 1, "clearing links keeps tag rows")

	updated, err = svc.Update(ctx, userID, recipe.ID, service.RecipeRequest{Tags: names("Lunch", "Dinner")}, true)
	require.NoError(t, err)
	require.Len(t, updated.Tags, 2)
	assert.Equal(t, "Lunch", updated.Tags[0].Name)
	assert.Equal(t, "Dinner", updated.Tags[1].Name)
}

func TestRecipeService_FullUpdate(t *testing.T) {
	svc, db := newTestRecipeService(t)
	ctx := context.Background()
	userID := createUser(t, db, "put@example.com")

	recipe, err := svc.Create(ctx, userID, soupRequest())
	require.NoError(t, err)

	_, err = svc.Update(ctx, userID, recipe.ID, service.RecipeRequest{Title: ptr("Only title")}, false)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "time_minutes")
	assert.Contains(t, verr.Fields, "price")

	updated, err := svc.Update(ctx, userID, recipe.ID, service.RecipeRequest{
		Title:       ptr("Stew"),
		TimeMinutes: ptr(90),
		Price:       ptr(domain.Price(1250)),
		Ingredients: names("Beef", "Salt"),
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "Stew", updated.Title)
	assert.Equal(t, 90, updated.TimeMinutes)
	assert.Equal(t, domain.Price(1250), updated.Price)
	require.Len(t, updated.Ingredients, 2)
	assert.Equal(t, "Beef", updated.Ingredients[0].Name)
	assert.Equal(t, recipe.Ingredients[0].ID, updated.Ingredients[1].ID)
}

func TestRecipeService_DeleteKeepsIngredients(t *testing.T) {
	svc, db := newTestRecipeService(t)
	ctx := context.Background()
	userID := createUser(t, db, "del@example.com")

	recipe, err := svc.Create(ctx, userID, soupRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userID, recipe.ID))
	_, err = svc.Get(ctx, userID, recipe.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ingredients, err := db.Ingredients().ListByUser(ctx, userID, false)
	require.NoError(t, err)
	assert.Len(t, ingredients, 1)
}

func TestRecipeService_ConcurrentCreatesShareTag(t *testing.T) {
	svc, db := newTestRecipeService(t)
	ctx := context.Background()
	userID := createUser(t, db, "race@example.com")

	const workers = 6
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := soupRequest()
			req.Tags = names("Comfort")
			_, errs[i] = svc.Create(ctx, userID, req)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	tags, err := db.Tags().ListByUser(ctx, userID, false)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	recipes, err := svc.List(ctx, userID, domain.RecipeFilter{TagIDs: []int64{tags[0].ID}})
	require.NoError(t, err)
	assert.Len(t, recipes, workers)
}
