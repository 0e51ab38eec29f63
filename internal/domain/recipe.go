package domain

import (
	"context"
	"time"
)

// Recipe is a user-owned recipe. Tags and Ingredients are kept in the order
// they were attached.
type Recipe struct {
	ID          int64
	UserID      int64
	Title       string
	TimeMinutes int
	Price       Price
	Link        string
	Description string
	Tags        []Tag
	Ingredients []Ingredient
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecipeFilter narrows a recipe listing. A recipe matches when it carries
// any of TagIDs (if set) and any of IngredientIDs (if set).
type RecipeFilter struct {
	TagIDs        []int64
	IngredientIDs []int64
}

// RecipeRepository defines owner-scoped persistence operations for recipes.
// GetByID and ListByUser load the related tags and ingredients.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *Recipe) error
	GetByID(ctx context.Context, userID, id int64) (*Recipe, error)
	ListByUser(ctx context.Context, userID int64, filter RecipeFilter) ([]Recipe, error)
	// Update writes the scalar fields of recipe. Relations are changed
	// through the Attach and Clear methods.
	Update(ctx context.Context, recipe *Recipe) error
	Delete(ctx context.Context, userID, id int64) error

	AttachTag(ctx context.Context, recipeID, tagID int64) error
	ClearTags(ctx context.Context, recipeID int64) error
	AttachIngredient(ctx context.Context, recipeID, ingredientID int64) error
	ClearIngredients(ctx context.Context, recipeID int64) error
}
