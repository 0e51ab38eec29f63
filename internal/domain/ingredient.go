package domain

import (
	"context"
	"time"
)

// Ingredient is a user-owned ingredient attached to recipes. Names are
// unique per owner.
type Ingredient struct {
	ID        int64
	UserID    int64
	Name      string
	CreatedAt time.Time
}

// IngredientRepository mirrors TagRepository for ingredients.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *Ingredient) error
	GetByID(ctx context.Context, userID, id int64) (*Ingredient, error)
	GetOrCreate(ctx context.Context, userID int64, name string) (*Ingredient, error)
	ListByUser(ctx context.Context, userID int64, assignedOnly bool) ([]Ingredient, error)
	Update(ctx context.Context, ingredient *Ingredient) error
	Delete(ctx context.Context, userID, id int64) error
}
