package sqlite

import (
	"context"

	"github.com/msomdec/recipe-api/internal/domain"
)

// ingredientRepo implements domain.IngredientRepository using SQLite.
type ingredientRepo struct {
	t nameTable
}

func (r *ingredientRepo) Create(ctx context.Context, ingredient *domain.Ingredient) error {
	row, err := r.t.insert(ctx, ingredient.UserID, ingredient.Name)
	if err != nil {
		return err
	}
	*ingredient = toIngredient(row)
	return nil
}

func (r *ingredientRepo) GetByID(ctx context.Context, userID, id int64) (*domain.Ingredient, error) {
	row, err := r.t.getByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	ingredient := toIngredient(row)
	return &ingredient, nil
}

func (r *ingredientRepo) GetOrCreate(ctx context.Context, userID int64, name string) (*domain.Ingredient, error) {
	row, err := r.t.getOrCreate(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	ingredient := toIngredient(row)
	return &ingredient, nil
}

func (r *ingredientRepo) ListByUser(ctx context.Context, userID int64, assignedOnly bool) ([]domain.Ingredient, error) {
	rows, err := r.t.listByUser(ctx, userID, assignedOnly)
	if err != nil {
		return nil, err
	}
	ingredients := make([]domain.Ingredient, len(rows))
	for i, row := range rows {
		ingredients[i] = toIngredient(row)
	}
	return ingredients, nil
}

func (r *ingredientRepo) Update(ctx context.Context, ingredient *domain.Ingredient) error {
	return r.t.rename(ctx, ingredient.UserID, ingredient.ID, ingredient.Name)
}

func (r *ingredientRepo) Delete(ctx context.Context, userID, id int64) error {
	return r.t.delete(ctx, userID, id)
}

func toIngredient(row nameRow) domain.Ingredient {
	return domain.Ingredient{ID: row.ID, UserID: row.UserID, Name: row.Name, CreatedAt: row.CreatedAt}
}
