package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/recipe-api/internal/domain"
)

// recipeRepo implements domain.RecipeRepository using SQLite.
type recipeRepo struct {
	db dbtx
}

const recipeColumns = `id, user_id, title, time_minutes, price_cents, link, description, created_at, updated_at`

func (r *recipeRepo) Create(ctx context.Context, recipe *domain.Recipe) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO recipes (user_id, title, time_minutes, price_cents, link, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		recipe.UserID, recipe.Title, recipe.TimeMinutes, int64(recipe.Price),
		recipe.Link, recipe.Description, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert recipe: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get recipe id: %w", err)
	}

	recipe.ID = id
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	return nil
}

func (r *recipeRepo) GetByID(ctx context.Context, userID, id int64) (*domain.Recipe, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ? AND user_id = ?`, id, userID)

	recipe, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	recipes := []domain.Recipe{*recipe}
	if err := r.loadRelations(ctx, recipes); err != nil {
		return nil, err
	}
	return &recipes[0], nil
}

func (r *recipeRepo) ListByUser(ctx context.Context, userID int64, filter domain.RecipeFilter) ([]domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE user_id = ?`
	args := []any{userID}

	if len(filter.TagIDs) > 0 {
		query += ` AND id IN (SELECT recipe_id FROM recipe_tags WHERE tag_id IN (` + placeholders(len(filter.TagIDs)) + `))`
		args = appendIDs(args, filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		query += ` AND id IN (SELECT recipe_id FROM recipe_ingredients WHERE ingredient_id IN (` + placeholders(len(filter.IngredientIDs)) + `))`
		args = appendIDs(args, filter.IngredientIDs)
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []domain.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, *recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Release the connection before loading relations.
	rows.Close()

	if err := r.loadRelations(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepo) Update(ctx context.Context, recipe *domain.Recipe) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE recipes SET title = ?, time_minutes = ?, price_cents = ?, link = ?, description = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		recipe.Title, recipe.TimeMinutes, int64(recipe.Price), recipe.Link, recipe.Description, now,
		recipe.ID, recipe.UserID,
	)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	if err := expectOneRow(result); err != nil {
		return err
	}

	recipe.UpdatedAt = now
	return nil
}

func (r *recipeRepo) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM recipes WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return expectOneRow(result)
}

// AttachTag links a tag to a recipe. The insert only happens when both rows
// share an owner, and linking an already linked tag is a no-op.
func (r *recipeRepo) AttachTag(ctx context.Context, recipeID, tagID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO recipe_tags (recipe_id, tag_id)
		 SELECT r.id, t.id FROM recipes r JOIN tags t ON t.user_id = r.user_id
		 WHERE r.id = ? AND t.id = ?
		 ON CONFLICT (recipe_id, tag_id) DO NOTHING`,
		recipeID, tagID,
	)
	if err != nil {
		return fmt.Errorf("attach tag: %w", err)
	}
	return nil
}

func (r *recipeRepo) ClearTags(ctx context.Context, recipeID int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM recipe_tags WHERE recipe_id = ?", recipeID); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	return nil
}

// AttachIngredient links an ingredient to a recipe with the same rules as
// AttachTag.
func (r *recipeRepo) AttachIngredient(ctx context.Context, recipeID, ingredientID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO recipe_ingredients (recipe_id, ingredient_id)
		 SELECT r.id, i.id FROM recipes r JOIN ingredients i ON i.user_id = r.user_id
		 WHERE r.id = ? AND i.id = ?
		 ON CONFLICT (recipe_id, ingredient_id) DO NOTHING`,
		recipeID, ingredientID,
	)
	if err != nil {
		return fmt.Errorf("attach ingredient: %w", err)
	}
	return nil
}

func (r *recipeRepo) ClearIngredients(ctx context.Context, recipeID int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM recipe_ingredients WHERE recipe_id = ?", recipeID); err != nil {
		return fmt.Errorf("clear ingredients: %w", err)
	}
	return nil
}

// loadRelations fills Tags and Ingredients for every recipe in place, in
// attachment order.
func (r *recipeRepo) loadRelations(ctx context.Context, recipes []domain.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	index := make(map[int64]int, len(recipes))
	ids := make([]int64, len(recipes))
	for i, rec := range recipes {
		index[rec.ID] = i
		ids[i] = rec.ID
		recipes[i].Tags = []domain.Tag{}
		recipes[i].Ingredients = []domain.Ingredient{}
	}

	tags, err := r.loadLinked(ctx, "recipe_tags", "tag_id", "tags", ids)
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	for _, l := range tags {
		i := index[l.recipeID]
		recipes[i].Tags = append(recipes[i].Tags, toTag(l.row))
	}

	ingredients, err := r.loadLinked(ctx, "recipe_ingredients", "ingredient_id", "ingredients", ids)
	if err != nil {
		return fmt.Errorf("load ingredients: %w", err)
	}
	for _, l := range ingredients {
		i := index[l.recipeID]
		recipes[i].Ingredients = append(recipes[i].Ingredients, toIngredient(l.row))
	}
	return nil
}

type linkedRow struct {
	recipeID int64
	row      nameRow
}

func (r *recipeRepo) loadLinked(ctx context.Context, linkTable, linkColumn, table string, recipeIDs []int64) ([]linkedRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT l.recipe_id, n.id, n.user_id, n.name, n.created_at
		 FROM `+linkTable+` l JOIN `+table+` n ON n.id = l.`+linkColumn+`
		 WHERE l.recipe_id IN (`+placeholders(len(recipeIDs))+`)
		 ORDER BY l.id`,
		appendIDs(nil, recipeIDs)...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []linkedRow
	for rows.Next() {
		var l linkedRow
		if err := rows.Scan(&l.recipeID, &l.row.ID, &l.row.UserID, &l.row.Name, &l.row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*domain.Recipe, error) {
	var (
		rec   domain.Recipe
		cents int64
	)
	err := scanner.Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.TimeMinutes, &cents,
		&rec.Link, &rec.Description, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.Price = domain.Price(cents)
	return &rec, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func appendIDs(args []any, ids []int64) []any {
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}
