package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/recipe-api/internal/domain"
)

// nameRow is a row of an owner-scoped table keyed by (user_id, name).
// Tags and ingredients share this shape.
type nameRow struct {
	ID        int64
	UserID    int64
	Name      string
	CreatedAt time.Time
}

// nameTable runs the queries common to tags and ingredients. linkTable and
// linkColumn name the recipe join table used by the assigned-only filter.
type nameTable struct {
	db         dbtx
	table      string
	linkTable  string
	linkColumn string
}

func tagTable(db dbtx) nameTable {
	return nameTable{db: db, table: "tags", linkTable: "recipe_tags", linkColumn: "tag_id"}
}

func ingredientTable(db dbtx) nameTable {
	return nameTable{db: db, table: "ingredients", linkTable: "recipe_ingredients", linkColumn: "ingredient_id"}
}

func (t nameTable) insert(ctx context.Context, userID int64, name string) (nameRow, error) {
	now := time.Now().UTC()
	result, err := t.db.ExecContext(ctx,
		`INSERT INTO `+t.table+` (user_id, name, created_at) VALUES (?, ?, ?)`,
		userID, name, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nameRow{}, domain.ErrDuplicateName
		}
		return nameRow{}, fmt.Errorf("insert %s: %w", t.table, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nameRow{}, fmt.Errorf("get last insert id: %w", err)
	}
	return nameRow{ID: id, UserID: userID, Name: name, CreatedAt: now}, nil
}

func (t nameTable) getByID(ctx context.Context, userID, id int64) (nameRow, error) {
	return t.scanOne(t.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, created_at FROM `+t.table+` WHERE id = ? AND user_id = ?`,
		id, userID,
	))
}

func (t nameTable) getByName(ctx context.Context, userID int64, name string) (nameRow, error) {
	return t.scanOne(t.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, created_at FROM `+t.table+` WHERE user_id = ? AND name = ?`,
		userID, name,
	))
}

// getOrCreate looks the name up and inserts it when absent. If the insert
// loses a race against a concurrent writer the unique constraint rejects it
// and the lookup is repeated to return the winning row.
func (t nameTable) getOrCreate(ctx context.Context, userID int64, name string) (nameRow, error) {
	row, err := t.getByName(ctx, userID, name)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nameRow{}, err
	}

	row, err = t.insert(ctx, userID, name)
	if errors.Is(err, domain.ErrDuplicateName) {
		return t.getByName(ctx, userID, name)
	}
	return row, err
}

func (t nameTable) listByUser(ctx context.Context, userID int64, assignedOnly bool) ([]nameRow, error) {
	query := `SELECT n.id, n.user_id, n.name, n.created_at FROM ` + t.table + ` n WHERE n.user_id = ?`
	if assignedOnly {
		query += ` AND EXISTS (SELECT 1 FROM ` + t.linkTable + ` l WHERE l.` + t.linkColumn + ` = n.id)`
	}
	query += ` ORDER BY n.name DESC, n.id DESC`

	rows, err := t.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()

	var out []nameRow
	for rows.Next() {
		var r nameRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.table, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (t nameTable) rename(ctx context.Context, userID, id int64, name string) error {
	result, err := t.db.ExecContext(ctx,
		`UPDATE `+t.table+` SET name = ? WHERE id = ? AND user_id = ?`,
		name, id, userID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update %s: %w", t.table, err)
	}
	return expectOneRow(result)
}

func (t nameTable) delete(ctx context.Context, userID, id int64) error {
	result, err := t.db.ExecContext(ctx,
		`DELETE FROM `+t.table+` WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.table, err)
	}
	return expectOneRow(result)
}

func (t nameTable) scanOne(row *sql.Row) (nameRow, error) {
	var r nameRow
	err := row.Scan(&r.ID, &r.UserID, &r.Name, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nameRow{}, domain.ErrNotFound
	}
	if err != nil {
		return nameRow{}, fmt.Errorf("get %s: %w", t.table, err)
	}
	return r, nil
}
