package sqlite

import (
	"context"

	"github.com/msomdec/recipe-api/internal/domain"
)

// tagRepo implements domain.TagRepository using SQLite.
type tagRepo struct {
	t nameTable
}

func (r *tagRepo) Create(ctx context.Context, tag *domain.Tag) error {
	row, err := r.t.insert(ctx, tag.UserID, tag.Name)
	if err != nil {
		return err
	}
	*tag = toTag(row)
	return nil
}

func (r *tagRepo) GetByID(ctx context.Context, userID, id int64) (*domain.Tag, error) {
	row, err := r.t.getByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	tag := toTag(row)
	return &tag, nil
}

func (r *tagRepo) GetOrCreate(ctx context.Context, userID int64, name string) (*domain.Tag, error) {
	row, err := r.t.getOrCreate(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	tag := toTag(row)
	return &tag, nil
}

func (r *tagRepo) ListByUser(ctx context.Context, userID int64, assignedOnly bool) ([]domain.Tag, error) {
	rows, err := r.t.listByUser(ctx, userID, assignedOnly)
	if err != nil {
		return nil, err
	}
	tags := make([]domain.Tag, len(rows))
	for i, row := range rows {
		tags[i] = toTag(row)
	}
	return tags, nil
}

func (r *tagRepo) Update(ctx context.Context, tag *domain.Tag) error {
	return r.t.rename(ctx, tag.UserID, tag.ID, tag.Name)
}

func (r *tagRepo) Delete(ctx context.Context, userID, id int64) error {
	return r.t.delete(ctx, userID, id)
}

func toTag(row nameRow) domain.Tag {
	return domain.Tag{ID: row.ID, UserID: row.UserID, Name: row.Name, CreatedAt: row.CreatedAt}
}
