package domain

import (
	"context"
	"time"
)

// Tag is a user-owned label attached to recipes. Names are unique per owner.
type Tag struct {
	ID        int64
	UserID    int64
	Name      string
	CreatedAt time.Time
}

// TagRepository defines owner-scoped persistence operations for tags.
// A tag owned by another user is reported as ErrNotFound.
type TagRepository interface {
	Create(ctx context.Context, tag *Tag) error
	GetByID(ctx context.Context, userID, id int64) (*Tag, error)
	// GetOrCreate returns the owner's tag with the given name, inserting it
	// first when absent.
	GetOrCreate(ctx context.Context, userID int64, name string) (*Tag, error)
	// ListByUser returns the owner's tags ordered by name descending. When
	// assignedOnly is set, tags not linked to any recipe are left out.
	ListByUser(ctx context.Context, userID int64, assignedOnly bool) ([]Tag, error)
	Update(ctx context.Context, tag *Tag) error
	Delete(ctx context.Context, userID, id int64) error
}
