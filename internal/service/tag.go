package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/recipe-api/internal/domain"
	"github.com/msomdec/recipe-api/internal/validation"
)

// NameRequest is the payload for creating or renaming a tag or ingredient.
type NameRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (r *NameRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func duplicateNameError(err error) error {
	if errors.Is(err, domain.ErrDuplicateName) {
		return domain.FieldError("name", "already exists")
	}
	return err
}

// TagService manages the tags owned by a user.
type TagService struct {
	tags     domain.TagRepository
	validate *validation.Validator
}

// NewTagService creates a new TagService.
func NewTagService(tags domain.TagRepository, v *validation.Validator) *TagService {
	return &TagService{tags: tags, validate: v}
}

// List returns the user's tags ordered by name descending. With
// assignedOnly set, only tags attached to at least one recipe are returned.
func (s *TagService) List(ctx context.Context, userID int64, assignedOnly bool) ([]domain.Tag, error) {
	tags, err := s.tags.ListByUser(ctx, userID, assignedOnly)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// Get returns a tag owned by userID.
func (s *TagService) Get(ctx context.Context, userID, id int64) (*domain.Tag, error) {
	return s.tags.GetByID(ctx, userID, id)
}

// Create adds a tag for userID.
func (s *TagService) Create(ctx context.Context, userID int64, req NameRequest) (*domain.Tag, error) {
	req.normalize()
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	tag := &domain.Tag{UserID: userID, Name: req.Name}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", duplicateNameError(err))
	}
	return tag, nil
}

// Rename changes the name of a tag owned by userID.
func (s *TagService) Rename(ctx context.Context, userID, id int64, req NameRequest) (*domain.Tag, error) {
	req.normalize()
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	tag, err := s.tags.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	tag.Name = req.Name
	if err := s.tags.Update(ctx, tag); err != nil {
		return nil, fmt.Errorf("update tag: %w", duplicateNameError(err))
	}
	return tag, nil
}

// Delete removes a tag owned by userID. Its recipe links go with it.
func (s *TagService) Delete(ctx context.Context, userID, id int64) error {
	return s.tags.Delete(ctx, userID, id)
}
