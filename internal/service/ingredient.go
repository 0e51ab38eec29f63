package service

import (
	"context"
	"fmt"

	"github.com/msomdec/recipe-api/internal/domain"
	"github.com/msomdec/recipe-api/internal/validation"
)

// IngredientService manages the ingredients owned by a user.
type IngredientService struct {
	ingredients domain.IngredientRepository
	validate    *validation.Validator
}

// NewIngredientService creates a new IngredientService.
func NewIngredientService(ingredients domain.IngredientRepository, v *validation.Validator) *IngredientService {
	return &IngredientService{ingredients: ingredients, validate: v}
}

// List returns the user's ingredients ordered by name descending. With
// assignedOnly set, only ingredients attached to at least one recipe are returned.
func (s *IngredientService) List(ctx context.Context, userID int64, assignedOnly bool) ([]domain.Ingredient, error) {
	ingredients, err := s.ingredients.ListByUser(ctx, userID, assignedOnly)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

// Get returns an ingredient owned by userID.
func (s *IngredientService) Get(ctx context.Context, userID, id int64) (*domain.Ingredient, error) {
	return s.ingredients.GetByID(ctx, userID, id)
}

// Create adds an ingredient for userID.
func (s *IngredientService) Create(ctx context.Context, userID int64, req NameRequest) (*domain.Ingredient, error) {
	req.normalize()
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	ingredient := &domain.Ingredient{UserID: userID, Name: req.Name}
	if err := s.ingredients.Create(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("create ingredient: %w", duplicateNameError(err))
	}
	return ingredient, nil
}

// Rename changes the name of an ingredient owned by userID.
func (s *IngredientService) Rename(ctx context.Context, userID, id int64, req NameRequest) (*domain.Ingredient, error) {
	req.normalize()
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	ingredient, err := s.ingredients.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	ingredient.Name = req.Name
	if err := s.ingredients.Update(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("update ingredient: %w", duplicateNameError(err))
	}
	return ingredient, nil
}

// Delete removes an ingredient owned by userID. Its recipe links go with it.
func (s *IngredientService) Delete(ctx context.Context, userID, id int64) error {
	return s.ingredients.Delete(ctx, userID, id)
}
