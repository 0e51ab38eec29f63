package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/recipe-api/internal/domain"
	"github.com/msomdec/recipe-api/internal/validation"
)

// RecipeRequest is the payload for creating or updating a recipe. Nil
// fields are absent. A non-nil Tags or Ingredients slice, even an empty
// one, replaces the recipe's current links.
type RecipeRequest struct {
	Title       *string        `json:"title" validate:"omitnil,required,max=255"`
	TimeMinutes *int           `json:"time_minutes" validate:"omitnil,gte=0"`
	Price       *domain.Price  `json:"price"`
	Link        *string        `json:"link" validate:"omitnil,max=255"`
	Description *string        `json:"description"`
	Tags        *[]NameRequest `json:"tags" validate:"omitnil,dive"`
	Ingredients *[]NameRequest `json:"ingredients" validate:"omitnil,dive"`
}

func (r *RecipeRequest) normalize() {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		r.Title = &title
	}
	for _, names := range []*[]NameRequest{r.Tags, r.Ingredients} {
		if names == nil {
			continue
		}
		for i := range *names {
			(*names)[i].normalize()
		}
	}
}

// RecipeService manages recipes and resolves their nested tags and
// ingredients by name for the owning user.
type RecipeService struct {
	store    domain.Store
	tx       domain.Transactor
	validate *validation.Validator
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(store domain.Store, tx domain.Transactor, v *validation.Validator) *RecipeService {
	return &RecipeService{store: store, tx: tx, validate: v}
}

// List returns the user's recipes, newest first.
func (s *RecipeService) List(ctx context.Context, userID int64, filter domain.RecipeFilter) ([]domain.Recipe, error) {
	recipes, err := s.store.Recipes().ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// Get returns a recipe owned by userID with its tags and ingredients.
func (s *RecipeService) Get(ctx context.Context, userID, id int64) (*domain.Recipe, error) {
	return s.store.Recipes().GetByID(ctx, userID, id)
}

// Create stores a new recipe for userID. Tags and ingredients are looked
// up by name and created when the user does not have them yet.
func (s *RecipeService) Create(ctx context.Context, userID int64, req RecipeRequest) (*domain.Recipe, error) {
	if err := s.check(&req, true); err != nil {
		return nil, err
	}

	recipe := &domain.Recipe{UserID: userID}
	applyRecipeFields(recipe, req)

	var created *domain.Recipe
	err := s.tx.InTx(ctx, func(st domain.Store) error {
		if err := st.Recipes().Create(ctx, recipe); err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		if err := replaceRelations(ctx, st, recipe, req); err != nil {
			return err
		}
		var err error
		created, err = st.Recipes().GetByID(ctx, userID, recipe.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update changes a recipe owned by userID. With partial set only the
// fields present in req are checked and written; otherwise title,
// time_minutes and price are required. Relations follow RecipeRequest.
func (s *RecipeService) Update(ctx context.Context, userID, id int64, req RecipeRequest, partial bool) (*domain.Recipe, error) {
	if err := s.check(&req, !partial); err != nil {
		return nil, err
	}

	var updated *domain.Recipe
	err := s.tx.InTx(ctx, func(st domain.Store) error {
		recipe, err := st.Recipes().GetByID(ctx, userID, id)
		if err != nil {
			return err
		}

		applyRecipeFields(recipe, req)
		if err := st.Recipes().Update(ctx, recipe); err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		if err := replaceRelations(ctx, st, recipe, req); err != nil {
			return err
		}

		updated, err = st.Recipes().GetByID(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a recipe owned by userID. Linked tags and ingredients
// are kept.
func (s *RecipeService) Delete(ctx context.Context, userID, id int64) error {
	return s.store.Recipes().Delete(ctx, userID, id)
}

func (s *RecipeService) check(req *RecipeRequest, full bool) error {
	req.normalize()

	verr := domain.NewValidationError()
	if req.Title != nil && *req.Title == "" {
		verr.Add("title", "is required")
	}
	if full {
		if req.Title == nil {
			verr.Add("title", "is required")
		}
		if req.TimeMinutes == nil {
			verr.Add("time_minutes", "is required")
		}
		if req.Price == nil {
			verr.Add("price", "is required")
		}
	}
	if req.Price != nil {
		if err := req.Price.Validate(); err != nil {
			verr.Add("price", err.Error())
		}
	}
	if err := s.validate.Validate(req); err != nil {
		var fields *domain.ValidationError
		if !errors.As(err, &fields) {
			return err
		}
		verr.Merge(fields)
	}
	return verr.OrNil()
}

func applyRecipeFields(recipe *domain.Recipe, req RecipeRequest) {
	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
}

// replaceRelations clears and re-attaches each relation present in req,
// resolving names in payload order.
func replaceRelations(ctx context.Context, st domain.Store, recipe *domain.Recipe, req RecipeRequest) error {
	recipes := st.Recipes()

	if req.Tags != nil {
		if err := recipes.ClearTags(ctx, recipe.ID); err != nil {
			return fmt.Errorf("clear tags: %w", err)
		}
		for _, t := range *req.Tags {
			tag, err := st.Tags().GetOrCreate(ctx, recipe.UserID, t.Name)
			if err != nil {
				return fmt.Errorf("resolve tag %q: %w", t.Name, err)
			}
			if err := recipes.AttachTag(ctx, recipe.ID, tag.ID); err != nil {
				return fmt.Errorf("attach tag: %w", err)
			}
		}
	}

	if req.Ingredients != nil {
		if err := recipes.ClearIngredients(ctx, recipe.ID); err != nil {
			return fmt.Errorf("clear ingredients: %w", err)
		}
		for _, i := range *req.Ingredients {
			ingredient, err := st.Ingredients().GetOrCreate(ctx, recipe.UserID, i.Name)
			if err != nil {
				return fmt.Errorf("resolve ingredient %q: %w", i.Name, err)
			}
			if err := recipes.AttachIngredient(ctx, recipe.ID, ingredient.ID); err != nil {
				return fmt.Errorf("attach ingredient: %w", err)
			}
		}
	}

	return nil
}
