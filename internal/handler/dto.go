package handler

import (
	"github.com/msomdec/recipe-api/internal/domain"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// NameDTO is the JSON representation of a tag or an ingredient.
type NameDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toTagDTO(t domain.Tag) NameDTO {
	return NameDTO{ID: t.ID, Name: t.Name}
}

func toIngredientDTO(i domain.Ingredient) NameDTO {
	return NameDTO{ID: i.ID, Name: i.Name}
}

// RecipeDTO is the list representation of a recipe.
type RecipeDTO struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	TimeMinutes int          `json:"time_minutes"`
	Price       domain.Price `json:"price"`
	Link        string       `json:"link"`
	Tags        []NameDTO    `json:"tags"`
	Ingredients []NameDTO    `json:"ingredients"`
}

// RecipeDetailDTO adds the description to the list representation.
type RecipeDetailDTO struct {
	RecipeDTO
	Description string `json:"description"`
}

func toRecipeDTO(r domain.Recipe) RecipeDTO {
	return RecipeDTO{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        mapSlice(r.Tags, toTagDTO),
		Ingredients: mapSlice(r.Ingredients, toIngredientDTO),
	}
}

func toRecipeDetailDTO(r *domain.Recipe) RecipeDetailDTO {
	return RecipeDetailDTO{
		RecipeDTO:   toRecipeDTO(*r),
		Description: r.Description,
	}
}

// mapSlice converts every element with fn. The result is never nil so that
// empty collections encode as [].
func mapSlice[S, D any](in []S, fn func(S) D) []D {
	out := make([]D, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}
