package handler

import (
	"encoding/json"
	"net/http"

	"github.com/msomdec/recipe-api/internal/domain"
	"github.com/msomdec/recipe-api/internal/service"
)

// RecipeHandler handles recipe HTTP requests.
type RecipeHandler struct {
	recipes *service.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// recipeRequest mirrors service.RecipeRequest but keeps price raw so that
// a bad price is reported against the price field.
type recipeRequest struct {
	Title       *string                `json:"title"`
	TimeMinutes *int                   `json:"time_minutes"`
	Price       *json.RawMessage       `json:"price"`
	Link        *string                `json:"link"`
	Description *string                `json:"description"`
	Tags        *[]service.NameRequest `json:"tags"`
	Ingredients *[]service.NameRequest `json:"ingredients"`
}

func (req recipeRequest) toService() (service.RecipeRequest, error) {
	out := service.RecipeRequest{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Link:        req.Link,
		Description: req.Description,
		Tags:        req.Tags,
		Ingredients: req.Ingredients,
	}
	if req.Price != nil {
		var price domain.Price
		if err := price.UnmarshalJSON(*req.Price); err != nil {
			return out, domain.FieldError("price", err.Error())
		}
		out.Price = &price
	}
	return out, nil
}

func decodeRecipe(w http.ResponseWriter, r *http.Request) (service.RecipeRequest, error) {
	var req recipeRequest
	if err := readJSON(w, r, &req); err != nil {
		return service.RecipeRequest{}, err
	}
	return req.toService()
}

// HandleList returns the caller's recipes, newest first, optionally
// narrowed to recipes carrying any of the given tag or ingredient ids.
// GET /api/recipes?tags=1,2&ingredients=3
func (h *RecipeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tagIDs, err := queryIDs(r, "tags")
	if err != nil {
		writeServiceError(w, r, "parse recipe query", err)
		return
	}
	ingredientIDs, err := queryIDs(r, "ingredients")
	if err != nil {
		writeServiceError(w, r, "parse recipe query", err)
		return
	}

	recipes, err := h.recipes.List(r.Context(), UserFromContext(r.Context()).ID, domain.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		writeServiceError(w, r, "list recipes", err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(recipes, toRecipeDTO))
}

// HandleCreate stores a recipe for the caller, creating any named tags and
// ingredients the caller does not have yet.
// POST /api/recipes
// Request:  {"title":"Soup","time_minutes":20,"price":"5.50","ingredients":[{"name":"Salt"}]}
// Response: 201 detail representation
func (h *RecipeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRecipe(w, r)
	if err != nil {
		writeServiceError(w, r, "decode recipe", err)
		return
	}

	recipe, err := h.recipes.Create(r.Context(), UserFromContext(r.Context()).ID, req)
	if err != nil {
		writeServiceError(w, r, "create recipe", err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecipeDetailDTO(recipe))
}

// HandleGet returns one of the caller's recipes.
// GET /api/recipes/{id}
func (h *RecipeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeServiceError(w, r, "get recipe", domain.ErrNotFound)
		return
	}

	recipe, err := h.recipes.Get(r.Context(), UserFromContext(r.Context()).ID, id)
	if err != nil {
		writeServiceError(w, r, "get recipe", err)
		return
	}
	writeJSON(w, http.StatusOK, toRecipeDetailDTO(recipe))
}

// HandlePatch applies a partial update.
// PATCH /api/recipes/{id}
func (h *RecipeHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

// HandlePut replaces the recipe's fields; title, time_minutes and price
// are required.
// PUT /api/recipes/{id}
func (h *RecipeHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

func (h *RecipeHandler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	id, ok := pathID(r)
	if !ok {
		writeServiceError(w, r, "update recipe", domain.ErrNotFound)
		return
	}

	req, err := decodeRecipe(w, r)
	if err != nil {
		writeServiceError(w, r, "decode recipe", err)
		return
	}

	recipe, err := h.recipes.Update(r.Context(), UserFromContext(r.Context()).ID, id, req, partial)
	if err != nil {
		writeServiceError(w, r, "update recipe", err)
		return
	}
	writeJSON(w, http.StatusOK, toRecipeDetailDTO(recipe))
}

// HandleDelete removes one of the caller's recipes. Its tags and
// ingredients are kept.
// DELETE /api/recipes/{id}
// Response: 204 No Content
func (h *RecipeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeServiceError(w, r, "delete recipe", domain.ErrNotFound)
		return
	}

	if err := h.recipes.Delete(r.Context(), UserFromContext(r.Context()).ID, id); err != nil {
		writeServiceError(w, r, "delete recipe", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
