package handler

import (
	"context"
	"net/http"

	"github.com/msomdec/recipe-api/internal/domain"
	"github.com/msomdec/recipe-api/internal/service"
)

type nameService[T any] interface {
	List(ctx context.Context, userID int64, assignedOnly bool) ([]T, error)
	Get(ctx context.Context, userID, id int64) (*T, error)
	Create(ctx context.Context, userID int64, req service.NameRequest) (*T, error)
	Rename(ctx context.Context, userID, id int64, req service.NameRequest) (*T, error)
	Delete(ctx context.Context, userID, id int64) error
}

// NameHandler serves the CRUD endpoints shared by tags and ingredients.
type NameHandler[T any] struct {
	svc   nameService[T]
	toDTO func(T) NameDTO
	noun  string
}

// NewTagHandler serves /api/tags.
func NewTagHandler(tags *service.TagService) *NameHandler[domain.Tag] {
	return &NameHandler[domain.Tag]{svc: tags, toDTO: toTagDTO, noun: "tag"}
}

// NewIngredientHandler serves /api/ingredients.
func NewIngredientHandler(ingredients *service.IngredientService) *NameHandler[domain.Ingredient] {
	return &NameHandler[domain.Ingredient]{svc: ingredients, toDTO: toIngredientDTO, noun: "ingredient"}
}

// HandleList returns the caller's entries ordered by name descending.
// GET /api/tags?assigned_only=1
func (h *NameHandler[T]) HandleList(w http.ResponseWriter, r *http.Request) {
	assignedOnly, err := queryBool(r, "assigned_only")
	if err != nil {
		writeServiceError(w, r, "parse "+h.noun+" query", err)
		return
	}

	items, err := h.svc.List(r.Context(), UserFromContext(r.Context()).ID, assignedOnly)
	if err != nil {
		writeServiceError(w, r, "list "+h.noun+"s", err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, h.toDTO))
}

// HandleCreate adds an entry for the caller.
// POST /api/tags
// Request: {"name":"..."}
func (h *NameHandler[T]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req service.NameRequest
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, r, "decode "+h.noun, err)
		return
	}

	item, err := h.svc.Create(r.Context(), UserFromContext(r.Context()).ID, req)
	if err != nil {
		writeServiceError(w, r, "create "+h.noun, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.toDTO(*item))
}

// HandleGet returns one of the caller's entries.
// GET /api/tags/{id}
func (h *NameHandler[T]) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeServiceError(w, r, "get "+h.noun, domain.ErrNotFound)
		return
	}

	item, err := h.svc.Get(r.Context(), UserFromContext(r.Context()).ID, id)
	if err != nil {
		writeServiceError(w, r, "get "+h.noun, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toDTO(*item))
}

// HandleUpdate renames one of the caller's entries. PUT and PATCH both
// map here since name is the only writable field.
// PATCH /api/tags/{id}
// Request: {"name":"..."}
func (h *NameHandler[T]) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeServiceError(w, r, "update "+h.noun, domain.ErrNotFound)
		return
	}

	var req service.NameRequest
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, r, "decode "+h.noun, err)
		return
	}

	item, err := h.svc.Rename(r.Context(), UserFromContext(r.Context()).ID, id, req)
	if err != nil {
		writeServiceError(w, r, "update "+h.noun, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toDTO(*item))
}

// HandleDelete removes one of the caller's entries.
// DELETE /api/tags/{id}
// Response: 204 No Content
func (h *NameHandler[T]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeServiceError(w, r, "delete "+h.noun, domain.ErrNotFound)
		return
	}

	if err := h.svc.Delete(r.Context(), UserFromContext(r.Context()).ID, id); err != nil {
		writeServiceError(w, r, "delete "+h.noun, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
