package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/msomdec/recipe-api/internal/domain"
)

// pathID parses the {id} URL parameter. Ids that are not positive
// integers cannot name a row, so callers answer 404.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryBool reads a flag such as ?assigned_only=1. Absent means false.
func queryBool(r *http.Request, key string) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domain.FieldError(key, "must be 0 or 1")
	}
	return v, nil
}

// queryIDs reads a comma separated id list such as ?tags=1,2.
func queryIDs(r *http.Request, key string) ([]int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, domain.FieldError(key, "must be a comma separated list of ids")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
