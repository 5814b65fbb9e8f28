package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// errorResponse is the wire shape of every failure.
type errorResponse struct {
	Error string `json:"error"`
}

// pageResponse is the envelope for every filtered listing.
type pageResponse[T any] struct {
	Content       []T `json:"content"`
	PageNumber    int `json:"pageNumber"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

func toPageResponse[T, U any](p *domain.Page[T], fn func(T) U) pageResponse[U] {
	items := make([]U, len(p.Items))
	for i, it := range p.Items {
		items[i] = fn(it)
	}
	totalPages := 0
	if p.PageSize > 0 {
		totalPages = (p.TotalElements + p.PageSize - 1) / p.PageSize
	}
	return pageResponse[U]{
		Content:       items,
		PageNumber:    p.PageNumber,
		PageSize:      p.PageSize,
		TotalElements: p.TotalElements,
		TotalPages:    totalPages,
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads the request body into v. A malformed body is a
// validation failure, not a server one.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.NewValidationError("body", "malformed JSON")
	}
	return nil
}

// pathUUID parses the named path segment as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a valid UUID")
	}
	return id, nil
}

// parseListFilter reads the shared listing query parameters. Resource
// handlers fill in their own taxonomy filters on top.
func parseListFilter(r *http.Request) (domain.ListFilter, error) {
	q := r.URL.Query()
	f := domain.ListFilter{
		SortBy:    q.Get("sortField"),
		SortOrder: q.Get("sortDirection"),
	}

	if v := q.Get("title"); v != "" {
		f.Name = &v
	}
	if v := q.Get("description"); v != "" {
		f.Description = &v
	}

	var err error
	if f.IsCustom, err = queryBool(q.Get("isCustom"), "isCustom"); err != nil {
		return f, err
	}
	if f.NeedsEquipment, err = queryBool(q.Get("needsEquipment"), "needsEquipment"); err != nil {
		return f, err
	}
	if f.PageNumber, err = queryInt(q.Get("pageNumber"), "pageNumber"); err != nil {
		return f, err
	}
	if f.PageSize, err = queryInt(q.Get("pageSize"), "pageSize"); err != nil {
		return f, err
	}
	return f, nil
}

func queryBool(raw, name string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be a boolean")
	}
	return &v, nil
}

func queryInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return v, nil
}

func queryUUID(raw, name string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be a valid UUID")
	}
	return &id, nil
}
