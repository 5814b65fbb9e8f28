package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
	"github.com/wellforge/lifestyle-backend/internal/service/httpref"
	"github.com/wellforge/lifestyle-backend/pkg/ctxutil"
)

type httpRefService interface {
	Create(ctx context.Context, userID uuid.UUID, input httpref.CreateInput) (*domain.HttpRef, error)
	GetByID(ctx context.Context, userID, id uuid.UUID, requested domain.Visibility) (*domain.HttpRef, error)
	ListWithFilter(ctx context.Context, userID uuid.UUID, f domain.ListFilter) (*domain.Page[domain.HttpRef], error)
	Update(ctx context.Context, userID uuid.UUID, input httpref.UpdateInput) (*domain.HttpRef, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (uuid.UUID, error)
}

// HttpRefHandler serves http reference endpoints under /workouts/httpRefs.
type HttpRefHandler struct {
	svc httpRefService
	log *slog.Logger
}

// NewHttpRefHandler creates an HttpRefHandler.
func NewHttpRefHandler(svc httpRefService, logger *slog.Logger) *HttpRefHandler {
	return &HttpRefHandler{svc: svc, log: logger.With("handler", "httprefs")}
}

type httpRefResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Ref         string  `json:"ref"`
	Description *string `json:"description,omitempty"`
	IsCustom    bool    `json:"isCustom"`
}

type createHttpRefRequest struct {
	Name        string  `json:"name"`
	Ref         string  `json:"ref"`
	Description *string `json:"description,omitempty"`
}

type updateHttpRefRequest struct {
	Name        *string `json:"name,omitempty"`
	Ref         *string `json:"ref,omitempty"`
	Description *string `json:"description,omitempty"`
}

type deletedResponse struct {
	ID string `json:"id"`
}

// Create handles POST /workouts/httpRefs.
func (h *HttpRefHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createHttpRefRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	ref, err := h.svc.Create(r.Context(), userID, httpref.CreateInput{
		Name:        req.Name,
		Ref:         req.Ref,
		Description: req.Description,
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toHttpRefResponse(*ref))
}

// GetDefault handles GET /workouts/httpRefs/default/{httpRefId}.
func (h *HttpRefHandler) GetDefault(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, domain.VisibilityDefault)
}

// GetCustom handles GET /workouts/httpRefs/{httpRefId}.
func (h *HttpRefHandler) GetCustom(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, domain.VisibilityCustom)
}

func (h *HttpRefHandler) get(w http.ResponseWriter, r *http.Request, visibility domain.Visibility) {
	id, err := pathUUID(r, "httpRefId")
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	ref, err := h.svc.GetByID(r.Context(), userID, id, visibility)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toHttpRefResponse(*ref))
}

// List handles GET /workouts/httpRefs. Without an isCustom filter it
// returns defaults plus the caller's customs.
func (h *HttpRefHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := parseListFilter(r)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	page, err := h.svc.ListWithFilter(r.Context(), userID, f)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPageResponse(page, toHttpRefResponse))
}

// ListDefault handles GET /workouts/httpRefs/default, the public listing.
func (h *HttpRefHandler) ListDefault(w http.ResponseWriter, r *http.Request) {
	f, err := parseListFilter(r)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}
	defaultsOnly := false
	f.IsCustom = &defaultsOnly

	page, err := h.svc.ListWithFilter(r.Context(), uuid.Nil, f)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPageResponse(page, toHttpRefResponse))
}

// Update handles PATCH /workouts/httpRefs/{httpRefId}.
func (h *HttpRefHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "httpRefId")
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	var req updateHttpRefRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	ref, err := h.svc.Update(r.Context(), userID, httpref.UpdateInput{
		ID:          id,
		Name:        req.Name,
		Ref:         req.Ref,
		Description: req.Description,
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toHttpRefResponse(*ref))
}

// Delete handles DELETE /workouts/httpRefs/{httpRefId}.
func (h *HttpRefHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "httpRefId")
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	deletedID, err := h.svc.Delete(r.Context(), userID, id)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, deletedResponse{ID: deletedID.String()})
}

func toHttpRefResponse(ref domain.HttpRef) httpRefResponse {
	return httpRefResponse{
		ID:          ref.ID.String(),
		Name:        ref.Name,
		Ref:         ref.Ref,
		Description: ref.Description,
		IsCustom:    ref.IsCustom,
	}
}
