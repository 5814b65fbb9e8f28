package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
	"github.com/wellforge/lifestyle-backend/internal/service/nutrition"
	"github.com/wellforge/lifestyle-backend/pkg/ctxutil"
)

type nutritionService interface {
	Create(ctx context.Context, userID uuid.UUID, input nutrition.CreateInput) (*domain.Nutrition, error)
	GetByID(ctx context.Context, userID, id uuid.UUID, requested domain.Visibility) (*domain.Nutrition, error)
	ListWithFilter(ctx context.Context, userID uuid.UUID, f domain.ListFilter) (*domain.Page[domain.Nutrition], error)
	ListTypes(ctx context.Context) ([]domain.NutritionType, error)
	Update(ctx context.Context, userID uuid.UUID, input nutrition.UpdateInput) (*domain.Nutrition, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (uuid.UUID, error)
}

// NutritionHandler serves nutrition endpoints under /nutritions.
type NutritionHandler struct {
	svc nutritionService
	log *slog.Logger
}

// NewNutritionHandler creates a NutritionHandler.
func NewNutritionHandler(svc nutritionService, logger *slog.Logger) *NutritionHandler {
	return &NutritionHandler{svc: svc, log: logger.With("handler", "nutritions")}
}

type nutritionResponse struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Description     *string           `json:"description,omitempty"`
	IsCustom        bool              `json:"isCustom"`
	NutritionTypeID string            `json:"nutritionTypeId"`
	HttpRefs        []httpRefResponse `json:"httpRefs"`
}

type createNutritionRequest struct {
	Title           string      `json:"title"`
	Description     *string     `json:"description,omitempty"`
	NutritionTypeID uuid.UUID   `json:"nutritionTypeId"`
	HttpRefIDs      []uuid.UUID `json:"httpRefIds"`
}

type updateNutritionRequest struct {
	Title           *string      `json:"title,omitempty"`
	Description     *string      `json:"description,omitempty"`
	NutritionTypeID *uuid.UUID   `json:"nutritionTypeId,omitempty"`
	HttpRefIDs      *[]uuid.UUID `json:"httpRefIds,omitempty"`
}

// Create handles POST /nutritions.
func (h *NutritionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNutritionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	n, err := h.svc.Create(r.Context(), userID, nutrition.CreateInput{
		Title:           req.Title,
		Description:     req.Description,
		NutritionTypeID: req.NutritionTypeID,
		HttpRefIDs:      req.HttpRefIDs,
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toNutritionResponse(*n))
}

// GetDefault handles GET /nutritions/default/{nutritionId}.
func (h *NutritionHandler) GetDefault(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, domain.VisibilityDefault)
}

// GetCustom handles GET /nutritions/{nutritionId}.
func (h *NutritionHandler) GetCustom(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, domain.VisibilityCustom)
}

func (h *NutritionHandler) get(w http.ResponseWriter, r *http.Request, visibility domain.Visibility) {
	id, err := pathUUID(r, "nutritionId")
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	n, err := h.svc.GetByID(r.Context(), userID, id, visibility)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toNutritionResponse(*n))
}

// List handles GET /nutritions.
func (h *NutritionHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := parseListFilter(r)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}
	if f.NutritionTypeID, err = queryUUID(r.URL.Query().Get("nutritionTypeId"), "nutritionTypeId"); err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	page, err := h.svc.ListWithFilter(r.Context(), userID, f)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPageResponse(page, toNutritionResponse))
}

// ListDefault handles GET /nutritions/default, the public listing.
func (h *NutritionHandler) ListDefault(w http.ResponseWriter, r *http.Request) {
	f, err := parseListFilter(r)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}
	if f.NutritionTypeID, err = queryUUID(r.URL.Query().Get("nutritionTypeId"), "nutritionTypeId"); err != nil {
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

	writeJSON(w, http.StatusOK, toPageResponse(page, toNutritionResponse))
}

// ListTypes handles GET /nutritions/types.
func (h *NutritionHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.ListTypes(r.Context())
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	out := make([]activityTypeResponse, len(types))
	for i, t := range types {
		out[i] = activityTypeResponse{ID: t.ID.String(), Name: t.Name}
	}
	writeJSON(w, http.StatusOK, out)
}

// Update handles PATCH /nutritions/{nutritionId}.
func (h *NutritionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "nutritionId")
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	var req updateNutritionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	n, err := h.svc.Update(r.Context(), userID, nutrition.UpdateInput{
		ID:              id,
		Title:           req.Title,
		Description:     req.Description,
		NutritionTypeID: req.NutritionTypeID,
		HttpRefIDs:      req.HttpRefIDs,
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toNutritionResponse(*n))
}

// Delete handles DELETE /nutritions/{nutritionId}.
func (h *NutritionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "nutritionId")
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

func toNutritionResponse(n domain.Nutrition) nutritionResponse {
	httpRefs := make([]httpRefResponse, len(n.HttpRefs))
	for i, ref := range n.HttpRefs {
		httpRefs[i] = toHttpRefResponse(ref)
	}
	return nutritionResponse{
		ID:              n.ID.String(),
		Title:           n.Title,
		Description:     n.Description,
		IsCustom:        n.IsCustom,
		NutritionTypeID: n.NutritionTypeID.String(),
		HttpRefs:        httpRefs,
	}
}
