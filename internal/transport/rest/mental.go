package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
	"github.com/wellforge/lifestyle-backend/internal/service/mental"
	"github.com/wellforge/lifestyle-backend/pkg/ctxutil"
)

type mentalService interface {
	Create(ctx context.Context, userID uuid.UUID, input mental.CreateInput) (*domain.MentalActivity, error)
	GetByID(ctx context.Context, userID, id uuid.UUID, requested domain.Visibility) (*domain.MentalActivity, error)
	ListWithFilter(ctx context.Context, userID uuid.UUID, f domain.ListFilter) (*domain.Page[domain.MentalActivity], error)
	ListTypes(ctx context.Context) ([]domain.MentalType, error)
	Update(ctx context.Context, userID uuid.UUID, input mental.UpdateInput) (*domain.MentalActivity, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (uuid.UUID, error)
}

// MentalHandler serves mental activity endpoints under /mentals.
type MentalHandler struct {
	svc mentalService
	log *slog.Logger
}

// NewMentalHandler creates a MentalHandler.
func NewMentalHandler(svc mentalService, logger *slog.Logger) *MentalHandler {
	return &MentalHandler{svc: svc, log: logger.With("handler", "mentals")}
}

type activityTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type mentalResponse struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  *string           `json:"description,omitempty"`
	IsCustom     bool              `json:"isCustom"`
	MentalTypeID string            `json:"mentalTypeId"`
	HttpRefs     []httpRefResponse `json:"httpRefs"`
}

type createMentalRequest struct {
	Title        string      `json:"title"`
	Description  *string     `json:"description,omitempty"`
	MentalTypeID uuid.UUID   `json:"mentalTypeId"`
	HttpRefIDs   []uuid.UUID `json:"httpRefIds"`
}

type updateMentalRequest struct {
	Title        *string      `json:"title,omitempty"`
	Description  *string      `json:"description,omitempty"`
	MentalTypeID *uuid.UUID   `json:"mentalTypeId,omitempty"`
	HttpRefIDs   *[]uuid.UUID `json:"httpRefIds,omitempty"`
}

// Create handles POST /mentals.
func (h *MentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMentalRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	m, err := h.svc.Create(r.Context(), userID, mental.CreateInput{
		Title:        req.Title,
		Description:  req.Description,
		MentalTypeID: req.MentalTypeID,
		HttpRefIDs:   req.HttpRefIDs,
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMentalResponse(*m))
}

// GetDefault handles GET /mentals/default/{mentalId}.
func (h *MentalHandler) GetDefault(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, domain.VisibilityDefault)
}

// GetCustom handles GET /mentals/{mentalId}.
func (h *MentalHandler) GetCustom(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, domain.VisibilityCustom)
}

func (h *MentalHandler) get(w http.ResponseWriter, r *http.Request, visibility domain.Visibility) {
	id, err := pathUUID(r, "mentalId")
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	m, err := h.svc.GetByID(r.Context(), userID, id, visibility)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toMentalResponse(*m))
}

// List handles GET /mentals.
func (h *MentalHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := parseListFilter(r)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}
	if f.MentalTypeID, err = queryUUID(r.URL.Query().Get("mentalTypeId"), "mentalTypeId"); err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	page, err := h.svc.ListWithFilter(r.Context(), userID, f)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPageResponse(page, toMentalResponse))
}

// ListDefault handles GET /mentals/default, the public listing.
func (h *MentalHandler) ListDefault(w http.ResponseWriter, r *http.Request) {
	f, err := parseListFilter(r)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}
	if f.MentalTypeID, err = queryUUID(r.URL.Query().Get("mentalTypeId"), "mentalTypeId"); err != nil {
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

	writeJSON(w, http.StatusOK, toPageResponse(page, toMentalResponse))
}

// ListTypes handles GET /mentals/types.
func (h *MentalHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
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

// Update handles PATCH /mentals/{mentalId}.
func (h *MentalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "mentalId")
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	var req updateMentalRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	m, err := h.svc.Update(r.Context(), userID, mental.UpdateInput{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		MentalTypeID: req.MentalTypeID,
		HttpRefIDs:   req.HttpRefIDs,
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toMentalResponse(*m))
}

// Delete handles DELETE /mentals/{mentalId}.
func (h *MentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "mentalId")
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

func toMentalResponse(m domain.MentalActivity) mentalResponse {
	httpRefs := make([]httpRefResponse, len(m.HttpRefs))
	for i, ref := range m.HttpRefs {
		httpRefs[i] = toHttpRefResponse(ref)
	}
	return mentalResponse{
		ID:           m.ID.String(),
		Title:        m.Title,
		Description:  m.Description,
		IsCustom:     m.IsCustom,
		MentalTypeID: m.MentalTypeID.String(),
		HttpRefs:     httpRefs,
	}
}
