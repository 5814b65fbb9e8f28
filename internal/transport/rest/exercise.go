package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
	"github.com/wellforge/lifestyle-backend/internal/service/exercise"
	"github.com/wellforge/lifestyle-backend/pkg/ctxutil"
)

type exerciseService interface {
	Create(ctx context.Context, userID uuid.UUID, input exercise.CreateInput) (*domain.Exercise, error)
	GetByID(ctx context.Context, userID, id uuid.UUID, requested domain.Visibility) (*domain.Exercise, error)
	ListWithFilter(ctx context.Context, userID uuid.UUID, f domain.ListFilter) (*domain.Page[domain.Exercise], error)
	ListBodyParts(ctx context.Context) ([]domain.BodyPart, error)
	Update(ctx context.Context, userID uuid.UUID, input exercise.UpdateInput) (*domain.Exercise, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (uuid.UUID, error)
}

// ExerciseHandler serves exercise endpoints under /workouts/exercises and
// the body part taxonomy under /workouts/bodyParts.
type ExerciseHandler struct {
	svc exerciseService
	log *slog.Logger
}

// NewExerciseHandler creates an ExerciseHandler.
func NewExerciseHandler(svc exerciseService, logger *slog.Logger) *ExerciseHandler {
	return &ExerciseHandler{svc: svc, log: logger.With("handler", "exercises")}
}

type bodyPartResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type exerciseResponse struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Description    *string            `json:"description,omitempty"`
	IsCustom       bool               `json:"isCustom"`
	NeedsEquipment bool               `json:"needsEquipment"`
	BodyParts      []bodyPartResponse `json:"bodyParts"`
	HttpRefs       []httpRefResponse  `json:"httpRefs"`
}

type createExerciseRequest struct {
	Title          string      `json:"title"`
	Description    *string     `json:"description,omitempty"`
	NeedsEquipment bool        `json:"needsEquipment"`
	BodyPartIDs    []uuid.UUID `json:"bodyPartIds"`
	HttpRefIDs     []uuid.UUID `json:"httpRefIds"`
}

type updateExerciseRequest struct {
	Title          *string      `json:"title,omitempty"`
	Description    *string      `json:"description,omitempty"`
	NeedsEquipment *bool        `json:"needsEquipment,omitempty"`
	BodyPartIDs    *[]uuid.UUID `json:"bodyPartIds,omitempty"`
	HttpRefIDs     *[]uuid.UUID `json:"httpRefIds,omitempty"`
}

// Create handles POST /workouts/exercises.
func (h *ExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createExerciseRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	ex, err := h.svc.Create(r.Context(), userID, exercise.CreateInput{
		Title:          req.Title,
		Description:    req.Description,
		NeedsEquipment: req.NeedsEquipment,
		BodyPartIDs:    req.BodyPartIDs,
		HttpRefIDs:     req.HttpRefIDs,
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toExerciseResponse(*ex))
}

// GetDefault handles GET /workouts/exercises/default/{exerciseId}.
func (h *ExerciseHandler) GetDefault(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, domain.VisibilityDefault)
}

// GetCustom handles GET /workouts/exercises/{exerciseId}.
func (h *ExerciseHandler) GetCustom(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, domain.VisibilityCustom)
}

func (h *ExerciseHandler) get(w http.ResponseWriter, r *http.Request, visibility domain.Visibility) {
	id, err := pathUUID(r, "exerciseId")
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	ex, err := h.svc.GetByID(r.Context(), userID, id, visibility)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toExerciseResponse(*ex))
}

// List handles GET /workouts/exercises.
func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, toPageResponse(page, toExerciseResponse))
}

// ListDefault handles GET /workouts/exercises/default.
func (h *ExerciseHandler) ListDefault(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, toPageResponse(page, toExerciseResponse))
}

// ListBodyParts handles GET /workouts/bodyParts. The taxonomy is shared
// and public.
func (h *ExerciseHandler) ListBodyParts(w http.ResponseWriter, r *http.Request) {
	parts, err := h.svc.ListBodyParts(r.Context())
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	out := make([]bodyPartResponse, len(parts))
	for i, bp := range parts {
		out[i] = toBodyPartResponse(bp)
	}
	writeJSON(w, http.StatusOK, out)
}

// Update handles PATCH /workouts/exercises/{exerciseId}.
func (h *ExerciseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "exerciseId")
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	var req updateExerciseRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	ex, err := h.svc.Update(r.Context(), userID, exercise.UpdateInput{
		ID:             id,
		Title:          req.Title,
		Description:    req.Description,
		NeedsEquipment: req.NeedsEquipment,
		BodyPartIDs:    req.BodyPartIDs,
		HttpRefIDs:     req.HttpRefIDs,
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toExerciseResponse(*ex))
}

// Delete handles DELETE /workouts/exercises/{exerciseId}.
func (h *ExerciseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "exerciseId")
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

func toBodyPartResponse(bp domain.BodyPart) bodyPartResponse {
	return bodyPartResponse{ID: bp.ID.String(), Name: bp.Name}
}

func toExerciseResponse(ex domain.Exercise) exerciseResponse {
	bodyParts := make([]bodyPartResponse, len(ex.BodyParts))
	for i, bp := range ex.BodyParts {
		bodyParts[i] = toBodyPartResponse(bp)
	}
	httpRefs := make([]httpRefResponse, len(ex.HttpRefs))
	for i, ref := range ex.HttpRefs {
		httpRefs[i] = toHttpRefResponse(ref)
	}
	return exerciseResponse{
		ID:             ex.ID.String(),
		Title:          ex.Title,
		Description:    ex.Description,
		IsCustom:       ex.IsCustom,
		NeedsEquipment: ex.NeedsEquipment,
		BodyParts:      bodyParts,
		HttpRefs:       httpRefs,
	}
}
