package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
	"github.com/wellforge/lifestyle-backend/internal/service/workout"
	"github.com/wellforge/lifestyle-backend/pkg/ctxutil"
)

type workoutService interface {
	Create(ctx context.Context, userID uuid.UUID, input workout.CreateInput) (*domain.Workout, error)
	GetByID(ctx context.Context, userID, id uuid.UUID, requested domain.Visibility) (*domain.Workout, error)
	ListWithFilter(ctx context.Context, userID uuid.UUID, f domain.ListFilter) (*domain.Page[domain.Workout], error)
	Update(ctx context.Context, userID uuid.UUID, input workout.UpdateInput) (*domain.Workout, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (uuid.UUID, error)
}

// WorkoutHandler serves workout endpoints under /workouts.
type WorkoutHandler struct {
	svc workoutService
	log *slog.Logger
}

// NewWorkoutHandler creates a WorkoutHandler.
func NewWorkoutHandler(svc workoutService, logger *slog.Logger) *WorkoutHandler {
	return &WorkoutHandler{svc: svc, log: logger.With("handler", "workouts")}
}

type workoutResponse struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Description    *string            `json:"description,omitempty"`
	IsCustom       bool               `json:"isCustom"`
	NeedsEquipment bool               `json:"needsEquipment"`
	Exercises      []exerciseResponse `json:"exercises"`
}

type createWorkoutRequest struct {
	Title       string      `json:"title"`
	Description *string     `json:"description,omitempty"`
	ExerciseIDs []uuid.UUID `json:"exerciseIds"`
}

type updateWorkoutRequest struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	ExerciseIDs *[]uuid.UUID `json:"exerciseIds,omitempty"`
}

// Create handles POST /workouts.
func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createWorkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	wo, err := h.svc.Create(r.Context(), userID, workout.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		ExerciseIDs: req.ExerciseIDs,
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toWorkoutResponse(*wo))
}

// GetDefault handles GET /workouts/default/{workoutId}.
func (h *WorkoutHandler) GetDefault(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, domain.VisibilityDefault)
}

// GetCustom handles GET /workouts/{workoutId}. Requires ownership.
func (h *WorkoutHandler) GetCustom(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, domain.VisibilityCustom)
}

func (h *WorkoutHandler) get(w http.ResponseWriter, r *http.Request, visibility domain.Visibility) {
	id, err := pathUUID(r, "workoutId")
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	wo, err := h.svc.GetByID(r.Context(), userID, id, visibility)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toWorkoutResponse(*wo))
}

// List handles GET /workouts.
func (h *WorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, toPageResponse(page, toWorkoutResponse))
}

// ListDefault handles GET /workouts/default.
func (h *WorkoutHandler) ListDefault(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, toPageResponse(page, toWorkoutResponse))
}

// Update handles PATCH /workouts/{workoutId}.
func (h *WorkoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "workoutId")
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	var req updateWorkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	wo, err := h.svc.Update(r.Context(), userID, workout.UpdateInput{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		ExerciseIDs: req.ExerciseIDs,
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toWorkoutResponse(*wo))
}

// Delete handles DELETE /workouts/{workoutId}.
func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "workoutId")
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

func toWorkoutResponse(wo domain.Workout) workoutResponse {
	exercises := make([]exerciseResponse, len(wo.Exercises))
	for i, ex := range wo.Exercises {
		exercises[i] = toExerciseResponse(ex)
	}
	return workoutResponse{
		ID:             wo.ID.String(),
		Title:          wo.Title,
		Description:    wo.Description,
		IsCustom:       wo.IsCustom,
		NeedsEquipment: wo.NeedsEquipment(),
		Exercises:      exercises,
	}
}
