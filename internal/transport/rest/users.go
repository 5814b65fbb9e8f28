package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
	"github.com/wellforge/lifestyle-backend/internal/service/user"
	"github.com/wellforge/lifestyle-backend/pkg/ctxutil"
)

type userService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, input user.UpdateProfileInput) (*domain.User, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// UserHandler serves the authenticated user's profile.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "users")}
}

type userResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Username string  `json:"username"`
	FullName *string `json:"fullName,omitempty"`
}

type updateUserRequest struct {
	Username *string `json:"username,omitempty"`
	FullName *string `json:"fullName,omitempty"`
	Password *string `json:"password,omitempty"`
}

// GetProfile handles GET /users.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxutil.UserIDFromCtx(r.Context())

	u, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// UpdateProfile handles PATCH /users/{userId}. The path id must match the
// authenticated user; profiles are never editable across accounts.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := h.requestedSelf(r)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), user.UpdateProfileInput{
		ID:       userID,
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// DeleteAccount handles DELETE /users/{userId}.
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := h.requestedSelf(r)
	if err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	if err := h.svc.DeleteAccount(r.Context(), userID); err != nil {
		handleError(r.Context(), w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) requestedSelf(r *http.Request) (uuid.UUID, error) {
	pathID, err := pathUUID(r, "userId")
	if err != nil {
		return uuid.Nil, err
	}
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok || userID != pathID {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:       u.ID.String(),
		Email:    u.Email,
		Username: u.Username,
		FullName: u.FullName,
	}
}
