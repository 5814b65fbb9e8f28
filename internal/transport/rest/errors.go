package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// handleError maps service failures onto HTTP statuses. The sentinel
// message text is the API contract and is written verbatim; anything
// unrecognized is logged and reported as a generic server failure.
func handleError(ctx context.Context, w http.ResponseWriter, log *slog.Logger, err error) {
	var fieldsErr *domain.FieldsNotDifferentError
	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, sentinelMessage(err))

	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, domain.ErrUnauthorized.Error())

	case errors.As(err, &fieldsErr):
		writeError(w, http.StatusBadRequest, fieldsErr.Error())

	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())

	case errors.Is(err, domain.ErrDefaultCustomMismatch),
		errors.Is(err, domain.ErrResourceOwnerMismatch),
		errors.Is(err, domain.ErrDefaultImmutable),
		errors.Is(err, domain.ErrNameDuplicate),
		errors.Is(err, domain.ErrInvalidNestedObject),
		errors.Is(err, domain.ErrEmptyRelation),
		errors.Is(err, domain.ErrNoUpdatesRequested),
		errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, sentinelMessage(err))

	default:
		log.ErrorContext(ctx, "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, domain.ErrServer.Error())
	}
}

// sentinelMessage strips wrapping context and returns the bare sentinel
// text, so a wrapped "get exercise: Not found" still reports "Not found".
func sentinelMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrNotFound,
		domain.ErrUserNotFound,
		domain.ErrDefaultCustomMismatch,
		domain.ErrResourceOwnerMismatch,
		domain.ErrDefaultImmutable,
		domain.ErrNameDuplicate,
		domain.ErrInvalidNestedObject,
		domain.ErrEmptyRelation,
		domain.ErrNoUpdatesRequested,
		domain.ErrAlreadyExists,
		domain.ErrValidation,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
