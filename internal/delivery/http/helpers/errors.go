package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventmanager/internal/domain"
)

// WriteServiceError maps a service error onto the response. Domain sentinels become 4xx responses
// carrying their message; anything else is logged and reported as 500. resource names the entity
// in the not-found message.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, resource string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, resource+" not found")
	case errors.Is(err, domain.ErrEventInactive),
		errors.Is(err, domain.ErrEventFull),
		errors.Is(err, domain.ErrEventAlreadyStarted),
		errors.Is(err, domain.ErrDuplicateAssignment):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
	}
}
