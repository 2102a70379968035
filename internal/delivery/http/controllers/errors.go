package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"confportal/internal/delivery/http/helpers"
	"confportal/internal/delivery/http/middleware"
	"confportal/internal/domain"
)

func userIDFrom(r *http.Request) (string, bool) {
	return middleware.UserIDFromContext(r.Context())
}

// respondServiceError maps domain sentinel errors to HTTP responses. Unknown
// errors are logged and reported as 500. notFoundMsg names the missing resource
// in the 404 body.
func respondServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrAlreadyOrganizer):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case domain.IsValidationError(err):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeValidationFailed, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// viewerID returns the authenticated user ID as an optional viewer identity,
// or nil for anonymous requests.
func viewerID(r *http.Request) *string {
	if id, ok := userIDFrom(r); ok {
		return &id
	}
	return nil
}
