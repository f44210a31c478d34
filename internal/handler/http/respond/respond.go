// Package respond provides utilities for sending HTTP responses in JSON format.
// DomainError is the single place where errors become HTTP responses.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fundacoes/internal/domain/entity"
	"fundacoes/internal/observability/logging"
)

// MsgInternal is the body returned for every unclassified failure.
const MsgInternal = "internal error"

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes {"error": msg} with the given status code.
func Error(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, map[string]string{"error": msg})
}

// NotFound writes the bare plain-text 404 used for unknown routes and missing assets.
func NotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("Not found"))
}

// StatusOf maps a domain error kind to its HTTP status.
func StatusOf(k entity.Kind) int {
	switch k {
	case entity.KindValidation:
		return http.StatusBadRequest
	case entity.KindConflict:
		return http.StatusConflict
	case entity.KindNotFound:
		return http.StatusNotFound
	case entity.KindBadRequest:
		return http.StatusBadRequest
	case entity.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// DomainError writes {"error": message} with the status of err's kind.
// Errors that are not *entity.Error, or are KindInternal, are logged with
// secrets masked and answered with a generic 500.
func DomainError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	var de *entity.Error
	if errors.As(err, &de) && de.Kind != entity.KindInternal {
		Error(w, StatusOf(de.Kind), de.Message)
		return
	}

	logging.FromContext(r.Context()).Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", SanitizeError(err)))
	Error(w, http.StatusInternalServerError, MsgInternal)
}
