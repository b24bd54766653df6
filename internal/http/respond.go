package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"bilancio/internal/core"
	applog "bilancio/internal/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	applog.FromContext(r.Context()).WarnContext(r.Context(), "Request failed",
		applog.FieldMethod, r.Method,
		applog.FieldPath, r.URL.Path,
		applog.FieldStatusCode, status,
		"message", msg)
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps domain errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrEmptyTitle),
		errors.Is(err, core.ErrEmptyID):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Internal error",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldError, err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
