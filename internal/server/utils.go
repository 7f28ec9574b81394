package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"cropcast/internal/fetchers"
	"cropcast/internal/logger"
	"cropcast/internal/phenology"
)

// writeJSON encodes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorw("Failed to encode response", "error", err)
	}
}

// writeError answers a JSON error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusForError maps pipeline failures to HTTP status codes: not-found for
// unknown crops and places, unprocessable for out-of-range queries, bad
// gateway for upstream weather trouble, bad request for everything else the
// caller supplied.
func statusForError(err error) int {
	switch {
	case errors.Is(err, phenology.ErrUnknownCrop),
		errors.Is(err, fetchers.ErrLocationNotFound):
		return http.StatusNotFound
	case errors.Is(err, phenology.ErrDateOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, fetchers.ErrUpstream),
		errors.Is(err, phenology.ErrEmptySeries),
		errors.Is(err, phenology.ErrNonContiguousSeries):
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}
