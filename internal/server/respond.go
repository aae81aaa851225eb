package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/danielwaldman/cadence/internal/store"
	"github.com/danielwaldman/cadence/internal/variations"
)

// errorResponse is the JSON envelope for every failure.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps the domain error taxonomy onto HTTP status codes. Nothing
// here is retried server-side; every failure goes back to the user for an
// explicit repeat.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrValidation), errors.Is(err, variations.ErrEmptyIdea):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUnavailable), errors.Is(err, variations.ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
