package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/myron-alexander/srcalc/internal/domain"
)

// ErrorResponse is the JSON error body for all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// statusForError maps domain errors onto HTTP status codes. Unknown items are
// 404, bad request data is 400, and a cyclic database shows up as 422 since
// the request itself was fine.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownItem):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRate),
		errors.Is(err, domain.ErrDuplicateOverride),
		errors.Is(err, domain.ErrMalformedOverridePath),
		errors.Is(err, domain.ErrNegativeOverride),
		errors.Is(err, domain.ErrInvalidLayout):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrChainTooDeep):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
