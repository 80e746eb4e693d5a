// Package api provides HTTP handlers for the DraftLab API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ashureev/draftlab/internal/domain"
	"github.com/ashureev/draftlab/internal/gemini"
	"github.com/ashureev/draftlab/internal/store"
)

// maxBodyBytes caps request bodies; blueprint requests are small.
const maxBodyBytes = 1 << 20

// Handler provides common handler dependencies.
type Handler struct {
	sessions  *store.SessionStore
	generator gemini.Generator
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(sessions *store.SessionStore, generator gemini.Generator) *Handler {
	return &Handler{
		sessions:  sessions,
		generator: generator,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// readJSON decodes a JSON request body into T, capped at maxBodyBytes.
func readJSON[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return v, false
	}
	return v, true
}

// writeDomainError maps domain and model failures onto API responses. Model
// failures are infrastructure problems the caller cannot fix, so their
// responses carry no internal detail.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	var aerr *gemini.AuthError
	var terr *gemini.TransportError
	var perr *gemini.ParseError

	switch {
	case errors.As(err, &verr):
		Error(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		Error(w, http.StatusNotFound, "session not found")
	case errors.Is(err, domain.ErrFloorOutOfRange):
		Error(w, http.StatusNotFound, "floor index out of range")
	case errors.Is(err, domain.ErrHistoryLimit):
		Error(w, http.StatusConflict, "session history limit reached")
	case errors.As(err, &aerr), errors.As(err, &terr):
		slog.Error("Blueprint service unavailable", "error", err)
		Error(w, http.StatusBadGateway, "blueprint service unavailable")
	case errors.As(err, &perr):
		slog.Warn("Model returned unusable completion", "error", err)
		Error(w, http.StatusBadGateway, "generation failed, please retry")
	default:
		slog.Error("Unhandled error", "error", err)
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}
