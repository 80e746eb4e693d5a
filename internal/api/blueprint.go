package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ashureev/draftlab/internal/domain"
	"github.com/ashureev/draftlab/internal/prompt"
)

// generationLocks serializes model calls per session. Concurrent requests
// for the same session are rejected rather than interleaved.
var generationLocks sync.Map

// BlueprintHandler handles blueprint design endpoints.
type BlueprintHandler struct {
	*Handler
}

// NewBlueprintHandler creates a new blueprint handler.
func NewBlueprintHandler(base *Handler) *BlueprintHandler {
	return &BlueprintHandler{Handler: base}
}

// RegisterRoutes registers blueprint routes.
func (h *BlueprintHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/building-types", h.BuildingTypes)
		r.Post("/generate", h.Generate)
		r.Post("/iterate", h.Iterate)
		r.Post("/optimize", h.Optimize)
		r.Post("/update-floor", h.UpdateFloor)
		r.Get("/history/{sessionID}", h.History)
	})
}

type generateRequest struct {
	SessionID string `json:"session_id"`
	domain.BuildingRequirements
}

type feedbackRequest struct {
	SessionID string `json:"session_id"`
	Feedback  string `json:"feedback"`
}

type optimizeRequest struct {
	SessionID string `json:"session_id"`
	Goal      string `json:"goal"`
}

type floorRequest struct {
	SessionID  string `json:"session_id"`
	FloorIndex int    `json:"floor_index"`
}

type blueprintResponse struct {
	SessionID string            `json:"session_id"`
	Version   int               `json:"version"`
	CreatedAt time.Time         `json:"created_at"`
	Blueprint *domain.Blueprint `json:"blueprint"`
}

// BuildingTypes lists the supported building categories.
func (h *BlueprintHandler) BuildingTypes(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"building_types": domain.BuildingTypes,
	})
}

// Generate creates the first blueprint for a session. The session key is
// taken from the request when present, otherwise generated server-side.
func (h *BlueprintHandler) Generate(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[generateRequest](w, r)
	if !ok {
		return
	}

	p, err := prompt.Initial(req.BuildingRequirements)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	unlock, ok := lockSession(w, sessionID)
	if !ok {
		return
	}
	defer unlock()

	bp, err := h.generator.GenerateBlueprint(r.Context(), p)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	it, err := h.sessions.Append(sessionID, bp, "Initial generation")
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("Blueprint generated",
		"session_id", sessionID,
		"building_type", req.BuildingType,
		"floors", len(bp.FloorPlans))
	JSON(w, http.StatusOK, blueprintResponse{
		SessionID: sessionID,
		Version:   it.Version,
		CreatedAt: it.CreatedAt,
		Blueprint: bp,
	})
}

// Iterate asks the model to edit the session's current blueprint according
// to user feedback and appends the result to the history.
func (h *BlueprintHandler) Iterate(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[feedbackRequest](w, r)
	if !ok {
		return
	}
	if req.SessionID == "" {
		Error(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if strings.TrimSpace(req.Feedback) == "" {
		Error(w, http.StatusBadRequest, "feedback is required")
		return
	}

	unlock, ok := lockSession(w, req.SessionID)
	if !ok {
		return
	}
	defer unlock()

	h.regenerate(w, r, req.SessionID, req.Feedback, func(current *domain.Blueprint) (string, error) {
		return prompt.Iteration(current, req.Feedback)
	})
}

// Optimize asks the model to re-optimize the session's current blueprint for
// a stated goal and appends the result to the history.
func (h *BlueprintHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[optimizeRequest](w, r)
	if !ok {
		return
	}
	if req.SessionID == "" {
		Error(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if strings.TrimSpace(req.Goal) == "" {
		Error(w, http.StatusBadRequest, "goal is required")
		return
	}

	unlock, ok := lockSession(w, req.SessionID)
	if !ok {
		return
	}
	defer unlock()

	feedback := fmt.Sprintf("Optimization for: %s", req.Goal)
	h.regenerate(w, r, req.SessionID, feedback, func(current *domain.Blueprint) (string, error) {
		return prompt.Optimization(current, req.Goal)
	})
}

// regenerate runs the shared iterate/optimize pathway: load the current
// blueprint, render a prompt from it, call the model, append the result.
func (h *BlueprintHandler) regenerate(w http.ResponseWriter, r *http.Request, sessionID, feedback string, render func(*domain.Blueprint) (string, error)) {
	current, _, err := h.sessions.Current(sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	p, err := render(current)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	bp, err := h.generator.GenerateBlueprint(r.Context(), p)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	it, err := h.sessions.Append(sessionID, bp, feedback)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("Blueprint revised", "session_id", sessionID, "version", it.Version)
	JSON(w, http.StatusOK, blueprintResponse{
		SessionID: sessionID,
		Version:   it.Version,
		CreatedAt: it.CreatedAt,
		Blueprint: bp,
	})
}

// UpdateFloor selects one floor of the current blueprint for display. It is
// a pure read: history is never mutated.
func (h *BlueprintHandler) UpdateFloor(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[floorRequest](w, r)
	if !ok {
		return
	}
	if req.SessionID == "" {
		Error(w, http.StatusBadRequest, "session_id is required")
		return
	}

	fp, err := h.sessions.Floor(req.SessionID, req.FloorIndex)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"session_id":  req.SessionID,
		"floor_index": req.FloorIndex,
		"floor":       fp,
	})
}

// History returns the session's ordered iteration records.
func (h *BlueprintHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	history, err := h.sessions.History(sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"count":      len(history),
		"history":    history,
	})
}

// lockSession takes the per-session generation lock, replying 409 when
// another generation for the same session is in flight. The caller must
// invoke the returned unlock func.
func lockSession(w http.ResponseWriter, sessionID string) (func(), bool) {
	lock, _ := generationLocks.LoadOrStore(sessionID, &sync.Mutex{})
	mutex := lock.(*sync.Mutex)
	if !mutex.TryLock() {
		slog.Warn("Generation already in progress", "session_id", sessionID)
		Error(w, http.StatusConflict, "another generation is in progress for this session")
		return nil, false
	}
	return func() {
		mutex.Unlock()
		generationLocks.Delete(sessionID)
	}, true
}
