package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"movierec/internal/recommend"
	"movierec/internal/store"
)

// Resolver is the pipeline entry point the HTTP layer depends on.
type Resolver interface {
	Resolve(ctx context.Context, rawInput string) (*recommend.Result, error)
}

// History is the read side of the recommendation log.
type History interface {
	Recent(ctx context.Context, limit int) ([]store.Record, error)
}

// DebugEnv is what the dev-only probe is allowed to reveal about the
// provider configuration. The key itself never leaves the process.
type DebugEnv struct {
	Provider  string
	Model     string
	KeyPrefix string
	KeyLength int
	AppEnv    string
}

type Handlers struct {
	resolver Resolver
	history  History
	debug    DebugEnv
}

func NewHandlers(resolver Resolver, history History, debug DebugEnv) *Handlers {
	return &Handlers{resolver: resolver, history: history, debug: debug}
}

type recommendationsRequest struct {
	UserInput string `json:"user_input"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (h *Handlers) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// A missing or malformed body means a missing user_input.
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user_input is required (min 3 chars)"})
		return
	}

	result, err := h.resolver.Resolve(r.Context(), req.UserInput)
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user_input is required (min 3 chars)"})
			return
		}
		log.Printf("resolve failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "persistence_failure", Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	items, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		log.Printf("history failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "history_failure", Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handlers) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"message":   "Movie Recommendation API is running",
		"endpoints": []string{"/health", "/recommendations", "/history"},
	})
}

func (h *Handlers) HandleDebugEnv(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"provider":      h.debug.Provider,
		"hasKey":        h.debug.KeyLength > 0,
		"keyStartsWith": h.debug.KeyPrefix,
		"keyLength":     h.debug.KeyLength,
		"model":         h.debug.Model,
		"appEnv":        h.debug.AppEnv,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
