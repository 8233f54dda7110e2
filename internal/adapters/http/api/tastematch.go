// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/mirzakhani/gamerank/internal/domain/types"
)

// TasteMatchDependencies defines the interface for taste match operations.
type TasteMatchDependencies interface {
	TasteMatch(ctx context.Context, ownerID, friendID string) (types.MatchScore, error)
}

// TasteMatchHandler handles taste match requests.
type TasteMatchHandler struct {
	deps TasteMatchDependencies
}

// NewTasteMatchHandler creates a new taste match handler.
func NewTasteMatchHandler(deps TasteMatchDependencies) *TasteMatchHandler {
	return &TasteMatchHandler{deps: deps}
}

// HandleGetTasteMatch handles GET /tastematch?owner=X&friend=Y requests.
func (h *TasteMatchHandler) HandleGetTasteMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_taste_match"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	owner := strings.TrimSpace(r.URL.Query().Get("owner"))
	friend := strings.TrimSpace(r.URL.Query().Get("friend"))
	if owner == "" || friend == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	score, err := h.deps.TasteMatch(r.Context(), owner, friend)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, score)
}
