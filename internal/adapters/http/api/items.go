// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/mirzakhani/gamerank/internal/domain/types"
)

// ItemDependencies defines the interface for library item operations.
type ItemDependencies interface {
	AddItem(ctx context.Context, ownerID, itemID string) (types.BacklogEntry, error)
	Backlog(ctx context.Context, ownerID string) ([]types.BacklogEntry, error)
}

// ItemsHandler handles library item requests.
type ItemsHandler struct {
	deps ItemDependencies
}

// NewItemsHandler creates a new items handler.
func NewItemsHandler(deps ItemDependencies) *ItemsHandler {
	return &ItemsHandler{deps: deps}
}

// addItemRequest mirrors the schema for POST /items.
type addItemRequest struct {
	OwnerID string `json:"owner_id"`
	ItemID  string `json:"item_id"`
}

func (a addItemRequest) validate() error {
	switch {
	case strings.TrimSpace(a.OwnerID) == "":
		return NewKind("api.add_item", ErrBadRequest)
	case strings.TrimSpace(a.ItemID) == "":
		return NewKind("api.add_item", ErrBadRequest)
	}
	return nil
}

// HandleAddItem handles POST /items requests.
func (h *ItemsHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_item"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req addItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	entry, err := h.deps.AddItem(r.Context(), req.OwnerID, req.ItemID)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// HandleGetBacklog handles GET /backlog/{owner} requests.
func (h *ItemsHandler) HandleGetBacklog(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_backlog"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	parts := pathParts(r.URL.Path, "/backlog/")
	if len(parts) != 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := h.deps.Backlog(r.Context(), parts[0])
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
