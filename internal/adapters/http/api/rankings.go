// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// Default page size for ranking reads when no limit is given.
const defaultRankingLimit = 50

// RankingDependencies defines the interface for ranked list operations.
type RankingDependencies interface {
	Ranking(ctx context.Context, ownerID string, limit int) ([]Entry, error)
	Move(ctx context.Context, ownerID, itemID string, position int) error
	Unrank(ctx context.Context, ownerID, itemID string) error
}

// RankingsHandler handles ranked list requests.
type RankingsHandler struct {
	deps     RankingDependencies
	maxLimit int
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps RankingDependencies, maxLimit int) *RankingsHandler {
	return &RankingsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// moveRequest mirrors the schema for POST /rankings/{owner}/move.
type moveRequest struct {
	ItemID   string `json:"item_id"`
	Position int    `json:"position"`
}

func (m moveRequest) validate() error {
	switch {
	case strings.TrimSpace(m.ItemID) == "":
		return NewKind("api.move", ErrBadRequest)
	case m.Position < 1:
		return NewKind("api.move", ErrBadRequest)
	}
	return nil
}

// removeRequest mirrors the schema for POST /rankings/{owner}/remove.
type removeRequest struct {
	ItemID string `json:"item_id"`
}

// HandleRankings routes /rankings/{owner} and its subpaths.
//
//	GET  /rankings/{owner}?limit=N   read the ranked list
//	POST /rankings/{owner}/move      move an item to a new position
//	POST /rankings/{owner}/remove    send an item back to the backlog
func (h *RankingsHandler) HandleRankings(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r.URL.Path, "/rankings/")
	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.handleGet(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "move" && r.Method == http.MethodPost:
		h.handleMove(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "remove" && r.Method == http.MethodPost:
		h.handleRemove(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}

func (h *RankingsHandler) handleGet(w http.ResponseWriter, r *http.Request, ownerID string) {
	const op = "api.get_ranking"
	limit := defaultRankingLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}
	if limit > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := h.deps.Ranking(r.Context(), ownerID, limit)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *RankingsHandler) handleMove(w http.ResponseWriter, r *http.Request, ownerID string) {
	const op = "api.move_item"
	var req moveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.deps.Move(r.Context(), ownerID, req.ItemID, req.Position); err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "moved"})
}

func (h *RankingsHandler) handleRemove(w http.ResponseWriter, r *http.Request, ownerID string) {
	const op = "api.remove_item"
	var req removeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if strings.TrimSpace(req.ItemID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if err := h.deps.Unrank(r.Context(), ownerID, req.ItemID); err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "removed"})
}
